package classify

import (
	"context"
	"log/slog"

	"github.com/contre95/fsbridge/src/fsevent"
	"github.com/google/uuid"
)

// Recorder receives a notification for every classified event.
type Recorder interface {
	RecordEvent(ev fsevent.FileChangeEvent, kind fsevent.Kind)
	RecordBatch()
}

// Result is the classification of one event.
type Result struct {
	Path     string   `json:"path"`
	Flags    uint32   `json:"flags"`
	Names    []string `json:"names"`
	Kind     string   `json:"kind"`
	NewFile  bool     `json:"new_file"`
	Modified bool     `json:"modified"`
	Touched  bool     `json:"touched"`
	Removed  bool     `json:"removed"`
}

// NewResult classifies ev without recording it anywhere.
func NewResult(ev fsevent.FileChangeEvent) Result {
	return Result{
		Path:     ev.Path,
		Flags:    uint32(ev.Flags),
		Names:    ev.Flags.Names(),
		Kind:     ev.Kind().String(),
		NewFile:  ev.IsNewFile(),
		Modified: ev.IsModified(),
		Touched:  ev.IsTouched(),
		Removed:  ev.IsRemoved(),
	}
}

// Service classifies events coming from HTTP or from a watcher feed.
type Service struct {
	recorder Recorder
}

// NewService creates a new classify service. A nil recorder disables counting.
func NewService(recorder Recorder) *Service {
	return &Service{recorder: recorder}
}

// Classify classifies a single event.
func (s *Service) Classify(ev fsevent.FileChangeEvent) Result {
	if s.recorder != nil {
		s.recorder.RecordEvent(ev, ev.Kind())
	}
	return NewResult(ev)
}

// ClassifyBatch classifies events in order. On cancellation it returns the
// results produced so far together with the context error.
func (s *Service) ClassifyBatch(ctx context.Context, events []fsevent.FileChangeEvent) (string, []Result, error) {
	batchID := uuid.New().String()
	if s.recorder != nil {
		s.recorder.RecordBatch()
	}
	slog.Debug("Classifying batch", "batch", batchID, "events", len(events))

	results := make([]Result, 0, len(events))
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			slog.Warn("Batch classification interrupted", "batch", batchID, "done", len(results), "error", err)
			return batchID, results, err
		}
		results = append(results, s.Classify(ev))
	}
	return batchID, results, nil
}

// Consume classifies everything received on feed until it is closed or ctx
// is done, logging each classification.
func (s *Service) Consume(ctx context.Context, feed <-chan fsevent.FileChangeEvent) {
	for {
		select {
		case ev, ok := <-feed:
			if !ok {
				return
			}
			res := s.Classify(ev)
			if !res.NewFile && !res.Modified && !res.Removed {
				slog.Debug("Ignoring file event", "event", ev.String())
				continue
			}
			slog.Info("File event", "kind", res.Kind, "path", ev.Path, "flags", ev.Flags.String())
		case <-ctx.Done():
			return
		}
	}
}
