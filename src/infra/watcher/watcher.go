package watcher

import (
	"context"
	"log/slog"
	"sync"

	"github.com/contre95/fsbridge/src/fsevent"
	"github.com/fsnotify/fsnotify"
)

// DropCounter is told about every event the watcher could not deliver.
type DropCounter interface {
	RecordDropped()
}

// Watcher feeds fsnotify events for a set of directories into a channel
type Watcher struct {
	watcher   *fsnotify.Watcher
	stopOnce  sync.Once
	stopChan  chan struct{}
	doneChan  chan struct{}
	eventChan chan<- fsevent.FileChangeEvent
	drops     DropCounter
}

// NewWatcher creates a new file system watcher. drops may be nil.
func NewWatcher(eventChan chan<- fsevent.FileChangeEvent, drops DropCounter) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   watcher,
		eventChan: eventChan,
		drops:     drops,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}, nil
}

// Start adds every path and begins forwarding events. If any path fails
// the watcher is stopped and Done is closed.
func (w *Watcher) Start(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		if err := w.watcher.Add(path); err != nil {
			w.Stop()
			close(w.doneChan)
			return err
		}
		slog.Info("Watching path", "path", path)
	}

	go w.watchLoop(ctx)
	return nil
}

// Stop stops the file watcher; Done reports when the loop has exited.
// It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		slog.Info("Stopping file watcher")
		close(w.stopChan)
		if err := w.watcher.Close(); err != nil {
			slog.Error("Failed to close file watcher", "error", err)
		}
	})
}

// Done is closed once the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneChan
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.doneChan)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	ev := EventFromFsnotify(event)
	select {
	case w.eventChan <- ev:
	default:
		slog.Warn("Event channel full, dropping file event", "event", ev.String())
		if w.drops != nil {
			w.drops.RecordDropped()
		}
	}
}
