package classify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/contre95/fsbridge/src/fsevent"
)

// fakeRecorder counts calls to the Recorder interface
type fakeRecorder struct {
	mu      sync.Mutex
	kinds   map[fsevent.Kind]int
	batches int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{kinds: make(map[fsevent.Kind]int)}
}

func (r *fakeRecorder) RecordEvent(ev fsevent.FileChangeEvent, kind fsevent.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind]++
}

func (r *fakeRecorder) RecordBatch() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
}

func (r *fakeRecorder) count(kind fsevent.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.kinds[kind]
}

func TestNewResult(t *testing.T) {
	res := NewResult(fsevent.NewEvent("/tmp/new", fsevent.ItemCreated|fsevent.ItemIsFile))
	if !res.NewFile || res.Modified || res.Touched || res.Removed {
		t.Errorf("unexpected predicates %+v", res)
	}
	if res.Kind != "created" {
		t.Errorf("expected kind created, got %q", res.Kind)
	}
	if res.Flags != 0x10100 {
		t.Errorf("expected flags 0x10100, got %#x", res.Flags)
	}
	if len(res.Names) != 2 || res.Names[0] != "ItemCreated" || res.Names[1] != "ItemIsFile" {
		t.Errorf("unexpected names %v", res.Names)
	}
}

func TestClassify_Records(t *testing.T) {
	rec := newFakeRecorder()
	service := NewService(rec)

	service.Classify(fsevent.NewEvent("/a", fsevent.ItemModified))
	service.Classify(fsevent.NewEvent("/b", fsevent.ItemInodeMetaMod))
	service.Classify(fsevent.NewEvent("/c", 0))

	if rec.count(fsevent.KindModified) != 1 || rec.count(fsevent.KindTouched) != 1 || rec.count(fsevent.KindNone) != 1 {
		t.Errorf("unexpected counts %v", rec.kinds)
	}
}

func TestClassify_NilRecorder(t *testing.T) {
	service := NewService(nil)
	if res := service.Classify(fsevent.NewEvent("/a", fsevent.ItemRemoved)); !res.Removed {
		t.Errorf("expected removed, got %+v", res)
	}
}

func TestClassifyBatch_PreservesOrder(t *testing.T) {
	rec := newFakeRecorder()
	service := NewService(rec)
	events := []fsevent.FileChangeEvent{
		fsevent.NewEvent("/1", fsevent.ItemCreated),
		fsevent.NewEvent("/2", fsevent.ItemCreated|fsevent.ItemModified),
		fsevent.NewEvent("/3", fsevent.ItemRemoved),
	}

	batchID, results, err := service.ClassifyBatch(context.Background(), events)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if batchID == "" {
		t.Error("expected a batch id")
	}
	if len(results) != len(events) {
		t.Fatalf("expected %d results, got %d", len(events), len(results))
	}
	want := []string{"created", "modified", "removed"}
	for i, res := range results {
		if res.Path != events[i].Path || res.Kind != want[i] {
			t.Errorf("result %d = %s %s, want %s %s", i, res.Path, res.Kind, events[i].Path, want[i])
		}
	}
	if rec.batches != 1 {
		t.Errorf("expected 1 batch, got %d", rec.batches)
	}
}

func TestClassifyBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, results, err := NewService(nil).ClassifyBatch(ctx, []fsevent.FileChangeEvent{fsevent.NewEvent("/a", fsevent.ItemCreated)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestConsume(t *testing.T) {
	rec := newFakeRecorder()
	service := NewService(rec)
	feed := make(chan fsevent.FileChangeEvent, 3)
	feed <- fsevent.NewEvent("/a", fsevent.ItemCreated)
	feed <- fsevent.NewEvent("/a", fsevent.ItemModified)
	feed <- fsevent.NewEvent("/a", fsevent.ItemRenamed)
	close(feed)

	done := make(chan struct{})
	go func() {
		service.Consume(context.Background(), feed)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Consume did not return after the feed was closed")
	}
	if rec.count(fsevent.KindNewFile) != 1 || rec.count(fsevent.KindModified) != 1 || rec.count(fsevent.KindNone) != 1 {
		t.Errorf("unexpected counts %v", rec.kinds)
	}
}

func TestConsume_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	feed := make(chan fsevent.FileChangeEvent)
	done := make(chan struct{})
	go func() {
		NewService(nil).Consume(ctx, feed)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Consume did not return after cancel")
	}
}
