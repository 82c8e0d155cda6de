package hook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	zoomaker "github.com/DSchif/zoo-maker-sub000"
	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/hook"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// recorder implements every hook and counts calls.
type recorder struct {
	enqueued  int
	claimed   int
	completed int
	retrying  int
	dropped   int
	zones     int
	shutdowns int
	err       error
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) OnTaskEnqueued(context.Context, *task.Task) error {
	r.enqueued++
	return r.err
}

func (r *recorder) OnTaskClaimed(context.Context, *task.Task, id.StaffID) error {
	r.claimed++
	return r.err
}

func (r *recorder) OnTaskCompleted(context.Context, *task.Task, time.Duration) error {
	r.completed++
	return r.err
}

func (r *recorder) OnTaskRetrying(context.Context, *task.Task, int) error {
	r.retrying++
	return r.err
}

func (r *recorder) OnTaskDropped(context.Context, *task.Task, hook.DropReason) error {
	r.dropped++
	return r.err
}

func (r *recorder) OnZoneRemoved(context.Context, id.ZoneID) error {
	r.zones++
	return r.err
}

func (r *recorder) OnShutdown(context.Context) error {
	r.shutdowns++
	return r.err
}

// enqueueOnly implements just the base interface plus one hook.
type enqueueOnly struct {
	enqueued int
}

func (e *enqueueOnly) Name() string { return "enqueue-only" }

func (e *enqueueOnly) OnTaskEnqueued(context.Context, *task.Task) error {
	e.enqueued++
	return nil
}

func sampleTask() *task.Task {
	return &task.Task{
		Entity:     zoomaker.NewEntity(),
		ID:         id.NewTaskID(),
		Kind:       task.KindFeedAnimals,
		Target:     grid.Pt(2, 2),
		Payload:    task.FeedPayload{Food: task.FoodHay, Amount: 1},
		MaxRetries: 3,
	}
}

func TestEmitAllHooks(t *testing.T) {
	rec := &recorder{}
	r := hook.NewRegistry(nil)
	r.Register(rec)

	ctx := context.Background()
	tk := sampleTask()

	r.EmitTaskEnqueued(ctx, tk)
	r.EmitTaskClaimed(ctx, tk, id.NewStaffID())
	r.EmitTaskCompleted(ctx, tk, time.Second)
	r.EmitTaskRetrying(ctx, tk, 1)
	r.EmitTaskDropped(ctx, tk, hook.DropRetriesExhausted)
	r.EmitZoneRemoved(ctx, id.NewZoneID())
	r.EmitShutdown(ctx)

	tests := []struct {
		name string
		got  int
	}{
		{"enqueued", rec.enqueued},
		{"claimed", rec.claimed},
		{"completed", rec.completed},
		{"retrying", rec.retrying},
		{"dropped", rec.dropped},
		{"zones", rec.zones},
		{"shutdowns", rec.shutdowns},
	}
	for _, tt := range tests {
		if tt.got != 1 {
			t.Errorf("%s hook called %d times, want 1", tt.name, tt.got)
		}
	}
}

func TestPartialImplementation(t *testing.T) {
	e := &enqueueOnly{}
	r := hook.NewRegistry(nil)
	r.Register(e)

	ctx := context.Background()
	tk := sampleTask()

	// These must not panic even though the extension ignores them.
	r.EmitTaskClaimed(ctx, tk, id.NewStaffID())
	r.EmitTaskDropped(ctx, tk, hook.DropZoneRemoved)
	r.EmitShutdown(ctx)

	r.EmitTaskEnqueued(ctx, tk)
	if e.enqueued != 1 {
		t.Errorf("enqueued hook called %d times, want 1", e.enqueued)
	}
}

func TestHookErrorsAreSwallowed(t *testing.T) {
	rec := &recorder{err: errors.New("hook exploded")}
	r := hook.NewRegistry(nil)
	r.Register(rec)

	// Emits must not panic or propagate the error.
	r.EmitTaskEnqueued(context.Background(), sampleTask())
	if rec.enqueued != 1 {
		t.Errorf("hook should still have been called once, got %d", rec.enqueued)
	}
}

func TestNames(t *testing.T) {
	r := hook.NewRegistry(nil)
	r.Register(&recorder{})
	r.Register(&enqueueOnly{})

	names := r.Names()
	want := []string{"recorder", "enqueue-only"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
