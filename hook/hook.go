// Package hook defines the extension system for the scheduling core.
// Extensions are notified of task lifecycle events (enqueued, claimed,
// completed, retrying, dropped) and can react to them — logging,
// metrics, audit trails, UI notifications.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
package hook

import (
	"context"
	"time"

	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// DropReason explains why a task was permanently discarded.
type DropReason string

const (
	// DropRetriesExhausted means the task failed MaxRetries times.
	DropRetriesExhausted DropReason = "retries_exhausted"
	// DropZoneRemoved means the task's zone was deregistered while the
	// task was still queued or active.
	DropZoneRemoved DropReason = "zone_removed"
	// DropNoHandler means no handler was registered for the task's kind
	// when an agent tried to perform it.
	DropNoHandler DropReason = "no_handler"
)

// ──────────────────────────────────────────────────
// Task lifecycle hooks
// ──────────────────────────────────────────────────

// TaskEnqueued is called after a task is successfully inserted.
type TaskEnqueued interface {
	OnTaskEnqueued(ctx context.Context, t *task.Task) error
}

// TaskClaimed is called when an agent takes exclusive ownership of a task.
type TaskClaimed interface {
	OnTaskClaimed(ctx context.Context, t *task.Task, staffID id.StaffID) error
}

// TaskCompleted is called after a task's side effect has been performed.
// elapsed is the time from claim to completion.
type TaskCompleted interface {
	OnTaskCompleted(ctx context.Context, t *task.Task, elapsed time.Duration) error
}

// TaskRetrying is called when a task fails but is requeued for another
// attempt. attempt is the failure count so far.
type TaskRetrying interface {
	OnTaskRetrying(ctx context.Context, t *task.Task, attempt int) error
}

// TaskDropped is called when a task is permanently discarded.
type TaskDropped interface {
	OnTaskDropped(ctx context.Context, t *task.Task, reason DropReason) error
}

// ──────────────────────────────────────────────────
// Other lifecycle hooks
// ──────────────────────────────────────────────────

// ZoneRemoved is called after a zone's queues have been torn down.
type ZoneRemoved interface {
	OnZoneRemoved(ctx context.Context, zone id.ZoneID) error
}

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
