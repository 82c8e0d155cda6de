package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type taskEnqueuedEntry struct {
	name string
	hook TaskEnqueued
}

type taskClaimedEntry struct {
	name string
	hook TaskClaimed
}

type taskCompletedEntry struct {
	name string
	hook TaskCompleted
}

type taskRetryingEntry struct {
	name string
	hook TaskRetrying
}

type taskDroppedEntry struct {
	name string
	hook TaskDropped
}

type zoneRemovedEntry struct {
	name string
	hook ZoneRemoved
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	taskEnqueued  []taskEnqueuedEntry
	taskClaimed   []taskClaimedEntry
	taskCompleted []taskCompletedEntry
	taskRetrying  []taskRetryingEntry
	taskDropped   []taskDroppedEntry
	zoneRemoved   []zoneRemovedEntry
	shutdown      []shutdownEntry
}

// NewRegistry creates an empty extension registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds an extension and caches the lifecycle hooks it implements.
// Registration is not safe for concurrent use with emits; register all
// extensions during setup, before the simulation starts ticking.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(TaskEnqueued); ok {
		r.taskEnqueued = append(r.taskEnqueued, taskEnqueuedEntry{name: name, hook: h})
	}
	if h, ok := e.(TaskClaimed); ok {
		r.taskClaimed = append(r.taskClaimed, taskClaimedEntry{name: name, hook: h})
	}
	if h, ok := e.(TaskCompleted); ok {
		r.taskCompleted = append(r.taskCompleted, taskCompletedEntry{name: name, hook: h})
	}
	if h, ok := e.(TaskRetrying); ok {
		r.taskRetrying = append(r.taskRetrying, taskRetryingEntry{name: name, hook: h})
	}
	if h, ok := e.(TaskDropped); ok {
		r.taskDropped = append(r.taskDropped, taskDroppedEntry{name: name, hook: h})
	}
	if h, ok := e.(ZoneRemoved); ok {
		r.zoneRemoved = append(r.zoneRemoved, zoneRemovedEntry{name: name, hook: h})
	}
	if h, ok := e.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name: name, hook: h})
	}
}

// Names returns the names of all registered extensions in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extensions))
	for _, e := range r.extensions {
		names = append(names, e.Name())
	}
	return names
}

// ──────────────────────────────────────────────────
// Event emitters
// ──────────────────────────────────────────────────

// EmitTaskEnqueued notifies all extensions that implement TaskEnqueued.
func (r *Registry) EmitTaskEnqueued(ctx context.Context, t *task.Task) {
	for _, e := range r.taskEnqueued {
		if err := e.hook.OnTaskEnqueued(ctx, t); err != nil {
			r.logHookError("OnTaskEnqueued", e.name, err)
		}
	}
}

// EmitTaskClaimed notifies all extensions that implement TaskClaimed.
func (r *Registry) EmitTaskClaimed(ctx context.Context, t *task.Task, staffID id.StaffID) {
	for _, e := range r.taskClaimed {
		if err := e.hook.OnTaskClaimed(ctx, t, staffID); err != nil {
			r.logHookError("OnTaskClaimed", e.name, err)
		}
	}
}

// EmitTaskCompleted notifies all extensions that implement TaskCompleted.
func (r *Registry) EmitTaskCompleted(ctx context.Context, t *task.Task, elapsed time.Duration) {
	for _, e := range r.taskCompleted {
		if err := e.hook.OnTaskCompleted(ctx, t, elapsed); err != nil {
			r.logHookError("OnTaskCompleted", e.name, err)
		}
	}
}

// EmitTaskRetrying notifies all extensions that implement TaskRetrying.
func (r *Registry) EmitTaskRetrying(ctx context.Context, t *task.Task, attempt int) {
	for _, e := range r.taskRetrying {
		if err := e.hook.OnTaskRetrying(ctx, t, attempt); err != nil {
			r.logHookError("OnTaskRetrying", e.name, err)
		}
	}
}

// EmitTaskDropped notifies all extensions that implement TaskDropped.
func (r *Registry) EmitTaskDropped(ctx context.Context, t *task.Task, reason DropReason) {
	for _, e := range r.taskDropped {
		if err := e.hook.OnTaskDropped(ctx, t, reason); err != nil {
			r.logHookError("OnTaskDropped", e.name, err)
		}
	}
}

// EmitZoneRemoved notifies all extensions that implement ZoneRemoved.
func (r *Registry) EmitZoneRemoved(ctx context.Context, zone id.ZoneID) {
	for _, e := range r.zoneRemoved {
		if err := e.hook.OnZoneRemoved(ctx, zone); err != nil {
			r.logHookError("OnZoneRemoved", e.name, err)
		}
	}
}

// EmitShutdown notifies all extensions that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the tick.
func (r *Registry) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
