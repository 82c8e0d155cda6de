package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DSchif/zoo-maker-sub000/hook"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// Compile-time interface checks.
var (
	_ hook.Extension     = (*Extension)(nil)
	_ hook.TaskEnqueued  = (*Extension)(nil)
	_ hook.TaskClaimed   = (*Extension)(nil)
	_ hook.TaskCompleted = (*Extension)(nil)
	_ hook.TaskRetrying  = (*Extension)(nil)
	_ hook.TaskDropped   = (*Extension)(nil)
	_ hook.ZoneRemoved   = (*Extension)(nil)
)

// Recorder is the interface audit backends must implement. Callers
// bridge it to whatever trail they keep; the in-memory [Log] is the
// default for debugging and tests.
type Recorder interface {
	// Record persists a fully-formed audit event.
	Record(ctx context.Context, event *Event) error
}

// Event is one audit trail entry.
type Event struct {
	// What happened
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Category string `json:"category"`

	// Details
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *Event) error

func (f RecorderFunc) Record(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Extension bridges scheduler lifecycle events to an audit trail. Each
// lifecycle hook emits a structured audit event through the [Recorder]:
// info for normal operations, warning for retries, critical for
// permanent drops.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits events through the provided
// Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements hook.Extension.
func (e *Extension) Name() string { return "audit" }

// OnTaskEnqueued implements hook.TaskEnqueued.
func (e *Extension) OnTaskEnqueued(ctx context.Context, t *task.Task) error {
	return e.record(ctx, ActionTaskEnqueued, SeverityInfo, OutcomeSuccess,
		ResourceTask, t.ID.String(), CategoryTask, nil,
		"kind", string(t.Kind),
		"priority", int(t.Priority),
		"target", t.Target.String(),
		"zone", t.Zone.String(),
	)
}

// OnTaskClaimed implements hook.TaskClaimed.
func (e *Extension) OnTaskClaimed(ctx context.Context, t *task.Task, staffID id.StaffID) error {
	return e.record(ctx, ActionTaskClaimed, SeverityInfo, OutcomeSuccess,
		ResourceTask, t.ID.String(), CategoryTask, nil,
		"kind", string(t.Kind),
		"staff_id", staffID.String(),
	)
}

// OnTaskCompleted implements hook.TaskCompleted.
func (e *Extension) OnTaskCompleted(ctx context.Context, t *task.Task, elapsed time.Duration) error {
	return e.record(ctx, ActionTaskCompleted, SeverityInfo, OutcomeSuccess,
		ResourceTask, t.ID.String(), CategoryTask, nil,
		"kind", string(t.Kind),
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// OnTaskRetrying implements hook.TaskRetrying.
func (e *Extension) OnTaskRetrying(ctx context.Context, t *task.Task, attempt int) error {
	return e.record(ctx, ActionTaskRetrying, SeverityWarning, OutcomeFailure,
		ResourceTask, t.ID.String(), CategoryTask, nil,
		"kind", string(t.Kind),
		"attempt", attempt,
		"max_retries", t.MaxRetries,
	)
}

// OnTaskDropped implements hook.TaskDropped.
func (e *Extension) OnTaskDropped(ctx context.Context, t *task.Task, reason hook.DropReason) error {
	return e.record(ctx, ActionTaskDropped, SeverityCritical, OutcomeFailure,
		ResourceTask, t.ID.String(), CategoryTask, nil,
		"kind", string(t.Kind),
		"reason", string(reason),
		"fail_count", t.FailCount,
	)
}

// OnZoneRemoved implements hook.ZoneRemoved.
func (e *Extension) OnZoneRemoved(ctx context.Context, zone id.ZoneID) error {
	return e.record(ctx, ActionZoneRemoved, SeverityInfo, OutcomeSuccess,
		ResourceZone, zone.String(), CategoryZone, nil)
}

// record builds and sends an audit event if the action is enabled.
// The kvPairs argument is a list of key-value pairs added to Metadata.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &Event{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit: failed to record event",
			slog.String("action", action),
			slog.String("resource_id", resourceID),
			slog.String("error", recErr.Error()),
		)
	}
	return nil
}
