package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/DSchif/zoo-maker-sub000/hook"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// meterName is the instrumentation scope name for lifecycle metrics.
const meterName = "github.com/DSchif/zoo-maker-sub000/observability"

// Compile-time interface checks.
var (
	_ hook.Extension     = (*MetricsExtension)(nil)
	_ hook.TaskEnqueued  = (*MetricsExtension)(nil)
	_ hook.TaskClaimed   = (*MetricsExtension)(nil)
	_ hook.TaskCompleted = (*MetricsExtension)(nil)
	_ hook.TaskRetrying  = (*MetricsExtension)(nil)
	_ hook.TaskDropped   = (*MetricsExtension)(nil)
	_ hook.ZoneRemoved   = (*MetricsExtension)(nil)
)

// MetricsExtension records system-wide lifecycle metrics via the OTel
// metric API. Register it on the scheduler's hook registry to
// automatically track enqueue rates, claim counts, completion durations,
// retry counts, drops by reason, and zone removals.
//
// With no MeterProvider configured the global meter returns noop
// instruments, so the extension costs nothing when metrics are off.
type MetricsExtension struct {
	enqueued     metric.Int64Counter
	claimed      metric.Int64Counter
	completed    metric.Int64Counter
	retried      metric.Int64Counter
	dropped      metric.Int64Counter
	zonesRemoved metric.Int64Counter
	taskDuration metric.Float64Histogram
}

// NewMetricsExtension creates a MetricsExtension using the global OTel
// MeterProvider.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithMeter(otel.Meter(meterName))
}

// NewMetricsExtensionWithMeter creates a MetricsExtension with the
// provided meter. Use it to inject a test MeterProvider.
func NewMetricsExtensionWithMeter(meter metric.Meter) *MetricsExtension {
	m := &MetricsExtension{}

	// Instrument creation errors leave noop instruments behind, so the
	// extension stays usable either way.
	m.enqueued, _ = meter.Int64Counter("zoomaker.task.enqueued",
		metric.WithDescription("Tasks inserted into the queues"),
		metric.WithUnit("{task}"))
	m.claimed, _ = meter.Int64Counter("zoomaker.task.claimed",
		metric.WithDescription("Tasks claimed by staff agents"),
		metric.WithUnit("{task}"))
	m.completed, _ = meter.Int64Counter("zoomaker.task.completed",
		metric.WithDescription("Tasks completed"),
		metric.WithUnit("{task}"))
	m.retried, _ = meter.Int64Counter("zoomaker.task.retried",
		metric.WithDescription("Tasks requeued after a failure"),
		metric.WithUnit("{task}"))
	m.dropped, _ = meter.Int64Counter("zoomaker.task.dropped",
		metric.WithDescription("Tasks permanently discarded"),
		metric.WithUnit("{task}"))
	m.zonesRemoved, _ = meter.Int64Counter("zoomaker.zone.removed",
		metric.WithDescription("Zones deregistered"),
		metric.WithUnit("{zone}"))
	m.taskDuration, _ = meter.Float64Histogram("zoomaker.task.duration",
		metric.WithDescription("Time from claim to completion in seconds"),
		metric.WithUnit("s"))

	return m
}

// Name implements hook.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

func kindAttr(t *task.Task) metric.AddOption {
	return metric.WithAttributes(attribute.String("kind", string(t.Kind)))
}

// OnTaskEnqueued implements hook.TaskEnqueued.
func (m *MetricsExtension) OnTaskEnqueued(ctx context.Context, t *task.Task) error {
	m.enqueued.Add(ctx, 1, kindAttr(t))
	return nil
}

// OnTaskClaimed implements hook.TaskClaimed.
func (m *MetricsExtension) OnTaskClaimed(ctx context.Context, t *task.Task, _ id.StaffID) error {
	m.claimed.Add(ctx, 1, kindAttr(t))
	return nil
}

// OnTaskCompleted implements hook.TaskCompleted.
func (m *MetricsExtension) OnTaskCompleted(ctx context.Context, t *task.Task, elapsed time.Duration) error {
	m.completed.Add(ctx, 1, kindAttr(t))
	m.taskDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("kind", string(t.Kind))))
	return nil
}

// OnTaskRetrying implements hook.TaskRetrying.
func (m *MetricsExtension) OnTaskRetrying(ctx context.Context, t *task.Task, _ int) error {
	m.retried.Add(ctx, 1, kindAttr(t))
	return nil
}

// OnTaskDropped implements hook.TaskDropped.
func (m *MetricsExtension) OnTaskDropped(ctx context.Context, t *task.Task, reason hook.DropReason) error {
	m.dropped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(t.Kind)),
		attribute.String("reason", string(reason)),
	))
	return nil
}

// OnZoneRemoved implements hook.ZoneRemoved.
func (m *MetricsExtension) OnZoneRemoved(ctx context.Context, _ id.ZoneID) error {
	m.zonesRemoved.Add(ctx, 1)
	return nil
}
