package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/DSchif/zoo-maker-sub000/task"
)

// meterName is the instrumentation scope name for handler metrics.
const meterName = "github.com/DSchif/zoo-maker-sub000"

// Metrics returns middleware that records per-kind handler metrics using
// the global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - zoomaker.handler.duration (Float64Histogram): handler time in
//     seconds, with attributes: kind, status ("ok" or "error")
//   - zoomaker.handler.dispatches (Int64Counter): total dispatches,
//     with attributes: kind, status ("ok" or "error")
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"zoomaker.handler.duration",
		metric.WithDescription("Duration of task handler execution in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	dispatches, eErr := meter.Int64Counter(
		"zoomaker.handler.dispatches",
		metric.WithDescription("Total number of task handler dispatches"),
		metric.WithUnit("{dispatch}"),
	)
	_ = eErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, t *task.Task, next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("kind", string(t.Kind)),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		dispatches.Add(ctx, 1, attrs)

		return err
	}
}
