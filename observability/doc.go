// Package observability provides an OpenTelemetry-based metrics extension
// for the scheduling core. The MetricsExtension implements lifecycle hooks
// to record system-wide counters for task enqueue, claim, completion,
// retry, drop, and zone removal events, plus a claim-to-completion
// duration histogram.
//
// For per-dispatch handler metrics, see middleware.Metrics().
package observability
