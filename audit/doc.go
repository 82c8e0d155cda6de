// Package audit is a lifecycle extension that records task and zone
// events into an audit trail.
//
// Every scheduler lifecycle hook emits a structured audit event through
// the [Recorder] interface with an appropriate severity: info for normal
// operations, warning for retries, critical for permanent drops. The
// bounded in-memory [Log] is the default backend; bridge to a real trail
// with a [RecorderFunc].
//
// # Selective filtering
//
//	audit.New(recorder,
//	    audit.WithActions(
//	        audit.ActionTaskDropped,
//	        audit.ActionTaskRetrying,
//	    ),
//	)
package audit
