package audit

// Audit event actions. Each constant corresponds to one lifecycle hook
// and becomes the Action field of the audit event.
const (
	ActionTaskEnqueued  = "task.enqueued"
	ActionTaskClaimed   = "task.claimed"
	ActionTaskCompleted = "task.completed"
	ActionTaskRetrying  = "task.retrying"
	ActionTaskDropped   = "task.dropped"
	ActionZoneRemoved   = "zone.removed"
)

// Audit event categories group related actions.
const (
	CategoryTask = "zoomaker.task"
	CategoryZone = "zoomaker.zone"
)

// Resource types used as the Resource field in audit events.
const (
	ResourceTask = "task"
	ResourceZone = "zone"
)

// Severity constants.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Outcome constants.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AllActions returns every action this extension can emit.
func AllActions() []string {
	return []string{
		ActionTaskEnqueued,
		ActionTaskClaimed,
		ActionTaskCompleted,
		ActionTaskRetrying,
		ActionTaskDropped,
		ActionZoneRemoved,
	}
}
