// Package task defines the task record, the closed kind enumeration and
// its role mapping, the tagged payload union, and the per-kind handler
// registry.
//
// # Task record
//
// A [Task] is a unit of work with a kind, a priority, a target cell the
// performing agent must physically reach, an optional zone association,
// and a kind-specific payload. Identity fields are immutable after
// insertion; only the retry counter changes over a task's life.
//
// # Kinds and roles
//
// Kinds form a closed enumeration. Each kind maps to exactly one [Role],
// which restricts the staff that may claim it:
//
//	keeper    → feed_animals, clean_waste
//	mechanic  → repair_fence
//	caretaker → clear_litter, empty_bin
//
// # Payloads
//
// [Payload] is a sealed tagged union keyed by kind. Handlers registered
// through [RegisterKind] receive the concrete payload type directly:
//
//	task.RegisterKind(reg, task.KindRepairFence,
//	    func(ctx context.Context, t *task.Task, p task.RepairFencePayload) error {
//	        return w.RepairFence(p.Edge)
//	    })
package task
