// Package sched implements the central task scheduler: insertion,
// duplicate lookup, the claim algorithm, completion, and failure/retry.
//
// # Claim protocol
//
// Agents pull work with [Scheduler.ClaimTask]. A claim atomically moves
// the winning task from its queue into the active assignment map, so a
// task with a given ID is in exactly one of {queued, active, gone} at
// any instant and at most one agent ever owns it.
//
// Competing candidates are ordered by a strict tie-break chain:
//
//  1. priority (urgent before normal before low)
//  2. Manhattan distance from the claiming agent (less travel first)
//  3. creation time (first come, first served)
//  4. task ID (total order for determinism)
//
// # Failure and retry
//
// [Scheduler.FailTask] requeues a failed task at the tail of its
// original queue until its failure count reaches MaxRetries, at which
// point the task is discarded permanently. The scheduler keeps no
// memory of discarded tasks; producers re-detect the world condition
// and insert a fresh task if it still holds.
//
// # Zone teardown
//
// [Scheduler.RemoveZone] destroys a zone's queues and evicts active
// tasks belonging to the zone out from under their owners. Agents
// notice through [Scheduler.IsActive] and silently abandon the work.
package sched
