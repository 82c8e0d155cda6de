// Package staff implements the agent state machine and the roster that
// drives it.
//
// An agent cycles through four states: idle (polling the scheduler for
// work, with a backoff that stretches the poll delay while nothing is
// available), walking (following an asynchronously computed route one
// cell per tick), working (running the kind's work timer, then
// dispatching the handler), and wandering (drifting after a configurable
// stretch without work, still polling).
//
// Failure handling is asymmetric on purpose. A target the agent cannot
// reach — no route, or the walking watchdog fires — records the target
// in a TTL-bounded unreachable memory, fails the task back to the
// scheduler, and returns the agent to idle immediately so it can take
// other work. A task that vanishes because its zone was removed is
// simply abandoned: no failure is recorded, since the work no longer
// exists.
package staff
