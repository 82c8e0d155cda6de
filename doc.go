// Package zoomaker provides the task scheduling core for a zoo-keeping
// simulation: a central scheduler that accepts maintenance and husbandry
// tasks produced by world-state observers, lets staff agents compete for
// exclusive ownership of those tasks, and recovers from agents that fail
// to finish their claimed work.
//
// The module is designed as a library, not a service. The embedding game
// constructs an engine, registers per-kind task handlers, adds staff
// agents, and drives (or lets the engine drive) the simulation tick.
//
// # Architecture
//
// Leaf packages carry the data model (task, grid, id, queue); the sched
// package owns the claim/complete/fail protocol; the staff package runs
// the per-agent state machine; the path package is the asynchronous
// suspension point for walk routes; the world package holds the minimal
// world model, the per-kind side effects, and the task producers; the
// engine package wires everything together and owns the tick loop.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based
// identifiers.
package zoomaker
