// Package path provides asynchronous route computation over the zoo grid.
//
// Agents never block on pathfinding: Service.Find returns an in-flight
// Request handle immediately, and the agent polls Done each tick while the
// rest of the simulation keeps moving. A Request is never cancelled; an
// agent that loses interest simply stops polling and the late result is
// discarded.
package path

import (
	"sync/atomic"

	"github.com/DSchif/zoo-maker-sub000/grid"
)

// Constraints restricts which cells a route may cross.
type Constraints struct {
	// UseServiceTiles allows the route to cross staff-only service tiles.
	UseServiceTiles bool

	// ThroughGates allows the route to pass through zone gates, entering
	// enclosure interiors.
	ThroughGates bool
}

// Route is a computed path: the successive cells to step through, one cell
// per simulation tick, excluding the start and including the destination.
// An empty route means the agent is already standing at the destination.
type Route struct {
	Steps []grid.Point
}

// Len returns the number of steps (ticks) the route takes.
func (r Route) Len() int { return len(r.Steps) }

// Service computes routes asynchronously.
type Service interface {
	// Find starts computing a route from one cell to another and returns
	// an in-flight handle. The handle resolves on a background goroutine;
	// poll Done until it reports true, then read Result.
	Find(from, to grid.Point, c Constraints) *Request
}

// Request is the handle for one in-flight route computation.
type Request struct {
	done  atomic.Bool
	route Route
	err   error
}

// NewPending returns an unresolved Request. Services hand it out before
// the computation runs; tests resolve it by hand to script agent behavior.
func NewPending() *Request {
	return &Request{}
}

// Resolved returns a Request that is already complete. Synchronous test
// doubles use it to make an agent observe the result on its next tick.
func Resolved(route Route, err error) *Request {
	r := &Request{route: route, err: err}
	r.done.Store(true)
	return r
}

// Resolve completes the request. It must be called exactly once, and the
// route and error must not be mutated afterwards.
func (r *Request) Resolve(route Route, err error) {
	r.route = route
	r.err = err
	r.done.Store(true)
}

// Done reports whether the computation has finished. It never blocks.
func (r *Request) Done() bool { return r.done.Load() }

// Result returns the computed route or the failure. Only valid after Done
// reports true.
func (r *Request) Result() (Route, error) {
	return r.route, r.err
}
