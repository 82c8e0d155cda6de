package staff

import (
	"context"
	"time"
)

// Roster holds the staff in a fixed order and updates them sequentially
// each tick. Sequential fixed-order updates are what make claim races
// impossible inside a tick: two agents never see the same task as
// available, because the first one's claim completes before the second
// one polls.
type Roster struct {
	agents []*Agent
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Add appends an agent to the roster. Update order is insertion order
// and never changes.
func (r *Roster) Add(a *Agent) {
	r.agents = append(r.agents, a)
}

// Agents returns the roster in update order.
func (r *Roster) Agents() []*Agent { return r.agents }

// Len returns the number of agents.
func (r *Roster) Len() int { return len(r.agents) }

// Tick advances every agent by one step, in order.
func (r *Roster) Tick(ctx context.Context, now time.Time) {
	for _, a := range r.agents {
		a.Tick(ctx, now)
	}
}
