package staff

import (
	"time"

	"github.com/DSchif/zoo-maker-sub000/grid"
)

// unreachableMemory remembers target cells the agent recently failed to
// reach. Entries expire after a TTL so a temporarily blocked target
// (a gate under construction, a crowd) becomes claimable again without
// any explicit invalidation signal.
type unreachableMemory struct {
	ttl     time.Duration
	entries map[grid.Point]time.Time // expiry per cell
}

func newUnreachableMemory(ttl time.Duration) *unreachableMemory {
	return &unreachableMemory{
		ttl:     ttl,
		entries: make(map[grid.Point]time.Time),
	}
}

// Remember marks the cell unreachable until now+ttl and prunes expired
// entries while it is at it.
func (m *unreachableMemory) Remember(p grid.Point, now time.Time) {
	for cell, expiry := range m.entries {
		if now.After(expiry) {
			delete(m.entries, cell)
		}
	}
	m.entries[p] = now.Add(m.ttl)
}

// Contains reports whether the cell is currently marked unreachable.
func (m *unreachableMemory) Contains(p grid.Point, now time.Time) bool {
	expiry, ok := m.entries[p]
	if !ok {
		return false
	}
	if now.After(expiry) {
		delete(m.entries, p)
		return false
	}
	return true
}

// Len returns the number of live entries. Expired entries that have not
// been touched since may still be counted.
func (m *unreachableMemory) Len() int { return len(m.entries) }
