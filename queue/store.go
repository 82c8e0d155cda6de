// Package queue holds the zone queue store: one set of per-role FIFO
// queues per registered zone, plus one global set for zone-independent
// tasks. The store is a pure data container with no scheduling logic.
//
// The store is deliberately not self-locking. The scheduler serializes
// every access behind its own mutex, which is what preserves the
// at-most-one-owner invariant; adding a second lock here would only
// hide misuse.
package queue

import (
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// roleQueues is one zone's (or the global) set of per-role FIFO queues.
type roleQueues struct {
	byRole map[task.Role][]*task.Task
}

func newRoleQueues() *roleQueues {
	return &roleQueues{byRole: make(map[task.Role][]*task.Task)}
}

// Store maps zones to their per-role queues. The zero-value is not
// usable; create one with New.
type Store struct {
	zones  map[string]*roleQueues // keyed by ZoneID.String()
	global *roleQueues
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		zones:  make(map[string]*roleQueues),
		global: newRoleQueues(),
	}
}

// EnsureZone creates the queue set for a zone if it does not exist yet.
// Idempotent. The Nil zone (the global queues) always exists.
func (s *Store) EnsureZone(zone id.ZoneID) {
	if zone.IsNil() {
		return
	}
	key := zone.String()
	if _, ok := s.zones[key]; !ok {
		s.zones[key] = newRoleQueues()
	}
}

// HasZone reports whether a zone's queue set exists. The Nil zone
// always does.
func (s *Store) HasZone(zone id.ZoneID) bool {
	if zone.IsNil() {
		return true
	}
	_, ok := s.zones[zone.String()]
	return ok
}

// Push appends a task to the tail of the queue selected by the task's
// (role, zone). The zone's queue set is created lazily if a producer
// inserts before the zone was registered.
func (s *Store) Push(t *task.Task) {
	q := s.global
	if !t.Zone.IsNil() {
		s.EnsureZone(t.Zone)
		q = s.zones[t.Zone.String()]
	}
	role := t.Kind.Role()
	q.byRole[role] = append(q.byRole[role], t)
}

// Remove deletes a task from its queue by ID, preserving the order of
// the remaining entries. Returns false if the task is not queued.
func (s *Store) Remove(t *task.Task) bool {
	q := s.global
	if !t.Zone.IsNil() {
		var ok bool
		if q, ok = s.zones[t.Zone.String()]; !ok {
			return false
		}
	}

	role := t.Kind.Role()
	list := q.byRole[role]
	for i, queued := range list {
		if queued.ID.String() == t.ID.String() {
			q.byRole[role] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// DropZone destroys a zone's queue set and returns every task that was
// still queued in it. Dropping an unknown or Nil zone returns nil.
func (s *Store) DropZone(zone id.ZoneID) []*task.Task {
	if zone.IsNil() {
		return nil
	}
	key := zone.String()
	q, ok := s.zones[key]
	if !ok {
		return nil
	}
	delete(s.zones, key)

	var dropped []*task.Task
	for _, list := range q.byRole {
		dropped = append(dropped, list...)
	}
	return dropped
}

// Candidates returns the queued tasks a claim by the given role over the
// given zones may consider: the per-role queue of each assigned zone
// plus the global per-role queue. The returned slice is a fresh copy in
// stable (zone order, then queue order) sequence; callers may sort it.
func (s *Store) Candidates(role task.Role, zones []id.ZoneID) []*task.Task {
	var out []*task.Task
	for _, zone := range zones {
		if zone.IsNil() {
			continue
		}
		if q, ok := s.zones[zone.String()]; ok {
			out = append(out, q.byRole[role]...)
		}
	}
	out = append(out, s.global.byRole[role]...)
	return out
}

// Scan calls fn for every queued task in every zone until fn returns
// false. Iteration order across zones is unspecified.
func (s *Store) Scan(fn func(t *task.Task) bool) {
	for _, list := range s.global.byRole {
		for _, t := range list {
			if !fn(t) {
				return
			}
		}
	}
	for _, q := range s.zones {
		for _, list := range q.byRole {
			for _, t := range list {
				if !fn(t) {
					return
				}
			}
		}
	}
}

// Len returns the total number of queued tasks across all zones.
func (s *Store) Len() int {
	n := 0
	s.Scan(func(*task.Task) bool {
		n++
		return true
	})
	return n
}
