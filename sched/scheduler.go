package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	zoomaker "github.com/DSchif/zoo-maker-sub000"
	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/hook"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/queue"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// activeEntry records the exclusive assignment of a task to one agent.
type activeEntry struct {
	task      *task.Task
	staffID   id.StaffID
	claimedAt time.Time
}

// Scheduler owns the zone queue store and the active assignment map,
// and implements the claim/complete/fail protocol.
//
// All state is guarded by a single mutex: the embedding simulation
// updates agents sequentially within one tick, but the scheduler does
// not rely on that — concurrent callers are safe and the
// at-most-one-owner invariant holds either way. Lifecycle hooks are
// emitted after the lock is released so extensions may call back into
// the scheduler.
type Scheduler struct {
	mu     sync.Mutex
	store  *queue.Store
	active map[string]*activeEntry // keyed by TaskID.String()

	hooks  *hook.Registry
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithHooks sets the lifecycle hook registry.
func WithHooks(r *hook.Registry) Option {
	return func(s *Scheduler) { s.hooks = r }
}

// WithClock injects the time source. Tests use it to control CreatedAt
// ordering and claim timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates an empty Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  queue.New(),
		active: make(map[string]*activeEntry),
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.hooks == nil {
		s.hooks = hook.NewRegistry(s.logger)
	}
	return s
}

// Hooks returns the scheduler's lifecycle hook registry.
func (s *Scheduler) Hooks() *hook.Registry { return s.hooks }

// AddTask constructs a task from the given kind, target, and payload,
// assigns it an ID and creation timestamp, and inserts it at the tail
// of the queue selected by the kind's role and the task's zone.
//
// The scheduler performs no de-duplication; producers are expected to
// consult HasTaskFor before inserting.
func (s *Scheduler) AddTask(ctx context.Context, kind task.Kind, target grid.Point, payload task.Payload, opts ...task.Option) (*task.Task, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("add task: %w: %q", zoomaker.ErrUnknownKind, kind)
	}
	if payload == nil || payload.Kind() != kind {
		return nil, fmt.Errorf("add task %q: %w", kind, zoomaker.ErrPayloadMismatch)
	}

	taskOpts := task.DefaultOptions()
	for _, opt := range opts {
		opt(&taskOpts)
	}

	t := &task.Task{
		Entity:     zoomaker.NewEntityAt(s.now()),
		ID:         id.NewTaskID(),
		Kind:       kind,
		Priority:   taskOpts.Priority,
		Target:     target,
		Zone:       taskOpts.Zone,
		Payload:    payload,
		MaxRetries: taskOpts.MaxRetries,
	}

	s.mu.Lock()
	s.store.Push(t)
	s.mu.Unlock()

	s.hooks.EmitTaskEnqueued(ctx, t)
	s.logger.Debug("task enqueued",
		slog.String("task_id", t.ID.String()),
		slog.String("kind", string(t.Kind)),
		slog.Int("priority", int(t.Priority)),
		slog.String("target", t.Target.String()),
		slog.String("zone", t.Zone.String()),
	)
	return t, nil
}

// HasTaskFor reports whether any queued or active task matches the
// given kind, zone, and payload predicate. A Nil zone and a nil match
// act as wildcards. The scan covers every queue, not only the queues
// the zone argument implies, because some kinds are not reliably
// attributable to a zone by the caller.
func (s *Scheduler) HasTaskFor(kind task.Kind, zone id.ZoneID, match func(task.Payload) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := func(t *task.Task) bool {
		if t.Kind != kind {
			return false
		}
		if !zone.IsNil() && t.Zone.String() != zone.String() {
			return false
		}
		return match == nil || match(t.Payload)
	}

	found := false
	s.store.Scan(func(t *task.Task) bool {
		if matches(t) {
			found = true
			return false
		}
		return true
	})
	if found {
		return true
	}

	for _, e := range s.active {
		if matches(e.task) {
			return true
		}
	}
	return false
}

// ClaimRequest describes one agent's attempt to take work.
type ClaimRequest struct {
	// StaffID identifies the claiming agent.
	StaffID id.StaffID

	// Role selects the per-role queues the agent may draw from.
	Role task.Role

	// Zones are the exhibits the agent is responsible for. The global
	// queue is always considered in addition.
	Zones []id.ZoneID

	// Kinds is the player-toggleable allow-list of kinds the agent may
	// perform. A nil map allows every kind of the agent's role.
	Kinds map[task.Kind]bool

	// Pos is the agent's current cell, used for the proximity tie-break.
	Pos grid.Point

	// Avoid optionally rejects candidate target cells. Agents pass their
	// unreachable-location memory here so a target they just failed to
	// reach is not instantly re-claimed.
	Avoid func(grid.Point) bool
}

// ClaimTask transfers the best matching queued task into the active map
// and returns it, or returns nil if no candidate matches. Ordering is a
// strict tie-break chain: priority first, then Manhattan distance from
// the agent, then creation time, then ID (for determinism).
//
// Queued and active tasks are disjoint by construction, so the
// candidate set never contains a task another agent already owns.
func (s *Scheduler) ClaimTask(ctx context.Context, req ClaimRequest) *task.Task {
	s.mu.Lock()

	candidates := s.store.Candidates(req.Role, req.Zones)
	eligible := candidates[:0]
	for _, t := range candidates {
		if t.Kind.Role() != req.Role {
			continue
		}
		if req.Kinds != nil && !req.Kinds[t.Kind] {
			continue
		}
		if req.Avoid != nil && req.Avoid(t.Target) {
			continue
		}
		eligible = append(eligible, t)
	}

	if len(eligible) == 0 {
		s.mu.Unlock()
		return nil
	}

	sort.Slice(eligible, func(i, k int) bool {
		a, b := eligible[i], eligible[k]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		da, db := req.Pos.Manhattan(a.Target), req.Pos.Manhattan(b.Target)
		if da != db {
			return da < db
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	t := eligible[0]
	s.store.Remove(t)
	s.active[t.ID.String()] = &activeEntry{
		task:      t,
		staffID:   req.StaffID,
		claimedAt: s.now(),
	}
	s.mu.Unlock()

	s.hooks.EmitTaskClaimed(ctx, t, req.StaffID)
	s.logger.Debug("task claimed",
		slog.String("task_id", t.ID.String()),
		slog.String("kind", string(t.Kind)),
		slog.String("staff_id", req.StaffID.String()),
	)
	return t
}

// CompleteTask removes the task from the active map. Completing a task
// that is not active is a no-op, so the call is idempotent and safe
// against late completion of a task whose zone vanished.
func (s *Scheduler) CompleteTask(ctx context.Context, taskID id.TaskID) {
	s.mu.Lock()
	e, ok := s.active[taskID.String()]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.active, taskID.String())
	elapsed := s.now().Sub(e.claimedAt)
	s.mu.Unlock()

	s.hooks.EmitTaskCompleted(ctx, e.task, elapsed)
	s.logger.Info("task completed",
		slog.String("task_id", e.task.ID.String()),
		slog.String("kind", string(e.task.Kind)),
		slog.String("staff_id", e.staffID.String()),
		slog.Duration("elapsed", elapsed),
	)
}

// FailTask removes the task from the active map and increments its
// failure count. While the count stays below MaxRetries the task is
// pushed back onto the tail of its original queue, where the next claim
// cycle re-sorts it against everything else — a failing task does not
// starve its competitors. Once the count reaches MaxRetries the task is
// discarded permanently; the producer re-detects the underlying world
// condition and inserts a fresh task if it still matters.
//
// Failing a task that is not active is a no-op.
func (s *Scheduler) FailTask(ctx context.Context, taskID id.TaskID) {
	s.mu.Lock()
	e, ok := s.active[taskID.String()]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.active, taskID.String())

	t := e.task
	t.FailCount++
	t.UpdatedAt = s.now()

	retrying := t.FailCount < t.MaxRetries
	if retrying {
		s.store.Push(t)
	}
	s.mu.Unlock()

	if retrying {
		s.hooks.EmitTaskRetrying(ctx, t, t.FailCount)
		s.logger.Debug("task requeued after failure",
			slog.String("task_id", t.ID.String()),
			slog.String("kind", string(t.Kind)),
			slog.Int("fail_count", t.FailCount),
			slog.Int("max_retries", t.MaxRetries),
		)
		return
	}

	s.hooks.EmitTaskDropped(ctx, t, hook.DropRetriesExhausted)
	s.logger.Warn("task dropped after exhausting retries",
		slog.String("task_id", t.ID.String()),
		slog.String("kind", string(t.Kind)),
		slog.Int("fail_count", t.FailCount),
	)
}

// RegisterZone creates the zone's queue set if it does not exist yet.
// Idempotent; queues are also created lazily on first insert, so
// calling this is optional but lets the zone appear in stats early.
func (s *Scheduler) RegisterZone(zone id.ZoneID) {
	s.mu.Lock()
	s.store.EnsureZone(zone)
	s.mu.Unlock()
}

// RemoveZone drops the zone's queues and evicts any active task whose
// zone matches, regardless of which agent holds it. Agents detect the
// eviction through IsActive at the top of their next tick and abandon
// the work without recording a failure.
func (s *Scheduler) RemoveZone(ctx context.Context, zone id.ZoneID) {
	s.mu.Lock()
	dropped := s.store.DropZone(zone)
	for key, e := range s.active {
		if e.task.Zone.String() == zone.String() {
			dropped = append(dropped, e.task)
			delete(s.active, key)
		}
	}
	s.mu.Unlock()

	for _, t := range dropped {
		s.hooks.EmitTaskDropped(ctx, t, hook.DropZoneRemoved)
	}
	s.hooks.EmitZoneRemoved(ctx, zone)
	s.logger.Info("zone removed",
		slog.String("zone", zone.String()),
		slog.Int("dropped_tasks", len(dropped)),
	)
}

// IsActive reports whether the task is currently claimed by an agent.
func (s *Scheduler) IsActive(taskID id.TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[taskID.String()]
	return ok
}

// Assignment returns the agent holding the task and the claim time.
// Returns false if the task is not active.
func (s *Scheduler) Assignment(taskID id.TaskID) (id.StaffID, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.active[taskID.String()]
	if !ok {
		return id.Nil, time.Time{}, false
	}
	return e.staffID, e.claimedAt, true
}

// Stats summarizes the scheduler's load.
type Stats struct {
	// Queued is the number of tasks waiting across all queues.
	Queued int
	// Active is the number of tasks currently claimed by agents.
	Active int
}

// Stats returns the current queue and active counts.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Queued: s.store.Len(), Active: len(s.active)}
}
