package staff

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/DSchif/zoo-maker-sub000/backoff"
	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/path"
	"github.com/DSchif/zoo-maker-sub000/sched"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// State is the agent's current activity.
type State string

// Agent states.
const (
	StateIdle      State = "idle"
	StateWalking   State = "walking"
	StateWorking   State = "working"
	StateWandering State = "wandering"
)

// Agent is one member of staff: a keeper, mechanic, or caretaker moving
// on the grid and executing tasks of its role. Agents are driven by the
// engine's tick loop through Tick and hold at most one task at a time.
//
// An Agent is not safe for concurrent use; the roster updates agents
// sequentially within a tick.
type Agent struct {
	id       id.StaffID
	role     task.Role
	pos      grid.Point
	zones    []id.ZoneID
	kinds    map[task.Kind]bool
	walkCons path.Constraints

	scheduler *sched.Scheduler
	pathSvc   path.Service
	handlers  *task.Registry
	logger    *slog.Logger

	pollInterval time.Duration
	wanderAfter  time.Duration
	walkTimeout  time.Duration
	idleBackoff  backoff.Strategy
	walkable     path.WalkableFunc

	state     State
	current   *task.Task
	pathReq   *path.Request
	route     []grid.Point
	walkStart time.Time
	workUntil time.Time
	idleSince time.Time
	nextPoll  time.Time
	misses    int

	memory *unreachableMemory
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithZones assigns the agent's zones. An agent with no zones only draws
// from the global queues.
func WithZones(zones ...id.ZoneID) AgentOption {
	return func(a *Agent) { a.zones = zones }
}

// WithKinds restricts the agent to a subset of its role's kinds. The
// map is the player-facing per-agent task toggle; a nil map enables
// every kind of the role.
func WithKinds(kinds map[task.Kind]bool) AgentOption {
	return func(a *Agent) { a.kinds = kinds }
}

// WithConstraints sets the path constraints the agent walks under.
func WithConstraints(c path.Constraints) AgentOption {
	return func(a *Agent) { a.walkCons = c }
}

// WithPollInterval sets the base delay between empty claim attempts.
func WithPollInterval(d time.Duration) AgentOption {
	return func(a *Agent) { a.pollInterval = d }
}

// WithWanderAfter sets how long an agent stays idle without work before
// it starts wandering.
func WithWanderAfter(d time.Duration) AgentOption {
	return func(a *Agent) { a.wanderAfter = d }
}

// WithWalkTimeout sets the walking watchdog: an agent that has not
// reached its target within this duration abandons the attempt.
func WithWalkTimeout(d time.Duration) AgentOption {
	return func(a *Agent) { a.walkTimeout = d }
}

// WithUnreachableTTL sets how long a failed target stays in the agent's
// unreachable memory.
func WithUnreachableTTL(d time.Duration) AgentOption {
	return func(a *Agent) { a.memory = newUnreachableMemory(d) }
}

// WithIdleBackoff sets the strategy stretching the poll delay while the
// agent keeps coming up empty.
func WithIdleBackoff(s backoff.Strategy) AgentOption {
	return func(a *Agent) { a.idleBackoff = s }
}

// WithWalkable gives the wandering state a terrain predicate so the
// agent does not drift through walls. Without it a wandering agent
// stays put.
func WithWalkable(fn path.WalkableFunc) AgentOption {
	return func(a *Agent) { a.walkable = fn }
}

// WithAgentLogger sets the structured logger.
func WithAgentLogger(l *slog.Logger) AgentOption {
	return func(a *Agent) { a.logger = l }
}

// NewAgent creates an agent of the given role standing at start.
func NewAgent(scheduler *sched.Scheduler, pathSvc path.Service, handlers *task.Registry, role task.Role, start grid.Point, opts ...AgentOption) *Agent {
	a := &Agent{
		id:           id.NewStaffID(),
		role:         role,
		pos:          start,
		scheduler:    scheduler,
		pathSvc:      pathSvc,
		handlers:     handlers,
		logger:       slog.Default(),
		pollInterval: time.Second,
		wanderAfter:  5 * time.Second,
		walkTimeout:  30 * time.Second,
		idleBackoff:  backoff.DefaultStrategy(),
		memory:       newUnreachableMemory(30 * time.Second),
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID returns the agent's identifier.
func (a *Agent) ID() id.StaffID { return a.id }

// Role returns the agent's role.
func (a *Agent) Role() task.Role { return a.role }

// State returns the agent's current state.
func (a *Agent) State() State { return a.state }

// Pos returns the agent's current cell.
func (a *Agent) Pos() grid.Point { return a.pos }

// Current returns the agent's current task, or nil.
func (a *Agent) Current() *task.Task { return a.current }

// Tick advances the agent by one simulation step at the given time.
// Movement is one cell per tick.
func (a *Agent) Tick(ctx context.Context, now time.Time) {
	// A task can vanish between ticks when its zone is removed. The
	// agent abandons it without recording a failure: the task is gone,
	// not failed.
	if a.current != nil && !a.scheduler.IsActive(a.current.ID) {
		a.logger.Debug("task vanished, abandoning",
			slog.String("staff_id", a.id.String()),
			slog.String("task_id", a.current.ID.String()),
		)
		a.toIdle(now)
		return
	}

	switch a.state {
	case StateIdle:
		a.tickIdle(ctx, now)
	case StateWalking:
		a.tickWalking(ctx, now)
	case StateWorking:
		a.tickWorking(ctx, now)
	case StateWandering:
		a.tickWandering(ctx, now)
	}
}

func (a *Agent) tickIdle(ctx context.Context, now time.Time) {
	if a.idleSince.IsZero() {
		a.idleSince = now
	}
	if a.tryClaim(ctx, now) {
		return
	}
	if now.Sub(a.idleSince) >= a.wanderAfter {
		a.state = StateWandering
	}
}

func (a *Agent) tickWandering(ctx context.Context, now time.Time) {
	if a.tryClaim(ctx, now) {
		return
	}
	a.wanderStep()
}

// tryClaim polls the scheduler when the poll delay has elapsed. On a hit
// it transitions to walking and returns true. On a miss the next poll is
// pushed out by the idle backoff.
func (a *Agent) tryClaim(ctx context.Context, now time.Time) bool {
	if now.Before(a.nextPoll) {
		return false
	}

	t := a.scheduler.ClaimTask(ctx, sched.ClaimRequest{
		StaffID: a.id,
		Role:    a.role,
		Zones:   a.zones,
		Kinds:   a.kinds,
		Pos:     a.pos,
		Avoid: func(p grid.Point) bool {
			return a.memory.Contains(p, now)
		},
	})
	if t == nil {
		a.misses++
		a.nextPoll = now.Add(a.idleBackoff.Delay(a.misses))
		return false
	}

	a.misses = 0
	a.nextPoll = now
	a.current = t
	a.pathReq = a.pathSvc.Find(a.pos, t.Target, a.walkCons)
	a.route = nil
	a.walkStart = now
	a.state = StateWalking
	return true
}

func (a *Agent) tickWalking(ctx context.Context, now time.Time) {
	// Watchdog: a search that never resolves or a route that leads
	// nowhere must not pin the agent forever.
	if now.Sub(a.walkStart) > a.walkTimeout {
		a.failWalk(ctx, now, "walk timeout")
		return
	}

	if a.route == nil {
		if !a.pathReq.Done() {
			return // path still computing, stay suspended
		}
		route, err := a.pathReq.Result()
		if err != nil {
			a.failWalk(ctx, now, "no route")
			return
		}
		a.route = route.Steps
		if len(a.route) == 0 {
			a.arrive(now)
			return
		}
		return
	}

	a.pos = a.route[0]
	a.route = a.route[1:]
	if len(a.route) == 0 {
		a.arrive(now)
	}
}

// failWalk handles both path failure and the stuck watchdog: the target
// goes into unreachable memory so the next claim skips it, the task is
// failed back to the scheduler, and the agent is immediately idle and
// eligible to claim other work — an unreachable target must not trigger
// the wander backoff.
func (a *Agent) failWalk(ctx context.Context, now time.Time, cause string) {
	a.memory.Remember(a.current.Target, now)
	a.logger.Debug("walk failed",
		slog.String("staff_id", a.id.String()),
		slog.String("task_id", a.current.ID.String()),
		slog.String("target", a.current.Target.String()),
		slog.String("cause", cause),
	)
	a.scheduler.FailTask(ctx, a.current.ID)
	a.toIdle(now)
	a.nextPoll = now // retry other work right away
}

func (a *Agent) arrive(now time.Time) {
	a.workUntil = now.Add(a.current.Kind.WorkDuration())
	a.state = StateWorking
}

func (a *Agent) tickWorking(ctx context.Context, now time.Time) {
	if now.Before(a.workUntil) {
		return
	}

	t := a.current
	handler, ok := a.handlers.Get(t.Kind)
	if !ok {
		// A kind nobody handles would otherwise bounce between agents
		// forever. Surface it loudly and discard the task for good.
		a.logger.Error("no handler registered for task kind, dropping task",
			slog.String("staff_id", a.id.String()),
			slog.String("task_id", t.ID.String()),
			slog.String("kind", string(t.Kind)),
		)
		a.scheduler.CompleteTask(ctx, t.ID)
		a.toIdle(now)
		a.nextPoll = now
		return
	}

	if err := handler(ctx, t); err != nil {
		a.logger.Warn("task handler failed",
			slog.String("staff_id", a.id.String()),
			slog.String("task_id", t.ID.String()),
			slog.String("kind", string(t.Kind)),
			slog.String("error", err.Error()),
		)
		a.scheduler.FailTask(ctx, t.ID)
	} else {
		a.scheduler.CompleteTask(ctx, t.ID)
	}
	a.toIdle(now)
	a.nextPoll = now
}

func (a *Agent) toIdle(now time.Time) {
	a.current = nil
	a.pathReq = nil
	a.route = nil
	a.state = StateIdle
	a.idleSince = now
}

// wanderStep drifts one cell to a random walkable neighbor.
func (a *Agent) wanderStep() {
	if a.walkable == nil {
		return
	}
	neighbors := a.pos.Neighbors()
	candidates := neighbors[:0]
	for _, n := range neighbors {
		if a.walkable(n, a.walkCons) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return
	}
	a.pos = candidates[rand.IntN(len(candidates))] //nolint:gosec // cosmetic drift only
}
