// Package engine wires the simulation core together: scheduler, hook
// registry, handler registry, path service, world, producers, and the
// staff roster, driven by a fixed-interval tick loop.
//
// This package exists to break the import cycle: the root zoomaker
// package defines Entity and Config (imported by task, sched, etc.) and
// so cannot import those packages back. The engine package sits above
// all subsystem packages and below the embedding game.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	zoomaker "github.com/DSchif/zoo-maker-sub000"
	"github.com/DSchif/zoo-maker-sub000/backoff"
	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/hook"
	mw "github.com/DSchif/zoo-maker-sub000/middleware"
	"github.com/DSchif/zoo-maker-sub000/observability"
	"github.com/DSchif/zoo-maker-sub000/path"
	"github.com/DSchif/zoo-maker-sub000/sched"
	"github.com/DSchif/zoo-maker-sub000/staff"
	"github.com/DSchif/zoo-maker-sub000/task"
	"github.com/DSchif/zoo-maker-sub000/world"
)

// Engine owns the tick loop and the wiring between subsystems.
type Engine struct {
	cfg    zoomaker.Config
	logger *slog.Logger
	now    func() time.Time

	hooks     *hook.Registry
	scheduler *sched.Scheduler
	handlers  *task.Registry
	zoo       *world.World
	pathSvc   path.Service
	gridSvc   *path.GridService // owned default service, nil when injected
	roster    *staff.Roster
	producers []world.Producer
	mws       []mw.Middleware

	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithExtension registers a lifecycle extension.
func WithExtension(ext hook.Extension) Option {
	return func(e *Engine) { e.hooks.Register(ext) }
}

// WithPathService injects a path service, replacing the default
// grid BFS service. The engine does not manage the injected service's
// lifecycle.
func WithPathService(s path.Service) Option {
	return func(e *Engine) { e.pathSvc = s }
}

// WithWorld injects the world model.
func WithWorld(w *world.World) Option {
	return func(e *Engine) { e.zoo = w }
}

// WithClock injects the time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithProducer adds a producer to the per-tick production pass, after
// the built-in feeding and fence producers.
func WithProducer(p world.Producer) Option {
	return func(e *Engine) { e.producers = append(e.producers, p) }
}

// WithMiddleware appends middleware to the handler dispatch chain,
// inside the default recover/metrics/logging stack.
func WithMiddleware(m mw.Middleware) Option {
	return func(e *Engine) { e.mws = append(e.mws, m) }
}

// New creates a fully wired engine from the config.
func New(cfg zoomaker.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
		roster: staff.NewRoster(),
		stopCh: make(chan struct{}),
	}
	e.hooks = hook.NewRegistry(e.logger)

	for _, opt := range opts {
		opt(e)
	}

	e.hooks.Register(observability.NewMetricsExtension())

	e.scheduler = sched.New(
		sched.WithLogger(e.logger),
		sched.WithHooks(e.hooks),
		sched.WithClock(e.now),
	)

	if e.zoo == nil {
		e.zoo = world.New(64, 64)
	}
	if e.pathSvc == nil {
		e.gridSvc = path.NewGridService(e.zoo.Walkable,
			path.WithWorkers(cfg.PathWorkers),
			path.WithSearchLimit(cfg.PathSearchLimit),
			path.WithLogger(e.logger),
		)
		e.pathSvc = e.gridSvc
	}

	// Handler registry: world effects behind the default middleware
	// stack (recover → metrics → logging), then any custom middleware.
	e.handlers = task.NewRegistry()
	world.RegisterHandlers(e.handlers, e.zoo)
	chainMws := []mw.Middleware{
		mw.Recover(e.logger),
		mw.Metrics(),
		mw.Logging(e.logger),
	}
	chainMws = append(chainMws, e.mws...)
	chain := mw.Chain(chainMws...)
	for _, kind := range e.handlers.Kinds() {
		h, _ := e.handlers.Get(kind)
		e.handlers.Register(kind, mw.Wrap(chain, h))
	}

	e.producers = append([]world.Producer{
		world.NewFeedingProducer(e.zoo, e.scheduler, e.logger),
		world.NewFenceProducer(e.zoo, e.scheduler, e.logger),
	}, e.producers...)

	return e
}

// Scheduler returns the engine's scheduler.
func (e *Engine) Scheduler() *sched.Scheduler { return e.scheduler }

// World returns the engine's world model.
func (e *Engine) World() *world.World { return e.zoo }

// Hooks returns the lifecycle hook registry.
func (e *Engine) Hooks() *hook.Registry { return e.hooks }

// Handlers returns the task handler registry.
func (e *Engine) Handlers() *task.Registry { return e.handlers }

// Roster returns the staff roster.
func (e *Engine) Roster() *staff.Roster { return e.roster }

// AddStaff hires an agent of the given role at the given cell and adds
// it to the roster. Extra options override the config-derived defaults.
func (e *Engine) AddStaff(role task.Role, start grid.Point, opts ...staff.AgentOption) *staff.Agent {
	base := []staff.AgentOption{
		staff.WithAgentLogger(e.logger),
		staff.WithPollInterval(e.cfg.PollInterval),
		staff.WithWanderAfter(e.cfg.WanderAfter),
		staff.WithWalkTimeout(e.cfg.WalkTimeout),
		staff.WithUnreachableTTL(e.cfg.UnreachableTTL),
		staff.WithIdleBackoff(backoff.NewExponentialWithJitter(e.cfg.PollInterval, e.cfg.WanderAfter)),
		staff.WithWalkable(e.zoo.Walkable),
		staff.WithConstraints(path.Constraints{UseServiceTiles: true, ThroughGates: true}),
	}
	a := staff.NewAgent(e.scheduler, e.pathSvc, e.handlers, role, start, append(base, opts...)...)
	e.roster.Add(a)
	e.logger.Info("staff hired",
		slog.String("staff_id", a.ID().String()),
		slog.String("role", string(role)),
		slog.String("pos", start.String()),
	)
	return a
}

// Start launches the path service and the tick loop. It returns
// immediately.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}
	e.running = true

	if e.gridSvc != nil {
		if err := e.gridSvc.Start(ctx); err != nil {
			return err
		}
	}

	e.logger.Info("engine starting",
		slog.Duration("tick_interval", e.cfg.TickInterval),
		slog.Int("staff", e.roster.Len()),
	)

	e.wg.Add(1)
	go e.tickLoop()
	return nil
}

// Stop shuts the tick loop and path service down, then emits the
// Shutdown hook. The config's ShutdownTimeout bounds the wait when the
// context has no earlier deadline.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	e.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.ShutdownTimeout)
		defer cancel()
	}

	close(e.stopCh)

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		e.logger.Warn("engine shutdown timed out waiting for tick loop")
		return ctx.Err()
	}

	if e.gridSvc != nil {
		if err := e.gridSvc.Stop(ctx); err != nil {
			return err
		}
	}

	e.hooks.EmitShutdown(ctx)
	e.logger.Info("engine stopped")
	return nil
}

func (e *Engine) tickLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.Step(context.Background(), e.now())
		}
	}
}

// Step advances the simulation by exactly one tick: producers first,
// then the roster in fixed order. The tick loop calls it on a timer;
// tests call it directly with a controlled clock.
func (e *Engine) Step(ctx context.Context, now time.Time) {
	for _, p := range e.producers {
		p.Produce(ctx, now)
	}
	e.roster.Tick(ctx, now)
}
