package world

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/sched"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// Producer observes some world condition and inserts tasks for it.
// The engine runs every producer once per tick, before the roster.
type Producer interface {
	// Name returns a unique human-readable producer name.
	Name() string
	// Produce scans the world and inserts whatever tasks the current
	// conditions call for.
	Produce(ctx context.Context, now time.Time)
}

// ──────────────────────────────────────────────────
// Feeding producer
// ──────────────────────────────────────────────────

// FeedingProducer creates feed tasks for hungry animals. Hunger maps to
// priority through three thresholds: past UrgentAt the task is urgent,
// past NormalAt normal, past LowAt low; below LowAt no task is created.
// One task covers a whole zone (feeding sates every animal in it), so
// the producer de-duplicates per zone through HasTaskFor and paces
// insertions with a token bucket.
type FeedingProducer struct {
	world     *World
	scheduler *sched.Scheduler
	limiter   *rate.Limiter
	logger    *slog.Logger

	UrgentAt float64
	NormalAt float64
	LowAt    float64
	Food     task.FoodType
	Amount   int
}

// NewFeedingProducer creates a feeding producer with default thresholds
// (0.9 / 0.6 / 0.3) and a 10-inserts-per-second budget.
func NewFeedingProducer(w *World, s *sched.Scheduler, logger *slog.Logger) *FeedingProducer {
	return &FeedingProducer{
		world:     w,
		scheduler: s,
		limiter:   rate.NewLimiter(rate.Limit(10), 10),
		logger:    logger,
		UrgentAt:  0.9,
		NormalAt:  0.6,
		LowAt:     0.3,
		Food:      task.FoodHay,
		Amount:    1,
	}
}

// Name implements Producer.
func (p *FeedingProducer) Name() string { return "feeding-producer" }

// Produce implements Producer.
func (p *FeedingProducer) Produce(ctx context.Context, _ time.Time) {
	for _, a := range p.world.Animals() {
		var prio task.Priority
		switch {
		case a.Hunger >= p.UrgentAt:
			prio = task.PriorityUrgent
		case a.Hunger >= p.NormalAt:
			prio = task.PriorityNormal
		case a.Hunger >= p.LowAt:
			prio = task.PriorityLow
		default:
			continue
		}

		// One pending feed task per zone is enough.
		if p.scheduler.HasTaskFor(task.KindFeedAnimals, a.Zone, nil) {
			continue
		}
		if !p.limiter.Allow() {
			return // budget spent, catch up next tick
		}

		_, err := p.scheduler.AddTask(ctx, task.KindFeedAnimals, a.Pos,
			task.FeedPayload{Food: p.Food, Amount: p.Amount},
			task.WithZone(a.Zone), task.WithPriority(prio))
		if err != nil {
			p.logger.Error("feeding producer insert failed",
				slog.String("zone", a.Zone.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// ──────────────────────────────────────────────────
// Fence producer
// ──────────────────────────────────────────────────

// FenceProducer creates repair tasks for degraded fence edges: worn
// edges at normal priority, broken edges urgent. Fence repair is
// zone-independent, so tasks go to the global mechanic queue and
// de-duplication matches on the exact edge.
type FenceProducer struct {
	world     *World
	scheduler *sched.Scheduler
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewFenceProducer creates a fence producer with a
// 10-inserts-per-second budget.
func NewFenceProducer(w *World, s *sched.Scheduler, logger *slog.Logger) *FenceProducer {
	return &FenceProducer{
		world:     w,
		scheduler: s,
		limiter:   rate.NewLimiter(rate.Limit(10), 10),
		logger:    logger,
	}
}

// Name implements Producer.
func (p *FenceProducer) Name() string { return "fence-producer" }

// Produce implements Producer.
func (p *FenceProducer) Produce(ctx context.Context, _ time.Time) {
	for ref, cond := range p.world.Fences() {
		var prio task.Priority
		switch cond {
		case FenceBroken:
			prio = task.PriorityUrgent
		case FenceWorn:
			prio = task.PriorityNormal
		default:
			continue
		}

		edge := ref
		pending := p.scheduler.HasTaskFor(task.KindRepairFence, id.Nil,
			func(pl task.Payload) bool {
				rp, ok := pl.(task.RepairFencePayload)
				return ok && rp.Edge == edge
			})
		if pending {
			continue
		}
		if !p.limiter.Allow() {
			return
		}

		_, err := p.scheduler.AddTask(ctx, task.KindRepairFence, ref.Cell,
			task.RepairFencePayload{Edge: ref},
			task.WithPriority(prio))
		if err != nil {
			p.logger.Error("fence producer insert failed",
				slog.String("cell", ref.Cell.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}
