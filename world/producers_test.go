package world_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/sched"
	"github.com/DSchif/zoo-maker-sub000/task"
	"github.com/DSchif/zoo-maker-sub000/world"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func claimOne(t *testing.T, s *sched.Scheduler, role task.Role, zones ...id.ZoneID) *task.Task {
	t.Helper()
	return s.ClaimTask(context.Background(), sched.ClaimRequest{
		StaffID: id.NewStaffID(),
		Role:    role,
		Zones:   zones,
		Pos:     grid.Pt(0, 0),
	})
}

func TestFeedingProducerMapsHungerToPriority(t *testing.T) {
	tests := []struct {
		name   string
		hunger float64
		want   task.Priority
	}{
		{"starving", 0.95, task.PriorityUrgent},
		{"hungry", 0.7, task.PriorityNormal},
		{"peckish", 0.4, task.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.New(10, 10)
			s := sched.New(sched.WithLogger(discardLogger()))
			zone := id.NewZoneID()
			s.RegisterZone(zone)
			w.AddAnimal(zone, grid.Pt(2, 2), tt.hunger)

			p := world.NewFeedingProducer(w, s, discardLogger())
			p.Produce(context.Background(), time.Now())

			got := claimOne(t, s, task.RoleKeeper, zone)
			if got == nil {
				t.Fatal("producer inserted no task")
			}
			if got.Priority != tt.want {
				t.Errorf("priority = %d, want %d", got.Priority, tt.want)
			}
			if got.Zone.String() != zone.String() {
				t.Errorf("task zone = %s, want %s", got.Zone, zone)
			}
		})
	}
}

func TestFeedingProducerSkipsSatedAnimals(t *testing.T) {
	w := world.New(10, 10)
	s := sched.New(sched.WithLogger(discardLogger()))
	zone := id.NewZoneID()
	w.AddAnimal(zone, grid.Pt(2, 2), 0.1)

	p := world.NewFeedingProducer(w, s, discardLogger())
	p.Produce(context.Background(), time.Now())

	if st := s.Stats(); st.Queued != 0 {
		t.Errorf("sated animal produced %d tasks, want 0", st.Queued)
	}
}

func TestFeedingProducerDeduplicatesPerZone(t *testing.T) {
	w := world.New(10, 10)
	s := sched.New(sched.WithLogger(discardLogger()))
	zone := id.NewZoneID()
	s.RegisterZone(zone)
	w.AddAnimal(zone, grid.Pt(1, 1), 0.95)
	w.AddAnimal(zone, grid.Pt(2, 2), 0.95)

	p := world.NewFeedingProducer(w, s, discardLogger())
	p.Produce(context.Background(), time.Now())
	p.Produce(context.Background(), time.Now()) // second scan, same conditions

	if st := s.Stats(); st.Queued != 1 {
		t.Errorf("queued = %d, want 1 feed task per hungry zone", st.Queued)
	}
}

func TestFeedingProducerDedupCoversActiveTasks(t *testing.T) {
	w := world.New(10, 10)
	s := sched.New(sched.WithLogger(discardLogger()))
	zone := id.NewZoneID()
	s.RegisterZone(zone)
	w.AddAnimal(zone, grid.Pt(1, 1), 0.95)

	p := world.NewFeedingProducer(w, s, discardLogger())
	p.Produce(context.Background(), time.Now())

	// An agent claims the task; the condition persists but no duplicate
	// may be inserted while the work is in flight.
	if got := claimOne(t, s, task.RoleKeeper, zone); got == nil {
		t.Fatal("claim failed")
	}
	p.Produce(context.Background(), time.Now())

	if st := s.Stats(); st.Queued != 0 || st.Active != 1 {
		t.Errorf("stats = %+v, want 0 queued / 1 active", st)
	}
}

func TestFenceProducerMapsConditionToPriority(t *testing.T) {
	w := world.New(10, 10)
	s := sched.New(sched.WithLogger(discardLogger()))

	worn := task.FenceRef{Cell: grid.Pt(1, 1), Side: task.SideNorth}
	broken := task.FenceRef{Cell: grid.Pt(2, 2), Side: task.SideEast}
	good := task.FenceRef{Cell: grid.Pt(3, 3), Side: task.SideSouth}
	w.SetFence(worn, world.FenceWorn)
	w.SetFence(broken, world.FenceBroken)
	w.SetFence(good, world.FenceGood)

	p := world.NewFenceProducer(w, s, discardLogger())
	p.Produce(context.Background(), time.Now())

	if st := s.Stats(); st.Queued != 2 {
		t.Fatalf("queued = %d, want 2 (good fences need no repair)", st.Queued)
	}

	// The broken edge is urgent and wins the claim ordering.
	got := claimOne(t, s, task.RoleMechanic)
	if got == nil || got.Priority != task.PriorityUrgent {
		t.Fatalf("first claim = %+v, want the urgent broken-fence task", got)
	}
	if rp := got.Payload.(task.RepairFencePayload); rp.Edge != broken {
		t.Errorf("urgent task edge = %+v, want %+v", rp.Edge, broken)
	}

	got = claimOne(t, s, task.RoleMechanic)
	if got == nil || got.Priority != task.PriorityNormal {
		t.Errorf("second claim = %+v, want the normal worn-fence task", got)
	}
}

func TestFenceProducerDeduplicatesPerEdge(t *testing.T) {
	w := world.New(10, 10)
	s := sched.New(sched.WithLogger(discardLogger()))
	w.SetFence(task.FenceRef{Cell: grid.Pt(1, 1), Side: task.SideWest}, world.FenceBroken)

	p := world.NewFenceProducer(w, s, discardLogger())
	p.Produce(context.Background(), time.Now())
	p.Produce(context.Background(), time.Now())

	if st := s.Stats(); st.Queued != 1 {
		t.Errorf("queued = %d, want 1 task per degraded edge", st.Queued)
	}
}

func TestProducerHandlerRoundTrip(t *testing.T) {
	// The full loop without agents: producer inserts, handler fixes,
	// producer goes quiet.
	w := world.New(10, 10)
	s := sched.New(sched.WithLogger(discardLogger()))
	reg := task.NewRegistry()
	world.RegisterHandlers(reg, w)

	edge := task.FenceRef{Cell: grid.Pt(4, 4), Side: task.SideNorth}
	w.SetFence(edge, world.FenceBroken)

	p := world.NewFenceProducer(w, s, discardLogger())
	p.Produce(context.Background(), time.Now())

	tk := claimOne(t, s, task.RoleMechanic)
	if tk == nil {
		t.Fatal("claim failed")
	}
	h, _ := reg.Get(tk.Kind)
	if err := h(context.Background(), tk); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	s.CompleteTask(context.Background(), tk.ID)

	p.Produce(context.Background(), time.Now())
	if st := s.Stats(); st.Queued != 0 || st.Active != 0 {
		t.Errorf("stats after repair = %+v, want empty", st)
	}
}
