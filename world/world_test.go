package world_test

import (
	"context"
	"testing"

	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/path"
	"github.com/DSchif/zoo-maker-sub000/task"
	"github.com/DSchif/zoo-maker-sub000/world"
)

func TestWalkableConstraints(t *testing.T) {
	w := world.New(10, 10)
	w.SetBlocked(grid.Pt(3, 3), true)
	w.AddGate(grid.Pt(5, 5))
	w.AddServiceTile(grid.Pt(7, 7))

	public := path.Constraints{}
	staffCons := path.Constraints{UseServiceTiles: true, ThroughGates: true}

	tests := []struct {
		name string
		p    grid.Point
		c    path.Constraints
		want bool
	}{
		{"open cell", grid.Pt(1, 1), public, true},
		{"out of bounds", grid.Pt(-1, 0), staffCons, false},
		{"beyond bounds", grid.Pt(10, 0), staffCons, false},
		{"blocked", grid.Pt(3, 3), staffCons, false},
		{"gate without access", grid.Pt(5, 5), public, false},
		{"gate with access", grid.Pt(5, 5), staffCons, true},
		{"service tile without access", grid.Pt(7, 7), public, false},
		{"service tile with access", grid.Pt(7, 7), staffCons, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Walkable(tt.p, tt.c); got != tt.want {
				t.Errorf("Walkable(%v, %+v) = %v, want %v", tt.p, tt.c, got, tt.want)
			}
		})
	}
}

func TestUnblockRestoresWalkability(t *testing.T) {
	w := world.New(5, 5)
	w.SetBlocked(grid.Pt(2, 2), true)
	w.SetBlocked(grid.Pt(2, 2), false)
	if !w.Walkable(grid.Pt(2, 2), path.Constraints{}) {
		t.Error("unblocked cell should be walkable again")
	}
}

func TestFeedZoneSatesOnlyThatZone(t *testing.T) {
	w := world.New(10, 10)
	zoneA, zoneB := id.NewZoneID(), id.NewZoneID()
	hungry := w.AddAnimal(zoneA, grid.Pt(1, 1), 0.95)
	other := w.AddAnimal(zoneB, grid.Pt(8, 8), 0.8)

	w.FeedZone(zoneA, grid.Pt(1, 1), 2)

	if got := w.Hunger(hungry.ID); got != 0 {
		t.Errorf("fed animal hunger = %v, want 0", got)
	}
	if got := w.Hunger(other.ID); got != 0.8 {
		t.Errorf("other zone animal hunger = %v, want untouched 0.8", got)
	}
	if got := w.FoodAt(grid.Pt(1, 1)); got != 2 {
		t.Errorf("food at target = %d, want 2", got)
	}
}

func TestBinLifecycle(t *testing.T) {
	w := world.New(5, 5)
	w.AddBin(grid.Pt(2, 2), 10)

	w.FillBin(grid.Pt(2, 2), 7)
	w.FillBin(grid.Pt(2, 2), 7) // clamps at capacity
	fill, capacity, ok := w.BinFill(grid.Pt(2, 2))
	if !ok || fill != 10 || capacity != 10 {
		t.Fatalf("BinFill = (%d, %d, %v), want (10, 10, true)", fill, capacity, ok)
	}

	if !w.EmptyBin(grid.Pt(2, 2)) {
		t.Fatal("EmptyBin on existing bin should succeed")
	}
	fill, _, _ = w.BinFill(grid.Pt(2, 2))
	if fill != 0 {
		t.Errorf("fill after emptying = %d, want 0", fill)
	}

	if w.EmptyBin(grid.Pt(4, 4)) {
		t.Error("EmptyBin on missing bin should report false")
	}
}

func TestHandlersApplyWorldEffects(t *testing.T) {
	w := world.New(10, 10)
	reg := task.NewRegistry()
	world.RegisterHandlers(reg, w)
	ctx := context.Background()

	zone := id.NewZoneID()
	animal := w.AddAnimal(zone, grid.Pt(1, 1), 1.0)
	w.PlaceWaste(grid.Pt(2, 2))
	w.PlaceLitter(grid.Pt(3, 3))
	w.AddBin(grid.Pt(4, 4), 5)
	w.FillBin(grid.Pt(4, 4), 5)
	edge := task.FenceRef{Cell: grid.Pt(5, 5), Side: task.SideNorth}
	w.SetFence(edge, world.FenceBroken)

	run := func(t *testing.T, tk *task.Task) {
		t.Helper()
		h, ok := reg.Get(tk.Kind)
		if !ok {
			t.Fatalf("no handler for %q", tk.Kind)
		}
		if err := h(ctx, tk); err != nil {
			t.Fatalf("handler %q returned %v", tk.Kind, err)
		}
	}

	run(t, &task.Task{Kind: task.KindFeedAnimals, Zone: zone, Target: grid.Pt(1, 1),
		Payload: task.FeedPayload{Food: task.FoodMeat, Amount: 1}})
	if w.Hunger(animal.ID) != 0 {
		t.Error("feed handler should sate the animal")
	}

	run(t, &task.Task{Kind: task.KindCleanWaste,
		Payload: task.CleanWastePayload{Cell: grid.Pt(2, 2)}})
	if w.HasWaste(grid.Pt(2, 2)) {
		t.Error("clean-waste handler should clear the marker")
	}

	run(t, &task.Task{Kind: task.KindClearLitter,
		Payload: task.ClearLitterPayload{Cell: grid.Pt(3, 3)}})
	if w.HasLitter(grid.Pt(3, 3)) {
		t.Error("clear-litter handler should clear the marker")
	}

	run(t, &task.Task{Kind: task.KindEmptyBin,
		Payload: task.EmptyBinPayload{Bin: grid.Pt(4, 4)}})
	if fill, _, _ := w.BinFill(grid.Pt(4, 4)); fill != 0 {
		t.Errorf("bin fill after handler = %d, want 0", fill)
	}

	run(t, &task.Task{Kind: task.KindRepairFence,
		Payload: task.RepairFencePayload{Edge: edge}})
	if cond, _ := w.Fence(edge); cond != world.FenceGood {
		t.Errorf("fence condition after repair = %v, want good", cond)
	}
}

func TestHandlersMissingStructures(t *testing.T) {
	w := world.New(10, 10)
	reg := task.NewRegistry()
	world.RegisterHandlers(reg, w)
	ctx := context.Background()

	// Cleaning a clean cell succeeds: the marker may be gone already.
	h, _ := reg.Get(task.KindCleanWaste)
	if err := h(ctx, &task.Task{Kind: task.KindCleanWaste,
		Payload: task.CleanWastePayload{Cell: grid.Pt(9, 9)}}); err != nil {
		t.Errorf("cleaning a clean cell returned %v, want nil", err)
	}

	// Repairing a fence edge that does not exist is an error.
	h, _ = reg.Get(task.KindRepairFence)
	err := h(ctx, &task.Task{Kind: task.KindRepairFence,
		Payload: task.RepairFencePayload{Edge: task.FenceRef{Cell: grid.Pt(9, 9)}}})
	if err == nil {
		t.Error("repairing a missing fence edge should fail")
	}

	// Emptying a missing bin is an error.
	h, _ = reg.Get(task.KindEmptyBin)
	err = h(ctx, &task.Task{Kind: task.KindEmptyBin,
		Payload: task.EmptyBinPayload{Bin: grid.Pt(9, 9)}})
	if err == nil {
		t.Error("emptying a missing bin should fail")
	}
}
