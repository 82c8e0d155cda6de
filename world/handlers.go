package world

import (
	"context"
	"fmt"

	"github.com/DSchif/zoo-maker-sub000/task"
)

// RegisterHandlers wires the world's effect for every task kind into the
// registry. Handlers are idempotent against stale tasks where the world
// allows it: cleaning an already-clean cell succeeds, because the marker
// may have disappeared for other reasons since the task was created.
// Acting on a structure that no longer exists (a removed fence edge or
// bin) is an error, which sends the task through the normal retry path.
func RegisterHandlers(reg *task.Registry, w *World) {
	task.RegisterKind(reg, task.KindFeedAnimals,
		func(_ context.Context, t *task.Task, p task.FeedPayload) error {
			w.FeedZone(t.Zone, t.Target, p.Amount)
			return nil
		})

	task.RegisterKind(reg, task.KindCleanWaste,
		func(_ context.Context, _ *task.Task, p task.CleanWastePayload) error {
			w.RemoveWaste(p.Cell)
			return nil
		})

	task.RegisterKind(reg, task.KindRepairFence,
		func(_ context.Context, _ *task.Task, p task.RepairFencePayload) error {
			if _, ok := w.Fence(p.Edge); !ok {
				return fmt.Errorf("repair fence: no edge at %v side %d", p.Edge.Cell, p.Edge.Side)
			}
			w.SetFence(p.Edge, FenceGood)
			return nil
		})

	task.RegisterKind(reg, task.KindClearLitter,
		func(_ context.Context, _ *task.Task, p task.ClearLitterPayload) error {
			w.RemoveLitter(p.Cell)
			return nil
		})

	task.RegisterKind(reg, task.KindEmptyBin,
		func(_ context.Context, _ *task.Task, p task.EmptyBinPayload) error {
			if !w.EmptyBin(p.Bin) {
				return fmt.Errorf("empty bin: no bin at %v", p.Bin)
			}
			return nil
		})
}
