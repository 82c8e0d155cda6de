// Package world holds the minimal zoo model the scheduling core acts on:
// terrain, fences, animals, and the dirt that accumulates. It also wires
// the per-kind task handlers and the producers that turn world conditions
// into tasks.
//
// The world is deliberately small: just enough state for handlers to have
// a real effect and for producers to have something to observe. The
// embedding game replaces it wholesale.
package world

import (
	"sync"

	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/id"
	"github.com/DSchif/zoo-maker-sub000/path"
	"github.com/DSchif/zoo-maker-sub000/task"
)

// FenceCondition is the wear state of one fence edge.
type FenceCondition uint8

// Fence conditions, from intact to breached.
const (
	FenceGood FenceCondition = iota
	FenceWorn
	FenceBroken
)

// Animal is one zoo inhabitant. Hunger runs 0 (sated) to 1 (starving).
type Animal struct {
	ID     id.ID
	Zone   id.ZoneID
	Pos    grid.Point
	Hunger float64
}

// Bin is a visitor trash bin with a fill level.
type Bin struct {
	Pos      grid.Point
	Fill     int
	Capacity int
}

// World is the mutable zoo state. All methods are safe for concurrent
// use; handlers run on agent ticks while path workers read walkability
// from their own goroutines.
type World struct {
	mu sync.RWMutex

	width, height int
	blocked       map[grid.Point]bool
	serviceTiles  map[grid.Point]bool
	gates         map[grid.Point]bool

	fences  map[task.FenceRef]FenceCondition
	food    map[grid.Point]int
	waste   map[grid.Point]bool
	litter  map[grid.Point]bool
	bins    map[grid.Point]*Bin
	animals map[string]*Animal // keyed by Animal.ID.String()
}

// New creates an empty world of the given dimensions.
func New(width, height int) *World {
	return &World{
		width:        width,
		height:       height,
		blocked:      make(map[grid.Point]bool),
		serviceTiles: make(map[grid.Point]bool),
		gates:        make(map[grid.Point]bool),
		fences:       make(map[task.FenceRef]FenceCondition),
		food:         make(map[grid.Point]int),
		waste:        make(map[grid.Point]bool),
		litter:       make(map[grid.Point]bool),
		bins:         make(map[grid.Point]*Bin),
		animals:      make(map[string]*Animal),
	}
}

// ──────────────────────────────────────────────────
// Terrain
// ──────────────────────────────────────────────────

// Walkable reports whether an agent may stand on the cell under the
// given constraints. It satisfies path.WalkableFunc.
func (w *World) Walkable(p grid.Point, c path.Constraints) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if p.X < 0 || p.X >= w.width || p.Y < 0 || p.Y >= w.height {
		return false
	}
	if w.blocked[p] {
		return false
	}
	if w.gates[p] {
		return c.ThroughGates
	}
	if w.serviceTiles[p] {
		return c.UseServiceTiles
	}
	return true
}

// SetBlocked marks or clears a cell as impassable.
func (w *World) SetBlocked(p grid.Point, blocked bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if blocked {
		w.blocked[p] = true
	} else {
		delete(w.blocked, p)
	}
}

// AddServiceTile marks a staff-only cell.
func (w *World) AddServiceTile(p grid.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.serviceTiles[p] = true
}

// AddGate marks a zone gate cell.
func (w *World) AddGate(p grid.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gates[p] = true
}

// ──────────────────────────────────────────────────
// Fences
// ──────────────────────────────────────────────────

// SetFence sets the condition of a fence edge, creating it if needed.
func (w *World) SetFence(ref task.FenceRef, cond FenceCondition) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fences[ref] = cond
}

// Fence returns the condition of a fence edge.
// Returns false if the edge does not exist.
func (w *World) Fence(ref task.FenceRef) (FenceCondition, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	cond, ok := w.fences[ref]
	return cond, ok
}

// Fences returns a snapshot of every fence edge and its condition.
func (w *World) Fences() map[task.FenceRef]FenceCondition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[task.FenceRef]FenceCondition, len(w.fences))
	for ref, cond := range w.fences {
		out[ref] = cond
	}
	return out
}

// ──────────────────────────────────────────────────
// Animals & food
// ──────────────────────────────────────────────────

// AddAnimal places an animal in a zone and returns it.
func (w *World) AddAnimal(zone id.ZoneID, pos grid.Point, hunger float64) *Animal {
	a := &Animal{ID: id.New(id.PrefixAnimal), Zone: zone, Pos: pos, Hunger: hunger}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.animals[a.ID.String()] = a
	return a
}

// SetHunger updates one animal's hunger level.
func (w *World) SetHunger(animalID id.ID, hunger float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a, ok := w.animals[animalID.String()]; ok {
		a.Hunger = hunger
	}
}

// Hunger returns one animal's hunger level, or 0 if unknown.
func (w *World) Hunger(animalID id.ID) float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if a, ok := w.animals[animalID.String()]; ok {
		return a.Hunger
	}
	return 0
}

// Animals returns a snapshot of all animals.
func (w *World) Animals() []Animal {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Animal, 0, len(w.animals))
	for _, a := range w.animals {
		out = append(out, *a)
	}
	return out
}

// FeedZone deposits food at the cell and sates every animal in the zone.
func (w *World) FeedZone(zone id.ZoneID, cell grid.Point, amount int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.food[cell] += amount
	for _, a := range w.animals {
		if a.Zone.String() == zone.String() {
			a.Hunger = 0
		}
	}
}

// FoodAt returns the amount of food lying at a cell.
func (w *World) FoodAt(p grid.Point) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.food[p]
}

// ──────────────────────────────────────────────────
// Waste, litter, bins
// ──────────────────────────────────────────────────

// PlaceWaste drops a waste marker on a cell.
func (w *World) PlaceWaste(p grid.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.waste[p] = true
}

// HasWaste reports whether a cell carries a waste marker.
func (w *World) HasWaste(p grid.Point) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.waste[p]
}

// RemoveWaste clears a cell's waste marker. Clearing a clean cell is a
// no-op; the world may have changed since the task was created.
func (w *World) RemoveWaste(p grid.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.waste, p)
}

// PlaceLitter drops a litter marker on a cell.
func (w *World) PlaceLitter(p grid.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.litter[p] = true
}

// HasLitter reports whether a cell carries a litter marker.
func (w *World) HasLitter(p grid.Point) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.litter[p]
}

// RemoveLitter clears a cell's litter marker.
func (w *World) RemoveLitter(p grid.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.litter, p)
}

// AddBin places a bin at a cell.
func (w *World) AddBin(p grid.Point, capacity int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bins[p] = &Bin{Pos: p, Capacity: capacity}
}

// FillBin adds to a bin's fill level, clamped to its capacity.
func (w *World) FillBin(p grid.Point, amount int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bins[p]
	if !ok {
		return
	}
	b.Fill += amount
	if b.Fill > b.Capacity {
		b.Fill = b.Capacity
	}
}

// BinFill returns a bin's fill level and capacity.
// Returns false if no bin stands at the cell.
func (w *World) BinFill(p grid.Point) (fill, capacity int, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bins[p]
	if !ok {
		return 0, 0, false
	}
	return b.Fill, b.Capacity, true
}

// EmptyBin resets a bin's fill level to zero.
// Returns false if no bin stands at the cell.
func (w *World) EmptyBin(p grid.Point) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bins[p]
	if !ok {
		return false
	}
	b.Fill = 0
	return true
}
