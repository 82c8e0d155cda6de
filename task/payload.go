package task

import "github.com/DSchif/zoo-maker-sub000/grid"

// Payload carries kind-specific task data. It is a sealed tagged union:
// exactly one concrete payload type exists per Kind, so a handler
// receives precisely the fields its kind needs with no optional-field
// checks. AddTask rejects a payload whose Kind disagrees with the task's.
type Payload interface {
	// Kind returns the task kind this payload belongs to.
	Kind() Kind
}

// FoodType names what a feed task deposits.
type FoodType string

// Food types carried by feed payloads.
const (
	FoodHay     FoodType = "hay"
	FoodMeat    FoodType = "meat"
	FoodFish    FoodType = "fish"
	FoodPellets FoodType = "pellets"
)

// FenceSide identifies which edge of a cell a fence segment occupies.
type FenceSide uint8

// Fence sides, clockwise from north.
const (
	SideNorth FenceSide = iota
	SideEast
	SideSouth
	SideWest
)

// FenceRef identifies one fence edge: a cell plus the side it borders.
type FenceRef struct {
	Cell grid.Point `json:"cell"`
	Side FenceSide  `json:"side"`
}

// FeedPayload is the payload for KindFeedAnimals.
type FeedPayload struct {
	Food   FoodType `json:"food"`
	Amount int      `json:"amount"`
}

// Kind implements Payload.
func (FeedPayload) Kind() Kind { return KindFeedAnimals }

// CleanWastePayload is the payload for KindCleanWaste.
type CleanWastePayload struct {
	Cell grid.Point `json:"cell"`
}

// Kind implements Payload.
func (CleanWastePayload) Kind() Kind { return KindCleanWaste }

// RepairFencePayload is the payload for KindRepairFence.
type RepairFencePayload struct {
	Edge FenceRef `json:"edge"`
}

// Kind implements Payload.
func (RepairFencePayload) Kind() Kind { return KindRepairFence }

// ClearLitterPayload is the payload for KindClearLitter.
type ClearLitterPayload struct {
	Cell grid.Point `json:"cell"`
}

// Kind implements Payload.
func (ClearLitterPayload) Kind() Kind { return KindClearLitter }

// EmptyBinPayload is the payload for KindEmptyBin.
type EmptyBinPayload struct {
	Bin grid.Point `json:"bin"`
}

// Kind implements Payload.
func (EmptyBinPayload) Kind() Kind { return KindEmptyBin }
