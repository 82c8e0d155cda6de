package task

import (
	"time"

	zoomaker "github.com/DSchif/zoo-maker-sub000"
	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/id"
)

// Kind is the closed enumeration of work the park generates. The kind
// determines which staff role may perform the task, the payload type a
// handler receives, and how long the work phase lasts.
type Kind string

const (
	// KindFeedAnimals places food at the target cell for the exhibit's
	// animals.
	KindFeedAnimals Kind = "feed_animals"
	// KindCleanWaste clears an animal waste marker from the target cell.
	KindCleanWaste Kind = "clean_waste"
	// KindRepairFence restores a fence edge to good condition.
	KindRepairFence Kind = "repair_fence"
	// KindClearLitter picks up guest litter at the target cell.
	KindClearLitter Kind = "clear_litter"
	// KindEmptyBin empties a full trash bin.
	KindEmptyBin Kind = "empty_bin"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFeedAnimals, KindCleanWaste, KindRepairFence, KindClearLitter, KindEmptyBin:
		return true
	}
	return false
}

// Role returns the staff role that may perform tasks of this kind.
// Unknown kinds map to the empty Role, which matches no staff.
func (k Kind) Role() Role {
	switch k {
	case KindFeedAnimals, KindCleanWaste:
		return RoleKeeper
	case KindRepairFence:
		return RoleMechanic
	case KindClearLitter, KindEmptyBin:
		return RoleCaretaker
	}
	return ""
}

// WorkDuration returns the fixed on-site work time for this kind.
func (k Kind) WorkDuration() time.Duration {
	switch k {
	case KindFeedAnimals:
		return 2 * time.Second
	case KindCleanWaste:
		return 3 * time.Second
	case KindRepairFence:
		return 5 * time.Second
	case KindClearLitter:
		return 1 * time.Second
	case KindEmptyBin:
		return 2 * time.Second
	}
	return time.Second
}

// Role is a staff category restricting which task kinds an agent may claim.
type Role string

const (
	// RoleKeeper handles animal husbandry: feeding and waste.
	RoleKeeper Role = "keeper"
	// RoleMechanic handles infrastructure: fence repair.
	RoleMechanic Role = "mechanic"
	// RoleCaretaker handles guest-facing upkeep: litter and bins.
	RoleCaretaker Role = "caretaker"
)

// Kinds returns the task kinds a role is allowed to perform.
func (r Role) Kinds() []Kind {
	switch r {
	case RoleKeeper:
		return []Kind{KindFeedAnimals, KindCleanWaste}
	case RoleMechanic:
		return []Kind{KindRepairFence}
	case RoleCaretaker:
		return []Kind{KindClearLitter, KindEmptyBin}
	}
	return nil
}

// Priority orders competing tasks. Lower is more urgent.
type Priority int

const (
	// PriorityUrgent is claimed before everything else.
	PriorityUrgent Priority = 0
	// PriorityNormal is the default.
	PriorityNormal Priority = 1
	// PriorityLow is claimed only when nothing else is queued.
	PriorityLow Priority = 2
)

// Task is a unit of work to be performed by a staff agent. Identity
// fields (ID, Kind, Target, Zone, Payload, MaxRetries, CreatedAt) are
// immutable after construction; FailCount is mutated by the scheduler
// under its own lock.
type Task struct {
	zoomaker.Entity

	ID       id.TaskID  `json:"id"`
	Kind     Kind       `json:"kind"`
	Priority Priority   `json:"priority"`
	Target   grid.Point `json:"target"`
	Zone     id.ZoneID  `json:"zone,omitempty"`
	Payload  Payload    `json:"-"`

	FailCount  int `json:"fail_count"`
	MaxRetries int `json:"max_retries"`
}
