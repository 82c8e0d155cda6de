package zoomaker

import "time"

// Entity carries the creation and last-update timestamps shared by all
// persistent records in the simulation core.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntity returns an Entity stamped with the current UTC time.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{CreatedAt: now, UpdatedAt: now}
}

// NewEntityAt returns an Entity stamped with the given time. The
// scheduler uses it so that an injected clock controls CreatedAt
// ordering in tests.
func NewEntityAt(now time.Time) Entity {
	return Entity{CreatedAt: now, UpdatedAt: now}
}
