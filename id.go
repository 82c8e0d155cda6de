package zoomaker

import "github.com/DSchif/zoo-maker-sub000/id"

// ID is the primary identifier type for all simulation entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
