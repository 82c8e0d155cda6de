package zoomaker

import "errors"

var (
	// Task errors.
	ErrTaskNotFound    = errors.New("zoomaker: task not found")
	ErrUnknownKind     = errors.New("zoomaker: unknown task kind")
	ErrPayloadMismatch = errors.New("zoomaker: payload does not match task kind")
	ErrNoHandler       = errors.New("zoomaker: no handler registered for task kind")

	// Zone errors.
	ErrZoneNotFound = errors.New("zoomaker: zone not found")

	// Path errors.
	ErrNoRoute         = errors.New("zoomaker: no walkable route to target")
	ErrPathUnavailable = errors.New("zoomaker: path service stopped")

	// Engine errors.
	ErrNoPathService = errors.New("zoomaker: no path service or world configured")
)
