package parameter

import "time"

// Input handling
const (
	// KeyHoldTimeout is how long a key stays down without terminal repeats before a synthetic release
	// Terminals report presses and auto-repeats but never releases
	KeyHoldTimeout = 150 * time.Millisecond

	// PlayerKind is the entity kind of the distinguished player entity
	PlayerKind = "player"
)
