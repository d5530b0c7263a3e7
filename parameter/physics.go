package parameter

// Composite hitbox layout
const (
	// HitboxSlots is the fixed number of inner hitbox slots per composite
	// Slot pointers stay registered with the collision detector across shape changes
	HitboxSlots = 6
)

// Collision resolution
const (
	// ResolveEpsilon is added to the push-back distance to guarantee separation
	ResolveEpsilon = 1.0

	// CollisionCellSize is the spatial hash cell edge in pixels
	// Close to typical entity bounding box size to bound candidate set size
	CollisionCellSize = 40.0
)
