package parameter

// Tile grid
const (
	// TileWidth is the pixel width of one segment tile
	TileWidth = 40

	// TileHeight is the pixel height of one segment tile
	TileHeight = 40

	// EntryNudge is the pixel offset applied to a segment entry point
	// Keeps the player off the transition tile it arrived through
	EntryNudge = 2.0

	// DefaultStartSegment is the segment loaded when no checkpoint or config override exists
	DefaultStartSegment = 1
)
