package parameter

// Game Loop & Engine Timing
const (
	// SimulationTimeScale converts wall-clock milliseconds into simulation time units
	// One simulation unit is 10ms, the cadence monster timeouts and speeds are authored in
	SimulationTimeScale = 0.1

	// MaxFrameDelta caps a single simulated step after stalls (debugger, suspend)
	// Large steps tunnel bodies through walls
	MaxFrameDelta = 5.0
)

// State Machine Limits
const (
	// MaxTimeoutChain bounds back-to-back timeout transitions inside one step
	// A graph of zero-timeout states with a Timeout cycle would otherwise spin forever
	MaxTimeoutChain = 64
)

// Event Queue
const (
	// EventQueueCapacity is the initial per-entity pending event capacity
	EventQueueCapacity = 16
)

// Target Broadcast
const (
	// TargetPulseInterval is the simulation time between player-target notifications to followers
	TargetPulseInterval = 100.0
)
