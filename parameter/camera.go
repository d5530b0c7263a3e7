package parameter

// Camera follow configuration
const (
	// CameraShiftTime is the interpolation duration in milliseconds when swapping targets
	CameraShiftTime = 1000.0

	// CameraSlack is the dead-zone distance in pixels the target may drift before the camera moves
	// Camera then moves by (distance - slack), comparable to slack in a rope pulling the camera
	CameraSlack = 0.0
)
