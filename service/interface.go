package service

// Service is a long-lived subsystem outside the simulation, such as the audio
// device or the checkpoint database. The Hub drives every service through
// Init, Start and Stop in dependency order.
type Service interface {
	// Name is the registry key and the key of the service's Init args
	Name() string

	// Dependencies lists services that must Init and Start first
	Dependencies() []string

	// Init applies service-specific args: mute flag, database path
	Init(args ...any) error

	// Start acquires resources; a service may degrade to a no-op instead of failing
	Start() error

	// Stop releases resources and is safe to call more than once
	Stop() error
}
