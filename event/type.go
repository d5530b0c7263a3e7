package event

// Kind is the broad classification of a world event
type Kind int

const (
	// KindNotify is a plain notification with no required parameters
	// Consumer: Follow states (ParamTarget) | Params: optional
	KindNotify Kind = iota

	// KindTimeout is synthesized by a state machine when its current state times out
	// Consumer: Transitions | Params: none
	KindTimeout

	// KindCollision signals two entities' hitboxes overlap
	// Trigger: World collision pass
	// Consumer: Entity transitions, Listeners | Params: ParamObjects, ParamVolumes, optional ParamAttacker/ParamVictim/ParamRole
	KindCollision

	// KindKeyDown signals a logical button press
	// Trigger: input.Mapper | Params: ParamKey
	KindKeyDown

	// KindKeyUp signals a logical button release
	// Trigger: input.Mapper | Params: ParamKey
	KindKeyUp

	// KindDeath signals an entity's health reached zero
	// Trigger: Entity.Update | Consumer: World removal, Listeners | Params: ParamEntity
	KindDeath

	// KindSegmentChange signals the player crossed into another segment
	// Trigger: World tile pass | Consumer: Listeners (audio, checkpoints) | Params: ParamSegment, ParamEntity
	KindSegmentChange
)

// Well-known parameter keys
const (
	ParamKey      = "key"
	ParamObjects  = "objects"
	ParamVolumes  = "volumes"
	ParamAttacker = "attacker"
	ParamVictim   = "victim"
	ParamEntity   = "entity"
	ParamTarget   = "target"
	ParamSegment  = "segment"
	ParamRole     = "role"
)

// Collision roles carried in ParamRole of the copy delivered to each participant
const (
	RoleAttacker = "attacker"
	RoleVictim   = "victim"
)

// Logical buttons carried by key events
const (
	ButtonUp     = "up"
	ButtonDown   = "down"
	ButtonLeft   = "left"
	ButtonRight  = "right"
	ButtonAction = "space"
)
