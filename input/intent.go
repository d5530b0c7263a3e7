package input

// IntentType is a system-level command consumed by the game loop
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentQuit
	IntentToggleMute
	IntentResize
)

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentToggleMute:
		return "toggle_mute"
	case IntentResize:
		return "resize"
	}
	return "none"
}
