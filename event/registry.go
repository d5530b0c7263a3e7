package event

import "strings"

var (
	nameToKind = map[string]Kind{
		"notify":         KindNotify,
		"timeout":        KindTimeout,
		"collision":      KindCollision,
		"keydown":        KindKeyDown,
		"keyup":          KindKeyUp,
		"death":          KindDeath,
		"segment_change": KindSegmentChange,
	}
	kindToName = make(map[Kind]string, len(nameToKind))
)

func init() {
	for name, k := range nameToKind {
		kindToName[k] = name
	}
}

// KindFromName returns the Kind for a descriptor name, case-insensitive
func KindFromName(name string) (Kind, bool) {
	k, ok := nameToKind[strings.ToLower(name)]
	return k, ok
}

// String returns the descriptor name of the kind
func (k Kind) String() string {
	if name, ok := kindToName[k]; ok {
		return name
	}
	return "unknown"
}
