package audio

import (
	"github.com/lixenwraith/tile-raider/event"
)

// Cue identifies a short sound effect
type Cue int

const (
	CueNone Cue = iota
	CueHit
	CueDeath
	CueTransition
)

var cueNames = [...]string{"none", "hit", "death", "transition"}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// CueFor maps a world event to its cue
func CueFor(ev event.Event) (Cue, bool) {
	switch ev.Kind() {
	case event.KindCollision:
		if _, ok := ev.Param(event.ParamAttacker); ok {
			return CueHit, true
		}
	case event.KindDeath:
		return CueDeath, true
	case event.KindSegmentChange:
		return CueTransition, true
	}
	return CueNone, false
}
