package fsm

import (
	"fmt"
	"math"

	"github.com/lixenwraith/tile-raider/event"
)

// NoTimeout disables automatic timeout transitions for a state
var NoTimeout = math.Inf(1)

// Behavior is the closed set of state variants: Idle, Move, Follow, Hit and Shift
type Behavior interface {
	step(s *State, dt float64) Delta
	arrive(s *State, trigger event.Event) Delta
	depart(s *State) Delta
}

// State is a node of an entity state machine
// Tracks residency time; HasTimedOut holds exactly when active time exceeds the timeout
type State struct {
	name       string
	activeTime float64
	timeout    float64
	behavior   Behavior
}

func newState(name string, timeout float64, b Behavior) *State {
	if math.IsNaN(timeout) || timeout < 0 {
		timeout = NoTimeout
	}
	return &State{name: name, timeout: timeout, behavior: b}
}

// SimulateStep accumulates dt and returns the residency delta
// A timed-out state returns an empty delta; the machine fires the timeout event
func (s *State) SimulateStep(dt float64) Delta {
	s.activeTime += dt
	if s.HasTimedOut() {
		return Delta{}
	}
	return s.behavior.step(s, dt)
}

// SimulateArrival resets active time and returns the entry delta
// The triggering event is available to behaviors that need context
func (s *State) SimulateArrival(trigger event.Event) Delta {
	s.activeTime = 0
	return s.behavior.arrive(s, trigger)
}

// SimulateDeparture resets active time and returns the exit delta
func (s *State) SimulateDeparture() Delta {
	s.activeTime = 0
	return s.behavior.depart(s)
}

func (s *State) HasTimedOut() bool {
	return s.activeTime > s.timeout
}

// ExcessTime returns how far active time has run past the timeout, never negative
func (s *State) ExcessTime() float64 {
	if !s.HasTimedOut() {
		return 0
	}
	return s.activeTime - s.timeout
}

func (s *State) Name() string        { return s.name }
func (s *State) ActiveTime() float64 { return s.activeTime }
func (s *State) Timeout() float64    { return s.timeout }
func (s *State) Behavior() Behavior  { return s.behavior }
func (s *State) HasTimeout() bool    { return !math.IsInf(s.timeout, 1) }
func (s *State) String() string      { return fmt.Sprintf("%s(%.1f/%.1f)", s.name, s.activeTime, s.timeout) }
