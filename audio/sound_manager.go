package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/parameter"
)

// SoundManager plays event cues through a beep mixer
// It is an engine.Listener and a service.Service; every call is a silent no-op
// until Initialize succeeds, and while muted
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	lastPlayed  map[Cue]time.Time
	now         func() time.Time

	muted  atomic.Bool
	played atomic.Int64
}

// NewSoundManager creates an uninitialized manager at the given linear volume
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:      &beep.Mixer{},
		rate:       beep.SampleRate(parameter.AudioSampleRate),
		volume:     volume,
		lastPlayed: make(map[Cue]time.Time),
		now:        time.Now,
	}
}

// Initialize opens the speaker; a second call is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer
// beep has no speaker close, clearing streamers stops all output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// OnEvent implements engine.Listener
func (sm *SoundManager) OnEvent(ev event.Event) {
	if c, ok := CueFor(ev); ok {
		sm.Play(c)
	}
}

// Play queues a cue, returning false when silent or rate-limited
func (sm *SoundManager) Play(c Cue) bool {
	if sm.muted.Load() {
		return false
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.admit(c, sm.now()) {
		return false
	}
	s := cueStreamer(c, sm.rate, sm.volume, sm.now().UnixNano())
	if s == nil {
		return false
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
	return true
}

// admit enforces MinSoundGap per cue; caller holds mu
func (sm *SoundManager) admit(c Cue, now time.Time) bool {
	if last, ok := sm.lastPlayed[c]; ok && now.Sub(last) < parameter.MinSoundGap {
		return false
	}
	sm.lastPlayed[c] = now
	return true
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (sm *SoundManager) SetMuted(muted bool) { sm.muted.Store(muted) }
func (sm *SoundManager) IsMuted() bool       { return sm.muted.Load() }

// Played returns the number of cues sent to the mixer
func (sm *SoundManager) Played() int64 { return sm.played.Load() }

// Initialized reports whether an audio device is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Name implements service.Service
func (sm *SoundManager) Name() string { return "audio" }

// Dependencies implements service.Service
func (sm *SoundManager) Dependencies() []string { return nil }

// Init implements service.Service
// args[0]: bool - initial mute state
func (sm *SoundManager) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			sm.SetMuted(muted)
		}
	}
	return nil
}

// Start implements service.Service
// A missing audio backend leaves the manager silent instead of failing
func (sm *SoundManager) Start() error {
	if sm.IsMuted() {
		return nil
	}
	if err := sm.Initialize(); err != nil {
		log.Printf("Audio disabled: %v", err)
	}
	return nil
}

// Stop implements service.Service
func (sm *SoundManager) Stop() error {
	sm.Cleanup()
	return nil
}
