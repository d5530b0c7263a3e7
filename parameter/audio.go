package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between consecutive cues of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Cue durations
const (
	HitCueDuration        = 150 * time.Millisecond
	DeathCueDuration      = 300 * time.Millisecond
	TransitionCueDuration = 400 * time.Millisecond
)

// Cue frequencies in Hz
const (
	HitCueFrequency        = 120.0
	TransitionCueFrequency = 440.0
)
