package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/tile-raider/parameter"
)

// hitHarmonics are the partial amplitudes of the hit buzz, fundamental first
var hitHarmonics = []float64{0.3, 0.15, 0.075}

// BuzzGenerator is a harmonic buzz with a short attack ramp
type BuzzGenerator struct {
	sr     beep.SampleRate
	freq   float64
	pos    int
	attack int // samples until full amplitude
}

func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq, attack: sr.N(20 * time.Millisecond)}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	step := 2 * math.Pi * g.freq / float64(g.sr)
	for i := range samples {
		var v float64
		for k, amp := range hitHarmonics {
			v += amp * math.Sin(step*float64(k+1)*float64(g.pos))
		}
		if g.pos < g.attack {
			v *= float64(g.pos) / float64(g.attack)
		}
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error { return nil }

// DecayGenerator is seeded noise over a low rumble under an exponential envelope
type DecayGenerator struct {
	sr     beep.SampleRate
	pos    int
	rumble float64 // Hz
	rng    *rand.Rand
}

// NewDecayGenerator seeds the noise source; equal seeds give equal output
func NewDecayGenerator(sr beep.SampleRate, seed int64) *DecayGenerator {
	return &DecayGenerator{sr: sr, rumble: 80, rng: rand.New(rand.NewSource(seed))}
}

func (g *DecayGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		noise := g.rng.Float64()*2 - 1
		v := math.Exp(-8*t) * (0.25*noise + 0.3*math.Sin(2*math.Pi*g.rumble*t))
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *DecayGenerator) Err() error { return nil }

// SweepGenerator glides from one frequency to another over a fixed length
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	length   int
	pos      int
	phase    float64
}

func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, length: sr.N(d)}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		sample := 0.25 * math.Sin(g.phase) * math.Sin(math.Pi*progress)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error { return nil }

// newVolume applies linear gain; zero gain is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// cueStreamer builds a finite streamer for c, nil for CueNone
func cueStreamer(c Cue, sr beep.SampleRate, vol float64, seed int64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueHit:
		s = beep.Take(sr.N(parameter.HitCueDuration), NewBuzzGenerator(sr, parameter.HitCueFrequency))
	case CueDeath:
		s = beep.Take(sr.N(parameter.DeathCueDuration), NewDecayGenerator(sr, seed))
	case CueTransition:
		sweep := NewSweepGenerator(sr, parameter.TransitionCueFrequency/2, parameter.TransitionCueFrequency, parameter.TransitionCueDuration)
		tone, err := generators.SineTone(sr, parameter.TransitionCueFrequency)
		if err != nil {
			return nil
		}
		s = beep.Seq(
			beep.Take(sweep.length, sweep),
			beep.Take(sr.N(parameter.TransitionCueDuration/4), newVolume(tone, 0.1)),
		)
	default:
		return nil
	}
	return newVolume(s, vol)
}
