package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/parameter"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   event.Event
		want Cue
		ok   bool
	}{
		{"role collision", event.New(event.KindCollision, event.Params{event.ParamAttacker: 1, event.ParamVictim: 2}), CueHit, true},
		{"plain collision", event.New(event.KindCollision, nil), CueNone, false},
		{"death", event.New(event.KindDeath, nil), CueDeath, true},
		{"segment change", event.New(event.KindSegmentChange, event.Params{event.ParamSegment: 2}), CueTransition, true},
		{"key", event.Key(event.KindKeyDown, event.ButtonUp), CueNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CueFor(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("CueFor = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

// drain pulls a streamer to exhaustion, returning the sample count and peak
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestCueStreamersAreFinite(t *testing.T) {
	sr := beep.SampleRate(parameter.AudioSampleRate)
	tests := []struct {
		cue  Cue
		want int
	}{
		{CueHit, sr.N(parameter.HitCueDuration)},
		{CueDeath, sr.N(parameter.DeathCueDuration)},
		{CueTransition, sr.N(parameter.TransitionCueDuration) + sr.N(parameter.TransitionCueDuration/4)},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s := cueStreamer(tt.cue, sr, 1, 42)
			if s == nil {
				t.Fatal("nil streamer")
			}
			n, peak := drain(s)
			if n != tt.want {
				t.Errorf("samples = %d, want %d", n, tt.want)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %g, want in (0,1]", peak)
			}
		})
	}
	if cueStreamer(CueNone, sr, 1, 0) != nil {
		t.Error("CueNone should have no streamer")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	sr := beep.SampleRate(parameter.AudioSampleRate)
	_, peak := drain(cueStreamer(CueHit, sr, 0, 0))
	if peak != 0 {
		t.Errorf("peak = %g, want silence", peak)
	}
}

func TestSoundManagerSilentWithoutDevice(t *testing.T) {
	sm := NewSoundManager(0.5)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("uninitialized manager panicked: %v", r)
		}
	}()

	sm.OnEvent(event.New(event.KindDeath, nil))
	if sm.Play(CueHit) {
		t.Error("Play succeeded without a device")
	}
	if sm.Played() != 0 {
		t.Errorf("Played = %d", sm.Played())
	}
	sm.Cleanup()
	if err := sm.Stop(); err != nil {
		t.Error(err)
	}
}

func TestSoundManagerMute(t *testing.T) {
	sm := NewSoundManager(1)
	if err := sm.Init(true); err != nil {
		t.Fatal(err)
	}
	if !sm.IsMuted() {
		t.Fatal("Init(true) should mute")
	}
	// muted start never touches the speaker
	if err := sm.Start(); err != nil || sm.Initialized() {
		t.Fatalf("muted Start: err=%v initialized=%v", err, sm.Initialized())
	}
	if sm.ToggleMute() || sm.IsMuted() {
		t.Error("toggle should unmute")
	}
	if !sm.ToggleMute() {
		t.Error("toggle should mute again")
	}
}

func TestSoundManagerRateLimit(t *testing.T) {
	sm := NewSoundManager(1)
	base := time.Unix(100, 0)

	if !sm.admit(CueHit, base) {
		t.Fatal("first cue rejected")
	}
	if sm.admit(CueHit, base.Add(parameter.MinSoundGap/2)) {
		t.Error("cue inside gap admitted")
	}
	if !sm.admit(CueDeath, base.Add(time.Millisecond)) {
		t.Error("different cue should not share the gap")
	}
	if !sm.admit(CueHit, base.Add(parameter.MinSoundGap)) {
		t.Error("cue after gap rejected")
	}
}
