package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

func TestTone_LengthAndRange(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		got := drain(NewTone(440, 50*time.Millisecond, wave, testRate))
		if len(got) != testRate.N(50*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", wave, len(got), testRate.N(50*time.Millisecond))
		}
		for i, s := range got {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d sample %d = %v", wave, i, s)
			}
		}
	}
}

func TestSweep_PitchRises(t *testing.T) {
	// Count zero crossings in the first and last tenth
	got := drain(NewSweep(200, 2000, 200*time.Millisecond, WaveSine, testRate))
	tenth := len(got) / 10
	crossings := func(s [][2]float64) int {
		n := 0
		for i := 1; i < len(s); i++ {
			if (s[i-1][0] < 0) != (s[i][0] < 0) {
				n++
			}
		}
		return n
	}
	if head, tail := crossings(got[:tenth]), crossings(got[len(got)-tenth:]); tail <= head*3 {
		t.Errorf("sweep crossings head=%d tail=%d", head, tail)
	}
}

func TestEnvelope_Ramps(t *testing.T) {
	d := 100 * time.Millisecond
	got := drain(NewEnvelope(NewTone(0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate))
	if got[0][0] != 0 {
		t.Errorf("first sample = %v, want silent attack start", got[0][0])
	}
	if mid := got[len(got)/2][0]; math.Abs(mid) != 1 {
		t.Errorf("sustain = %v, want full scale", mid)
	}
	if last := got[len(got)-1][0]; math.Abs(last) > 0.01 {
		t.Errorf("last sample = %v, want released", last)
	}
}

func TestSynthesize_EveryCue(t *testing.T) {
	for c := Cue(0); c < cueCount; c++ {
		got := drain(Synthesize(c, testRate))
		if len(got) == 0 {
			t.Errorf("%s: empty", c)
			continue
		}
		peak := 0.0
		for _, s := range got {
			if math.IsNaN(s[0]) || math.IsInf(s[0], 0) {
				t.Fatalf("%s: non-finite sample", c)
			}
			peak = math.Max(peak, math.Abs(s[0]))
		}
		if peak == 0 || peak > 1.0001 {
			t.Errorf("%s: peak %v", c, peak)
		}
	}
}

func TestNewVolume(t *testing.T) {
	d := 10 * time.Millisecond
	half := drain(newVolume(NewTone(0, d, WaveSquare, testRate), 0.5))
	if v := half[5][0]; math.Abs(v-0.5) > 1e-9 {
		t.Errorf("half volume sample = %v", v)
	}
	mute := drain(newVolume(NewTone(0, d, WaveSquare, testRate), 0))
	if mute[5][0] != 0 {
		t.Errorf("zero volume sample = %v", mute[5][0])
	}
}

func TestCueCache_Replays(t *testing.T) {
	c := newCueCache(testRate)
	a := drain(c.streamer(CueTokenStep))
	b := drain(c.streamer(CueTokenStep))
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("replay lengths %d, %d", len(a), len(b))
	}
	if c.streamer(cueCount) != nil {
		t.Error("unknown cue returned a streamer")
	}
}

func TestCueForOutcome(t *testing.T) {
	cases := map[string]Cue{"success": CueSuccess, "ERROR": CueError, "warning": CueWarning, "info": CueWarning}
	for kind, want := range cases {
		if got := CueForOutcome(kind); got != want {
			t.Errorf("%s -> %s, want %s", kind, got, want)
		}
	}
}
