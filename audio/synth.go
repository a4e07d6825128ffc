package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator whose pitch glides linearly from freq to freqEnd
type tone struct {
	freq, freqEnd float64
	wave          WaveType
	rate          beep.SampleRate
	phase         float64
	pos, total    int
}

// NewTone creates a steady tone
func NewTone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep creates a tone gliding from one pitch to another over d
func NewSweep(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: from, freqEnd: to, wave: wave, rate: rate, total: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		f := t.freq + (t.freqEnd-t.freq)*float64(t.pos)/float64(t.total)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope applies linear attack and release ramps
type envelope struct {
	s                       beep.Streamer
	pos, attack, release, n int
}

// NewEnvelope shapes s, whose length is d
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), n: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.n - e.pos; e.release > 0 && left < e.release {
			gain = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// newVolume scales s linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// shaped builds an enveloped tone
func shaped(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate, attack, release time.Duration) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, attack, release, rate)
}

// Synthesize returns a fresh unity-gain streamer for a cue
func Synthesize(c Cue, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueDiceTick:
		return shaped(0, 0, 25*ms, WaveNoise, rate, ms, 20*ms)
	case CueTokenStep:
		return shaped(660, 620, 45*ms, WaveSquare, rate, 2*ms, 35*ms)
	case CueRotate:
		return beep.Mix(
			newVolume(shaped(0, 0, 320*ms, WaveNoise, rate, 120*ms, 180*ms), 0.4),
			newVolume(shaped(180, 520, 320*ms, WaveSine, rate, 120*ms, 180*ms), 0.6),
		)
	case CueSuccess:
		return beep.Seq(
			shaped(1046.5, 1046.5, 110*ms, WaveSine, rate, 5*ms, 60*ms),
			shaped(1318.5, 1318.5, 110*ms, WaveSine, rate, 5*ms, 60*ms),
			shaped(1568, 1568, 260*ms, WaveSine, rate, 5*ms, 200*ms),
		)
	case CueWarning:
		return beep.Seq(
			shaped(660, 660, 140*ms, WaveSquare, rate, 5*ms, 60*ms),
			shaped(440, 440, 220*ms, WaveSquare, rate, 5*ms, 150*ms),
		)
	case CueError:
		return shaped(110, 90, 260*ms, WaveSaw, rate, 5*ms, 120*ms)
	default:
		return beep.Silence(0)
	}
}
