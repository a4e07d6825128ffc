package audio

import "time"

// Config holds playback settings
type Config struct {
	Enabled      bool
	SampleRate   int
	BufferLength time.Duration
	MasterVolume float64
	CueVolumes   map[Cue]float64
	// MaxVoices caps simultaneously sounding cues; extra requests are dropped
	MaxVoices int
}

// DefaultConfig returns muted playback at CD rate
func DefaultConfig() *Config {
	return &Config{
		Enabled:      false,
		SampleRate:   44100,
		BufferLength: 20 * time.Millisecond,
		MasterVolume: 0.5,
		CueVolumes: map[Cue]float64{
			CueDiceTick:  0.35,
			CueTokenStep: 0.4,
			CueRotate:    0.5,
			CueSuccess:   0.8,
			CueWarning:   0.7,
			CueError:     0.6,
		},
		MaxVoices: 8,
	}
}

// volume returns the effective gain of a cue
func (c *Config) volume(cue Cue) float64 {
	v := c.MasterVolume
	if cv, ok := c.CueVolumes[cue]; ok {
		v *= cv
	}
	return v
}
