package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
)

// Player mixes cues and streams them to a PCM sink
type Player struct {
	config *Config
	rate   beep.SampleRate
	cache  *cueCache
	logger zerolog.Logger

	mu    sync.Mutex
	mixer *beep.Mixer

	cmd   *exec.Cmd
	stdin io.WriteCloser

	running atomic.Bool
	muted   atomic.Bool
	silent  atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewPlayer creates a stopped player
func NewPlayer(cfg *Config, logger zerolog.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	p := &Player{
		config: cfg,
		rate:   rate,
		cache:  newCueCache(rate),
		logger: logger,
		mixer:  &beep.Mixer{},
		stop:   make(chan struct{}),
	}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Start launches the backend; without one the player runs silent and Start still succeeds
func (p *Player) Start() error {
	if p.running.Load() {
		return fmt.Errorf("audio player already running")
	}
	backend, err := DetectBackend(p.config.SampleRate)
	if err != nil {
		p.logger.Info().Err(err).Msg("audio disabled")
		p.silent.Store(true)
		p.running.Store(true)
		return nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		p.logger.Warn().Err(err).Str("backend", backend.Name).Msg("audio backend failed to start")
		p.silent.Store(true)
		p.running.Store(true)
		return nil
	}
	p.cmd = cmd
	p.stdin = stdin
	p.logger.Debug().Str("backend", backend.Name).Msg("audio backend started")

	p.cache.preload()
	p.startOutput(stdin)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := cmd.Wait(); err != nil && p.running.Load() {
			p.silent.Store(true)
		}
	}()
	return nil
}

// startOutput runs the mix loop into w
func (p *Player) startOutput(w io.Writer) {
	p.running.Store(true)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.loop(w); err != nil {
			p.logger.Warn().Err(err).Msg("audio output stopped")
			p.silent.Store(true)
		}
	}()
}

func (p *Player) loop(w io.Writer) error {
	period := p.config.BufferLength
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	frames := p.rate.N(period)
	mix := make([][2]float64, frames)
	out := make([]byte, frames*4)

	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return nil
		case <-ticker.C:
			for i := range mix {
				mix[i] = [2]float64{}
			}
			p.mu.Lock()
			if p.mixer.Len() > 0 {
				p.mixer.Stream(mix)
			}
			p.mu.Unlock()

			encodePCM(mix, out)
			if _, err := w.Write(out); err != nil {
				return fmt.Errorf("%w: %v", ErrPipeClosed, err)
			}
		}
	}
}

// encodePCM converts stereo floats to interleaved int16 LE with a soft knee above 0.8
func encodePCM(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			if v > 0.8 {
				v = 0.8 + 0.2*(1-1/(1+(v-0.8)*5))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1-1/(1+(-v-0.8)*5))
			}
			v = max(-1, min(1, v))
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(v*32767)))
		}
	}
}

// Play queues a cue; false when muted, silent, stopped or saturated
func (p *Player) Play(c Cue) bool {
	if p == nil || !p.running.Load() || p.muted.Load() || p.silent.Load() {
		return false
	}
	s := p.cache.streamer(c)
	if s == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.config.MaxVoices > 0 && p.mixer.Len() >= p.config.MaxVoices {
		p.dropped.Add(1)
		return false
	}
	p.mixer.Add(newVolume(s, p.config.volume(c)))
	p.played.Add(1)
	return true
}

// SetMuted mutes or unmutes playback
func (p *Player) SetMuted(muted bool) {
	if p != nil {
		p.muted.Store(muted)
	}
}

// ToggleMute flips mute, returning true when sound is now on
func (p *Player) ToggleMute() bool {
	if p == nil {
		return false
	}
	m := !p.muted.Load()
	p.muted.Store(m)
	return !m
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	return p == nil || p.muted.Load()
}

// Silent reports that no backend is available
func (p *Player) Silent() bool {
	return p == nil || p.silent.Load()
}

// Running reports whether Start succeeded and Stop has not run
func (p *Player) Running() bool {
	return p != nil && p.running.Load()
}

// Stats returns played and dropped counts
func (p *Player) Stats() (played, dropped uint64) {
	if p == nil {
		return 0, 0
	}
	return p.played.Load(), p.dropped.Load()
}

// Stop ends output and the backend process
func (p *Player) Stop() {
	if p == nil || !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stop)
	if p.stdin != nil {
		_ = p.stdin.Close()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	p.wg.Wait()

	p.mu.Lock()
	p.mixer.Clear()
	p.mu.Unlock()
}
