// Package config loads client settings from the environment, then command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/offerboard/audio"
	"github.com/lixenwraith/offerboard/network"
	"github.com/lixenwraith/offerboard/orientation"
	"github.com/lixenwraith/offerboard/render"
	"github.com/lixenwraith/offerboard/turn"
)

// ErrInvalid marks a setting that fails validation
var ErrInvalid = errors.New("invalid config")

// Config holds every client setting
type Config struct {
	ServerURL       string        `env:"OFFERBOARD_SERVER" envDefault:"http://127.0.0.1:8000"`
	RequestTimeout  time.Duration `env:"OFFERBOARD_REQUEST_TIMEOUT" envDefault:"30s"`
	PrefetchTimeout time.Duration `env:"OFFERBOARD_PREFETCH_TIMEOUT" envDefault:"60s"`

	Debug bool   `env:"OFFERBOARD_DEBUG"`
	Color string `env:"OFFERBOARD_COLOR" envDefault:"auto"`
	Theme string `env:"OFFERBOARD_THEME"`

	Mute   bool    `env:"OFFERBOARD_MUTE"`
	Volume float64 `env:"OFFERBOARD_VOLUME" envDefault:"0.5"`

	DiceSpin time.Duration `env:"OFFERBOARD_DICE_SPIN" envDefault:"750ms"`
	Pause    time.Duration `env:"OFFERBOARD_PAUSE" envDefault:"450ms"`
	Step     time.Duration `env:"OFFERBOARD_STEP" envDefault:"260ms"`
	Rotation time.Duration `env:"OFFERBOARD_ROTATION" envDefault:"600ms"`
}

// Load reads the environment, applies flags from args and validates the result
func Load(name string, args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterFlags binds flags whose defaults are the current values
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ServerURL, "server", c.ServerURL, "Rules engine base URL")
	fs.DurationVar(&c.RequestTimeout, "timeout", c.RequestTimeout, "Per-request timeout")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Write a debug log under logs/")
	fs.StringVar(&c.Color, "color", c.Color, "Color mode: auto, truecolor, 256")
	fs.StringVar(&c.Theme, "theme", c.Theme, "YAML theme file")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "Start with sound muted")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "Master volume 0..1")
	fs.DurationVar(&c.DiceSpin, "dice", c.DiceSpin, "Dice spin duration")
	fs.DurationVar(&c.Pause, "pause", c.Pause, "Pause between dice and walk")
	fs.DurationVar(&c.Step, "step", c.Step, "Token hop duration")
	fs.DurationVar(&c.Rotation, "rotation", c.Rotation, "Quarter-turn duration")
}

// Validate checks ranges and formats
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.ServerURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server %q must be an http(s) URL", ErrInvalid, c.ServerURL)
	}
	if _, err := render.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.RequestTimeout <= 0 || c.PrefetchTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalid)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume %v outside 0..1", ErrInvalid, c.Volume)
	}
	for name, d := range map[string]time.Duration{
		"dice": c.DiceSpin, "pause": c.Pause, "step": c.Step, "rotation": c.Rotation,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s duration %v is negative", ErrInvalid, name, d)
		}
	}
	return nil
}

// ColorMode returns the parsed color mode
func (c *Config) ColorMode() render.ColorMode {
	m, _ := render.ParseColorMode(c.Color)
	return m
}

// Network returns the engine connection settings
func (c *Config) Network() *network.Config {
	n := network.DefaultConfig()
	n.BaseURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	n.RequestTimeout = c.RequestTimeout
	n.PrefetchTimeout = c.PrefetchTimeout
	return n
}

// Audio returns the playback settings
func (c *Config) Audio() *audio.Config {
	a := audio.DefaultConfig()
	a.Enabled = !c.Mute
	a.MasterVolume = c.Volume
	return a
}

// Timing returns the turn pacing
func (c *Config) Timing() turn.Timing {
	return turn.Timing{Spin: c.DiceSpin, Pause: c.Pause, Step: c.Step}
}

// RotationStep returns the quarter-turn duration, falling back to the default when unset
func (c *Config) RotationStep() time.Duration {
	if c.Rotation <= 0 {
		return orientation.DefaultStepDuration
	}
	return c.Rotation
}
