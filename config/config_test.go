package config

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/offerboard/render"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "http://127.0.0.1:8000" {
		t.Errorf("server = %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.DiceSpin != 750*time.Millisecond {
		t.Errorf("timings = %v, %v", cfg.RequestTimeout, cfg.DiceSpin)
	}
	if cfg.Debug || cfg.Mute {
		t.Error("debug and mute should default off")
	}
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("OFFERBOARD_SERVER", "http://engine:9000/")
	t.Setenv("OFFERBOARD_COLOR", "256")
	t.Setenv("OFFERBOARD_STEP", "100ms")

	cfg, err := Load("test", []string{"-color", "truecolor", "-mute", "-debug"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ColorMode() != render.ColorTrue {
		t.Errorf("flag should override env color, got %q", cfg.Color)
	}
	if cfg.Step != 100*time.Millisecond {
		t.Errorf("env step lost: %v", cfg.Step)
	}
	if !cfg.Mute || !cfg.Debug {
		t.Error("boolean flags not applied")
	}
	if got := cfg.Network().BaseURL; got != "http://engine:9000" {
		t.Errorf("base url = %q", got)
	}
	if cfg.Audio().Enabled {
		t.Error("mute should disable audio")
	}
	if tm := cfg.Timing(); tm.Step != 100*time.Millisecond || tm.Spin != 750*time.Millisecond {
		t.Errorf("timing = %+v", tm)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := [][]string{
		{"-server", "ftp://engine"},
		{"-server", "not a url"},
		{"-color", "sepia"},
		{"-timeout", "0s"},
		{"-volume", "1.5"},
		{"-step", "-1s"},
	}
	for _, args := range cases {
		_, err := Load("test", args)
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%v: err = %v, want ErrInvalid", args, err)
		}
	}

	if _, err := Load("test", []string{"-nope"}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("OFFERBOARD_REQUEST_TIMEOUT", "soon")
	if _, err := Load("test", nil); err == nil {
		t.Error("unparseable env accepted")
	}
}

func TestRotationStep(t *testing.T) {
	c := &Config{}
	if c.RotationStep() <= 0 {
		t.Error("zero rotation should fall back to the default")
	}
	c.Rotation = time.Second
	if c.RotationStep() != time.Second {
		t.Errorf("rotation = %v", c.RotationStep())
	}
}
