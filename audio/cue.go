// Package audio plays short synthesized cues for dice, token hops, board turns and outcomes.
//
// Cues are synthesized with beep streamers, mixed, and piped as raw PCM to whatever
// command-line player the host provides. Without one the player runs silent.
package audio

import (
	"errors"
	"strings"
)

// Cue is one sound effect
type Cue int

const (
	CueDiceTick Cue = iota
	CueTokenStep
	CueRotate
	CueSuccess
	CueWarning
	CueError
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueDiceTick:
		return "dice"
	case CueTokenStep:
		return "step"
	case CueRotate:
		return "rotate"
	case CueSuccess:
		return "success"
	case CueWarning:
		return "warning"
	case CueError:
		return "error"
	default:
		return "unknown"
	}
}

// CueForOutcome maps an outcome kind onto its chime
func CueForOutcome(kind string) Cue {
	switch strings.ToLower(kind) {
	case "success":
		return CueSuccess
	case "error":
		return CueError
	default:
		return CueWarning
	}
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)
