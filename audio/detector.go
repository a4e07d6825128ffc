package audio

import (
	"os/exec"
	"strconv"
)

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
)

// BackendConfig describes a command-line PCM sink reading s16le stereo from stdin
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// DetectBackend finds a player for raw PCM at the given rate
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay
func DetectBackend(rate int) (*BackendConfig, error) {
	r := strconv.Itoa(rate)
	candidates := []BackendConfig{
		{Type: BackendPulse, Name: "pacat", Args: []string{
			"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback",
		}},
		{Type: BackendPipeWire, Name: "pw-cat", Args: []string{
			"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-",
		}},
		{Type: BackendALSA, Name: "aplay", Args: []string{
			"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q",
		}},
		{Type: BackendSoX, Name: "play", Args: []string{
			"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q",
		}},
		{Type: BackendFFplay, Name: "ffplay", Args: []string{
			"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet",
		}},
	}
	for _, c := range candidates {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		c.Path = path
		return &c, nil
	}
	return nil, ErrNoAudioBackend
}
