package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// cueCache renders each cue once and replays it from memory
type cueCache struct {
	mu     sync.Mutex
	format beep.Format
	store  [cueCount]*beep.Buffer
}

func newCueCache(rate beep.SampleRate) *cueCache {
	return &cueCache{format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}}
}

// streamer returns a new reader over the rendered cue, nil for unknown cues
func (c *cueCache) streamer(cue Cue) beep.Streamer {
	if cue < 0 || cue >= cueCount {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := c.store[cue]
	if buf == nil {
		buf = beep.NewBuffer(c.format)
		buf.Append(Synthesize(cue, c.format.SampleRate))
		c.store[cue] = buf
	}
	return buf.Streamer(0, buf.Len())
}

// preload renders every cue
func (c *cueCache) preload() {
	for cue := Cue(0); cue < cueCount; cue++ {
		c.streamer(cue)
	}
}
