// Package dice plays the cosmetic dice spin that settles on the engine's faces.
package dice

import (
	"context"
	"math/rand/v2"
	"time"
)

// Faces on a standard die
const (
	MinFace = 1
	MaxFace = 6
)

// TickInterval is how often transient faces change during a spin
const TickInterval = 90 * time.Millisecond

// DefaultSpinDuration is the length of a spin before it settles
const DefaultSpinDuration = 750 * time.Millisecond

// Display shows dice faces
type Display interface {
	ShowDice(faces []int)
	HideDice()
}

// Animator spins dice on a display
type Animator struct {
	display Display
	tick    time.Duration
	rng     *rand.Rand

	onTick func()
}

// New creates an animator with a time-seeded random source
func New(display Display) *Animator {
	seed := uint64(time.Now().UnixNano())
	return NewWithSource(display, rand.NewPCG(seed, seed>>1|1))
}

// NewWithSource creates an animator with a fixed random source
func NewWithSource(display Display, src rand.Source) *Animator {
	return &Animator{
		display: display,
		tick:    TickInterval,
		rng:     rand.New(src),
	}
}

// SetTickHook registers a callback fired on every transient face change
func (a *Animator) SetTickHook(fn func()) {
	a.onTick = fn
}

// Spin shows random faces every tick for d, then settles exactly on faces
// The settle always happens once, also when ctx ends the spin early
// Local randomness is cosmetic; the returned faces are the given ones
func (a *Animator) Spin(ctx context.Context, d time.Duration, faces []int) []int {
	final := append([]int(nil), faces...)
	if len(final) == 0 {
		final = []int{MinFace}
	}
	defer a.show(final)

	if d <= 0 {
		return final
	}

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()
	expiry := time.NewTimer(d)
	defer expiry.Stop()

	a.show(a.transient(len(final)))
	for {
		select {
		case <-ctx.Done():
			return final
		case <-expiry.C:
			return final
		case <-ticker.C:
			a.show(a.transient(len(final)))
			if a.onTick != nil {
				a.onTick()
			}
		}
	}
}

// Hide removes the dice from the display
func (a *Animator) Hide() {
	if a.display != nil {
		a.display.HideDice()
	}
}

func (a *Animator) transient(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = MinFace + a.rng.IntN(MaxFace-MinFace+1)
	}
	return out
}

func (a *Animator) show(faces []int) {
	if a.display != nil {
		a.display.ShowDice(faces)
	}
}
