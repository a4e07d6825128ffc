// Package token moves the player's marker between tiles.
package token

import (
	"context"
	"time"

	"github.com/lixenwraith/offerboard/animation"
)

// DefaultStepDuration is the transition time of one hop between tiles
const DefaultStepDuration = 260 * time.Millisecond

// Point is a position in board units, (0,0) at the top-left of the unrotated grid
type Point struct {
	X, Y float64
}

// Stage is the visual surface the marker lives on
type Stage interface {
	// Anchor returns the visual centre of a tile; false when the tile is not rendered
	Anchor(tile int) (Point, bool)
	// PlaceToken moves the marker to p over transition; zero places it immediately
	// The returned channel closes when the transition ends
	PlaceToken(p Point, transition time.Duration) <-chan struct{}
	// ShowToken toggles marker visibility
	ShowToken(show bool)
}

// Animator places and walks the marker
type Animator struct {
	stage      Stage
	transition time.Duration

	tile    int
	visible bool

	onStep func(tile int)
}

// New creates an animator whose non-instant moves use transition
func New(stage Stage, transition time.Duration) *Animator {
	return &Animator{
		stage:      stage,
		transition: transition,
		visible:    true,
	}
}

// SetStepHook registers a callback fired after each walked hop settles
func (a *Animator) SetStepHook(fn func(tile int)) {
	a.onStep = fn
}

// Tile returns the tile the marker was last placed on
func (a *Animator) Tile() int {
	return a.tile
}

// Visible reports the last requested visibility
func (a *Animator) Visible() bool {
	return a.visible
}

// MoveTo places the marker on a tile
// Instant moves bypass the transition for this call only; later moves animate again
// Returns a completion channel, nil when the tile has no anchor
func (a *Animator) MoveTo(tile int, instant bool) <-chan struct{} {
	d := a.transition
	if instant {
		d = 0
	}
	return a.place(tile, d)
}

// Walk visits every tile of path in order, one settled hop at a time
// Each hop waits for its transition to end, or for step plus slack when the signal never comes
func (a *Animator) Walk(ctx context.Context, path []int, step time.Duration) error {
	for _, tile := range path {
		done := a.place(tile, step)
		if done == nil {
			continue
		}
		if _, err := animation.WaitTransition(ctx, done, step); err != nil {
			return err
		}
		if a.onStep != nil {
			a.onStep(tile)
		}
	}
	return nil
}

// SetVisible shows or hides the marker
func (a *Animator) SetVisible(show bool) {
	a.visible = show
	if a.stage != nil {
		a.stage.ShowToken(show)
	}
}

func (a *Animator) place(tile int, d time.Duration) <-chan struct{} {
	if a.stage == nil {
		return nil
	}
	p, ok := a.stage.Anchor(tile)
	if !ok {
		return nil
	}
	a.tile = tile
	return a.stage.PlaceToken(p, d)
}
