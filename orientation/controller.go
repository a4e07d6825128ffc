// Package orientation keeps the rotating board turned so the token's side faces the viewer.
//
// The controller owns the single rotation angle. It only ever turns the board counter-clockwise,
// one quarter at a time, and folds whole revolutions back into (-360, 360) after each step so the
// next animated step always takes the short path.
package orientation

import (
	"context"
	"math"
	"time"

	"github.com/lixenwraith/offerboard/animation"
	"github.com/lixenwraith/offerboard/board"
)

// QuarterTurn is the size of one rotation step in degrees
const QuarterTurn = 90

// fullTurn is one revolution in degrees
const fullTurn = 360

// DefaultStepDuration is how long one animated quarter turn takes
const DefaultStepDuration = 600 * time.Millisecond

// Surface renders the board at an angle
// Positive angles turn clockwise on screen, negative counter-clockwise
type Surface interface {
	SetAngle(deg float64)
}

// Controller owns the rotation angle of the board
type Controller struct {
	surface  Surface
	tp       animation.TimeProvider
	duration time.Duration
	easing   animation.Easing

	angle int
	steps int

	onStep func()
}

// New creates a controller facing the bottom side
// A nil surface keeps the arithmetic and skips the visuals
func New(surface Surface, duration time.Duration) *Controller {
	return &Controller{
		surface:  surface,
		tp:       animation.NewMonotonicTimeProvider(),
		duration: duration,
		easing:   animation.RotationEasing,
	}
}

// SetStepHook registers a callback fired as each animated quarter turn begins
func (c *Controller) SetStepHook(fn func()) {
	c.onStep = fn
}

// Angle returns the current angle in degrees
func (c *Controller) Angle() int {
	return c.angle
}

// Steps returns the number of animated quarter turns issued since creation
func (c *Controller) Steps() int {
	return c.steps
}

// Reset returns the board to the bottom side without animation
func (c *Controller) Reset() {
	c.angle = 0
	c.apply()
}

// Normalize folds whole revolutions out of the angle with an immediate snap
func (c *Controller) Normalize() {
	if c.angle > -fullTurn && c.angle < fullTurn {
		return
	}
	c.angle = normalizeAngle(c.angle)
	c.apply()
}

// SnapToSide turns the board to face side instantly
// Used for the first render of a session, never during a turn
func (c *Controller) SnapToSide(side board.Side) {
	c.angle = -QuarterTurn * int(side)
	c.apply()
	c.Normalize()
}

// CurrentDisplaySide derives the side facing the viewer from the angle
func (c *Controller) CurrentDisplaySide() board.Side {
	return sideForAngle(c.angle)
}

// RotateOneStepCCW animates a quarter turn counter-clockwise and blocks until it settles
// The target is exactly angle-90; normalization only happens after the animation
func (c *Controller) RotateOneStepCCW(ctx context.Context) {
	from := c.angle
	to := from - QuarterTurn
	c.steps++

	if c.onStep != nil {
		c.onStep()
	}

	if c.surface != nil {
		// Drive lands on the final frame even when cancelled, so only the settled angle matters
		_ = animation.Drive(ctx, c.tp, c.duration, c.easing, func(p float64) {
			c.surface.SetAngle(animation.Lerp(float64(from), float64(to), p))
		})
	}

	c.angle = to
	c.Normalize()
}

// RotateToSide steps counter-clockwise until target faces the viewer
// Both sides are mod-4 values, so at most three steps are issued
func (c *Controller) RotateToSide(ctx context.Context, target board.Side) int {
	target = board.Side(((int(target) % board.SideCount) + board.SideCount) % board.SideCount)
	issued := 0
	for c.CurrentDisplaySide() != target && issued < board.SideCount-1 {
		c.RotateOneStepCCW(ctx)
		issued++
	}
	return issued
}

// PlanRotationsForPath follows the token along its landing tiles
// Corners are skipped; each other landing tile whose side differs from the displayed side
// turns the board to that side before the next tile is considered
func (c *Controller) PlanRotationsForPath(ctx context.Context, start int, path []int) int {
	seq := make([]int, 0, len(path)+1)
	seq = append(seq, start)
	seq = append(seq, path...)

	issued := 0
	for _, tile := range seq[1:] {
		if board.IsCorner(tile) {
			continue
		}
		if side := board.SideOf(tile); side != c.CurrentDisplaySide() {
			issued += c.RotateToSide(ctx, side)
		}
	}
	return issued
}

func (c *Controller) apply() {
	if c.surface != nil {
		c.surface.SetAngle(float64(c.angle))
	}
}

func normalizeAngle(a int) int {
	k := int(math.Round(float64(a) / fullTurn))
	return a - k*fullTurn
}

func sideForAngle(a int) board.Side {
	steps := int(math.Round(float64(-a) / QuarterTurn))
	return board.Side(((steps % board.SideCount) + board.SideCount) % board.SideCount)
}
