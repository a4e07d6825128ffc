package animation

import (
	"context"
	"time"
)

// FrameInterval is the redraw cadence of driven animations
const FrameInterval = 16 * time.Millisecond

// Tween samples eased progress of a fixed-duration animation
type Tween struct {
	Start    time.Time
	Duration time.Duration
	Easing   Easing
}

// NewTween starts a tween at now
func NewTween(now time.Time, d time.Duration, easing Easing) Tween {
	if easing == nil {
		easing = Linear
	}
	return Tween{Start: now, Duration: d, Easing: easing}
}

// Progress returns the eased progress at now, in [0,1]
func (tw Tween) Progress(now time.Time) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(tw.Start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= tw.Duration {
		return 1
	}
	ease := tw.Easing
	if ease == nil {
		ease = Linear
	}
	return ease(float64(elapsed) / float64(tw.Duration))
}

// Done reports whether the tween has run its full duration at now
func (tw Tween) Done(now time.Time) bool {
	return now.Sub(tw.Start) >= tw.Duration
}

// Lerp interpolates between from and to
func Lerp(from, to, p float64) float64 {
	return from + (to-from)*p
}

// Drive renders a tween frame by frame until it completes, blocking the caller
// The final frame is always rendered at progress 1, also when ctx ends early
func Drive(ctx context.Context, tp TimeProvider, d time.Duration, easing Easing, frame func(p float64)) error {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	defer frame(1)

	if d <= 0 {
		return nil
	}

	tw := NewTween(tp.Now(), d, easing)
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := tp.Now()
			if tw.Done(now) {
				return nil
			}
			frame(tw.Progress(now))
		}
	}
}
