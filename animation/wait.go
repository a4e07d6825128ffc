package animation

import (
	"context"
	"time"
)

// TransitionSlack is added to every expected transition duration before the fallback fires
const TransitionSlack = 120 * time.Millisecond

// WaitTransition blocks until done closes or the fallback timer fires
// The fallback is expected+TransitionSlack so a lost completion signal never stalls a turn
// Returns true when the completion signal arrived; a nil channel waits for the fallback only
func WaitTransition(ctx context.Context, done <-chan struct{}, expected time.Duration) (bool, error) {
	timer := time.NewTimer(expected + TransitionSlack)
	defer timer.Stop()

	select {
	case <-done:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Sleep is a pacing delay that ends early with ctx
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Closed returns an already-closed completion channel for instant transitions
func Closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
