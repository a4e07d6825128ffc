// Package animation holds the timing primitives shared by every animated phase of a turn:
// time sources, easing curves, tweens and transition waits with timeout fallback.
package animation

import "time"

// TimeProvider supplies the clock used to sample animation progress
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
