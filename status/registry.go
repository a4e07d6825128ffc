// Package status keeps process-wide counters and labels for the debug log and HUD
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Counter keys
const (
	TurnsStarted      = "turn.started"
	TurnsCompleted    = "turn.completed"
	TurnsSkipped      = "turn.skipped"
	RollFailures      = "turn.roll_failed"
	ResolveFailures   = "turn.resolve_failed"
	SubmitFailures    = "turn.submit_failed"
	Rotations         = "board.rotations"
	Relocations       = "board.relocations"
	TokenSteps        = "token.steps"
	DiceTicks         = "dice.ticks"
	PrefetchStarted   = "prefetch.started"
	PrefetchFailures  = "prefetch.failed"
	Refreshes         = "sync.refreshes"
	OutcomesShown     = "outcome.shown"
	QuestionsAnswered = "question.answered"
)

// Label keys
const (
	TurnState = "turn.state"
	LastError = "turn.last_error"
)

// Duration keys
const (
	LastTurnDuration = "turn.duration"
	LastRefresh      = "sync.duration"
)

// Registry groups the metric maps
type Registry struct {
	Counters  *MetricMap[atomic.Int64]
	Labels    *MetricMap[AtomicString]
	Durations *MetricMap[atomic.Int64]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters:  NewMetricMap[atomic.Int64](),
		Labels:    NewMetricMap[AtomicString](),
		Durations: NewMetricMap[atomic.Int64](),
	}
}

// Inc adds one to a counter; safe on a nil registry
func (r *Registry) Inc(key string) {
	if r == nil {
		return
	}
	r.Counters.Get(key).Add(1)
}

// Count returns a counter value
func (r *Registry) Count(key string) int64 {
	if r == nil {
		return 0
	}
	return r.Counters.Get(key).Load()
}

// SetLabel stores a label value
func (r *Registry) SetLabel(key, val string) {
	if r == nil {
		return
	}
	r.Labels.Get(key).Store(val)
}

// Label returns a label value
func (r *Registry) Label(key string) string {
	if r == nil {
		return ""
	}
	return r.Labels.Get(key).Load()
}

// Observe records the latest duration for key
func (r *Registry) Observe(key string, d time.Duration) {
	if r == nil {
		return
	}
	r.Durations.Get(key).Store(int64(d))
}

// Duration returns the latest duration for key
func (r *Registry) Duration(key string) time.Duration {
	if r == nil {
		return 0
	}
	return time.Duration(r.Durations.Get(key).Load())
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Labels.Count() + r.Durations.Count()
}

// Summary renders every metric as sorted key=value pairs
func (r *Registry) Summary() string {
	var b strings.Builder
	write := func(k, v string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", k, v)
	}
	r.Counters.Range(func(k string, v *atomic.Int64) {
		write(k, fmt.Sprint(v.Load()))
	})
	r.Durations.Range(func(k string, v *atomic.Int64) {
		write(k, time.Duration(v.Load()).String())
	})
	r.Labels.Range(func(k string, v *AtomicString) {
		write(k, fmt.Sprintf("%q", v.Load()))
	})
	return b.String()
}
