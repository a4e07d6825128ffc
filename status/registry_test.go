package status

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Inc(Rotations)
			}
		}()
	}
	wg.Wait()

	if got := r.Count(Rotations); got != 800 {
		t.Errorf("count = %d, want 800", got)
	}
	if got := r.Count(Relocations); got != 0 {
		t.Errorf("untouched counter = %d, want 0", got)
	}
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	r.Inc(Rotations)
	r.SetLabel(TurnState, "Idle")
	r.Observe(LastRefresh, time.Second)
	if r.Count(Rotations) != 0 || r.Label(TurnState) != "" || r.Duration(LastRefresh) != 0 {
		t.Error("nil registry returned non-zero values")
	}
}

func TestRegistry_LabelTruncates(t *testing.T) {
	r := NewRegistry()
	r.SetLabel(LastError, strings.Repeat("x", MaxStringLen+10))
	if got := len(r.Label(LastError)); got != MaxStringLen {
		t.Errorf("label length = %d, want %d", got, MaxStringLen)
	}
}

func TestRegistry_Summary(t *testing.T) {
	r := NewRegistry()
	r.Inc(TurnsStarted)
	r.Inc(DiceTicks)
	r.Observe(LastTurnDuration, 1500*time.Millisecond)
	r.SetLabel(TurnState, "Idle")

	s := r.Summary()
	for _, want := range []string{"dice.ticks=1", "turn.started=1", "turn.duration=1.5s", `turn.state="Idle"`} {
		if !strings.Contains(s, want) {
			t.Errorf("summary %q missing %q", s, want)
		}
	}
	if strings.Index(s, "dice.ticks") > strings.Index(s, "turn.started") {
		t.Errorf("counters not sorted: %q", s)
	}
	if r.TotalCount() != 4 {
		t.Errorf("total = %d, want 4", r.TotalCount())
	}
}

func TestMetricMap_GetReturnsSamePointer(t *testing.T) {
	m := NewMetricMap[AtomicString]()
	a := m.Get("k")
	b := m.Get("k")
	if a != b {
		t.Error("Get returned different pointers for the same key")
	}
	m.Get("a")
	var keys []string
	m.Range(func(k string, _ *AtomicString) { keys = append(keys, k) })
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "k" || m.Count() != 2 {
		t.Errorf("range keys = %v, count %d", keys, m.Count())
	}
}
