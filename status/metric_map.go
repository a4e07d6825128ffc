package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap holds named metrics of type T, allocated on first lookup
type MetricMap[T any] struct {
	mu    sync.Mutex
	items map[string]*T
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key; the pointer stays valid for the registry's lifetime
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.Lock()
	defer m.mu.Unlock()
	ptr, ok := m.items[key]
	if !ok {
		ptr = new(T)
		m.items[key] = ptr
	}
	return ptr
}

// Range visits metrics in key order over a copy taken under the lock
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.Lock()
	items := maps.Clone(m.items)
	m.mu.Unlock()

	for _, k := range slices.Sorted(maps.Keys(items)) {
		fn(k, items[k])
	}
}

// Count returns the number of metrics
func (m *MetricMap[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
