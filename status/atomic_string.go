package status

import "sync/atomic"

// MaxStringLen bounds stored values; longer values are truncated
const MaxStringLen = 96

// AtomicString is a lock-free string cell; the zero value holds ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
