package turn

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/offerboard/network"
	"github.com/lixenwraith/offerboard/orientation"
)

// Session is the per-game client state: rotation, cached snapshot, first-render flag
type Session struct {
	Orientation *orientation.Controller

	mu          sync.RWMutex
	id          string
	snapshot    *network.Snapshot
	initialized bool
}

// NewSession creates a session with a fresh correlation id
func NewSession(ctrl *orientation.Controller) *Session {
	if ctrl == nil {
		ctrl = orientation.New(nil, 0)
	}
	return &Session{
		Orientation: ctrl,
		id:          uuid.NewString(),
	}
}

// ID returns the correlation id of the current game
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Snapshot returns the last fetched snapshot, nil before the first refresh
func (s *Session) Snapshot() *network.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Initialized reports whether the board was snapped to the token's side this session
func (s *Session) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Reset starts a new game: new id, angle back to zero, cache and first-render flag cleared
func (s *Session) Reset() {
	s.mu.Lock()
	s.id = uuid.NewString()
	s.snapshot = nil
	s.initialized = false
	s.mu.Unlock()

	s.Orientation.Reset()
}

func (s *Session) store(snap *network.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// markInitialized sets the first-render flag and reports whether it was already set
func (s *Session) markInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.initialized
	s.initialized = true
	return was
}
