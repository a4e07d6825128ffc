package turn

import (
	"errors"
	"fmt"
	"sync"
)

// State is a phase of the turn lifecycle
type State uint8

const (
	Idle State = iota
	Rolling
	Animating
	AwaitingResolve
	PendingQuestion
	ResolveFailed
)

var stateNames = [...]string{
	Idle:            "Idle",
	Rolling:         "Rolling",
	Animating:       "Animating",
	AwaitingResolve: "AwaitingResolve",
	PendingQuestion: "PendingQuestion",
	ResolveFailed:   "ResolveFailed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

var (
	ErrInvalidTransition = errors.New("invalid turn state transition")
	ErrTurnInFlight      = errors.New("turn already in flight")
	ErrOutcomeShowing    = errors.New("outcome not dismissed")
	ErrQuestionPending   = errors.New("question pending")
	ErrNoQuestion        = errors.New("no question pending")
	ErrGameOver          = errors.New("no turns left")
	ErrNotSynced         = errors.New("board not synced with the engine")
)

// transitions lists the legal successor states
// Rolling returns to Idle on a skipped or failed roll; Idle enters PendingQuestion on resume
var transitions = map[State][]State{
	Idle:            {Rolling, PendingQuestion},
	Rolling:         {Animating, Idle},
	Animating:       {AwaitingResolve},
	AwaitingResolve: {PendingQuestion, Idle, ResolveFailed},
	ResolveFailed:   {AwaitingResolve},
	PendingQuestion: {Idle},
}

// CanTransition reports whether from -> to is in the table
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine holds the current state and enforces the transition table
type Machine struct {
	mu       sync.Mutex
	state    State
	onChange func(from, to State)
}

// NewMachine creates a machine in Idle
func NewMachine() *Machine {
	return &Machine{}
}

// OnChange registers a callback fired after every state change
func (m *Machine) OnChange(fn func(from, to State)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// State returns the current state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Transition moves to the next state or returns ErrInvalidTransition
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	from := m.state
	if !CanTransition(from, to) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.state = to
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(from, to)
	}
	return nil
}

// Reset returns to Idle from any state; used when a new game starts
func (m *Machine) Reset() {
	m.mu.Lock()
	from := m.state
	m.state = Idle
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil && from != Idle {
		fn(from, Idle)
	}
}
