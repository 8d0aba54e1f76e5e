// Package insuranceform runs the patient insurance save workflow: it tracks
// the form state, detects changed fields, validates the submission and saves
// it under a per-patient double-submission guard.
package insuranceform

import (
	"fmt"
	"sync"

	"clinic-admin/pkg/apperror"
)

type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSaving     State = "saving"
	StateError      State = "error"
)

var ErrInvalidTransition = apperror.New(apperror.KindInternal, "invalid insurance form state transition")

var transitions = map[State][]State{
	StateIdle:       {StateEditing},
	StateEditing:    {StateValidating, StateIdle},
	StateValidating: {StateEditing, StateSaving},
	StateSaving:     {StateIdle, StateError},
	StateError:      {StateEditing, StateIdle},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StateManager holds the current state of one form workflow. It is safe for
// concurrent use.
type StateManager struct {
	mu      sync.Mutex
	state   State
	history []State
}

func NewStateManager() *StateManager {
	return &StateManager{state: StateIdle, history: []State{StateIdle}}
}

func (m *StateManager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Transition moves to state to, or fails with ErrInvalidTransition.
func (m *StateManager) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !CanTransition(m.state, to) {
		return ErrInvalidTransition.Wrap(fmt.Errorf("%s -> %s", m.state, to))
	}
	m.state = to
	m.history = append(m.history, to)
	return nil
}

// Reset returns to idle from editing or error.
func (m *StateManager) Reset() error {
	return m.Transition(StateIdle)
}

// History returns the visited states, oldest first.
func (m *StateManager) History() []State {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]State, len(m.history))
	copy(out, m.history)
	return out
}
