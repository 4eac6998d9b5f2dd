package flows

import (
	"sync"

	"github.com/desertthunder/algox/internal/shared"
)

// State is the position of a form in its submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Machine tracks one form. The zero value is an idle form.
type Machine struct {
	mu      sync.Mutex
	state   State
	message string
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Message returns the text shown alongside the current state.
func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

// Reject records a validation failure. The form stays idle.
func (m *Machine) Reject(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSubmitting {
		return
	}
	m.state, m.message = StateIdle, msg
}

// Start moves the form to Submitting. It fails with [shared.ErrBusy] if a submission is in flight.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSubmitting {
		return shared.ErrBusy
	}
	m.state, m.message = StateSubmitting, ""
	return nil
}

// Succeed ends a submission successfully.
func (m *Machine) Succeed(msg string) {
	m.finish(StateSucceeded, msg)
}

// Fail ends a submission with a human-readable reason.
func (m *Machine) Fail(msg string) {
	m.finish(StateFailed, msg)
}

func (m *Machine) finish(s State, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateSubmitting {
		return
	}
	m.state, m.message = s, msg
}

// Edit returns a finished or rejected form to Idle and clears its message.
func (m *Machine) Edit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSubmitting {
		return
	}
	m.state, m.message = StateIdle, ""
}
