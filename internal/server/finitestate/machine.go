package finitestate

import (
	"context"
	"log/slog"

	"github.com/robbyt/go-fsm"
)

const (
	StatusNew      = fsm.StatusNew
	StatusBooting  = fsm.StatusBooting
	StatusRunning  = fsm.StatusRunning
	StatusStopping = fsm.StatusStopping
	StatusStopped  = fsm.StatusStopped
	StatusError    = fsm.StatusError
	StatusUnknown  = fsm.StatusUnknown
)

// TypicalTransitions is the lifecycle every runnable in this module follows:
// New -> Booting -> Running -> Stopping -> Stopped, with Error reachable from
// any state.
var TypicalTransitions = fsm.TypicalTransitions

// Machine tracks the lifecycle of a runnable. It is an interface so tests can
// swap the implementation.
type Machine interface {
	// Transition moves the machine to state, failing if the move is not allowed.
	Transition(state string) error

	// TransitionBool is Transition without the error detail.
	TransitionBool(state string) bool

	// TransitionIfCurrentState moves to newState only when the machine is in currentState.
	TransitionIfCurrentState(currentState, newState string) error

	// SetState forces the machine into state.
	SetState(state string) error

	// GetState returns the current state.
	GetState() string

	// GetStateChan emits the current state and every later change.
	// The channel is closed when ctx is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// New creates a state machine in StatusNew using TypicalTransitions.
func New(handler slog.Handler) (Machine, error) {
	machine, err := fsm.New(handler, StatusNew, TypicalTransitions)
	if err != nil {
		return nil, err
	}
	return machine, nil
}
