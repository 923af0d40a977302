package door

import (
	"errors"
	"fmt"
)

// ErrIllegalState is returned when a transition is not allowed in the
// door's current state.
var ErrIllegalState = errors.New("illegal door state")

// TransitionError describes a rejected transition.
type TransitionError struct {
	// Op is the attempted operation ("lock" or "unlock").
	Op string

	// State is the state the door was in when Op was attempted.
	State State
}

func (e *TransitionError) Error() string {
	switch e.Op {
	case opUnlock:
		return fmt.Sprintf("%s: double unlock (door is %s)", ErrIllegalState, e.State)
	case opLock:
		return fmt.Sprintf("%s: double lock (door is %s)", ErrIllegalState, e.State)
	default:
		return fmt.Sprintf("%s: %s while %s", ErrIllegalState, e.Op, e.State)
	}
}

// Unwrap returns ErrIllegalState.
func (e *TransitionError) Unwrap() error {
	return ErrIllegalState
}
