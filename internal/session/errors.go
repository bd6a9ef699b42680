package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference is returned for an unknown exercise id or an out-of-range index.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidState is returned when an event is not allowed in the current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrEmptySession signals that a delete left the session without exercises. The session
	// is terminated without being recorded.
	ErrEmptySession = errors.New("session has no exercises left")

	ErrDiscardsCompleted = fmt.Errorf("%w: resize would discard completed sets", ErrInvalidState)
	ErrSessionActive     = fmt.Errorf("%w: a session is already in progress", ErrInvalidState)
	ErrNoActiveSession   = fmt.Errorf("%w: no active session", ErrInvalidState)
	ErrSessionOver       = fmt.Errorf("%w: session is over", ErrInvalidState)
	ErrTransitioning     = fmt.Errorf("%w: moving to the next exercise", ErrInvalidState)
	ErrClosed            = fmt.Errorf("%w: engine closed", ErrInvalidState)
)

func unknownExercise(id string) error {
	return fmt.Errorf("%w: unknown exercise %q", ErrInvalidReference, id)
}

func setOutOfRange(name string, idx, n int) error {
	return fmt.Errorf("%w: set %d out of range for %q (%d sets)", ErrInvalidReference, idx, name, n)
}
