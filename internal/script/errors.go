package script

import (
	"errors"
	"fmt"
)

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("script timed out")

	// ErrOperationLimit is returned when a script makes too many grid calls.
	ErrOperationLimit = errors.New("script operation limit exceeded")
)

// Error reports a failure inside a named script.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
