package grid

import (
	"errors"
	"fmt"
)

// Errors returned by grid operations.
var (
	// ErrOutOfRange indicates cell coordinates outside the grid extent.
	ErrOutOfRange = errors.New("cell out of range")

	// ErrDimensionMismatch indicates a snapshot does not match the grid size.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidDimension indicates a non-positive or oversized dimension.
	ErrInvalidDimension = errors.New("invalid dimension")
)

// RangeError reports an access outside the grid.
type RangeError struct {
	Op         string // Operation name (e.g., "get", "set", "fill")
	Row, Col   int    // Requested cell
	Rows, Cols int    // Grid extent at the time of the call
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s (%d,%d): %v for %dx%d grid", e.Op, e.Row, e.Col, ErrOutOfRange, e.Rows, e.Cols)
}

// Unwrap returns ErrOutOfRange so errors.Is matches the sentinel.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
