package grid

import (
	"fmt"

	"github.com/dshills/gridpaint/internal/engine/color"
)

// Snapshot is an immutable copy of grid content at one instant.
// The zero Snapshot is empty (0x0).
type Snapshot struct {
	rows  int
	cols  int
	cells []color.Color
}

// Snapshot returns an independent copy of the grid content.
// Later mutations of the grid never affect the snapshot.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]color.Color, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{rows: g.rows, cols: g.cols, cells: cells}
}

// Restore overwrites every cell from s.
// Returns ErrDimensionMismatch, leaving the grid untouched, if sizes differ.
func (g *Grid) Restore(s Snapshot) error {
	if s.rows != g.rows || s.cols != g.cols {
		return fmt.Errorf("%w: snapshot %dx%d, grid %dx%d", ErrDimensionMismatch, s.rows, s.cols, g.rows, g.cols)
	}
	copy(g.cells, s.cells)
	return nil
}

// Rows returns the number of rows captured.
func (s Snapshot) Rows() int { return s.rows }

// Cols returns the number of columns captured.
func (s Snapshot) Cols() int { return s.cols }

// IsZero reports whether the snapshot holds no cells.
func (s Snapshot) IsZero() bool { return len(s.cells) == 0 }

// At returns the captured color at (row, col).
func (s Snapshot) At(row, col int) (color.Color, error) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return color.Color{}, &RangeError{Op: "snapshot", Row: row, Col: col, Rows: s.rows, Cols: s.cols}
	}
	return s.cells[row*s.cols+col], nil
}

// Equal reports whether two snapshots hold the same dimensions and colors.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.rows != other.rows || s.cols != other.cols {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Pixels returns a row-major copy of the captured content.
func (s Snapshot) Pixels() [][]color.Color {
	out := make([][]color.Color, s.rows)
	for r := range out {
		row := make([]color.Color, s.cols)
		copy(row, s.cells[r*s.cols:(r+1)*s.cols])
		out[r] = row
	}
	return out
}
