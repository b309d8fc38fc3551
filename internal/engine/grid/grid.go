// Package grid provides the pixel buffer edited by the engine: a fixed-extent
// matrix of colors with point access, bulk clear, snapshots and flood fill.
package grid

import (
	"fmt"

	"github.com/dshills/gridpaint/internal/engine/color"
)

// MaxDimension is the largest row or column count a grid accepts.
const MaxDimension = 4096

// Grid is a rows x cols matrix of colors stored row-major.
// Every cell always holds a color.
//
// Grid is not safe for concurrent use; the engine serializes access.
type Grid struct {
	rows  int
	cols  int
	cells []color.Color
}

// New creates a rows x cols grid with every cell set to background.
func New(rows, cols int, background color.Color) (*Grid, error) {
	if err := checkDimensions(rows, cols); err != nil {
		return nil, err
	}
	g := &Grid{}
	g.reset(rows, cols, background)
	return g, nil
}

func checkDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 || rows > MaxDimension || cols > MaxDimension {
		return fmt.Errorf("%w: %dx%d (limit %d)", ErrInvalidDimension, rows, cols, MaxDimension)
	}
	return nil
}

func (g *Grid) reset(rows, cols int, background color.Color) {
	g.rows = rows
	g.cols = cols
	g.cells = make([]color.Color, rows*cols)
	for i := range g.cells {
		g.cells[i] = background
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Contains reports whether (row, col) is inside the grid.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns the color at (row, col).
func (g *Grid) Get(row, col int) (color.Color, error) {
	if !g.Contains(row, col) {
		return color.Color{}, g.rangeError("get", row, col)
	}
	return g.cells[row*g.cols+col], nil
}

// Set overwrites the color at (row, col). No other cell is touched.
func (g *Grid) Set(row, col int, c color.Color) error {
	if !g.Contains(row, col) {
		return g.rangeError("set", row, col)
	}
	g.cells[row*g.cols+col] = c
	return nil
}

// Clear sets every cell to background.
func (g *Grid) Clear(background color.Color) {
	for i := range g.cells {
		g.cells[i] = background
	}
}

// Resize replaces the grid with a fresh rows x cols grid filled with background.
// Prior content is discarded. Invalid dimensions leave the grid unchanged.
func (g *Grid) Resize(rows, cols int, background color.Color) error {
	if err := checkDimensions(rows, cols); err != nil {
		return err
	}
	g.reset(rows, cols, background)
	return nil
}

// Count returns how many cells hold c.
func (g *Grid) Count(c color.Color) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Pixels returns a row-major copy of the grid content.
func (g *Grid) Pixels() [][]color.Color {
	out := make([][]color.Color, g.rows)
	for r := range out {
		row := make([]color.Color, g.cols)
		copy(row, g.cells[r*g.cols:(r+1)*g.cols])
		out[r] = row
	}
	return out
}

func (g *Grid) rangeError(op string, row, col int) error {
	return &RangeError{Op: op, Row: row, Col: col, Rows: g.rows, Cols: g.cols}
}
