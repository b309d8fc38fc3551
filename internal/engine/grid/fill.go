package grid

import "github.com/dshills/gridpaint/internal/engine/color"

type point struct {
	row, col int
}

// FloodFill repaints the 4-connected region containing (row, col) with
// replacement and returns the number of cells changed.
//
// The region is every cell reachable through up/down/left/right moves that
// holds the start cell's color. Filling with the color already present is a
// no-op. The walk uses an explicit stack, so region size is bounded only by
// the grid.
func FloodFill(g *Grid, row, col int, replacement color.Color) (int, error) {
	target, err := g.Get(row, col)
	if err != nil {
		return 0, &RangeError{Op: "fill", Row: row, Col: col, Rows: g.rows, Cols: g.cols}
	}
	if target == replacement {
		return 0, nil
	}

	changed := 0
	stack := []point{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.Contains(p.row, p.col) {
			continue
		}
		i := p.row*g.cols + p.col
		if g.cells[i] != target {
			continue
		}
		g.cells[i] = replacement
		changed++

		stack = append(stack,
			point{p.row - 1, p.col},
			point{p.row + 1, p.col},
			point{p.row, p.col - 1},
			point{p.row, p.col + 1},
		)
	}
	return changed, nil
}
