package tool

// Cell is a grid coordinate.
type Cell struct {
	Row int
	Col int
}

// gestureTracker tracks the pointer-down..pointer-up sequence in progress.
type gestureTracker struct {
	// active indicates a gesture is in progress.
	active bool

	// tool is the tool that started the gesture.
	tool Tool

	// changed indicates at least one cell changed during the gesture.
	changed bool

	// start is where the gesture started.
	start Cell

	// last is the most recent pointer position, in or out of the grid.
	last Cell
}

// begin starts a new gesture.
func (t *gestureTracker) begin(pos Cell, tool Tool) {
	t.active = true
	t.tool = tool
	t.changed = false
	t.start = pos
	t.last = pos
}

// update records the current pointer position.
func (t *gestureTracker) update(pos Cell) {
	if t.active {
		t.last = pos
	}
}

// end clears the gesture.
func (t *gestureTracker) end() {
	*t = gestureTracker{}
}

// GestureState is a read-only view of the gesture in progress.
type GestureState struct {
	Active  bool
	Tool    Tool
	Changed bool
	Start   Cell
	Last    Cell
}

func (t *gestureTracker) state() GestureState {
	return GestureState{
		Active:  t.active,
		Tool:    t.tool,
		Changed: t.changed,
		Start:   t.start,
		Last:    t.last,
	}
}

// line returns the cells from a to b inclusive using Bresenham's algorithm.
func line(a, b Cell) []Cell {
	dx := abs(b.Col - a.Col)
	dy := -abs(b.Row - a.Row)
	sx, sy := 1, 1
	if a.Col > b.Col {
		sx = -1
	}
	if a.Row > b.Row {
		sy = -1
	}
	err := dx + dy

	cells := make([]Cell, 0, max(dx, -dy)+1)
	c := a
	for {
		cells = append(cells, c)
		if c == b {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c.Col += sx
		}
		if e2 <= dx {
			err += dx
			c.Row += sy
		}
	}
	return cells
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
