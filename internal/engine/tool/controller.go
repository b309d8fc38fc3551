package tool

import (
	"fmt"

	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/engine/grid"
)

// Result reports the effect of one pointer event.
type Result struct {
	// Changed is the number of cells this event repainted.
	Changed int

	// Commit is set when a completed edit should be committed to history.
	Commit bool

	// Description names the committed edit.
	Description string

	// Picked is set when the eyedropper replaced the current color.
	Picked bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithColor sets the initial drawing color.
func WithColor(c color.Color) Option {
	return func(ctl *Controller) {
		ctl.color = c
	}
}

// WithBackground sets the color written by the eraser.
func WithBackground(c color.Color) Option {
	return func(ctl *Controller) {
		ctl.background = c
	}
}

// WithInterpolation makes pencil and eraser paint every cell on the straight
// line between consecutive pointer positions instead of only the cells
// reported.
func WithInterpolation(on bool) Option {
	return func(ctl *Controller) {
		ctl.interpolate = on
	}
}

// Controller selects tools and applies gestures to a grid.
//
// Controller is not safe for concurrent use; the engine serializes access.
type Controller struct {
	tool        Tool
	color       color.Color
	background  color.Color
	interpolate bool

	gesture gestureTracker
}

// NewController creates a controller with the pencil selected, black ink and
// a white background.
func NewController(opts ...Option) *Controller {
	ctl := &Controller{
		tool:       Pencil,
		color:      color.Black,
		background: color.White,
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl
}

// Tool returns the selected tool.
func (c *Controller) Tool() Tool { return c.tool }

// Color returns the drawing color.
func (c *Controller) Color() color.Color { return c.color }

// Background returns the eraser color.
func (c *Controller) Background() color.Color { return c.background }

// Drawing reports whether a gesture is in progress.
func (c *Controller) Drawing() bool { return c.gesture.active }

// Gesture returns the state of the gesture in progress.
func (c *Controller) Gesture() GestureState { return c.gesture.state() }

// SelectTool changes the selected tool. A gesture in progress keeps the tool
// it started with.
func (c *Controller) SelectTool(t Tool) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownTool, int(t))
	}
	c.tool = t
	return nil
}

// SetColor changes the drawing color.
func (c *Controller) SetColor(col color.Color) {
	c.color = col
}

// SetBackground changes the eraser color.
func (c *Controller) SetBackground(col color.Color) {
	c.background = col
}

// Down starts a gesture at (row, col).
//
// Pencil and eraser paint the cell. Fill repaints the region and asks for a
// commit if anything changed. Eyedropper picks the cell color and switches
// back to the pencil. Coordinates outside g are ignored, but the gesture still
// starts so a later move into the grid paints.
func (c *Controller) Down(g *grid.Grid, row, col int) Result {
	pos := Cell{Row: row, Col: col}
	c.gesture.begin(pos, c.tool)

	if !g.Contains(row, col) {
		return Result{}
	}

	switch c.gesture.tool {
	case Pencil, Eraser:
		n := c.paint(g, pos)
		return Result{Changed: n}

	case Fill:
		n, err := grid.FloodFill(g, row, col, c.color)
		if err != nil || n == 0 {
			return Result{}
		}
		c.gesture.changed = true
		return Result{Changed: n, Commit: true, Description: "Fill"}

	case Eyedropper:
		picked, err := g.Get(row, col)
		if err != nil {
			return Result{}
		}
		c.color = picked
		c.tool = Pencil
		return Result{Picked: true}
	}
	return Result{}
}

// Move continues the gesture at (row, col). Only pencil and eraser gestures
// react to movement.
func (c *Controller) Move(g *grid.Grid, row, col int) Result {
	if !c.gesture.active {
		return Result{}
	}
	pos := Cell{Row: row, Col: col}
	prev := c.gesture.last
	c.gesture.update(pos)

	if !c.gesture.tool.continuous() {
		return Result{}
	}

	if !c.interpolate {
		if !g.Contains(row, col) {
			return Result{}
		}
		return Result{Changed: c.paint(g, pos)}
	}

	n := 0
	for _, cell := range line(prev, pos) {
		if g.Contains(cell.Row, cell.Col) {
			n += c.paint(g, cell)
		}
	}
	return Result{Changed: n}
}

// Up ends the gesture. A pencil or eraser gesture that changed at least one
// cell asks for exactly one commit.
func (c *Controller) Up() Result {
	if !c.gesture.active {
		return Result{}
	}
	st := c.gesture
	c.gesture.end()

	if st.tool.continuous() && st.changed {
		return Result{Commit: true, Description: describe(st.tool)}
	}
	return Result{}
}

// paint writes the gesture's ink into one in-range cell and returns 1 if the
// cell changed.
func (c *Controller) paint(g *grid.Grid, pos Cell) int {
	ink := c.color
	if c.gesture.tool == Eraser {
		ink = c.background
	}
	cur, err := g.Get(pos.Row, pos.Col)
	if err != nil || cur == ink {
		return 0
	}
	if err := g.Set(pos.Row, pos.Col, ink); err != nil {
		return 0
	}
	c.gesture.changed = true
	return 1
}

func describe(t Tool) string {
	switch t {
	case Pencil:
		return "Pencil"
	case Eraser:
		return "Eraser"
	case Fill:
		return "Fill"
	default:
		return t.String()
	}
}
