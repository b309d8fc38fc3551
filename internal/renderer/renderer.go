package renderer

import (
	"sync"
	"time"

	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/engine/history"
	"github.com/dshills/gridpaint/internal/engine/tool"
	"github.com/dshills/gridpaint/internal/renderer/backend"
	"github.com/dshills/gridpaint/internal/renderer/core"
	"github.com/dshills/gridpaint/internal/renderer/statusline"
)

// Canvas provides read access to the editor state being drawn.
// This interface abstracts the engine for rendering.
type Canvas interface {
	// Rows and Cols return the grid dimensions.
	Rows() int
	Cols() int

	// Scale returns display units per cell side.
	Scale() int

	// ExportPixels returns a row-major copy of the grid.
	ExportPixels() [][]color.Color

	// CellAt maps display coordinates to a cell.
	CellAt(x, y int) (row, col int, ok bool)

	// Tool and Color describe the active tool state.
	Tool() tool.Tool
	Color() color.Color

	// NextUndo and NextRedo describe the entries undo and redo would apply.
	NextUndo() (history.EntryInfo, bool)
	NextRedo() (history.EntryInfo, bool)
}

// Options configures the renderer.
type Options struct {
	// CellWidth is the number of terminal columns per display unit.
	// Terminal cells are roughly twice as tall as wide, so 2 keeps grid
	// cells square.
	CellWidth int

	// ShowStatus reserves the bottom row for the status line.
	ShowStatus bool

	// Backdrop is drawn where the viewport extends past the canvas.
	Backdrop rune

	// MaxFPS limits how often Render draws.
	MaxFPS int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		CellWidth:  2,
		ShowStatus: true,
		Backdrop:   '·',
		MaxFPS:     60,
	}
}

// Renderer is the main rendering facade.
// It draws the canvas through a panned viewport and the status line below it.
type Renderer struct {
	mu sync.RWMutex

	// Configuration
	opts Options

	// Backend and screen
	backend backend.Backend
	width   int
	height  int

	// Content provider
	canvas Canvas

	// Components
	view   viewport
	status *statusline.StatusLine

	// Frame timing
	lastFrame    time.Time
	minFrameTime time.Duration
	frameCount   uint64
	needsRedraw  bool
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.CellWidth < 1 {
		opts.CellWidth = 1
	}
	if opts.MaxFPS < 1 {
		opts.MaxFPS = DefaultOptions().MaxFPS
	}
	width, height := b.Size()

	r := &Renderer{
		opts:         opts,
		backend:      b,
		width:        width,
		height:       height,
		status:       statusline.New(),
		minFrameTime: time.Second / time.Duration(opts.MaxFPS),
		needsRedraw:  true,
	}

	// Register resize handler
	b.OnResize(func(w, h int) {
		r.Resize(w, h)
	})

	return r
}

// SetCanvas sets the canvas to draw.
func (r *Renderer) SetCanvas(c Canvas) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.canvas = c
	r.view = viewport{}
	r.needsRedraw = true
}

// Resize handles terminal resize events.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height
	r.needsRedraw = true
}

// MarkDirty marks the renderer as needing a redraw.
func (r *Renderer) MarkDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsRedraw = true
}

// NeedsRedraw returns true if the renderer needs to redraw.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.needsRedraw
}

// SetMessage shows a message in the status line until replaced or cleared.
func (r *Renderer) SetMessage(msg string, msgType statusline.MessageType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.SetMessage(msg, msgType)
	r.needsRedraw = true
}

// ClearMessage removes the status message.
func (r *Renderer) ClearMessage() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.ClearMessage()
	r.needsRedraw = true
}

// Message returns the status message.
func (r *Renderer) Message() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msg, _ := r.status.Message()
	return msg
}

// Pan scrolls the viewport by whole grid cells.
func (r *Renderer) Pan(dCols, dRows int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.canvas == nil {
		return
	}
	cw, ch := r.cellSizeLocked()
	r.view.x += dCols * cw
	r.view.y += dRows * ch
	r.clampLocked()
	r.needsRedraw = true
}

// Offset returns the viewport origin in terminal cells.
func (r *Renderer) Offset() (x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clampLocked()
	return r.view.x, r.view.y
}

// CanvasRect returns the screen area the canvas is drawn in.
func (r *Renderer) CanvasRect() core.ScreenRect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.canvasRectLocked()
}

// CellAt maps a terminal position to a grid cell. ok is false when the
// position is on the status line or outside the canvas.
func (r *Renderer) CellAt(x, y int) (row, col int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.canvas == nil || !r.canvasRectLocked().Contains(x, y) {
		return 0, 0, false
	}
	r.clampLocked()
	dx, dy := r.view.toDisplay(x, y, r.opts.CellWidth)
	return r.canvas.CellAt(dx, dy)
}

// Render performs a render cycle if anything changed.
// Respects frame rate limiting. Returns true if a frame was drawn.
func (r *Renderer) Render() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Frame rate limiting
	now := time.Now()
	if now.Sub(r.lastFrame) < r.minFrameTime {
		return false
	}
	if !r.needsRedraw {
		return false
	}
	r.lastFrame = now

	r.render()
	r.needsRedraw = false
	r.frameCount++
	return true
}

// RenderNow performs an immediate render, ignoring frame rate limiting.
func (r *Renderer) RenderNow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.render()
	r.needsRedraw = false
	r.frameCount++
	r.lastFrame = time.Now()
}

// render performs the actual rendering (must hold lock).
func (r *Renderer) render() {
	if r.canvas == nil {
		r.renderEmpty()
		return
	}

	r.clampLocked()
	r.renderCanvas()
	if r.opts.ShowStatus && r.height > 0 {
		r.renderStatus()
	}
	r.backend.Show()
}

// renderEmpty renders when there's no canvas.
func (r *Renderer) renderEmpty() {
	r.backend.Clear()
	r.backend.HideCursor()
	r.backend.Show()
}

// renderCanvas draws every screen cell of the canvas area from one pixel
// snapshot.
func (r *Renderer) renderCanvas() {
	pixels := r.canvas.ExportPixels()
	cw, ch := r.cellSizeLocked()
	area := r.canvasRectLocked()
	backdrop := core.NewStyledCell(r.opts.Backdrop, core.DefaultStyle().WithAttributes(core.AttrDim))

	for y := area.Top; y < area.Bottom; y++ {
		row := (y + r.view.y) / ch
		for x := area.Left; x < area.Right; x++ {
			col := (x + r.view.x) / cw
			if row >= len(pixels) || col >= len(pixels[row]) {
				r.backend.SetCell(x, y, backdrop)
				continue
			}
			r.backend.SetCell(x, y, pixelCell(pixels[row][col]))
		}
	}
}

func (r *Renderer) renderStatus() {
	c := r.canvas.Color()
	r.status.SetTool(r.canvas.Tool().String())
	r.status.SetColor(TerminalColor(c), ContrastColor(c), c.Hex())
	r.status.SetCanvas(r.canvas.Rows(), r.canvas.Cols(), r.canvas.Scale())

	var undo, redo string
	if info, ok := r.canvas.NextUndo(); ok {
		undo = info.Description
	}
	if info, ok := r.canvas.NextRedo(); ok {
		redo = info.Description
	}
	r.status.SetHistory(undo, redo)
	r.status.Render(r.backend, r.height-r.status.Height(), r.width)
}

// cellSizeLocked returns the terminal size of one grid cell.
func (r *Renderer) cellSizeLocked() (w, h int) {
	scale := max(r.canvas.Scale(), 1)
	return scale * r.opts.CellWidth, scale
}

func (r *Renderer) canvasRectLocked() core.ScreenRect {
	h := r.height
	if r.opts.ShowStatus {
		h -= r.status.Height()
	}
	return core.RectFromSize(0, 0, max(h, 0), r.width)
}

// clampLocked keeps the viewport inside the canvas after zoom, resize or
// pan changes.
func (r *Renderer) clampLocked() {
	if r.canvas == nil {
		return
	}
	cw, ch := r.cellSizeLocked()
	area := r.canvasRectLocked()
	r.view.clamp(r.canvas.Cols()*cw, r.canvas.Rows()*ch, area.Width(), area.Height())
}

// FrameCount returns the number of frames drawn.
func (r *Renderer) FrameCount() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frameCount
}

// Size returns the terminal size.
func (r *Renderer) Size() (width, height int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opts
}
