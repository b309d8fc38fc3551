package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/engine/grid"
	"github.com/dshills/gridpaint/internal/engine/history"
	"github.com/dshills/gridpaint/internal/engine/tool"
)

// Re-export commonly used types for convenience.
type (
	// Color is an RGB cell color.
	Color = color.Color

	// Tool identifies a drawing tool.
	Tool = tool.Tool

	// Snapshot is an immutable copy of the grid content.
	Snapshot = grid.Snapshot

	// EntryInfo describes a history entry.
	EntryInfo = history.EntryInfo
)

// Re-export constants.
const (
	ToolPencil     = tool.Pencil
	ToolEraser     = tool.Eraser
	ToolFill       = tool.Fill
	ToolEyedropper = tool.Eyedropper
)

// Logger is the logging surface the engine needs.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Engine is the grid editor facade. It combines the pixel grid, the tool
// controller and the undo/redo history behind the operations a shell drives.
//
// Outside a gesture the grid always equals the top of the undo stack.
// All operations are safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	// Core components
	grid    *grid.Grid
	history *history.History
	tools   *tool.Controller

	// View
	scale    int
	minScale int
	maxScale int

	// Configuration
	rows           int
	cols           int
	background     color.Color
	ink            color.Color
	maxUndoEntries int
	maxDimension   int
	interpolate    bool
	logger         Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		scale:          DefaultScale,
		minScale:       DefaultMinScale,
		maxScale:       DefaultMaxScale,
		rows:           DefaultSize,
		cols:           DefaultSize,
		background:     color.White,
		ink:            color.Black,
		maxUndoEntries: DefaultMaxUndoEntries,
		maxDimension:   DefaultMaxDimension,
		logger:         nopLogger{},
	}

	// Apply options to get configuration
	for _, opt := range opts {
		opt(e)
	}

	if err := e.checkDimensions(e.rows, e.cols); err != nil {
		return nil, err
	}
	if e.minScale > e.maxScale {
		return nil, fmt.Errorf("scale limits %d..%d are inverted", e.minScale, e.maxScale)
	}
	e.scale = clampInt(e.scale, e.minScale, e.maxScale)

	g, err := grid.New(e.rows, e.cols, e.background)
	if err != nil {
		return nil, err
	}
	e.grid = g

	e.tools = tool.NewController(
		tool.WithColor(e.ink),
		tool.WithBackground(e.background),
		tool.WithInterpolation(e.interpolate),
	)

	e.history = history.NewHistory(e.maxUndoEntries)
	e.history.Initialize(e.grid.Snapshot())

	return e, nil
}

func (e *Engine) checkDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 || rows > e.maxDimension || cols > e.maxDimension {
		return fmt.Errorf("%w: %dx%d (limit %d)", ErrInvalidDimension, rows, cols, e.maxDimension)
	}
	return nil
}

// ============================================================================
// Tool and Color Selection
// ============================================================================

// SelectTool changes the active tool.
func (e *Engine) SelectTool(t Tool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tools.SelectTool(t)
}

// SelectToolByName changes the active tool by name ("pencil", "fill", ...).
func (e *Engine) SelectToolByName(name string) error {
	t, err := tool.Parse(name)
	if err != nil {
		return err
	}
	return e.SelectTool(t)
}

// SelectColor changes the drawing color.
func (e *Engine) SelectColor(c Color) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tools.SetColor(c)
}

// Tool returns the active tool.
func (e *Engine) Tool() Tool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tools.Tool()
}

// Color returns the drawing color.
func (e *Engine) Color() Color {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tools.Color()
}

// Background returns the background color used by the eraser, clear and resize.
func (e *Engine) Background() Color {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.background
}

// ============================================================================
// Gestures
// ============================================================================

// PointerDown starts a gesture at (row, col). A gesture still in progress is
// finished first.
func (e *Engine) PointerDown(row, col int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.finishGestureLocked()
	e.applyLocked(e.tools.Down(e.grid, row, col))
}

// PointerMove continues the gesture at (row, col).
func (e *Engine) PointerMove(row, col int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.applyLocked(e.tools.Move(e.grid, row, col))
}

// PointerUp ends the gesture and reports whether it committed a pencil or
// eraser stroke. Fill commits at PointerDown, so its release reports false.
func (e *Engine) PointerUp() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.applyLocked(e.tools.Up())
}

// Drawing reports whether a gesture is in progress.
func (e *Engine) Drawing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tools.Drawing()
}

// finishGestureLocked ends a gesture in progress, committing its changes.
func (e *Engine) finishGestureLocked() {
	if e.tools.Drawing() {
		e.applyLocked(e.tools.Up())
	}
}

func (e *Engine) applyLocked(r tool.Result) bool {
	if r.Picked {
		e.logger.Debug("picked color %s", e.tools.Color())
	}
	if r.Commit {
		e.commitLocked(r.Description)
	}
	return r.Commit
}

func (e *Engine) commitLocked(description string) {
	id := e.history.Commit(e.grid.Snapshot(), description)
	e.logger.Debug("commit %s %s (undo depth %d)", description, id, e.history.UndoCount())
}

// ============================================================================
// Canvas Commands
// ============================================================================

// ClearCanvas sets every cell to the background color and commits.
// Returns false, committing nothing, if the canvas was already blank.
func (e *Engine) ClearCanvas() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.finishGestureLocked()
	if e.grid.Count(e.background) == e.grid.Rows()*e.grid.Cols() {
		return false
	}
	e.grid.Clear(e.background)
	e.commitLocked("Clear")
	return true
}

// Resize starts a new size x size canvas. See ResizeTo.
func (e *Engine) Resize(size int) error {
	return e.ResizeTo(size, size)
}

// ResizeTo replaces the canvas with a blank rows x cols grid and resets
// history to that single state. An active gesture is committed first.
// Invalid dimensions are rejected and leave the editor unchanged, including
// a gesture in progress.
func (e *Engine) ResizeTo(rows, cols int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkDimensions(rows, cols); err != nil {
		return err
	}
	e.finishGestureLocked()
	if err := e.grid.Resize(rows, cols, e.background); err != nil {
		return err
	}
	e.history.Initialize(e.grid.Snapshot())
	e.logger.Debug("resize to %dx%d", rows, cols)
	return nil
}

// Rows returns the number of grid rows.
func (e *Engine) Rows() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Rows()
}

// Cols returns the number of grid columns.
func (e *Engine) Cols() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Cols()
}

// At returns the color of one cell.
func (e *Engine) At(row, col int) (Color, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Get(row, col)
}

// Snapshot returns a copy of the current grid content.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Snapshot()
}

// ExportPixels returns the grid content row-major for an external encoder.
func (e *Engine) ExportPixels() [][]Color {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Pixels()
}

// ============================================================================
// View
// ============================================================================

// Zoom changes the display scale by delta, clamped to the configured limits,
// and returns the new scale. Grid content is untouched.
func (e *Engine) Zoom(delta int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scale = clampInt(e.scale+delta, e.minScale, e.maxScale)
	return e.scale
}

// Scale returns the display units per cell.
func (e *Engine) Scale() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scale
}

// CellAt maps display coordinates to a cell using the current scale.
// ok is false when the point falls outside the grid.
func (e *Engine) CellAt(x, y int) (row, col int, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/e.scale, x/e.scale
	return row, col, e.grid.Contains(row, col)
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo restores the previous state. Returns false at the floor state.
// A gesture in progress is finished first.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.finishGestureLocked()
	s, ok := e.history.Undo()
	if !ok {
		return false
	}
	return e.restoreLocked(s, "undo")
}

// Redo restores the most recently undone state. Returns false when there is
// nothing to redo.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.finishGestureLocked()
	s, ok := e.history.Redo()
	if !ok {
		return false
	}
	return e.restoreLocked(s, "redo")
}

func (e *Engine) restoreLocked(s Snapshot, op string) bool {
	// History is reset on every resize, so a mismatch means a broken invariant.
	if err := e.grid.Restore(s); err != nil {
		e.logger.Debug("%s: %v", op, err)
		e.history.Initialize(e.grid.Snapshot())
		return false
	}
	e.logger.Debug("%s (undo %d, redo %d)", op, e.history.UndoCount(), e.history.RedoCount())
	return true
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoInfo describes the undo stack, floor first.
func (e *Engine) UndoInfo() []EntryInfo {
	return e.history.UndoInfo()
}

// RedoInfo describes the redo stack.
func (e *Engine) RedoInfo() []EntryInfo {
	return e.history.RedoInfo()
}

// NextUndo describes the entry the next Undo would revert.
func (e *Engine) NextUndo() (EntryInfo, bool) {
	return e.history.PeekUndo()
}

// NextRedo describes the entry the next Redo would restore.
func (e *Engine) NextRedo() (EntryInfo, bool) {
	return e.history.PeekRedo()
}

// SetMaxUndoEntries changes the history depth limit.
func (e *Engine) SetMaxUndoEntries(n int) {
	e.history.SetMaxEntries(n)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
