package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/engine/grid"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func countColor(e *Engine, c Color) int {
	n := 0
	for _, row := range e.ExportPixels() {
		for _, px := range row {
			if px == c {
				n++
			}
		}
	}
	return n
}

func mustAt(t *testing.T, e *Engine, row, col int) Color {
	t.Helper()
	c, err := e.At(row, col)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", row, col, err)
	}
	return c
}

// stroke performs a full pencil-style gesture over the given cells.
func stroke(e *Engine, cells ...[2]int) {
	if len(cells) == 0 {
		return
	}
	e.PointerDown(cells[0][0], cells[0][1])
	for _, c := range cells[1:] {
		e.PointerMove(c[0], c[1])
	}
	e.PointerUp()
}

// ============================================================================
// Construction
// ============================================================================

func TestNew(t *testing.T) {
	e := newEngine(t)
	if e.Rows() != DefaultSize || e.Cols() != DefaultSize {
		t.Errorf("size = %dx%d, want %dx%d", e.Rows(), e.Cols(), DefaultSize, DefaultSize)
	}
	if e.Tool() != ToolPencil {
		t.Errorf("tool = %v, want pencil", e.Tool())
	}
	if e.Color() != color.Black {
		t.Errorf("color = %v, want black", e.Color())
	}
	if countColor(e, color.White) != DefaultSize*DefaultSize {
		t.Error("new grid should be all background")
	}
	if e.CanUndo() || e.CanRedo() {
		t.Error("new engine should have nothing to undo or redo")
	}
	if got := len(e.UndoInfo()); got != 1 {
		t.Errorf("undo stack = %d entries, want floor only", got)
	}
}

func TestNewOptions(t *testing.T) {
	e := newEngine(t,
		WithSize(3, 5),
		WithBackground(color.Blue),
		WithColor(color.Red),
		WithScale(8),
	)
	if e.Rows() != 3 || e.Cols() != 5 {
		t.Errorf("size = %dx%d, want 3x5", e.Rows(), e.Cols())
	}
	if e.Background() != color.Blue || mustAt(t, e, 2, 4) != color.Blue {
		t.Error("background option not applied")
	}
	if e.Color() != color.Red {
		t.Errorf("color = %v, want red", e.Color())
	}
	if e.Scale() != 8 {
		t.Errorf("scale = %d, want 8", e.Scale())
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero rows", []Option{WithSize(0, 4)}},
		{"negative cols", []Option{WithSize(4, -1)}},
		{"over limit", []Option{WithMaxDimension(16), WithSize(17, 4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("New error = %v, want ErrInvalidDimension", err)
			}
		})
	}

	if _, err := New(WithScaleLimits(10, 2)); err == nil {
		t.Error("inverted scale limits should fail")
	}
}

// ============================================================================
// Gestures
// ============================================================================

func TestPencilStrokeUndoRedo(t *testing.T) {
	e := newEngine(t, WithSize(4, 4))

	stroke(e, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})

	for col := 0; col < 4; col++ {
		if mustAt(t, e, 0, col) != color.Black {
			t.Errorf("(0,%d) not black", col)
		}
	}
	if got := len(e.UndoInfo()); got != 2 {
		t.Fatalf("undo stack = %d, want 2 (one commit per stroke)", got)
	}
	if got := e.UndoInfo()[1].Description; got != "Pencil" {
		t.Errorf("description = %q, want Pencil", got)
	}

	if !e.Undo() {
		t.Fatal("Undo should succeed")
	}
	if countColor(e, color.White) != 16 {
		t.Error("undo should return to all white")
	}

	if !e.Redo() {
		t.Fatal("Redo should succeed")
	}
	if countColor(e, color.Black) != 4 {
		t.Errorf("redo restored %d black cells, want 4", countColor(e, color.Black))
	}
}

func TestEyedropperThenDraw(t *testing.T) {
	e := newEngine(t, WithSize(4, 4), WithColor(color.Black))
	stroke(e, [2]int{0, 0})
	e.SelectColor(color.Red)

	if err := e.SelectTool(ToolEyedropper); err != nil {
		t.Fatal(err)
	}
	e.PointerDown(0, 0)
	e.PointerUp()

	if e.Color() != color.Black {
		t.Errorf("picked color = %v, want black", e.Color())
	}
	if e.Tool() != ToolPencil {
		t.Errorf("tool = %v, want pencil after eyedropper", e.Tool())
	}
	if got := len(e.UndoInfo()); got != 2 {
		t.Errorf("eyedropper committed: undo stack = %d", got)
	}

	stroke(e, [2]int{3, 3})
	if mustAt(t, e, 3, 3) != color.Black {
		t.Error("pencil should draw with the picked color")
	}
}

func TestEraser(t *testing.T) {
	e := newEngine(t, WithSize(2, 2), WithColor(color.Red))
	stroke(e, [2]int{0, 0}, [2]int{0, 1})

	if err := e.SelectToolByName("eraser"); err != nil {
		t.Fatal(err)
	}
	stroke(e, [2]int{0, 0})
	if mustAt(t, e, 0, 0) != color.White {
		t.Error("eraser should paint background")
	}
	if mustAt(t, e, 0, 1) != color.Red {
		t.Error("eraser touched an unvisited cell")
	}
	if got := len(e.UndoInfo()); got != 3 {
		t.Errorf("undo stack = %d, want 3", got)
	}
}

func TestFillUniformNoCommit(t *testing.T) {
	e := newEngine(t, WithSize(3, 3), WithColor(color.White))
	_ = e.SelectTool(ToolFill)

	e.PointerDown(1, 1)
	e.PointerUp()

	if e.CanUndo() {
		t.Error("fill with the existing color should not commit")
	}
	if countColor(e, color.White) != 9 {
		t.Error("fill with the existing color should not change the grid")
	}
}

func TestFillCommit(t *testing.T) {
	e := newEngine(t, WithSize(3, 3), WithColor(color.Green))
	_ = e.SelectTool(ToolFill)

	e.PointerDown(0, 0)
	e.PointerMove(1, 1)
	e.PointerUp()

	if countColor(e, color.Green) != 9 {
		t.Errorf("fill painted %d cells, want 9", countColor(e, color.Green))
	}
	if got := len(e.UndoInfo()); got != 2 {
		t.Errorf("undo stack = %d, want 2", got)
	}
	e.Undo()
	if countColor(e, color.White) != 9 {
		t.Error("undo should revert the fill")
	}
}

func TestGestureWithoutChangeNoCommit(t *testing.T) {
	e := newEngine(t, WithSize(3, 3))
	stroke(e, [2]int{1, 1})
	stroke(e, [2]int{1, 1})
	if got := len(e.UndoInfo()); got != 2 {
		t.Errorf("repainting the same color committed: undo stack = %d", got)
	}
}

func TestPointerUpReportsCommit(t *testing.T) {
	tests := []struct {
		name  string
		tool  Tool
		cells [][2]int
		want  bool
	}{
		{"pencil paints", ToolPencil, [][2]int{{0, 0}, {0, 1}}, true},
		{"pencil on same color", ToolPencil, [][2]int{{2, 2}}, false},
		{"eraser on blank", ToolEraser, [][2]int{{1, 1}}, false},
		{"fill commits at down", ToolFill, [][2]int{{1, 1}}, false},
		{"eyedropper", ToolEyedropper, [][2]int{{0, 0}, {1, 1}}, false},
		{"outside canvas", ToolPencil, [][2]int{{-1, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, WithSize(3, 3))
			stroke(e, [2]int{2, 2})
			if err := e.SelectTool(tt.tool); err != nil {
				t.Fatal(err)
			}

			e.PointerDown(tt.cells[0][0], tt.cells[0][1])
			for _, c := range tt.cells[1:] {
				e.PointerMove(c[0], c[1])
			}
			if got := e.PointerUp(); got != tt.want {
				t.Errorf("PointerUp() = %v, want %v", got, tt.want)
			}
		})
	}

	e := newEngine(t, WithSize(2, 2))
	if e.PointerUp() {
		t.Error("PointerUp() without a gesture should report false")
	}
}

func TestOutOfRangeIgnored(t *testing.T) {
	e := newEngine(t, WithSize(3, 3))
	stroke(e, [2]int{-1, 0}, [2]int{3, 3}, [2]int{0, 99})
	if e.CanUndo() {
		t.Error("out-of-range gesture should not commit")
	}
	if _, err := e.At(3, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("At out of range error = %v", err)
	}
}

func TestPointerDownFinishesGesture(t *testing.T) {
	e := newEngine(t, WithSize(3, 3))
	e.PointerDown(0, 0)
	e.PointerDown(2, 2)
	e.PointerUp()
	if got := len(e.UndoInfo()); got != 3 {
		t.Errorf("undo stack = %d, want 3 (two gestures)", got)
	}
}

func TestUndoDuringGesture(t *testing.T) {
	e := newEngine(t, WithSize(3, 3))
	e.PointerDown(0, 0)
	e.PointerMove(0, 1)

	if !e.Undo() {
		t.Fatal("Undo should finish the gesture and undo it")
	}
	if e.Drawing() {
		t.Error("gesture should be finished")
	}
	if countColor(e, color.White) != 9 {
		t.Error("gesture was not undone")
	}
	if !e.CanRedo() {
		t.Error("undone gesture should be redoable")
	}
}

// ============================================================================
// History
// ============================================================================

func TestUndoAtFloor(t *testing.T) {
	e := newEngine(t, WithSize(2, 2))
	if e.Undo() {
		t.Error("Undo at the floor should be a no-op")
	}
	if e.Redo() {
		t.Error("Redo with empty redo stack should be a no-op")
	}
}

func TestNewCommitClearsRedo(t *testing.T) {
	e := newEngine(t, WithSize(3, 3))
	stroke(e, [2]int{0, 0})
	e.Undo()
	stroke(e, [2]int{1, 1})

	if e.Redo() {
		t.Error("redo should be cleared by a new commit")
	}
	if mustAt(t, e, 0, 0) != color.White || mustAt(t, e, 1, 1) != color.Black {
		t.Error("unexpected grid after commit/undo/commit")
	}
}

func TestMaxUndoEntries(t *testing.T) {
	e := newEngine(t, WithSize(1, 5), WithMaxUndoEntries(3))
	for col := 0; col < 5; col++ {
		stroke(e, [2]int{0, col})
	}
	if got := len(e.UndoInfo()); got != 3 {
		t.Fatalf("undo stack = %d, want 3", got)
	}
	for e.Undo() {
	}
	// The oldest surviving entry is the new floor.
	if countColor(e, color.Black) != 3 {
		t.Errorf("floor has %d black cells, want 3", countColor(e, color.Black))
	}
}

// ============================================================================
// Canvas Commands
// ============================================================================

func TestClearCanvas(t *testing.T) {
	e := newEngine(t, WithSize(3, 3))
	if e.ClearCanvas() {
		t.Error("clearing a blank canvas should not commit")
	}

	stroke(e, [2]int{1, 1})
	if !e.ClearCanvas() {
		t.Fatal("ClearCanvas should commit")
	}
	if countColor(e, color.White) != 9 {
		t.Error("canvas not cleared")
	}
	if got := e.UndoInfo()[len(e.UndoInfo())-1].Description; got != "Clear" {
		t.Errorf("description = %q, want Clear", got)
	}
	e.Undo()
	if mustAt(t, e, 1, 1) != color.Black {
		t.Error("undo should restore the cleared stroke")
	}
}

func TestResizeDiscardsHistory(t *testing.T) {
	e := newEngine(t, WithSize(4, 4))
	stroke(e, [2]int{0, 0}, [2]int{1, 1})

	if err := e.Resize(2); err != nil {
		t.Fatal(err)
	}
	if e.Rows() != 2 || e.Cols() != 2 {
		t.Errorf("size = %dx%d, want 2x2", e.Rows(), e.Cols())
	}
	if countColor(e, color.White) != 4 {
		t.Error("resized grid should be all background")
	}
	if e.Undo() {
		t.Error("undo after resize should be a no-op")
	}
	if got := len(e.UndoInfo()); got != 1 {
		t.Errorf("undo stack = %d, want 1", got)
	}
}

func TestResizeInvalid(t *testing.T) {
	e := newEngine(t, WithSize(4, 4), WithMaxDimension(8))
	stroke(e, [2]int{0, 0})

	for _, n := range []int{0, -3, 9} {
		if err := e.Resize(n); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Resize(%d) error = %v", n, err)
		}
	}
	if e.Rows() != 4 || mustAt(t, e, 0, 0) != color.Black || !e.CanUndo() {
		t.Error("rejected resize changed the editor")
	}
}

func TestResizeDuringStroke(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		wantErr  bool
		wantRows int
	}{
		{"accepted", 6, false, 6},
		{"over limit", 4500, true, 4},
		{"zero", 0, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, WithSize(4, 4), WithMaxDimension(5000))
			e.PointerDown(1, 1)

			err := e.ResizeTo(tt.rows, 4)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResizeTo(%d, 4) error = %v, wantErr %v", tt.rows, err, tt.wantErr)
			}
			if e.Rows() != tt.wantRows {
				t.Errorf("Rows() = %d, want %d", e.Rows(), tt.wantRows)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimension) {
					t.Errorf("error = %v, want ErrInvalidDimension", err)
				}
				// The rejected resize leaves the stroke running.
				if !e.Drawing() {
					t.Fatal("rejected resize ended the gesture")
				}
				e.PointerUp()
				if mustAt(t, e, 1, 1) != color.Black || !e.CanUndo() {
					t.Error("stroke should commit on release")
				}
				if !e.Undo() || mustAt(t, e, 1, 1) != color.White {
					t.Error("undo should restore the cell painted before the rejected resize")
				}
				return
			}

			if e.Drawing() {
				t.Error("resize should finish the gesture")
			}
			if countColor(e, color.White) != 24 || e.CanUndo() {
				t.Error("resized grid should be blank with no undo history")
			}
		})
	}
}

func TestMaxDimensionClamped(t *testing.T) {
	e := newEngine(t, WithSize(2, 2), WithMaxDimension(grid.MaxDimension*2))
	if err := e.ResizeTo(grid.MaxDimension+1, 1); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("ResizeTo above grid limit error = %v", err)
	}
	if e.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", e.Rows())
	}
}

func TestResizeTo(t *testing.T) {
	e := newEngine(t, WithSize(2, 2))
	if err := e.ResizeTo(3, 7); err != nil {
		t.Fatal(err)
	}
	if e.Rows() != 3 || e.Cols() != 7 {
		t.Errorf("size = %dx%d, want 3x7", e.Rows(), e.Cols())
	}
}

// ============================================================================
// View
// ============================================================================

func TestZoom(t *testing.T) {
	e := newEngine(t, WithSize(2, 2), WithScaleLimits(1, 4))
	stroke(e, [2]int{0, 0})
	before := e.Snapshot()

	tests := []struct {
		delta int
		want  int
	}{
		{1, 2},
		{1, 3},
		{5, 4},
		{-1, 3},
		{-10, 1},
		{-1, 1},
	}
	for _, tt := range tests {
		if got := e.Zoom(tt.delta); got != tt.want {
			t.Errorf("Zoom(%d) = %d, want %d", tt.delta, got, tt.want)
		}
	}
	if !e.Snapshot().Equal(before) {
		t.Error("zoom changed grid content")
	}
	if got := len(e.UndoInfo()); got != 2 {
		t.Errorf("zoom touched history: undo stack = %d", got)
	}
}

func TestCellAt(t *testing.T) {
	e := newEngine(t, WithSize(4, 4), WithScale(10))

	tests := []struct {
		x, y     int
		row, col int
		ok       bool
	}{
		{0, 0, 0, 0, true},
		{9, 9, 0, 0, true},
		{10, 25, 2, 1, true},
		{39, 39, 3, 3, true},
		{40, 0, 0, 4, false},
		{-1, 5, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d,%d", tt.x, tt.y), func(t *testing.T) {
			row, col, ok := e.CellAt(tt.x, tt.y)
			if ok != tt.ok || (ok && (row != tt.row || col != tt.col)) {
				t.Errorf("CellAt = (%d,%d,%v), want (%d,%d,%v)", row, col, ok, tt.row, tt.col, tt.ok)
			}
		})
	}
}

func TestSelectToolErrors(t *testing.T) {
	e := newEngine(t)
	if err := e.SelectToolByName("spray"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("SelectToolByName error = %v", err)
	}
	if err := e.SelectTool(Tool(99)); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("SelectTool error = %v", err)
	}
}

// ============================================================================
// Concurrency
// ============================================================================

func TestConcurrentAccess(t *testing.T) {
	e := newEngine(t, WithSize(16, 16))
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			for col := 0; col < 16; col++ {
				e.PointerDown(row, col)
				e.PointerUp()
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.Snapshot()
				_ = e.CanUndo()
				_, _, _ = e.CellAt(j, j)
			}
		}()
	}
	wg.Wait()

	if countColor(e, color.Black) != 64 {
		t.Errorf("black cells = %d, want 64", countColor(e, color.Black))
	}
}
