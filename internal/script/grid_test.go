package script

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/gridpaint/internal/engine"
	"github.com/dshills/gridpaint/internal/engine/color"
)

func newRunner(t *testing.T, opts ...Option) (*Runner, *engine.Engine) {
	t.Helper()
	eng, err := engine.New(engine.WithSize(4, 4), engine.WithColor(color.Black))
	if err != nil {
		t.Fatalf("engine.New() = %v", err)
	}
	r := NewRunner(eng, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r, eng
}

func run(t *testing.T, r *Runner, code string) {
	t.Helper()
	if err := r.RunString(context.Background(), "test.lua", code); err != nil {
		t.Fatalf("RunString() = %v", err)
	}
}

func at(t *testing.T, eng *engine.Engine, row, col int) color.Color {
	t.Helper()
	c, err := eng.At(row, col)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGridStroke(t *testing.T) {
	r, eng := newRunner(t)

	run(t, r, `
		grid.color("#ff0000")
		grid.stroke({{0, 0}, {0, 1}, {1, 1}})
	`)

	for _, p := range [][2]int{{0, 0}, {0, 1}, {1, 1}} {
		if got := at(t, eng, p[0], p[1]); got != color.Red {
			t.Errorf("cell %v = %v, want red", p, got)
		}
	}
	if at(t, eng, 1, 0) != color.White {
		t.Error("cell (1, 0) should be untouched")
	}
	if n := len(eng.UndoInfo()); n != 2 {
		t.Errorf("undo entries = %d, want one stroke over the initial state", n)
	}
	if r.Operations() != 4 {
		t.Errorf("Operations() = %d, want 4", r.Operations())
	}
}

func TestGridPointerCalls(t *testing.T) {
	r, eng := newRunner(t)

	run(t, r, `
		grid.down(2, 0)
		grid.move(2, 1)
		grid.move(2, 2)
		grid.up()
	`)
	if at(t, eng, 2, 2) != color.Black {
		t.Error("move should paint")
	}
	if eng.Drawing() {
		t.Error("up should end the gesture")
	}
}

func TestGridOpenStrokeCommitted(t *testing.T) {
	r, eng := newRunner(t)

	run(t, r, `grid.down(0, 0)`)
	if eng.Drawing() {
		t.Error("run should finish an open gesture")
	}
	if !eng.CanUndo() {
		t.Error("open gesture should be committed")
	}
}

func TestGridFillKeepsTool(t *testing.T) {
	r, eng := newRunner(t)

	run(t, r, `
		grid.tool("eraser")
		grid.color("blue")
		grid.fill(3, 3)
	`)
	if at(t, eng, 0, 0) != color.Blue {
		t.Error("fill should cover the blank canvas")
	}
	if eng.Tool() != engine.ToolEraser {
		t.Errorf("Tool() = %v, want eraser", eng.Tool())
	}
}

func TestGridQueries(t *testing.T) {
	var out bytes.Buffer
	r, _ := newRunner(t, WithOutput(&out))

	run(t, r, `
		grid.tool("fill")
		grid.color("#00ff00")
		grid.fill(0, 0)
		local rows, cols = grid.size()
		print(rows, cols, grid.get(1, 1), grid.current_color(), grid.current_tool())
	`)
	if got := out.String(); got != "4\t4\t#00ff00\t#00ff00\tfill\n" {
		t.Errorf("output = %q", got)
	}
}

func TestGridHistory(t *testing.T) {
	var out bytes.Buffer
	r, eng := newRunner(t, WithOutput(&out))

	run(t, r, `
		grid.stroke({{0, 0}})
		print(grid.undo(), grid.undo(), grid.redo(), grid.redo())
		print(grid.clear(), grid.clear())
	`)
	if got := out.String(); got != "true\tfalse\ttrue\tfalse\ntrue\tfalse\n" {
		t.Errorf("output = %q", got)
	}
	if at(t, eng, 0, 0) != color.White {
		t.Error("clear should reset the canvas")
	}
}

func TestGridResize(t *testing.T) {
	r, eng := newRunner(t)

	run(t, r, `grid.resize(8)`)
	if eng.Rows() != 8 || eng.Cols() != 8 {
		t.Errorf("resize(8) = %dx%d", eng.Cols(), eng.Rows())
	}

	run(t, r, `grid.resize(2, 6)`)
	if eng.Rows() != 2 || eng.Cols() != 6 {
		t.Errorf("resize(2, 6) = %dx%d", eng.Cols(), eng.Rows())
	}
}

func TestGridErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"unknown tool", `grid.tool("spray")`, "spray"},
		{"bad color", `grid.color("not-a-color")`, "not-a-color"},
		{"get out of range", `grid.get(10, 0)`, "out of range"},
		{"bad resize", `grid.resize(0)`, "dimension"},
		{"bad stroke", `grid.stroke({1, 2})`, "entry 1"},
		{"missing argument", `grid.down(1)`, "bad argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, eng := newRunner(t)

			err := r.RunString(context.Background(), "bad.lua", tt.code)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
			if eng.Rows() != 4 {
				t.Error("failed call changed the canvas")
			}
		})
	}
}

func TestGridOperationLimit(t *testing.T) {
	r, eng := newRunner(t, WithOperationLimit(10))

	err := r.RunString(context.Background(), "busy.lua", `
		for i = 1, 100 do
			pcall(grid.stroke, {{0, 0}})
		end
	`)
	if !errors.Is(err, ErrOperationLimit) {
		t.Fatalf("RunString() = %v, want ErrOperationLimit", err)
	}
	if eng.Drawing() {
		t.Error("gesture left open after abort")
	}

	// The count restarts on the next run.
	run(t, r, `grid.stroke({{1, 1}})`)
	if r.Operations() != 1 {
		t.Errorf("Operations() = %d, want 1", r.Operations())
	}
}
