package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gridpaint/internal/engine"
	"github.com/dshills/gridpaint/internal/engine/color"
)

// ModuleName is the global the grid functions are registered under.
const ModuleName = "grid"

// Runner executes scripts that draw on an engine.
type Runner struct {
	state  *State
	engine *engine.Engine
	maxOps int
	ops    int
}

// NewRunner creates a sandboxed state with the grid module bound to eng.
func NewRunner(eng *engine.Engine, opts ...Option) *Runner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Runner{
		state:  newState(o),
		engine: eng,
		maxOps: o.maxOps,
	}
	r.state.RegisterModule(ModuleName, r.functions())
	return r
}

// RunString executes code. name identifies the chunk in errors.
func (r *Runner) RunString(ctx context.Context, name, code string) error {
	r.ops = 0
	defer r.finish()
	return r.state.DoString(ctx, name, code)
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	r.ops = 0
	defer r.finish()
	return r.state.DoFile(ctx, path)
}

// Operations returns the number of grid calls made by the last run.
func (r *Runner) Operations() int {
	return r.ops
}

// State returns the underlying Lua state.
func (r *Runner) State() *State {
	return r.state
}

// Close releases the Lua state.
func (r *Runner) Close() error {
	return r.state.Close()
}

// finish commits a gesture the script left open, so an error mid-stroke
// still leaves one undo step.
func (r *Runner) finish() {
	if r.engine.Drawing() {
		r.engine.PointerUp()
	}
}

func (r *Runner) functions() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"tool":          r.luaTool,
		"color":         r.luaColor,
		"down":          r.luaDown,
		"move":          r.luaMove,
		"up":            r.luaUp,
		"stroke":        r.luaStroke,
		"fill":          r.luaFill,
		"clear":         r.luaClear,
		"resize":        r.luaResize,
		"undo":          r.luaUndo,
		"redo":          r.luaRedo,
		"get":           r.luaGet,
		"size":          r.luaSize,
		"current_color": r.luaCurrentColor,
		"current_tool":  r.luaCurrentTool,
	}
}

// count charges n grid operations and aborts the script past the limit.
func (r *Runner) count(L *lua.LState, n int) {
	r.ops += n
	if r.maxOps > 0 && r.ops > r.maxOps {
		r.state.fail(L, fmt.Errorf("%w (%d)", ErrOperationLimit, r.maxOps))
	}
}

func (r *Runner) luaTool(L *lua.LState) int {
	r.count(L, 1)
	if err := r.engine.SelectToolByName(L.CheckString(1)); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

func (r *Runner) luaColor(L *lua.LState) int {
	r.count(L, 1)
	c, err := color.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	r.engine.SelectColor(c)
	return 0
}

func (r *Runner) luaDown(L *lua.LState) int {
	r.count(L, 1)
	r.engine.PointerDown(L.CheckInt(1), L.CheckInt(2))
	return 0
}

func (r *Runner) luaMove(L *lua.LState) int {
	r.count(L, 1)
	r.engine.PointerMove(L.CheckInt(1), L.CheckInt(2))
	return 0
}

func (r *Runner) luaUp(L *lua.LState) int {
	r.count(L, 1)
	r.engine.PointerUp()
	return 0
}

// luaStroke draws one gesture through a list of {row, col} pairs.
func (r *Runner) luaStroke(L *lua.LState) int {
	cells := checkCells(L, 1)
	if len(cells) == 0 {
		return 0
	}
	r.count(L, len(cells))

	r.engine.PointerDown(cells[0][0], cells[0][1])
	for _, c := range cells[1:] {
		r.engine.PointerMove(c[0], c[1])
	}
	r.engine.PointerUp()
	return 0
}

// luaFill flood fills from (row, col) without changing the selected tool.
func (r *Runner) luaFill(L *lua.LState) int {
	r.count(L, 1)
	row, col := L.CheckInt(1), L.CheckInt(2)

	prev := r.engine.Tool()
	if err := r.engine.SelectTool(engine.ToolFill); err != nil {
		L.RaiseError("%s", err.Error())
	}
	r.engine.PointerDown(row, col)
	r.engine.PointerUp()
	if err := r.engine.SelectTool(prev); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (r *Runner) luaClear(L *lua.LState) int {
	r.count(L, 1)
	L.Push(lua.LBool(r.engine.ClearCanvas()))
	return 1
}

// luaResize accepts resize(n) for a square canvas or resize(rows, cols).
func (r *Runner) luaResize(L *lua.LState) int {
	r.count(L, 1)
	rows := L.CheckInt(1)
	cols := L.OptInt(2, rows)
	if err := r.engine.ResizeTo(rows, cols); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (r *Runner) luaUndo(L *lua.LState) int {
	r.count(L, 1)
	L.Push(lua.LBool(r.engine.Undo()))
	return 1
}

func (r *Runner) luaRedo(L *lua.LState) int {
	r.count(L, 1)
	L.Push(lua.LBool(r.engine.Redo()))
	return 1
}

// luaGet returns the hex color of a cell.
func (r *Runner) luaGet(L *lua.LState) int {
	r.count(L, 1)
	c, err := r.engine.At(L.CheckInt(1), L.CheckInt(2))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LString(c.Hex()))
	return 1
}

func (r *Runner) luaSize(L *lua.LState) int {
	L.Push(lua.LNumber(r.engine.Rows()))
	L.Push(lua.LNumber(r.engine.Cols()))
	return 2
}

func (r *Runner) luaCurrentColor(L *lua.LState) int {
	L.Push(lua.LString(r.engine.Color().Hex()))
	return 1
}

func (r *Runner) luaCurrentTool(L *lua.LState) int {
	L.Push(lua.LString(r.engine.Tool().String()))
	return 1
}

// checkCells reads a list of {row, col} pairs from argument n.
func checkCells(L *lua.LState, n int) [][2]int {
	tbl := L.CheckTable(n)
	cells := make([][2]int, 0, tbl.Len())

	for i := 1; i <= tbl.Len(); i++ {
		pair, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(n, fmt.Sprintf("entry %d is not a {row, col} table", i))
		}
		row, rok := pair.RawGetInt(1).(lua.LNumber)
		col, cok := pair.RawGetInt(2).(lua.LNumber)
		if !rok || !cok {
			L.ArgError(n, fmt.Sprintf("entry %d needs numeric row and col", i))
		}
		cells = append(cells, [2]int{int(row), int(col)})
	}
	return cells
}
