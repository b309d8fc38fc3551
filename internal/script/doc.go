// Package script runs Lua drawing scripts against an editor engine.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table, string
// and math libraries are opened, file loading functions are removed and
// require only resolves those built-in modules. Each run is bounded by a
// timeout and by a limit on the number of grid operations. A script that
// leaves a stroke open has it committed when the run ends.
//
// # The grid module
//
// A global table named grid drives the engine the same way a pointer does.
// Coordinates are zero-based (row, col) like the engine's:
//
//	grid.tool("pencil")
//	grid.color("#ff0000")
//	grid.stroke({{0, 0}, {0, 1}, {1, 1}})
//	grid.fill(4, 4)
//	print(grid.get(0, 0), grid.size())
//
// Available functions: tool, color, down, move, up, stroke, fill, clear,
// resize, undo, redo, get, size, current_color and current_tool.
//
// # Running
//
//	r := script.NewRunner(eng, script.WithOutput(os.Stderr))
//	defer r.Close()
//
//	if err := r.RunFile(ctx, "art.lua"); err != nil {
//	    return err
//	}
package script
