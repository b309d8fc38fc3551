// Package engine provides the core grid editor for gridpaint.
//
// The engine package serves as the main facade, combining the pixel grid,
// the drawing tools and undo/redo history into a single thread-safe API that
// a display shell (terminal, script runner, test) drives with pointer events.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - color: RGB colors, parsing and palettes
//   - grid: the fixed-size cell grid, snapshots and flood fill
//   - history: snapshot-based undo/redo stacks
//   - tool: tool selection and gesture handling
//
// # Basic Usage
//
//	e, _ := engine.New(engine.WithSize(4, 4))
//
//	// Draw a stroke across the top row
//	e.PointerDown(0, 0)
//	e.PointerMove(0, 1)
//	e.PointerMove(0, 2)
//	e.PointerUp() // one history entry for the whole stroke
//
//	e.Undo() // grid is blank again
//	e.Redo() // stroke restored
//
// # Gestures and History
//
// Pencil and eraser paint on pointer down and every move, and commit once on
// pointer up if any cell changed. Fill commits on pointer down. The
// eyedropper copies the clicked cell into the drawing color, switches to the
// pencil and never commits. Coordinates outside the grid are ignored.
//
// Outside a gesture the grid always equals the newest undo entry. Undo never
// removes the floor entry, so undoing at the initial state is a no-op.
//
// # Resize and Zoom
//
// Resize discards the canvas and history and starts a blank grid. Zoom only
// changes the display scale used by CellAt.
//
// # Error Handling
//
//   - ErrOutOfRange: cell coordinates outside the grid
//   - ErrInvalidDimension: rejected grid size
//   - ErrDimensionMismatch: snapshot does not fit the grid
//   - ErrUnknownTool: unrecognized tool
package engine
