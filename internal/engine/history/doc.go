// Package history provides undo/redo functionality for the grid editor engine.
//
// History is snapshot based: every committed edit pushes a full copy of the
// grid onto the undo stack. Key concepts:
//
// # Floor State
//
// Initialize seeds the undo stack with the starting state. That entry is the
// floor; Undo never pops it:
//
//	h := history.NewHistory(256)
//	h.Initialize(g.Snapshot())
//
// # Commit
//
// Commit pushes the state after a completed edit and clears the redo stack.
// Callers commit once per user edit, not once per pixel:
//
//	h.Commit(g.Snapshot(), "Pencil")
//
// # Undo/Redo
//
// Undo and Redo return the snapshot the caller should restore:
//
//	if s, ok := h.Undo(); ok {
//	    g.Restore(s)
//	}
//
// History is linear. A commit after an undo discards every redo state.
//
// # Bounded Depth
//
// The undo stack holds at most MaxEntries snapshots. When the limit is
// exceeded the oldest entries are dropped and the oldest survivor becomes the
// new floor.
package history
