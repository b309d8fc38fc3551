package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/gridpaint/internal/engine/grid"
)

// DefaultMaxEntries is used when a non-positive limit is requested.
const DefaultMaxEntries = 256

// entry wraps a snapshot with metadata.
type entry struct {
	id          string
	snapshot    grid.Snapshot
	description string
	timestamp   time.Time
}

// EntryInfo describes a history entry without exposing its snapshot.
type EntryInfo struct {
	ID          string
	Description string
	Timestamp   time.Time
}

func (e *entry) info() EntryInfo {
	return EntryInfo{
		ID:          e.id,
		Description: e.description,
		Timestamp:   e.timestamp,
	}
}

// History manages the undo/redo snapshot stacks for a grid.
//
// The top of the undo stack is always the state currently displayed; its
// bottom entry is the floor below which undo cannot go.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager holding at most maxEntries
// snapshots on the undo stack.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

func newEntry(s grid.Snapshot, description string) *entry {
	return &entry{
		id:          uuid.New().String(),
		snapshot:    s,
		description: description,
		timestamp:   time.Now(),
	}
}

// Initialize discards all history and makes s the floor state.
func (h *History) Initialize(s grid.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = []*entry{newEntry(s, "Initial state")}
	h.redoStack = nil
}

// Commit pushes a new state and clears the redo stack.
// Returns the ID assigned to the entry.
func (h *History) Commit(s grid.Snapshot, description string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := newEntry(s, description)
	h.undoStack = append(h.undoStack, e)

	// Clear redo stack
	h.redoStack = nil

	h.trimLocked()
	return e.id
}

// trimLocked drops the oldest entries beyond maxEntries.
// The oldest surviving entry becomes the new floor.
func (h *History) trimLocked() {
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo moves the current state onto the redo stack and returns the state
// beneath it. Returns false when only the floor state remains.
func (h *History) Undo() (grid.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) <= 1 {
		return grid.Snapshot{}, false
	}

	top := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, top)

	return h.undoStack[len(h.undoStack)-1].snapshot, true
}

// Redo moves the most recently undone state back onto the undo stack and
// returns it. Returns false when there is nothing to redo.
func (h *History) Redo() (grid.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return grid.Snapshot{}, false
	}

	top := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, top)

	return top.snapshot, true
}

// Current returns the state at the top of the undo stack.
func (h *History) Current() (grid.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return grid.Snapshot{}, false
	}
	return h.undoStack[len(h.undoStack)-1].snapshot, true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 1
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return 0
	}
	return len(h.undoStack) - 1
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// UndoInfo returns info about the undo stack, floor first.
func (h *History) UndoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]EntryInfo, len(h.undoStack))
	for i, e := range h.undoStack {
		result[i] = e.info()
	}
	return result
}

// RedoInfo returns info about the redo stack, oldest undone last.
func (h *History) RedoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]EntryInfo, len(h.redoStack))
	for i, e := range h.redoStack {
		result[i] = e.info()
	}
	return result
}

// PeekUndo returns info about the entry the next undo would remove.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) <= 1 {
		return EntryInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the entry the next redo would restore.
func (h *History) PeekRedo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
