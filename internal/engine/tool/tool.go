// Package tool interprets pointer gestures as grid edits.
//
// A Controller holds the selected tool, the drawing color and the state of
// the gesture in progress. It mutates a grid directly and tells its caller
// when a completed edit should be committed to history.
package tool

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTool indicates a tool name or value that is not recognized.
var ErrUnknownTool = errors.New("unknown tool")

// Tool identifies a drawing tool.
type Tool int

const (
	// Pencil paints cells with the current color.
	Pencil Tool = iota
	// Eraser paints cells with the background color.
	Eraser
	// Fill flood-fills the region under the pointer.
	Fill
	// Eyedropper picks the color under the pointer.
	Eyedropper
)

var toolNames = []string{"pencil", "eraser", "fill", "eyedropper"}

// All returns every tool in display order.
func All() []Tool {
	return []Tool{Pencil, Eraser, Fill, Eyedropper}
}

// String returns the tool name.
func (t Tool) String() string {
	if t.Valid() {
		return toolNames[t]
	}
	return "unknown"
}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	return t >= Pencil && t <= Eyedropper
}

// Parse returns the tool with the given name. A few common aliases are
// accepted ("pen", "bucket", "picker").
func Parse(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pencil", "pen":
		return Pencil, nil
	case "eraser":
		return Eraser, nil
	case "fill", "bucket":
		return Fill, nil
	case "eyedropper", "picker":
		return Eyedropper, nil
	}
	return Pencil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// continuous reports whether the tool paints on every pointer move.
func (t Tool) continuous() bool {
	return t == Pencil || t == Eraser
}
