package engine

import (
	"github.com/dshills/gridpaint/internal/engine/grid"
	"github.com/dshills/gridpaint/internal/engine/tool"
)

// Errors returned by engine operations.
var (
	// ErrOutOfRange indicates cell coordinates outside the grid.
	ErrOutOfRange = grid.ErrOutOfRange

	// ErrDimensionMismatch indicates a snapshot does not fit the grid.
	ErrDimensionMismatch = grid.ErrDimensionMismatch

	// ErrInvalidDimension indicates a rejected grid size.
	ErrInvalidDimension = grid.ErrInvalidDimension

	// ErrUnknownTool indicates an unrecognized tool.
	ErrUnknownTool = tool.ErrUnknownTool
)
