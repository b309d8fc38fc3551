package engine

import (
	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/engine/grid"
)

// Default configuration values.
const (
	DefaultSize           = 64
	DefaultScale          = 1
	DefaultMinScale       = 1
	DefaultMaxScale       = 32
	DefaultMaxUndoEntries = 256
	DefaultMaxDimension   = 1024
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSize sets the initial grid dimensions.
func WithSize(rows, cols int) Option {
	return func(e *Engine) {
		e.rows = rows
		e.cols = cols
	}
}

// WithBackground sets the background color.
func WithBackground(c color.Color) Option {
	return func(e *Engine) {
		e.background = c
	}
}

// WithColor sets the initial drawing color.
func WithColor(c color.Color) Option {
	return func(e *Engine) {
		e.ink = c
	}
}

// WithScale sets the initial display scale.
func WithScale(scale int) Option {
	return func(e *Engine) {
		if scale > 0 {
			e.scale = scale
		}
	}
}

// WithScaleLimits sets the range Zoom clamps to.
func WithScaleLimits(min, max int) Option {
	return func(e *Engine) {
		if min > 0 {
			e.minScale = min
		}
		if max > 0 {
			e.maxScale = max
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithMaxDimension sets the largest accepted row or column count. Values
// above grid.MaxDimension are clamped to it.
func WithMaxDimension(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDimension = min(n, grid.MaxDimension)
		}
	}
}

// WithInterpolation makes pencil and eraser strokes fill gaps between
// consecutive pointer positions.
func WithInterpolation(on bool) Option {
	return func(e *Engine) {
		e.interpolate = on
	}
}

// WithLogger sets the debug logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
