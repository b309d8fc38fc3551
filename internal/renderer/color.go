package renderer

import (
	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/renderer/core"
)

// TerminalColor converts a grid color to a true color terminal color.
func TerminalColor(c color.Color) core.Color {
	return core.ColorFromRGB(c.R, c.G, c.B)
}

// ContrastColor returns black for light colors and white for dark ones.
func ContrastColor(c color.Color) core.Color {
	if c.IsLight() {
		return core.ColorFromRGB(0, 0, 0)
	}
	return core.ColorFromRGB(255, 255, 255)
}

// pixelCell returns the blank cell that shows c as its background.
func pixelCell(c color.Color) core.Cell {
	return core.NewStyledCell(' ', core.DefaultStyle().WithBackground(TerminalColor(c)))
}
