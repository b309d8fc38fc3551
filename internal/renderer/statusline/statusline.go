// Package statusline provides the status bar drawn below the canvas.
package statusline

import (
	"fmt"

	"github.com/dshills/gridpaint/internal/renderer/backend"
	"github.com/dshills/gridpaint/internal/renderer/core"
)

// StatusLine renders the bottom status line: active tool, drawing color,
// canvas size, scale, history availability and an optional message.
type StatusLine struct {
	// Display state
	tool    string     // Active tool name
	color   core.Color // Drawing color
	ink     core.Color // Text drawn on the swatch
	hex     string     // Drawing color as #rrggbb
	rows    int
	cols    int
	scale   int
	undo    string // Next undo description, empty when unavailable
	redo    string

	// Message display
	message     string
	messageType MessageType

	// Style configuration
	toolStyles map[string]core.Style
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

var (
	white  = core.ColorFromRGB(255, 255, 255)
	black  = core.ColorFromRGB(0, 0, 0)
	gray   = core.ColorFromRGB(68, 68, 68)
	blue   = core.ColorFromRGB(40, 90, 200)
	green  = core.ColorFromRGB(40, 160, 70)
	yellow = core.ColorFromRGB(220, 180, 40)
	red    = core.ColorFromRGB(200, 50, 50)
	purple = core.ColorFromRGB(140, 70, 170)
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		tool:       "pencil",
		color:      black,
		hex:        "#000000",
		scale:      1,
		toolStyles: defaultToolStyles(),
	}
}

// defaultToolStyles returns the badge style for each tool.
func defaultToolStyles() map[string]core.Style {
	badge := func(bg, fg core.Color) core.Style {
		return core.DefaultStyle().WithBackground(bg).WithForeground(fg).WithAttributes(core.AttrBold)
	}
	return map[string]core.Style{
		"pencil":     badge(blue, white),
		"eraser":     badge(red, white),
		"fill":       badge(green, black),
		"eyedropper": badge(purple, white),
	}
}

// SetTool updates the displayed tool.
func (s *StatusLine) SetTool(name string) {
	s.tool = name
}

// SetColor updates the drawing color swatch. fg is the text color drawn
// over it.
func (s *StatusLine) SetColor(c, fg core.Color, hex string) {
	s.color = c
	s.ink = fg
	s.hex = hex
}

// SetCanvas updates the canvas dimensions and scale.
func (s *StatusLine) SetCanvas(rows, cols, scale int) {
	s.rows, s.cols, s.scale = rows, cols, scale
}

// SetHistory updates the undo and redo indicators with the descriptions of
// the entries they would apply. An empty description marks it unavailable.
func (s *StatusLine) SetHistory(undo, redo string) {
	s.undo, s.redo = undo, redo
}

// SetMessage displays a status message to the right of the bar.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Height returns the number of rows the status line uses.
func (s *StatusLine) Height() int {
	return 1
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row, width int) {
	barStyle := core.DefaultStyle().WithBackground(gray).WithForeground(white)
	b.Fill(core.RectFromSize(row, 0, 1, width), core.NewStyledCell(' ', barStyle))

	toolStyle, ok := s.toolStyles[s.tool]
	if !ok {
		toolStyle = barStyle.WithAttributes(core.AttrBold)
	}

	col := drawText(b, 0, row, width, " "+s.tool+" ", toolStyle)
	col = drawText(b, col, row, width, " ", barStyle)
	col = drawText(b, col, row, width, " "+s.hex+" ", core.DefaultStyle().WithBackground(s.color).WithForeground(s.ink))
	col = drawText(b, col, row, width, fmt.Sprintf("  %dx%d  %d:1", s.cols, s.rows, s.scale), barStyle)

	col = drawText(b, col, row, width, "  ", barStyle)
	col = drawText(b, col, row, width, historyLabel("undo", s.undo), indicatorStyle(barStyle, s.undo != ""))
	col = drawText(b, col, row, width, " ", barStyle)
	col = drawText(b, col, row, width, historyLabel("redo", s.redo), indicatorStyle(barStyle, s.redo != ""))

	if s.message == "" {
		return
	}
	msg := s.message + " "
	start := width - len([]rune(msg))
	if start <= col {
		start = col + 1
	}
	drawText(b, start, row, width, msg, s.messageStyle(barStyle))
}

// historyLabel renders "undo: Pencil", or the bare verb when unavailable.
func historyLabel(verb, description string) string {
	if description == "" {
		return verb
	}
	return verb + ": " + description
}

func indicatorStyle(base core.Style, enabled bool) core.Style {
	if enabled {
		return base.WithAttributes(core.AttrBold)
	}
	return base.WithAttributes(core.AttrDim)
}

func (s *StatusLine) messageStyle(base core.Style) core.Style {
	switch s.messageType {
	case MessageWarning:
		return base.WithForeground(yellow)
	case MessageError:
		return base.WithForeground(red).WithAttributes(core.AttrBold)
	default:
		return base
	}
}

// drawText writes text starting at col and returns the column after it.
// Text past width is clipped.
func drawText(b backend.Backend, col, row, width int, text string, style core.Style) int {
	for _, r := range text {
		if col >= width {
			return col
		}
		b.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
	return col
}
