// Package mouse turns terminal mouse reports into canvas commands.
//
// Terminals report the button currently held with every mouse event rather
// than discrete press and release events. Handler remembers the previous
// state and classifies each report:
//
//	left held, previously none   → ActionPress   → CommandBegin
//	left held, moved             → ActionDrag    → CommandExtend
//	nothing held after left      → ActionRelease → CommandEnd
//	right press                  → ActionPress   → CommandPick
//	wheel                        → ActionPress   → CommandPan
//	Ctrl+wheel                   → ActionPress   → CommandZoom
//
// Positions are screen coordinates; mapping them to grid cells is the
// renderer's job.
//
// # Usage
//
//	h := mouse.NewHandler(mouse.DefaultConfig())
//	switch r := h.Report(x, y, mouse.ButtonLeft, mouse.ModNone); r.Command {
//	case mouse.CommandBegin:
//	    // start a gesture at r.Position
//	}
//
// Handler is safe for concurrent use.
package mouse
