package app

import (
	"errors"
	"runtime/debug"
	"time"

	"github.com/dshills/gridpaint/internal/engine/tool"
	"github.com/dshills/gridpaint/internal/input/mouse"
	"github.com/dshills/gridpaint/internal/renderer/backend"
	"github.com/dshills/gridpaint/internal/renderer/statusline"
)

const (
	targetFPS      = 60
	frameTime      = time.Second / targetFPS
	eventQueueSize = 256
)

// eventLoop is the main application loop. Input is read on its own
// goroutine; everything that touches the engine or renderer runs here.
func (app *Application) eventLoop(b backend.Backend) error {
	events := make(chan backend.Event, eventQueueSize)
	go app.pollEvents(b, events)
	defer app.Shutdown()

	frameTicker := time.NewTicker(frameTime)
	defer frameTicker.Stop()

	app.renderFrame()

	for {
		select {
		case <-app.done:
			return nil

		case ev := <-events:
			start := time.Now()
			err := app.handleBackendEvent(ev)
			app.metrics.RecordInput(time.Since(start))

			if errors.Is(err, ErrQuit) {
				app.logger.Debug("quit requested")
				return nil
			}
			if err != nil {
				app.reportError(err)
			}

		case <-frameTicker.C:
			app.renderFrame()
		}
	}
}

// pollEvents forwards backend events until the application stops.
func (app *Application) pollEvents(b backend.Backend, events chan<- backend.Event) {
	for {
		ev := b.PollEvent()

		select {
		case <-app.done:
			return
		default:
		}

		if ev.Type == backend.EventInterrupt || ev.Type == backend.EventNone {
			continue
		}

		select {
		case events <- ev:
		case <-app.done:
			return
		}
	}
}

// renderFrame draws a frame if anything changed.
func (app *Application) renderFrame() {
	r := app.Renderer()
	if r == nil {
		return
	}
	start := time.Now()
	if r.Render() {
		app.metrics.RecordFrame(time.Since(start))
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit. A panic while handling
// the event is returned as a RecoveredPanicError.
func (app *Application) handleBackendEvent(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventFocus:
		return app.handleFocusEvent(ev)
	default:
		return nil
	}
}

// handleResize processes terminal resize events.
func (app *Application) handleResize(ev backend.Event) error {
	if r := app.Renderer(); r != nil {
		r.Resize(ev.Width, ev.Height)
	}
	return nil
}

// handleKeyEvent runs the action bound to the key, if any.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	action, ok := app.keymap.Lookup(ev)
	if !ok {
		return nil
	}
	return app.Execute(action)
}

// handleFocusEvent ends a stroke when the terminal loses focus, since the
// button release will not be reported.
func (app *Application) handleFocusEvent(ev backend.Event) error {
	if ev.Focused {
		return nil
	}
	dragging := app.mouse.Dragging()
	app.mouse.Reset()
	if dragging || app.engine.Drawing() {
		app.logger.Debug("focus lost during a stroke")
		app.endStroke()
	}
	return nil
}

// handleMouseEvent turns a mouse report into engine gestures and view
// changes.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	r := app.Renderer()
	if r == nil {
		return nil
	}

	res := app.mouse.Report(ev.MouseX, ev.MouseY, mouseButton(ev.MouseButton), mouseModifiers(ev.Mod))
	x, y := res.Position.X, res.Position.Y

	switch res.Command {
	case mouse.CommandNone:
		return nil

	case mouse.CommandBegin:
		row, col, ok := r.CellAt(x, y)
		if !ok {
			// The gesture is still active and paints once it enters the grid.
			row, col = -1, -1
		}
		picking := app.engine.Tool() == tool.Eyedropper
		app.engine.PointerDown(row, col)
		if picking && ok {
			app.notify("picked "+app.engine.Color().Hex(), statusline.MessageInfo)
		}

	case mouse.CommandExtend:
		if row, col, ok := r.CellAt(x, y); ok {
			app.engine.PointerMove(row, col)
		}

	case mouse.CommandEnd:
		app.logger.Debug("stroke released after %d moves", res.Moves)
		app.endStroke()

	case mouse.CommandPick:
		row, col, ok := r.CellAt(x, y)
		if !ok {
			return nil
		}
		c, err := app.engine.At(row, col)
		if err != nil {
			return err
		}
		app.engine.SelectColor(c)
		app.notify("picked "+c.Hex(), statusline.MessageInfo)

	case mouse.CommandPan:
		r.Pan(res.DX, res.DY)

	case mouse.CommandZoom:
		scale := app.engine.Zoom(res.Zoom)
		app.logger.Debug("zoom %d:1", scale)
	}

	r.MarkDirty()
	return nil
}

// endStroke finishes the gesture in progress. Only strokes that changed the
// canvas are counted.
func (app *Application) endStroke() {
	if app.engine.PointerUp() {
		app.metrics.RecordStroke()
	}
}

func mouseButton(b backend.MouseButton) mouse.Button {
	switch b {
	case backend.MouseLeft:
		return mouse.ButtonLeft
	case backend.MouseMiddle:
		return mouse.ButtonMiddle
	case backend.MouseRight:
		return mouse.ButtonRight
	case backend.MouseWheelUp:
		return mouse.ButtonScrollUp
	case backend.MouseWheelDown:
		return mouse.ButtonScrollDown
	case backend.MouseWheelLeft:
		return mouse.ButtonScrollLeft
	case backend.MouseWheelRight:
		return mouse.ButtonScrollRight
	default:
		return mouse.ButtonNone
	}
}

func mouseModifiers(m backend.ModMask) mouse.Modifier {
	var mods mouse.Modifier
	if m.Has(backend.ModShift) {
		mods |= mouse.ModShift
	}
	if m.Has(backend.ModCtrl) {
		mods |= mouse.ModCtrl
	}
	if m.Has(backend.ModAlt) {
		mods |= mouse.ModAlt
	}
	if m.Has(backend.ModMeta) {
		mods |= mouse.ModMeta
	}
	return mods
}
