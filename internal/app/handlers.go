package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/gridpaint/internal/engine/tool"
	"github.com/dshills/gridpaint/internal/renderer/statusline"
)

// ActionFunc performs a named editor action.
type ActionFunc func(app *Application) error

// Pan distances in grid cells.
const (
	panStep  = 1
	pageStep = 8
)

// registerActions registers the built-in actions.
func (app *Application) registerActions() {
	for _, t := range tool.All() {
		app.RegisterAction("tool."+t.String(), selectToolAction(t))
	}
	app.RegisterAction("tool.next", (*Application).nextTool)

	for i := 1; i <= 10; i++ {
		app.RegisterAction("palette."+strconv.Itoa(i), selectSwatchAction(i-1))
	}
	app.RegisterAction("palette.next", func(app *Application) error { return app.cycleSwatch(1) })
	app.RegisterAction("palette.prev", func(app *Application) error { return app.cycleSwatch(-1) })

	app.RegisterAction("history.undo", (*Application).undo)
	app.RegisterAction("history.redo", (*Application).redo)
	app.RegisterAction("history.show", (*Application).showHistory)

	app.RegisterAction("view.zoomIn", zoomAction(1))
	app.RegisterAction("view.zoomOut", zoomAction(-1))
	app.RegisterAction("view.panUp", panAction(0, -panStep))
	app.RegisterAction("view.panDown", panAction(0, panStep))
	app.RegisterAction("view.panLeft", panAction(-panStep, 0))
	app.RegisterAction("view.panRight", panAction(panStep, 0))
	app.RegisterAction("view.pageUp", panAction(0, -pageStep))
	app.RegisterAction("view.pageDown", panAction(0, pageStep))
	app.RegisterAction("view.home", (*Application).panHome)
	app.RegisterAction("view.redraw", func(app *Application) error {
		app.markDirty()
		return nil
	})

	app.RegisterAction("canvas.clear", (*Application).clearCanvas)
	app.RegisterAction("canvas.new", (*Application).newCanvas)
	app.RegisterAction("canvas.grow", func(app *Application) error { return app.scaleCanvas(2, 1) })
	app.RegisterAction("canvas.shrink", func(app *Application) error { return app.scaleCanvas(1, 2) })

	app.RegisterAction("export.save", func(app *Application) error {
		_, err := app.Export("")
		return err
	})
	app.RegisterAction("message.clear", func(app *Application) error {
		if r := app.Renderer(); r != nil {
			r.ClearMessage()
		}
		return nil
	})
	app.RegisterAction("app.quit", func(*Application) error { return ErrQuit })
}

// RegisterAction registers or replaces a named action.
func (app *Application) RegisterAction(name string, fn ActionFunc) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.actions[name] = fn
}

// Execute runs a named action.
func (app *Application) Execute(name string) error {
	app.mu.RLock()
	fn, ok := app.actions[name]
	app.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}

	app.logger.Debug("action %s", name)
	if err := fn(app); err != nil {
		return err
	}
	app.markDirty()
	return nil
}

// ============================================================================
// Tools and Colors
// ============================================================================

func selectToolAction(t tool.Tool) ActionFunc {
	return func(app *Application) error {
		if err := app.engine.SelectTool(t); err != nil {
			return err
		}
		app.notify(t.String(), statusline.MessageNone)
		return nil
	}
}

func (app *Application) nextTool() error {
	all := tool.All()
	next := all[(int(app.engine.Tool())+1)%len(all)]
	return selectToolAction(next)(app)
}

func selectSwatchAction(index int) ActionFunc {
	return func(app *Application) error {
		return app.SelectSwatch(index)
	}
}

// SelectSwatch makes palette entry index the drawing color.
func (app *Application) SelectSwatch(index int) error {
	palette := app.Palette()
	if index < 0 || index >= len(palette) {
		return fmt.Errorf("palette has no swatch %d", index+1)
	}
	c := palette[index]
	app.engine.SelectColor(c)
	app.notify(fmt.Sprintf("color %d %s", index+1, c.Hex()), statusline.MessageInfo)
	return nil
}

// cycleSwatch selects the swatch delta steps from the one nearest to the
// current color.
func (app *Application) cycleSwatch(delta int) error {
	palette := app.Palette()
	if len(palette) == 0 {
		return nil
	}
	i := palette.Nearest(app.engine.Color())
	if palette[i] != app.engine.Color() && delta > 0 {
		// An off-palette color steps to its nearest swatch first.
		delta--
	}
	n := len(palette)
	return app.SelectSwatch(((i+delta)%n + n) % n)
}

// ============================================================================
// History
// ============================================================================

func (app *Application) undo() error {
	if !app.engine.Undo() {
		app.beep()
		app.notify("nothing to undo", statusline.MessageWarning)
	}
	return nil
}

func (app *Application) redo() error {
	if !app.engine.Redo() {
		app.beep()
		app.notify("nothing to redo", statusline.MessageWarning)
	}
	return nil
}

// historyPreview is how many recent entries showHistory names.
const historyPreview = 3

// showHistory summarizes the undo and redo stacks on the status line,
// newest entries first.
func (app *Application) showHistory() error {
	undo := app.engine.UndoInfo()
	redo := app.engine.RedoInfo()
	if len(undo) > 0 {
		undo = undo[1:] // the floor is not an undo step
	}

	msg := fmt.Sprintf("history: %d undo, %d redo", len(undo), len(redo))
	if len(undo) > 0 {
		var names []string
		for i := len(undo) - 1; i >= 0 && len(names) < historyPreview; i-- {
			names = append(names, undo[i].Description)
		}
		msg += " (" + strings.Join(names, ", ") + ")"
	}
	app.notify(msg, statusline.MessageInfo)
	return nil
}

// ============================================================================
// View
// ============================================================================

func zoomAction(delta int) ActionFunc {
	return func(app *Application) error {
		before := app.engine.Scale()
		after := app.engine.Zoom(delta)
		if after == before {
			app.beep()
		}
		app.notify(fmt.Sprintf("zoom %d:1", after), statusline.MessageNone)
		return nil
	}
}

func panAction(dCols, dRows int) ActionFunc {
	return func(app *Application) error {
		if r := app.Renderer(); r != nil {
			r.Pan(dCols, dRows)
		}
		return nil
	}
}

func (app *Application) panHome() error {
	if r := app.Renderer(); r != nil {
		x, y := r.Offset()
		r.Pan(-x, -y)
	}
	return nil
}

// ============================================================================
// Canvas
// ============================================================================

func (app *Application) clearCanvas() error {
	if app.engine.ClearCanvas() {
		app.notify("canvas cleared", statusline.MessageInfo)
	}
	return nil
}

// newCanvas replaces the canvas with a blank one of the configured size.
func (app *Application) newCanvas() error {
	rows, cols := app.Settings().Dimensions()
	return app.resizeCanvas(rows, cols)
}

// scaleCanvas multiplies both dimensions by num/den, clearing the canvas.
func (app *Application) scaleCanvas(num, den int) error {
	rows := max(app.engine.Rows()*num/den, 1)
	cols := max(app.engine.Cols()*num/den, 1)
	return app.resizeCanvas(rows, cols)
}

func (app *Application) resizeCanvas(rows, cols int) error {
	if err := app.engine.ResizeTo(rows, cols); err != nil {
		return NewOperationError("resize", fmt.Sprintf("%dx%d", cols, rows), err)
	}
	if r := app.Renderer(); r != nil {
		r.SetCanvas(app.engine)
	}
	app.logger.Info("new %dx%d canvas", cols, rows)
	app.notify(fmt.Sprintf("new %dx%d canvas", cols, rows), statusline.MessageInfo)
	return nil
}

// ============================================================================
// Status
// ============================================================================

// notify shows msg on the status line.
func (app *Application) notify(msg string, msgType statusline.MessageType) {
	if r := app.Renderer(); r != nil {
		r.SetMessage(msg, msgType)
	}
}

// reportError logs err and shows a short form on the status line.
func (app *Application) reportError(err error) {
	app.logComponentError("app", err)

	app.beep()
	app.notify(firstLine(err.Error()), statusline.MessageError)
}

func (app *Application) beep() {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil {
		b.Beep()
	}
}

func (app *Application) markDirty() {
	if r := app.Renderer(); r != nil {
		r.MarkDirty()
	}
}
