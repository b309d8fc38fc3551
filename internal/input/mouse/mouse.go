package mouse

import (
	"sync"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	case ButtonScrollLeft:
		return "scroll-left"
	case ButtonScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown ||
		b == ButtonScrollLeft || b == ButtonScrollRight
}

// Modifier is a set of keyboard modifiers held during a mouse event.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasCtrl returns true if Ctrl is held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasMeta returns true if Meta is held.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers Modifier

	// Action is the type of mouse action.
	Action Action
}

// Command is what the canvas should do in response to mouse input.
type Command uint8

const (
	// CommandNone means the event is ignored.
	CommandNone Command = iota
	// CommandBegin starts a gesture at Position.
	CommandBegin
	// CommandExtend moves the active gesture to Position.
	CommandExtend
	// CommandEnd finishes the active gesture.
	CommandEnd
	// CommandPick samples the color under Position without changing tool.
	CommandPick
	// CommandPan scrolls the view by DX, DY cells.
	CommandPan
	// CommandZoom changes the scale by Zoom steps.
	CommandZoom
)

// String returns a string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandBegin:
		return "begin"
	case CommandExtend:
		return "extend"
	case CommandEnd:
		return "end"
	case CommandPick:
		return "pick"
	case CommandPan:
		return "pan"
	case CommandZoom:
		return "zoom"
	default:
		return "none"
	}
}

// Result is the outcome of handling one mouse event.
type Result struct {
	Command  Command
	Position Position

	// DX and DY are the pan distance in cells for CommandPan.
	DX, DY int

	// Zoom is the scale step for CommandZoom, positive to zoom in.
	Zoom int

	// Moves counts the distinct positions a stroke visited after its press,
	// for CommandEnd.
	Moves int
}

// Config configures mouse handler behavior.
type Config struct {
	// PanStep is the number of cells to pan per wheel tick.
	PanStep int

	// PanStepShift is the number of cells when Shift is held.
	PanStepShift int

	// EnableZoom enables Ctrl+scroll zoom.
	EnableZoom bool

	// EnablePick enables right-click color sampling.
	EnablePick bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		PanStep:      3,
		PanStepShift: 1,
		EnableZoom:   true,
		EnablePick:   true,
	}
}

// Handler turns mouse reports into canvas commands. Terminals report the
// held button with every event, so Handler derives press, drag and release
// from the change in button state.
type Handler struct {
	mu     sync.Mutex
	config Config

	// held is the button down at the previous report.
	held Button

	// stroke is the left-button drag in progress, nil between strokes.
	stroke *stroke
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(config Config) *Handler {
	return &Handler{config: config}
}

// Report classifies a raw report and handles it.
func (h *Handler) Report(x, y int, button Button, mods Modifier) Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.handle(h.classify(Position{X: x, Y: y}, button, mods))
}

// Classify converts a raw report holding button at pos into an Event.
func (h *Handler) Classify(pos Position, button Button, mods Modifier) Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.classify(pos, button, mods)
}

func (h *Handler) classify(pos Position, button Button, mods Modifier) Event {
	ev := Event{Position: pos, Button: button, Modifiers: mods}

	switch {
	case button.IsScroll():
		// Wheel ticks never change the held state.
		ev.Action = ActionPress
	case button == ButtonNone && h.held == ButtonNone:
		ev.Action = ActionMove
	case button == ButtonNone:
		ev.Action = ActionRelease
		ev.Button = h.held
		h.held = ButtonNone
	case button == h.held:
		ev.Action = ActionDrag
	default:
		ev.Action = ActionPress
		h.held = button
	}
	return ev
}

// Handle processes a classified event and returns the resulting command.
func (h *Handler) Handle(event Event) Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.handle(event)
}

func (h *Handler) handle(event Event) Result {
	switch event.Action {
	case ActionPress:
		return h.handlePress(event)
	case ActionRelease:
		return h.handleRelease(event)
	case ActionDrag:
		return h.handleDrag(event)
	}
	return Result{}
}

// handlePress handles mouse button press events.
func (h *Handler) handlePress(event Event) Result {
	if event.Button.IsScroll() {
		return h.handleScroll(event)
	}

	switch event.Button {
	case ButtonLeft:
		h.stroke = &stroke{last: event.Position}
		return Result{Command: CommandBegin, Position: event.Position}
	case ButtonRight:
		if h.config.EnablePick {
			return Result{Command: CommandPick, Position: event.Position}
		}
	}
	return Result{}
}

// handleRelease ends the stroke at its last reported position.
func (h *Handler) handleRelease(event Event) Result {
	if h.stroke == nil || event.Button != ButtonLeft {
		return Result{}
	}
	s := h.stroke
	h.stroke = nil
	return Result{Command: CommandEnd, Position: s.last, Moves: s.moves}
}

// handleDrag extends the stroke to each new position.
func (h *Handler) handleDrag(event Event) Result {
	if h.stroke == nil || event.Button != ButtonLeft || !h.stroke.advance(event.Position) {
		return Result{}
	}
	return Result{Command: CommandExtend, Position: event.Position}
}

// Reset forgets the held button and any stroke in progress, for when the
// release will never be reported.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.held = ButtonNone
	h.stroke = nil
}

// Dragging reports whether a left-button stroke is in progress.
func (h *Handler) Dragging() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stroke != nil
}
