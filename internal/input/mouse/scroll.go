package mouse

// ScrollDirection represents the direction of a scroll event.
type ScrollDirection uint8

const (
	// ScrollNone indicates no scroll.
	ScrollNone ScrollDirection = iota
	// ScrollUp indicates scrolling up (content moves down).
	ScrollUp
	// ScrollDown indicates scrolling down (content moves up).
	ScrollDown
	// ScrollLeft indicates scrolling left.
	ScrollLeft
	// ScrollRight indicates scrolling right.
	ScrollRight
)

// String returns a string representation of the scroll direction.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "none"
	}
}

// ButtonToScrollDirection converts a scroll button to a direction.
func ButtonToScrollDirection(b Button) ScrollDirection {
	switch b {
	case ButtonScrollUp:
		return ScrollUp
	case ButtonScrollDown:
		return ScrollDown
	case ButtonScrollLeft:
		return ScrollLeft
	case ButtonScrollRight:
		return ScrollRight
	default:
		return ScrollNone
	}
}

// handleScroll maps wheel ticks to zoom (Ctrl or Meta held) or pan.
// Shift turns vertical wheel ticks into horizontal panning.
func (h *Handler) handleScroll(event Event) Result {
	dir := ButtonToScrollDirection(event.Button)
	if dir == ScrollNone {
		return Result{}
	}

	if h.config.EnableZoom && (event.Modifiers.HasCtrl() || event.Modifiers.HasMeta()) {
		switch dir {
		case ScrollUp:
			return Result{Command: CommandZoom, Position: event.Position, Zoom: 1}
		case ScrollDown:
			return Result{Command: CommandZoom, Position: event.Position, Zoom: -1}
		}
		return Result{}
	}

	step := h.config.PanStep
	if event.Modifiers.HasShift() {
		step = h.config.PanStepShift
		switch dir {
		case ScrollUp:
			dir = ScrollLeft
		case ScrollDown:
			dir = ScrollRight
		}
	}

	r := Result{Command: CommandPan, Position: event.Position}
	switch dir {
	case ScrollUp:
		r.DY = -step
	case ScrollDown:
		r.DY = step
	case ScrollLeft:
		r.DX = -step
	case ScrollRight:
		r.DX = step
	}
	return r
}
