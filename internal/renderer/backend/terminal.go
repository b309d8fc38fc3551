package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridpaint/internal/renderer/core"
)

// Terminal draws to a tcell screen. All screen access is serialized.
type Terminal struct {
	mu       sync.Mutex
	screen   tcell.Screen
	onResize func(width, height int)
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen with the cursor hidden. Mouse reporting stays
// off until EnableMouse.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = callback
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, cell.Rune, nil, toTcellStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // still the only way to read back a cell
	return core.Cell{Rune: r, Style: fromTcellStyle(style)}
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := toTcellStyle(cell.Style)
	w, h := t.screen.Size()
	for y := max(rect.Top, 0); y < min(rect.Bottom, h); y++ {
		for x := max(rect.Left, 0); x < min(rect.Right, w); x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

// PollEvent blocks for the next event. A finalized screen yields
// EventInterrupt.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventInterrupt}
	}
	return t.translate(ev)
}

// PostEvent queues a key or interrupt event. Other event types are ignored.
func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		key, ok := tcellKeys[event.Key]
		if !ok {
			key = tcell.KeyRune
		}
		ev = tcell.NewEventKey(key, event.Rune, toTcellMod(event.Mod))
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(nil)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // dropped when the queue is full
}

func (t *Terminal) HasTrueColor() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Colors() > 256
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.screen.Beep()
}

// EnableMouse turns on button and drag reporting. Drags need motion reports
// while a button is held.
func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.DisableMouse()
}

func (t *Terminal) translate(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key := KeyRune
		if e.Key() != tcell.KeyRune {
			key = backendKeys[e.Key()]
		}
		return Event{Type: EventKey, Key: key, Rune: e.Rune(), Mod: fromTcellMod(e.Modifiers())}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: fromTcellButtons(e.Buttons()),
			Mod:         fromTcellMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		t.mu.Lock()
		onResize := t.onResize
		t.mu.Unlock()
		if onResize != nil {
			onResize(w, h)
		}
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	}
	return Event{Type: EventNone}
}

// ============================================================================
// Conversion tables
// ============================================================================

// tcellKeys covers the named keys the editor binds.
var tcellKeys = map[Key]tcell.Key{
	KeyEscape:   tcell.KeyEscape,
	KeyTab:      tcell.KeyTab,
	KeyHome:     tcell.KeyHome,
	KeyPageUp:   tcell.KeyPgUp,
	KeyPageDown: tcell.KeyPgDn,
	KeyUp:       tcell.KeyUp,
	KeyDown:     tcell.KeyDown,
	KeyLeft:     tcell.KeyLeft,
	KeyRight:    tcell.KeyRight,
	KeyCtrlC:    tcell.KeyCtrlC,
	KeyCtrlL:    tcell.KeyCtrlL,
	KeyCtrlN:    tcell.KeyCtrlN,
	KeyCtrlQ:    tcell.KeyCtrlQ,
	KeyCtrlR:    tcell.KeyCtrlR,
	KeyCtrlS:    tcell.KeyCtrlS,
	KeyCtrlY:    tcell.KeyCtrlY,
	KeyCtrlZ:    tcell.KeyCtrlZ,
}

// backendKeys is tcellKeys inverted. Unlisted keys map to KeyNone.
var backendKeys = func() map[tcell.Key]Key {
	m := make(map[tcell.Key]Key, len(tcellKeys))
	for k, tk := range tcellKeys {
		m[tk] = k
	}
	return m
}()

var modPairs = []struct {
	mod  ModMask
	tmod tcell.ModMask
}{
	{ModShift, tcell.ModShift},
	{ModCtrl, tcell.ModCtrl},
	{ModAlt, tcell.ModAlt},
	{ModMeta, tcell.ModMeta},
}

func fromTcellMod(m tcell.ModMask) ModMask {
	var out ModMask
	for _, p := range modPairs {
		if m&p.tmod != 0 {
			out |= p.mod
		}
	}
	return out
}

func toTcellMod(m ModMask) tcell.ModMask {
	var out tcell.ModMask
	for _, p := range modPairs {
		if m.Has(p.mod) {
			out |= p.tmod
		}
	}
	return out
}

// buttonOrder lists mouse buttons by precedence when several are reported.
var buttonOrder = []struct {
	mask   tcell.ButtonMask
	button MouseButton
}{
	{tcell.ButtonPrimary, MouseLeft},
	{tcell.ButtonMiddle, MouseMiddle},
	{tcell.ButtonSecondary, MouseRight},
	{tcell.WheelUp, MouseWheelUp},
	{tcell.WheelDown, MouseWheelDown},
	{tcell.WheelLeft, MouseWheelLeft},
	{tcell.WheelRight, MouseWheelRight},
}

func fromTcellButtons(b tcell.ButtonMask) MouseButton {
	for _, p := range buttonOrder {
		if b&p.mask != 0 {
			return p.button
		}
	}
	return MouseNone
}

// attrPairs maps the attributes that survive a round trip through tcell.
// Underline is write-only.
var attrPairs = []struct {
	attr  core.Attribute
	tattr tcell.AttrMask
	set   func(tcell.Style, bool) tcell.Style
}{
	{core.AttrBold, tcell.AttrBold, tcell.Style.Bold},
	{core.AttrDim, tcell.AttrDim, tcell.Style.Dim},
	{core.AttrReverse, tcell.AttrReverse, tcell.Style.Reverse},
}

func toTcellStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Foreground.IsDefault() {
		style = style.Foreground(toTcellColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(toTcellColor(s.Background))
	}

	for _, p := range attrPairs {
		if s.Attributes.Has(p.attr) {
			style = p.set(style, true)
		}
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	return style
}

func fromTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()
	s := core.Style{Foreground: fromTcellColor(fg), Background: fromTcellColor(bg)}
	for _, p := range attrPairs {
		if attrs&p.tattr != 0 {
			s.Attributes |= p.attr
		}
	}
	return s
}

func toTcellColor(c core.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func fromTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return core.ColorDefault
	}
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}
