package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridpaint/internal/renderer/core"
)

var red = core.ColorFromRGB(255, 0, 0)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(red))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFill(t *testing.T) {
	b := NewNullBackend(80, 24)

	cell := core.NewStyledCell('.', core.DefaultStyle())
	b.Fill(core.ScreenRect{Top: 5, Left: 10, Bottom: 10, Right: 20}, cell)

	if !b.GetCell(15, 7).Equals(cell) {
		t.Error("cell inside rect should be filled")
	}
	if b.GetCell(0, 0).Equals(cell) {
		t.Error("cell outside rect should not be filled")
	}
	if b.GetCell(20, 7).Equals(cell) {
		t.Error("right edge is exclusive")
	}

	// Partially off-screen rectangles are clipped.
	b.Fill(core.ScreenRect{Top: -3, Left: -3, Bottom: 1, Right: 1}, cell)
	if !b.GetCell(0, 0).Equals(cell) {
		t.Error("clipped fill should reach the origin")
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.SetCell(10, 10, core.NewStyledCell('X', core.DefaultStyle()))
	b.Clear()

	if !b.GetCell(10, 10).Equals(core.EmptyCell()) {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'a' {
		t.Errorf("PollEvent() = %+v", ev)
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)

	var gotW, gotH int
	b.OnResize(func(w, h int) {
		gotW, gotH = w, h
	})
	b.Resize(40, 10)

	if gotW != 40 || gotH != 10 {
		t.Errorf("resize handler got (%d, %d)", gotW, gotH)
	}
	if w, h := b.Size(); w != 40 || h != 10 {
		t.Errorf("Size() = (%d, %d)", w, h)
	}
	b.SetCell(39, 9, core.NewStyledCell('z', core.DefaultStyle()))
	if b.GetCell(39, 9).Rune != 'z' {
		t.Error("resized buffer should accept cells at the new edge")
	}
}

func TestNullBackendRow(t *testing.T) {
	b := NewNullBackend(5, 2)
	for i, r := range "hello" {
		b.SetCell(i, 1, core.NewStyledCell(r, core.DefaultStyle()))
	}
	if got := b.Row(1); got != "hello" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := b.Row(5); got != "" {
		t.Errorf("Row(5) = %q", got)
	}
}

// ============================================================================
// Terminal (tcell simulation screen)
// ============================================================================

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(20, 10)
	return term, screen
}

// nextEvent skips events the test did not inject, such as the initial resize.
func nextEvent(t *testing.T, term *Terminal, want EventType) Event {
	t.Helper()
	for i := 0; i < 10; i++ {
		ev := term.PollEvent()
		if ev.Type == want {
			return ev
		}
	}
	t.Fatalf("no event of type %d", want)
	return Event{}
}

func TestTerminalSetGetCell(t *testing.T) {
	term, _ := newSimTerminal(t)

	style := core.DefaultStyle().WithBackground(core.ColorFromRGB(10, 20, 30)).WithAttributes(core.AttrBold)
	term.SetCell(3, 4, core.NewStyledCell('#', style))

	got := term.GetCell(3, 4)
	if got.Rune != '#' {
		t.Errorf("Rune = %q", got.Rune)
	}
	if !got.Style.Background.Equals(core.ColorFromRGB(10, 20, 30)) {
		t.Errorf("Background = %v", got.Style.Background)
	}
	if !got.Style.Foreground.IsDefault() {
		t.Errorf("Foreground = %v, want default", got.Style.Foreground)
	}
	if !got.Style.Attributes.Has(core.AttrBold) {
		t.Error("Bold lost")
	}
}

func TestTerminalFill(t *testing.T) {
	term, _ := newSimTerminal(t)

	cell := core.NewStyledCell('.', core.DefaultStyle().WithBackground(red))
	term.Fill(core.ScreenRect{Top: 1, Left: 1, Bottom: 3, Right: 4}, cell)

	if got := term.GetCell(3, 2); got.Rune != '.' || !got.Style.Background.Equals(red) {
		t.Errorf("inside = %+v", got)
	}
	if got := term.GetCell(4, 2); got.Rune == '.' {
		t.Error("right edge is exclusive")
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term, screen := newSimTerminal(t)

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	ev := nextEvent(t, term, EventKey)
	if ev.Key != KeyRune || ev.Rune != 'p' {
		t.Errorf("rune event = %+v", ev)
	}

	screen.InjectKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl)
	ev = nextEvent(t, term, EventKey)
	if ev.Key != KeyCtrlZ || !ev.Mod.Has(ModCtrl) {
		t.Errorf("ctrl-z event = %+v", ev)
	}

	screen.InjectKey(tcell.KeyF1, 0, tcell.ModNone)
	ev = nextEvent(t, term, EventKey)
	if ev.Key != KeyNone {
		t.Errorf("unbound key = %+v, want KeyNone", ev)
	}
}

func TestTerminalMouseEvents(t *testing.T) {
	term, screen := newSimTerminal(t)
	term.EnableMouse()
	t.Cleanup(term.DisableMouse)

	tests := []struct {
		name   string
		button tcell.ButtonMask
		want   MouseButton
	}{
		{"left", tcell.ButtonPrimary, MouseLeft},
		{"right", tcell.ButtonSecondary, MouseRight},
		{"middle", tcell.ButtonMiddle, MouseMiddle},
		{"wheel", tcell.WheelUp, MouseWheelUp},
		{"release", tcell.ButtonNone, MouseNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen.InjectMouse(5, 6, tt.button, tcell.ModNone)
			ev := nextEvent(t, term, EventMouse)
			if ev.MouseX != 5 || ev.MouseY != 6 || ev.MouseButton != tt.want {
				t.Errorf("event = %+v, want button %d", ev, tt.want)
			}
		})
	}
}

func TestTerminalPostEvent(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.PostEvent(Event{Type: EventInterrupt})
	nextEvent(t, term, EventInterrupt)

	term.PostEvent(Event{Type: EventKey, Key: KeyCtrlS, Mod: ModCtrl})
	ev := nextEvent(t, term, EventKey)
	if ev.Key != KeyCtrlS {
		t.Errorf("Key = %d, want KeyCtrlS", ev.Key)
	}
}

func TestTerminalResizeHandler(t *testing.T) {
	term, screen := newSimTerminal(t)

	resized := make(chan [2]int, 4)
	term.OnResize(func(w, h int) {
		resized <- [2]int{w, h}
	})

	screen.SetSize(30, 12)
	_ = screen.PostEvent(tcell.NewEventResize(30, 12))
	ev := nextEvent(t, term, EventResize)
	if ev.Width != 30 || ev.Height != 12 {
		t.Errorf("resize event = %+v", ev)
	}
	if got := <-resized; got != [2]int{30, 12} {
		t.Errorf("handler got %v", got)
	}
}

func TestKeyTables(t *testing.T) {
	if len(backendKeys) != len(tcellKeys) {
		t.Fatalf("%d tcell keys map to %d backend keys", len(tcellKeys), len(backendKeys))
	}
	for k := KeyEscape; k <= KeyCtrlZ; k++ {
		tk, ok := tcellKeys[k]
		if !ok {
			t.Errorf("key %d has no tcell equivalent", k)
			continue
		}
		if got := backendKeys[tk]; got != k {
			t.Errorf("round trip of %d = %d", k, got)
		}
	}
}

func TestModTables(t *testing.T) {
	for _, m := range []ModMask{ModNone, ModShift, ModCtrl | ModAlt, ModShift | ModCtrl | ModAlt | ModMeta} {
		if got := fromTcellMod(toTcellMod(m)); got != m {
			t.Errorf("round trip of %d = %d", m, got)
		}
	}
}
