package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/gridpaint/internal/renderer/backend"
	"github.com/dshills/gridpaint/internal/renderer/core"
)

func TestRender(t *testing.T) {
	b := backend.NewNullBackend(80, 3)
	s := New()
	s.SetTool("fill")
	s.SetColor(core.ColorFromRGB(255, 0, 0), core.ColorFromRGB(255, 255, 255), "#ff0000")
	s.SetCanvas(16, 32, 4)
	s.SetHistory("Pencil", "")

	s.Render(b, 2, 80)
	row := b.Row(2)

	for _, want := range []string{" fill ", "#ff0000", "32x16", "4:1", "undo: Pencil", "redo"} {
		if !strings.Contains(row, want) {
			t.Errorf("status row %q missing %q", row, want)
		}
	}

	// The swatch follows the tool badge and separator.
	swatchX := len(" fill ") + 1
	if got := b.GetCell(swatchX, 2).Style.Background; !got.Equals(core.ColorFromRGB(255, 0, 0)) {
		t.Errorf("swatch background = %v", got)
	}
	hexX := strings.Index(row, "#ff0000")
	if got := b.GetCell(hexX, 2).Style.Foreground; !got.Equals(core.ColorFromRGB(255, 255, 255)) {
		t.Errorf("hex foreground = %v, want the contrast color", got)
	}
	if got := b.GetCell(hexX, 2).Style.Background; !got.Equals(core.ColorFromRGB(255, 0, 0)) {
		t.Errorf("hex background = %v, want the swatch color", got)
	}
	if strings.Contains(row, "redo:") {
		t.Error("unavailable redo should not show a description")
	}

	undoX := strings.Index(row, "undo")
	redoX := strings.Index(row, "redo")
	if !b.GetCell(undoX, 2).Style.Attributes.Has(core.AttrBold) {
		t.Error("undo indicator should be bold when available")
	}
	if !b.GetCell(redoX, 2).Style.Attributes.Has(core.AttrDim) {
		t.Error("redo indicator should be dim when unavailable")
	}

	if b.Row(1) != strings.Repeat(" ", 80) {
		t.Error("Render wrote outside its row")
	}
}

func TestRenderMessage(t *testing.T) {
	b := backend.NewNullBackend(80, 1)
	s := New()
	s.SetMessage("saved out.png", MessageInfo)

	s.Render(b, 0, 80)
	row := b.Row(0)
	if !strings.HasSuffix(row, "saved out.png ") {
		t.Errorf("message not right-aligned: %q", row)
	}

	s.SetMessage("export failed", MessageError)
	s.Render(b, 0, 80)
	x := strings.Index(b.Row(0), "export failed")
	if x < 0 {
		t.Fatal("error message missing")
	}
	if !b.GetCell(x, 0).Style.Foreground.Equals(red) {
		t.Error("error message should be red")
	}

	s.ClearMessage()
	if msg, typ := s.Message(); msg != "" || typ != MessageNone {
		t.Errorf("Message() = %q, %d", msg, typ)
	}
	s.Render(b, 0, 80)
	if strings.Contains(b.Row(0), "export failed") {
		t.Error("cleared message still drawn")
	}
}

func TestRenderNarrow(t *testing.T) {
	b := backend.NewNullBackend(10, 1)
	s := New()
	s.SetMessage("a long message that cannot fit", MessageWarning)

	// Must clip without panicking.
	s.Render(b, 0, 10)
	if !strings.HasPrefix(b.Row(0), " pencil ") {
		t.Errorf("row = %q", b.Row(0))
	}
}

func TestUnknownToolStyle(t *testing.T) {
	b := backend.NewNullBackend(40, 1)
	s := New()
	s.SetTool("lasso")
	s.Render(b, 0, 40)
	if !b.GetCell(1, 0).Style.Attributes.Has(core.AttrBold) {
		t.Error("unknown tool should fall back to a bold bar style")
	}
	if s.Height() != 1 {
		t.Errorf("Height() = %d", s.Height())
	}
}
