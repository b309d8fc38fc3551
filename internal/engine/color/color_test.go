package color

import (
	"errors"
	stdcolor "image/color"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000000", Black},
		{"#FFFFFF", White},
		{"ffffff", White},
		{"#f00", Red},
		{"0f0", Lime},
		{"white", White},
		{"  Black ", Black},
		{"grey", Gray},
		{"#1a2b3c", Color{0x1a, 0x2b, 0x3c}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "not-a-color", "#1234567"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestHexIsCanonical(t *testing.T) {
	c := MustParse("#ABCDEF")
	if got := c.Hex(); got != "#abcdef" {
		t.Errorf("Hex() = %q, want %q", got, "#abcdef")
	}
	if c.String() != c.Hex() {
		t.Error("String() should equal Hex()")
	}

	back, err := Parse(c.Hex())
	if err != nil || back != c {
		t.Errorf("Parse(Hex()) = %v, %v; want %v", back, err, c)
	}
}

func TestRGBAIsOpaque(t *testing.T) {
	r, g, b, a := RGB(255, 0, 128).RGBA()
	if r != 0xffff || g != 0 || b != 0x8080 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
}

func TestStdColorModel(t *testing.T) {
	got := stdcolor.NRGBAModel.Convert(RGB(10, 20, 30)).(stdcolor.NRGBA)
	if got != (stdcolor.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("NRGBA = %+v", got)
	}
}

func TestIsLight(t *testing.T) {
	if !White.IsLight() || !Yellow.IsLight() {
		t.Error("white and yellow should be light")
	}
	if Black.IsLight() || Blue.IsLight() {
		t.Error("black and blue should be dark")
	}
}

func TestPalette(t *testing.T) {
	p, err := ParsePalette([]string{"black", "#ffffff", "#ff0000"})
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	if p.Index(White) != 1 {
		t.Errorf("Index(White) = %d, want 1", p.Index(White))
	}
	if p.Index(Blue) != -1 {
		t.Errorf("Index(Blue) = %d, want -1", p.Index(Blue))
	}
	if got := p.Nearest(RGB(250, 10, 10)); got != 2 {
		t.Errorf("Nearest(reddish) = %d, want 2", got)
	}
	if got := (Palette{}).Nearest(Red); got != -1 {
		t.Errorf("Nearest on empty palette = %d, want -1", got)
	}

	strs := p.Strings()
	if len(strs) != 3 || strs[0] != "#000000" {
		t.Errorf("Strings() = %v", strs)
	}

	if _, err := ParsePalette([]string{"black", "bogus"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("ParsePalette with bad entry error = %v", err)
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p) < 2 || p[0] != Black || p[1] != White {
		t.Errorf("DefaultPalette() starts with %v", p[:2])
	}
}
