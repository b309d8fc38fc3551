// Package color provides the RGB value type stored in grid cells.
package color

import (
	"errors"
	"fmt"
	stdcolor "image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor indicates a color string could not be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is an opaque RGB color with 8-bit channels.
// Colors are values; equality is structural.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	White   = Color{255, 255, 255}
	Black   = Color{0, 0, 0}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 128, 0}
	Lime    = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
	Gray    = Color{128, 128, 128}
	Orange  = Color{255, 165, 0}
	Purple  = Color{128, 0, 128}
	Pink    = Color{255, 192, 203}
	Brown   = Color{165, 42, 42}
)

var named = map[string]Color{
	"white":   White,
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"lime":    Lime,
	"blue":    Blue,
	"yellow":  Yellow,
	"cyan":    Cyan,
	"magenta": Magenta,
	"gray":    Gray,
	"grey":    Gray,
	"orange":  Orange,
	"purple":  Purple,
	"pink":    Pink,
	"brown":   Brown,
}

// RGB creates a color from its channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Parse parses a color name or a hex string.
// Accepted hex forms are "#rgb", "#rrggbb" and the same without the leading '#'.
func Parse(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	if c, ok := named[s]; ok {
		return c, nil
	}
	if s[0] != '#' {
		s = "#" + s
	}
	// colorful.Hex tolerates trailing digits, so the length is checked here.
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustParse is like Parse but panics on error.
// Intended for package-level defaults and tests.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the canonical "#rrggbb" encoding.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the canonical hex encoding.
func (c Color) String() string {
	return c.Hex()
}

var _ stdcolor.Color = Color{}

// RGBA implements image/color.Color. Grid colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// IsLight reports whether the color's perceptual lightness is above the midpoint.
func (c Color) IsLight() bool {
	l, _, _ := c.colorful().Lab()
	return l > 0.5
}

// Distance returns the CIE Lab distance between two colors.
func (c Color) Distance(other Color) float64 {
	return c.colorful().DistanceLab(other.colorful())
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
