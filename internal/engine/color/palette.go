package color

import "fmt"

// Palette is an ordered list of swatches offered by a shell.
type Palette []Color

// DefaultPalette returns the built-in swatches.
func DefaultPalette() Palette {
	return Palette{
		Black, White, Red, Lime, Blue,
		Yellow, Orange, Purple, Pink, Brown,
		Gray, Cyan, Magenta, Green,
		{255, 0, 128}, {0, 128, 255},
	}
}

// ParsePalette parses every entry of specs.
func ParsePalette(specs []string) (Palette, error) {
	p := make(Palette, 0, len(specs))
	for i, s := range specs {
		c, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// Index returns the position of c in the palette, or -1.
func (p Palette) Index(c Color) int {
	for i, sw := range p {
		if sw == c {
			return i
		}
	}
	return -1
}

// Nearest returns the index of the swatch perceptually closest to c.
// Returns -1 for an empty palette.
func (p Palette) Nearest(c Color) int {
	best := -1
	bestDist := 0.0
	for i, sw := range p {
		d := sw.Distance(c)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Strings returns the hex encoding of every swatch.
func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
