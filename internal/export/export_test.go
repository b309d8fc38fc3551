package export

import (
	"bytes"
	"errors"
	"image"
	stdcolor "image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/dshills/gridpaint/internal/engine/color"
)

func testPixels() [][]color.Color {
	return [][]color.Color{
		{color.Black, color.White, color.Red},
		{color.Blue, color.Green, color.Yellow},
	}
}

func assertImage(t *testing.T, img image.Image, pixels [][]color.Color, scale int) {
	t.Helper()
	b := img.Bounds()
	if b.Dx() != len(pixels[0])*scale || b.Dy() != len(pixels)*scale {
		t.Fatalf("bounds = %v, want %dx%d", b, len(pixels[0])*scale, len(pixels)*scale)
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			got := stdcolor.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y))
			want := pixels[y/scale][x/scale]
			if got != stdcolor.NRGBAModel.Convert(want) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{".PNG", PNG},
		{"bmp", BMP},
		{"tif", TIFF},
		{" tiff ", TIFF},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}

	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(gif) error = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("out/art.bmp"); err != nil || f != BMP {
		t.Errorf("FormatFromPath = %q, %v", f, err)
	}
	if _, err := FormatFromPath("art"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("no extension error = %v", err)
	}
}

func TestImage(t *testing.T) {
	pixels := testPixels()
	for _, scale := range []int{0, 1, 3} {
		img, err := Image(pixels, scale)
		if err != nil {
			t.Fatal(err)
		}
		s := scale
		if s < 1 {
			s = 1
		}
		assertImage(t, img, pixels, s)
	}
}

func TestImageErrors(t *testing.T) {
	if _, err := Image(nil, 1); !errors.Is(err, ErrEmptyData) {
		t.Errorf("nil pixels error = %v", err)
	}
	ragged := [][]color.Color{{color.Black, color.White}, {color.Black}}
	if _, err := Image(ragged, 1); err == nil {
		t.Error("ragged rows should fail")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	pixels := testPixels()
	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		PNG: func(b *bytes.Buffer) (image.Image, error) {
			img, _, err := image.Decode(b)
			return img, err
		},
		BMP: func(b *bytes.Buffer) (image.Image, error) {
			return bmp.Decode(b)
		},
		TIFF: func(b *bytes.Buffer) (image.Image, error) {
			return tiff.Decode(b)
		},
	}

	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, pixels, Options{Format: format, Scale: 2}); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			img, err := decoders[format](&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			assertImage(t, img, pixels, 2)
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testPixels(), Options{Format: "gif"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode error = %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	pixels := testPixels()

	path := filepath.Join(dir, "art.png")
	if err := Save(path, pixels, Options{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	assertImage(t, img, pixels, 1)

	if err := Save(filepath.Join(dir, "art.xyz"), pixels, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save with unknown extension error = %v", err)
	}
}
