// Package export encodes grid pixels into image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/dshills/gridpaint/internal/engine/color"
)

// Export errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("export: unsupported format")

	// ErrEmptyData is returned when there are no pixels to encode.
	ErrEmptyData = errors.New("export: empty pixel data")
)

// Format identifies an image encoding.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{PNG, BMP, TIFF}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "."))) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Options controls encoding.
type Options struct {
	// Format selects the encoder. Empty means PNG for Encode and the file
	// extension for Save.
	Format Format

	// Scale is the number of output pixels per cell side. Values below 1
	// are treated as 1.
	Scale int
}

// Image converts row-major pixels into an image, each cell becoming a
// scale x scale block.
func Image(pixels [][]color.Color, scale int) (*image.NRGBA, error) {
	if len(pixels) == 0 || len(pixels[0]) == 0 {
		return nil, ErrEmptyData
	}
	rows, cols := len(pixels), len(pixels[0])

	src := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y, row := range pixels {
		if len(row) != cols {
			return nil, fmt.Errorf("export: row %d has %d cells, want %d", y, len(row), cols)
		}
		for x, c := range row {
			i := src.PixOffset(x, y)
			src.Pix[i+0] = c.R
			src.Pix[i+1] = c.G
			src.Pix[i+2] = c.B
			src.Pix[i+3] = 0xff
		}
	}

	if scale <= 1 {
		return src, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Encode writes pixels to w.
func Encode(w io.Writer, pixels [][]color.Color, opts Options) error {
	format := opts.Format
	if format == "" {
		format = PNG
	}
	img, err := Image(pixels, opts.Scale)
	if err != nil {
		return err
	}

	switch format {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", format, err)
	}
	return nil
}

// Save writes pixels to a file at path.
func Save(path string, pixels [][]color.Color, opts Options) error {
	if opts.Format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		opts.Format = f
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("export: create file: %w", err)
	}

	if err := Encode(f, pixels, opts); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
