package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/engine/grid"
	"github.com/dshills/gridpaint/internal/engine/tool"
	"github.com/dshills/gridpaint/internal/export"
)

// Settings is a snapshot of the merged configuration. Mutating it does not
// modify the Config it came from.
type Settings struct {
	Canvas  CanvasConfig  `toml:"canvas" yaml:"canvas"`
	View    ViewConfig    `toml:"view" yaml:"view"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Tools   ToolsConfig   `toml:"tools" yaml:"tools"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Export  ExportConfig  `toml:"export" yaml:"export"`
}

// CanvasConfig holds the grid settings.
type CanvasConfig struct {
	// Size is the side of a square canvas.
	Size int `toml:"size" yaml:"size"`

	// Rows and Cols override Size when non-zero.
	Rows int `toml:"rows" yaml:"rows"`
	Cols int `toml:"cols" yaml:"cols"`

	// Background is the blank cell color.
	Background string `toml:"background" yaml:"background"`

	// MaxDimension bounds rows and columns for new canvases.
	MaxDimension int `toml:"max_dimension" yaml:"max_dimension"`
}

// ViewConfig holds the display scale settings.
type ViewConfig struct {
	Scale    int `toml:"scale" yaml:"scale"`
	MinScale int `toml:"min_scale" yaml:"min_scale"`
	MaxScale int `toml:"max_scale" yaml:"max_scale"`
}

// HistoryConfig holds the undo settings.
type HistoryConfig struct {
	// MaxEntries bounds the undo stack, floor included.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// ToolsConfig holds the drawing tool settings.
type ToolsConfig struct {
	// Tool is the tool selected at startup.
	Tool string `toml:"tool" yaml:"tool"`

	// Color is the initial drawing color.
	Color string `toml:"color" yaml:"color"`

	// Palette lists the swatches bound to the number keys.
	Palette []string `toml:"palette" yaml:"palette"`

	// Interpolate fills gaps between consecutive pointer positions.
	Interpolate bool `toml:"interpolate" yaml:"interpolate"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards logs while the terminal UI
	// owns the screen.
	File string `toml:"file" yaml:"file"`
}

// ExportConfig holds the image export settings.
type ExportConfig struct {
	// Path is the default export file.
	Path string `toml:"path" yaml:"path"`

	// Format overrides the format implied by Path.
	Format string `toml:"format" yaml:"format"`

	// Scale is the number of image pixels per cell side.
	Scale int `toml:"scale" yaml:"scale"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Canvas: CanvasConfig{
			Size:         64,
			Background:   "#ffffff",
			MaxDimension: 1024,
		},
		View: ViewConfig{
			Scale:    1,
			MinScale: 1,
			MaxScale: 32,
		},
		History: HistoryConfig{
			MaxEntries: 256,
		},
		Tools: ToolsConfig{
			Tool:    "pencil",
			Color:   "#000000",
			Palette: color.DefaultPalette().Strings(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Path:  "gridpaint.png",
			Scale: 1,
		},
	}
}

// Dimensions returns the canvas rows and columns.
func (s Settings) Dimensions() (rows, cols int) {
	rows, cols = s.Canvas.Size, s.Canvas.Size
	if s.Canvas.Rows > 0 {
		rows = s.Canvas.Rows
	}
	if s.Canvas.Cols > 0 {
		cols = s.Canvas.Cols
	}
	return rows, cols
}

// Background returns the parsed background color, white if invalid.
func (s Settings) Background() color.Color {
	c, err := color.Parse(s.Canvas.Background)
	if err != nil {
		return color.White
	}
	return c
}

// Ink returns the parsed drawing color, black if invalid.
func (s Settings) Ink() color.Color {
	c, err := color.Parse(s.Tools.Color)
	if err != nil {
		return color.Black
	}
	return c
}

// Palette returns the parsed palette, or the default palette when the
// configured one is empty or invalid.
func (s Settings) Palette() color.Palette {
	if len(s.Tools.Palette) == 0 {
		return color.DefaultPalette()
	}
	p, err := color.ParsePalette(s.Tools.Palette)
	if err != nil {
		return color.DefaultPalette()
	}
	return p
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every setting and returns all failures.
func (s Settings) Validate() error {
	var errs ValidationErrors
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	c := s.Canvas
	if c.MaxDimension < 1 || c.MaxDimension > grid.MaxDimension {
		add("canvas.max_dimension", fmt.Sprintf("must be between 1 and %d", grid.MaxDimension), c.MaxDimension)
	}
	rows, cols := s.Dimensions()
	if rows < 1 || rows > c.MaxDimension {
		add("canvas.rows", fmt.Sprintf("must be between 1 and %d", c.MaxDimension), rows)
	}
	if cols < 1 || cols > c.MaxDimension {
		add("canvas.cols", fmt.Sprintf("must be between 1 and %d", c.MaxDimension), cols)
	}
	if _, err := color.Parse(c.Background); err != nil {
		add("canvas.background", err.Error(), c.Background)
	}

	v := s.View
	if v.MinScale < 1 {
		add("view.min_scale", "must be at least 1", v.MinScale)
	}
	if v.MaxScale < v.MinScale {
		add("view.max_scale", "must not be below view.min_scale", v.MaxScale)
	}
	if v.Scale < v.MinScale || v.Scale > v.MaxScale {
		add("view.scale", "must be within view.min_scale..view.max_scale", v.Scale)
	}

	if s.History.MaxEntries < 1 {
		add("history.max_entries", "must be at least 1", s.History.MaxEntries)
	}

	if _, err := tool.Parse(s.Tools.Tool); err != nil {
		add("tools.tool", err.Error(), s.Tools.Tool)
	}
	if _, err := color.Parse(s.Tools.Color); err != nil {
		add("tools.color", err.Error(), s.Tools.Color)
	}
	if _, err := color.ParsePalette(s.Tools.Palette); err != nil {
		add("tools.palette", err.Error(), s.Tools.Palette)
	}

	if !slices.Contains(logLevels, strings.ToLower(s.Logging.Level)) {
		add("logging.level", "must be one of "+strings.Join(logLevels, ", "), s.Logging.Level)
	}

	if s.Export.Format != "" {
		if _, err := export.ParseFormat(s.Export.Format); err != nil {
			add("export.format", err.Error(), s.Export.Format)
		}
	} else if s.Export.Path != "" {
		if _, err := export.FormatFromPath(s.Export.Path); err != nil {
			add("export.path", err.Error(), s.Export.Path)
		}
	}
	if s.Export.Scale < 1 {
		add("export.scale", "must be at least 1", s.Export.Scale)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
