package app

import (
	"path/filepath"
	"strings"

	"github.com/dshills/gridpaint/internal/config"
	"github.com/dshills/gridpaint/internal/export"
	"github.com/dshills/gridpaint/internal/renderer/statusline"
)

// Export writes the canvas to path using the export settings. An empty
// path uses the configured export path. Returns the path written.
func (app *Application) Export(path string) (string, error) {
	s := app.Settings().Export
	if path == "" {
		path = s.Path
	}
	if path == "" {
		return "", NewOperationError("export", "", ErrNoExportPath)
	}

	opts := export.Options{Scale: s.Scale}
	if s.Format != "" {
		f, err := export.ParseFormat(s.Format)
		if err != nil {
			return "", NewOperationError("export", path, err)
		}
		opts.Format = f
	}

	if err := export.Save(path, app.engine.ExportPixels(), opts); err != nil {
		return "", NewOperationError("export", path, err)
	}

	app.metrics.RecordExport()
	app.logger.Info("exported %dx%d canvas to %s", app.engine.Cols(), app.engine.Rows(), path)
	app.notify("exported "+filepath.Base(path), statusline.MessageInfo)
	return path, nil
}

// onConfigReload applies settings from a reloaded config file. It runs on
// the watcher goroutine.
func (app *Application) onConfigReload(s config.Settings, err error) {
	if err != nil {
		app.logger.WithComponent("config").Warn("keeping previous settings: %v", err)
		app.notify("config error: "+firstLine(err.Error()), statusline.MessageError)
		app.markDirty()
		return
	}
	app.ApplySettings(s)
	app.notify("config reloaded", statusline.MessageInfo)
	app.markDirty()
}

// ApplySettings applies the settings that can change without replacing the
// canvas: palette, drawing color and tool, history depth, log level and
// export options. Color and tool change only when their setting changed,
// so a reload keeps what the user picked.
func (app *Application) ApplySettings(s config.Settings) {
	app.mu.Lock()
	prev := app.settings
	app.settings = s
	app.palette = s.Palette()
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(s.Logging.Level))

	if s.Tools.Color != prev.Tools.Color {
		app.engine.SelectColor(s.Ink())
	}
	if s.Tools.Tool != prev.Tools.Tool {
		if err := app.engine.SelectToolByName(s.Tools.Tool); err != nil {
			app.logComponentError("config", err)
		}
	}
	if s.History.MaxEntries != prev.History.MaxEntries {
		app.engine.SetMaxUndoEntries(s.History.MaxEntries)
	}

	rows, cols := s.Dimensions()
	if prevRows, prevCols := prev.Dimensions(); rows != prevRows || cols != prevCols {
		app.logger.Info("canvas size %dx%d takes effect on the next new canvas", cols, rows)
	}
	app.logger.Debug("settings applied: palette %d colors, color %s", len(s.Palette()), s.Tools.Color)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
