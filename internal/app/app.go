package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/gridpaint/internal/config"
	"github.com/dshills/gridpaint/internal/engine"
	"github.com/dshills/gridpaint/internal/engine/color"
	"github.com/dshills/gridpaint/internal/input/mouse"
	"github.com/dshills/gridpaint/internal/renderer"
	"github.com/dshills/gridpaint/internal/renderer/backend"
)

// Application is the interactive editor. It owns one engine and drives it
// from terminal input, redrawing through the renderer.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	config    *config.Config
	settings  config.Settings
	logger    *Logger
	logCloser io.Closer
	metrics   *Metrics

	// Editor components
	engine   *engine.Engine
	renderer *renderer.Renderer
	backend  backend.Backend
	mouse    *mouse.Handler
	keymap   *Keymap
	actions  map[string]ActionFunc
	palette  color.Palette

	// State
	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses only
	// defaults and the environment.
	ConfigPath string

	// Overrides are dot-separated settings that take precedence over every
	// other source, typically from command line flags.
	Overrides map[string]any

	// Watch reloads the configuration file when it changes.
	Watch bool

	// Config, when set, is used instead of building one from ConfigPath,
	// Overrides and Watch. It must not have been loaded yet.
	Config *config.Config
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	app.config = app.opts.Config
	if app.config == nil {
		configOpts := []config.Option{config.WithWatcher(app.opts.Watch)}
		if app.opts.ConfigPath != "" {
			configOpts = append(configOpts, config.WithPath(app.opts.ConfigPath))
		}
		if len(app.opts.Overrides) > 0 {
			configOpts = append(configOpts, config.WithOverrides(app.opts.Overrides))
		}
		app.config = config.New(configOpts...)
	}
	if err := app.config.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.settings = app.config.Settings()

	// 2. Logger
	logger, closer, err := OpenLogger(app.settings.Logging)
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	app.logger, app.logCloser = logger, closer

	// 3. Engine
	app.engine, err = newEngine(app.settings, logger.WithComponent("engine"))
	if err != nil {
		return &InitError{Component: "engine", Err: err}
	}
	app.palette = app.settings.Palette()

	// 4. Input
	app.mouse = mouse.NewHandler(mouse.DefaultConfig())
	app.keymap = DefaultKeymap()
	app.actions = make(map[string]ActionFunc)
	app.registerActions()

	// 5. Live reload
	app.config.OnReload(app.onConfigReload)

	rows, cols := app.settings.Dimensions()
	app.logger.Info("started with %dx%d canvas, config %q", cols, rows, app.config.Path())
	return nil
}

// newEngine creates an engine from settings.
func newEngine(s config.Settings, logger engine.Logger) (*engine.Engine, error) {
	rows, cols := s.Dimensions()
	eng, err := engine.New(
		engine.WithSize(rows, cols),
		engine.WithBackground(s.Background()),
		engine.WithColor(s.Ink()),
		engine.WithScaleLimits(s.View.MinScale, s.View.MaxScale),
		engine.WithScale(s.View.Scale),
		engine.WithMaxUndoEntries(s.History.MaxEntries),
		engine.WithMaxDimension(s.Canvas.MaxDimension),
		engine.WithInterpolation(s.Tools.Interpolate),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if err := eng.SelectToolByName(s.Tools.Tool); err != nil {
		return nil, err
	}
	return eng, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop until the user quits
// or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	b.EnableMouse()
	defer b.DisableMouse()

	if !b.HasTrueColor() {
		app.logger.Warn("terminal lacks true color support, colors are approximated")
	}
	app.attachRenderer(b)

	err := app.eventLoop(b)

	s := app.metrics.Snapshot()
	app.logger.Info("session ended after %s: %d strokes, %d exports, %d frames (avg %s)",
		s.Uptime.Round(time.Millisecond), s.Strokes, s.Exports, s.FrameCount, s.AvgFrame)
	return err
}

// attachRenderer creates the renderer for b and points it at the engine.
func (app *Application) attachRenderer(b backend.Backend) {
	r := renderer.New(b, renderer.DefaultOptions())
	r.SetCanvas(app.engine)

	app.mu.Lock()
	app.renderer = r
	app.mu.Unlock()
}

// Shutdown stops a running event loop. Safe to call more than once and
// from any goroutine.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
	})

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil {
		// Wake the input goroutine blocked in PollEvent.
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
}

// Close releases the config watcher and the log file.
func (app *Application) Close() {
	if app.config != nil {
		app.config.Close()
	}
	if app.logCloser != nil {
		app.logComponentError("logger", app.logCloser.Close())
		app.logCloser = nil
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Settings returns the settings currently in effect.
func (app *Application) Settings() config.Settings {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.settings
}

// Engine returns the grid editor.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Renderer returns the renderer, nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// Palette returns the swatches bound to the number keys.
func (app *Application) Palette() color.Palette {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return append(color.Palette(nil), app.palette...)
}

// Keymap returns the key bindings.
func (app *Application) Keymap() *Keymap {
	return app.keymap
}
