package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/gridpaint/internal/config/loader"
	"github.com/dshills/gridpaint/internal/config/watcher"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "GRIDPAINT_"

// ReloadFunc is called after the watched file changed. err is non-nil when
// the new file could not be loaded; s then holds the previous settings.
type ReloadFunc func(s Settings, err error)

// Config provides unified access to the gridpaint configuration system.
// It layers built-in defaults, a config file, environment variables and
// command line overrides, and optionally reloads when the file changes.
type Config struct {
	mu sync.RWMutex

	settings Settings

	// Sources
	fs        loader.FileSystem
	path      string
	envPrefix string
	overrides map[string]any

	// Live reload
	enableWatcher bool
	watcher       *watcher.Watcher
	onReload      []ReloadFunc
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the configuration file. The format follows the extension.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system the config file is read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix. Empty disables the
// environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithOverrides adds a top priority layer, typically from command line flags.
// Keys are dot-separated setting paths.
func WithOverrides(values map[string]any) Option {
	return func(c *Config) {
		if c.overrides == nil {
			c.overrides = make(map[string]any)
		}
		for k, v := range values {
			c.overrides[k] = v
		}
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// New creates a new Config instance with the given options. Settings are
// the defaults until Load is called.
func New(opts ...Option) *Config {
	c := &Config{
		settings:  Default(),
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DefaultPath returns the user configuration file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gridpaint", "gridpaint.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gridpaint", "gridpaint.toml")
}

// Load loads configuration from all sources and validates the result.
// A missing config file is not an error.
func (c *Config) Load(_ context.Context) error {
	s, err := c.build()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.settings = s
	startWatcher := c.enableWatcher && c.watcher == nil && c.path != ""
	c.mu.Unlock()

	if startWatcher {
		return c.startWatcher()
	}
	return nil
}

// Reload re-reads every source. On failure the previous settings stay in
// effect.
func (c *Config) Reload() error {
	s, err := c.build()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()
	return nil
}

// Settings returns a snapshot of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.settings
	s.Tools.Palette = append([]string(nil), c.settings.Tools.Palette...)
	return s
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

// OnReload registers a callback for live reloads.
func (c *Config) OnReload(fn ReloadFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReload = append(c.onReload, fn)
}

// Close shuts down the configuration system.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// build merges defaults, file, environment and overrides, then decodes and
// validates the result.
func (c *Config) build() (Settings, error) {
	merged, err := toMap(Default())
	if err != nil {
		return Settings{}, err
	}

	if c.path != "" {
		fl, err := loader.ForPath(c.fs, c.path)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		data, err := fl.Load()
		if err != nil {
			return Settings{}, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if c.envPrefix != "" {
		data, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return Settings{}, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if len(c.overrides) > 0 {
		merged = loader.DeepMerge(merged, expandPaths(c.overrides))
	}

	s, err := fromMap(merged)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (c *Config) startWatcher() error {
	w := watcher.New()
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	if err := w.Watch(c.path); err != nil {
		w.Stop()
		return fmt.Errorf("watching %s: %w", c.path, err)
	}
	w.OnChange(c.handleFileChange)

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
	return nil
}

// handleFileChange handles file change events from the watcher.
func (c *Config) handleFileChange(event watcher.Event) {
	err := c.Reload()
	if err != nil {
		err = fmt.Errorf("reloading %s after %s: %w", event.Path, event.Op, err)
	}

	c.mu.RLock()
	callbacks := make([]ReloadFunc, len(c.onReload))
	copy(callbacks, c.onReload)
	c.mu.RUnlock()

	s := c.Settings()
	for _, fn := range callbacks {
		fn(s, err)
	}
}

// Marshal encodes settings as "toml" or "yaml".
func Marshal(s Settings, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml", "":
		return toml.Marshal(s)
	case "yaml", "yml":
		return yaml.Marshal(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// toMap converts settings into the generic form the loaders produce.
func toMap(s Settings) (map[string]any, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return m, nil
}

// fromMap decodes a merged map into Settings.
func fromMap(m map[string]any) (Settings, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return Settings{}, fmt.Errorf("encoding config: %w", err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	return s, nil
}

// expandPaths turns {"canvas.size": 8} into {"canvas": {"size": 8}}.
func expandPaths(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for path, v := range flat {
		parts := strings.Split(path, ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = v
	}
	return out
}
