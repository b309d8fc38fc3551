// Package config provides the configuration system for gridpaint.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Overrides  │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← GRIDPAINT_CANVAS_SIZE=32
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/gridpaint/gridpaint.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file may be TOML or YAML, chosen by extension. The merged
// result is decoded into Settings and validated as a whole, so a bad value
// in any layer rejects the load.
//
// # Sub-packages
//
//   - loader: Configuration file loading (TOML, YAML, environment variables)
//   - watcher: fsnotify based change detection for live reload
//
// # Usage
//
//	cfg := config.New(config.WithPath(config.DefaultPath()), config.WithWatcher(true))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	defer cfg.Close()
//
//	s := cfg.Settings()
//	rows, cols := s.Dimensions()
//
//	cfg.OnReload(func(s config.Settings, err error) {
//	    // apply palette changes
//	})
package config
