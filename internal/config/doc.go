// Package config provides the configuration system for Inkwell.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (INKWELL_*) │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file (TOML/YAML) │
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A file looks like:
//
//	[editor]
//	autoPair = true
//	wikiLinks = true
//	unixKeys = true
//	boldToggle = true
//	disabledActions = ["cursor.lineEnd"]
//
//	[logging]
//	level = "info"
//
//	[keymap.bindings]
//	"C-k" = "format.bold"
//
//	[plugins]
//	scripts = ["~/.config/inkwell/hooks.lua"]
//
// # Sub-packages
//
//   - loader: file and environment sources, DeepMerge
//   - watcher: fsnotify-based live reload
//
// Manager ties these together: it loads, validates, keeps the current
// Config, and on a file change reloads and notifies listeners and the
// event bus.
package config
