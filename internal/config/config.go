package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/inkwell/internal/config/loader"
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/input/key"
	"github.com/dshills/inkwell/internal/input/keymap"
)

// Config is the complete editor configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Keymap  KeymapConfig  `toml:"keymap" yaml:"keymap"`
	Plugins PluginsConfig `toml:"plugins" yaml:"plugins"`
}

// EditorConfig controls the editing behaviors.
type EditorConfig struct {
	// AutoPair inserts, skips and deletes bracket pairs together.
	AutoPair bool `toml:"autoPair" yaml:"autoPair"`

	// WikiLinks treats "[[" and "]]" as one delimiter.
	WikiLinks bool `toml:"wikiLinks" yaml:"wikiLinks"`

	// UnixKeys binds C-b, C-f, C-a, C-e, C-h and C-d.
	UnixKeys bool `toml:"unixKeys" yaml:"unixKeys"`

	// BoldToggle binds Meta-b and Alt-b to the "**" toggle.
	BoldToggle bool `toml:"boldToggle" yaml:"boldToggle"`

	// ReadOnly rejects every edit; movement still works.
	ReadOnly bool `toml:"readOnly" yaml:"readOnly"`

	// DisabledActions are never dispatched.
	DisabledActions []string `toml:"disabledActions" yaml:"disabledActions"`
}

// LoggingConfig controls diagnostics.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output; empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// KeymapConfig holds user key bindings.
type KeymapConfig struct {
	// Bindings maps a key spec ("C-k", "<D-i>") to an action name.
	Bindings map[string]string `toml:"bindings" yaml:"bindings"`

	// Files are TOML or YAML keymap files, registered in order after the
	// defaults and before Bindings.
	Files []string `toml:"files" yaml:"files"`
}

// PluginsConfig controls Lua key hooks.
type PluginsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// Scripts are loaded in order.
	Scripts []string `toml:"scripts" yaml:"scripts"`

	// InstructionLimit bounds each hook call; 0 means unlimited.
	InstructionLimit int `toml:"instructionLimit" yaml:"instructionLimit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			AutoPair:   true,
			WikiLinks:  true,
			UnixKeys:   true,
			BoldToggle: true,
		},
		Logging: LoggingConfig{Level: "info"},
		Keymap:  KeymapConfig{Bindings: map[string]string{}},
		Plugins: PluginsConfig{Enabled: true, InstructionLimit: 100000},
	}
}

// Features returns the editing behaviors for the dispatcher.
func (c *Config) Features() execctx.Features {
	return execctx.Features{
		AutoPair:   c.Editor.AutoPair,
		WikiLinks:  c.Editor.WikiLinks,
		UnixKeys:   c.Editor.UnixKeys,
		BoldToggle: c.Editor.BoldToggle,
	}
}

// Keymaps builds a registry with the default keymap, the keymap files and
// the user bindings on top. A keymap file that fails to load is skipped:
// the registry is still returned, with err describing the failures.
func (c *Config) Keymaps() (*keymap.Registry, error) {
	r := keymap.NewRegistry()
	if err := keymap.LoadDefaults(r); err != nil {
		return nil, err
	}
	var errs []error
	if len(c.Keymap.Files) > 0 {
		if err := keymap.LoadFiles(r, c.Keymap.Files...); err != nil {
			errs = append(errs, err)
		}
	}
	if len(c.Keymap.Bindings) > 0 {
		if err := r.Register(keymap.UserKeymap(c.Keymap.Bindings)); err != nil {
			errs = append(errs, fmt.Errorf("user keymap: %w", err))
		}
	}
	return r, errors.Join(errs...)
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		add("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	for _, name := range c.Editor.DisabledActions {
		if !strings.Contains(name, ".") {
			add("editor.disabledActions", "action names look like namespace.action", name)
		}
	}
	for spec, action := range c.Keymap.Bindings {
		if _, err := key.Parse(spec); err != nil {
			add("keymap.bindings", err.Error(), spec)
		}
		if action == "" {
			add("keymap.bindings", "empty action", spec)
		}
	}
	if c.Plugins.InstructionLimit < 0 {
		add("plugins.instructionLimit", "must not be negative", c.Plugins.InstructionLimit)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToMap renders the configuration as a generic map.
func (c *Config) ToMap() (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, err
	}
	return loader.ParseTOML("<config>", data)
}

// FromMap decodes a merged settings map. Settings absent from m keep their
// zero values; merge over Default().ToMap() first to keep defaults.
func FromMap(m map[string]any) (*Config, error) {
	data, err := loader.EncodeTOML(m)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if c.Keymap.Bindings == nil {
		c.Keymap.Bindings = map[string]string{}
	}
	// Empty lists decode as []string{}; Default leaves them nil.
	for _, list := range []*[]string{&c.Editor.DisabledActions, &c.Keymap.Files, &c.Plugins.Scripts} {
		if len(*list) == 0 {
			*list = nil
		}
	}
	return &c, nil
}
