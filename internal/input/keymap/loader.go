package keymap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a keymap file that is neither TOML nor
// YAML.
var ErrUnknownFormat = errors.New("keymap: unknown file format")

// keymapFile is the on-disk shape of a keymap:
//
//	name = "markdown"
//	priority = 5
//
//	[[bindings]]
//	keys = "C-k"
//	action = "pair.deleteForward"
//	when = "unixKeys"
type keymapFile struct {
	Name     string        `toml:"name" yaml:"name"`
	Priority int           `toml:"priority,omitempty" yaml:"priority,omitempty"`
	Bindings []bindingFile `toml:"bindings" yaml:"bindings"`
}

type bindingFile struct {
	Keys        string         `toml:"keys" yaml:"keys"`
	Action      string         `toml:"action" yaml:"action"`
	Args        map[string]any `toml:"args,omitempty" yaml:"args,omitempty"`
	When        string         `toml:"when,omitempty" yaml:"when,omitempty"`
	Description string         `toml:"description,omitempty" yaml:"description,omitempty"`
	Priority    int            `toml:"priority,omitempty" yaml:"priority,omitempty"`
	Category    string         `toml:"category,omitempty" yaml:"category,omitempty"`
}

// formatOf maps a file extension to "toml" or "yaml".
func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Decode parses a keymap in format ("toml" or "yaml") and validates it.
func Decode(data []byte, format string) (*Keymap, error) {
	var f keymapFile
	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, &f)
	case "yaml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	km := NewKeymap(f.Name).WithPriority(f.Priority)
	for _, b := range f.Bindings {
		km.AddBinding(Binding(b))
	}
	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("keymap %q: %w", km.Name, err)
	}
	return km, nil
}

// Encode writes km in format ("toml" or "yaml").
func Encode(km *Keymap, format string) ([]byte, error) {
	f := keymapFile{Name: km.Name, Priority: km.Priority, Bindings: make([]bindingFile, 0, len(km.Bindings))}
	for _, b := range km.Bindings {
		f.Bindings = append(f.Bindings, bindingFile(b))
	}
	switch format {
	case "toml":
		return toml.Marshal(f)
	case "yaml":
		return yaml.Marshal(f)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// LoadFile reads a keymap file, choosing the format by extension. A file
// without a name is named after its base name.
func LoadFile(path string) (*Keymap, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	km, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return km.WithSource("file:" + path), nil
}

// LoadFiles loads and registers each path in order. Files that fail are
// skipped; their errors are joined in the result.
func LoadFiles(r *Registry, paths ...string) error {
	var errs []error
	for _, path := range paths {
		km, err := LoadFile(path)
		if err == nil {
			err = r.Register(km)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveFile writes the keymap to path in the format its extension names.
func (k *Keymap) SaveFile(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(k, format)
	if err != nil {
		return fmt.Errorf("encoding keymap: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
