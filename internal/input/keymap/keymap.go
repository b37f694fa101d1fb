package keymap

import (
	"fmt"
	"maps"

	"github.com/dshills/inkwell/internal/input/key"
)

// Keymap is a named, prioritized set of bindings.
type Keymap struct {
	Name     string
	Bindings []Binding

	// Priority ranks keymaps against each other; higher wins.
	Priority int

	// Source records where the keymap came from: "default", "user",
	// "file:<path>".
	Source string
}

// NewKeymap returns an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name, Bindings: []Binding{}}
}

// WithPriority sets the priority and returns k.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source and returns k.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add binds keys to action and returns k.
func (k *Keymap) Add(keys, action string) *Keymap {
	return k.AddBinding(NewBinding(keys, action))
}

// AddBinding appends b and returns k.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Validate reports the first binding with missing fields or an
// unparseable key spec.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		switch {
		case b.Keys == "":
			return fmt.Errorf("binding %d: empty keys", i)
		case b.Action == "":
			return fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if _, err := key.Parse(b.Keys); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// ParsedKeymap is a keymap whose key specs have been parsed.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses every key spec.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	pk := &ParsedKeymap{Keymap: k, ParsedBindings: make([]ParsedBinding, len(k.Bindings))}
	for i, b := range k.Bindings {
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", b.Keys, err)
		}
		pk.ParsedBindings[i] = ParsedBinding{Binding: b, Event: ev}
	}
	return pk, nil
}

// Clone returns a copy sharing nothing with k.
func (k *Keymap) Clone() *Keymap {
	c := *k
	c.Bindings = make([]Binding, len(k.Bindings))
	for i, b := range k.Bindings {
		b.Args = maps.Clone(b.Args)
		c.Bindings[i] = b
	}
	return &c
}
