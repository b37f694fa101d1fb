package keymap

import (
	"github.com/dshills/inkwell/internal/input/key"
)

// Binding maps one key spec to an action.
type Binding struct {
	// Keys is a key spec: "BS", "C-h", "<D-b>", "Ctrl+F".
	Keys string

	// Action is the "namespace.verb" name, e.g. "pair.deleteBackward".
	Action string

	// Args are passed to the handler with the action.
	Args map[string]any

	// When is a condition expression over the feature names, e.g.
	// "unixKeys" or "autoPair && !readonly". Empty always matches.
	When string

	Description string

	// Priority breaks ties inside a keymap; higher wins.
	Priority int

	Category string
}

// NewBinding returns a binding of keys to action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithArgs returns b with args set.
func (b Binding) WithArgs(args map[string]any) Binding { b.Args = args; return b }

// WithWhen returns b with the condition set.
func (b Binding) WithWhen(when string) Binding { b.When = when; return b }

// WithPriority returns b with the priority set.
func (b Binding) WithPriority(priority int) Binding { b.Priority = priority; return b }

// WithCategory returns b with the category set.
func (b Binding) WithCategory(category string) Binding { b.Category = category; return b }

// ParsedBinding is a binding together with its parsed key.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// BindingMatch is one lookup hit.
type BindingMatch struct {
	*ParsedBinding

	// Keymap holds the binding.
	Keymap *Keymap

	// Score is Keymap.Priority*100 + Binding.Priority.
	Score int

	order int
}

// Less orders matches best first: higher score, then later registration.
// Matches without a keymap sort last.
func (bm BindingMatch) Less(other BindingMatch) bool {
	switch {
	case bm.Keymap == nil:
		return false
	case other.Keymap == nil:
		return true
	case bm.Score != other.Score:
		return bm.Score > other.Score
	}
	return bm.order > other.order
}

// CalculateScore sets Score from the keymap and binding priorities.
func (bm *BindingMatch) CalculateScore() {
	bm.Score = 0
	if bm.Keymap != nil && bm.ParsedBinding != nil {
		bm.Score = bm.Keymap.Priority*100 + bm.ParsedBinding.Priority
	}
}
