package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

// Modifier bits. ModMeta is Cmd on macOS.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifierOrder is the order modifiers are written in, for both the long
// "Ctrl+Shift" form and the key spec prefixes.
var modifierOrder = [...]struct {
	mod    Modifier
	long   string
	prefix string
}{
	{ModCtrl, "Ctrl", "C-"},
	{ModAlt, "Alt", "A-"},
	{ModShift, "Shift", "S-"},
	{ModMeta, "Meta", "D-"},
}

// Has reports whether any bit of mod is held.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// HasShift reports whether Shift is held.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasCtrl reports whether Ctrl is held.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt reports whether Alt (Option) is held.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasMeta reports whether Meta (Cmd) is held.
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With adds mod.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without clears mod.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// IsEmpty reports whether nothing is held.
func (m Modifier) IsEmpty() bool { return m == ModNone }

// String joins the held modifiers with "+", e.g. "Ctrl+Shift".
func (m Modifier) String() string {
	parts := make([]string, 0, len(modifierOrder))
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.long)
		}
	}
	return strings.Join(parts, "+")
}

// specPrefix writes the held modifiers as key spec prefixes, e.g. "C-S-".
func (m Modifier) specPrefix() string {
	var b strings.Builder
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			b.WriteString(o.prefix)
		}
	}
	return b.String()
}

// ModifierFromName resolves a modifier name or key spec letter, ignoring
// case. "D" is Meta, following the Vim convention for Cmd. Unknown names
// give ModNone.
func ModifierFromName(name string) Modifier {
	switch strings.ToLower(name) {
	case "c", "ctrl", "control":
		return ModCtrl
	case "a", "alt", "opt", "option":
		return ModAlt
	case "s", "shift":
		return ModShift
	case "d", "m", "meta", "cmd", "command", "super":
		return ModMeta
	}
	return ModNone
}
