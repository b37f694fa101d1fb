package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// namedRunes are the spellings for characters that cannot appear bare
// inside angle brackets.
var namedRunes = map[string]rune{
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
}

// Parse reads a key spec. Three notations are accepted:
//
//	a  (  "  Enter  BS  Del          bare keys; "A" implies Shift
//	<C-h>  <D-b>  <C-S-Left>  C-h    Vim chords
//	Ctrl+H  Meta+B  Ctrl+Shift+P     plus chords
//
// Lone "+" and "-" are the characters themselves, as are "Ctrl++" and
// "<C-->" with Ctrl held.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Event{}, ErrEmptySpec
	case len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>':
		return parseChord(spec[1:len(spec)-1], "-")
	case len(spec) > 1 && strings.Contains(spec, "+"):
		return parseChord(spec, "+")
	case len(spec) > 2 && strings.Contains(spec, "-") && !strings.HasSuffix(spec, "-"):
		if ev, err := parseChord(spec, "-"); err == nil {
			return ev, nil
		}
	}
	return parseBare(spec)
}

// parseChord reads modifiers joined to a final key by sep.
func parseChord(body, sep string) (Event, error) {
	parts := strings.Split(strings.TrimSpace(body), sep)
	last := len(parts) - 1
	name := parts[last]
	if name == "" && last >= 2 && parts[last-1] == "" {
		// The key is the separator itself.
		name, last = sep, last-1
	}

	var mods Modifier
	for _, p := range parts[:last] {
		m := ModifierFromName(strings.TrimSpace(p))
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(m)
	}
	return parseKey(name, mods)
}

// parseKey reads the key part of a chord. Letters under Ctrl, Alt or
// Meta are case-insensitive.
func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if r, ok := namedRunes[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if r := []rune(name); len(r) == 1 {
		c := r[0]
		if mods.Has(ModCtrl | ModAlt | ModMeta) {
			c = unicode.ToLower(c)
		}
		return NewRuneEvent(c, mods), nil
	}
	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// parseBare reads a spec with no modifiers.
func parseBare(spec string) (Event, error) {
	if r := []rune(spec); len(r) == 1 && unicode.IsUpper(r[0]) {
		return NewRuneEvent(r[0], ModShift), nil
	}
	ev, err := parseKey(spec, ModNone)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return ev, nil
}

// MustParse is Parse for specs known to be valid. It panics otherwise.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key: MustParse(%q): %v", spec, err))
	}
	return ev
}

// NormalizeSpec rewrites spec in the canonical form Event.String produces.
func NormalizeSpec(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.String(), nil
}
