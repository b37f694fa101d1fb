package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event is one key press: a named key or a rune, plus held modifiers.
type Event struct {
	Key       Key
	Rune      rune // set when Key is KeyRune
	Modifiers Modifier
}

// NewRuneEvent returns the press of character r.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent returns the press of named key k.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool { return e.Key == KeyRune && e.Rune != 0 }

// IsChar reports whether e carries a printable character.
func (e Event) IsChar() bool { return e.IsRune() && unicode.IsPrint(e.Rune) }

// IsSpecial reports whether e is a named key.
func (e Event) IsSpecial() bool { return e.Key.IsSpecial() }

// chordMods are the modifiers that turn a character into a command.
const chordMods = ModCtrl | ModAlt | ModMeta

// IsModified reports whether a modifier is held. Shift does not count
// for characters, where it is already part of the rune.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers.Has(chordMods)
	}
	return !e.Modifiers.IsEmpty()
}

// IsTyped reports whether e inserts its rune as text.
func (e Event) IsTyped() bool { return e.IsChar() && !e.IsModified() }

// String is the keymap spelling of e: the bare rune for a typed
// character, otherwise a Vim chord such as "<C-h>", "<D-b>" or "<BS>".
func (e Event) String() string {
	if e.IsTyped() && e.Rune != ' ' {
		return string(e.Rune)
	}
	mods := e.Modifiers
	if e.IsRune() {
		mods = mods.Without(ModShift)
	}
	return "<" + mods.specPrefix() + e.specName() + ">"
}

// specAbbrev are the Vim names that differ from Key.String.
var specAbbrev = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "CR",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyInsert:    "Ins",
}

func (e Event) specName() string {
	if e.Key == KeyRune {
		if e.Rune == ' ' {
			return "Space"
		}
		return strings.ToLower(string(e.Rune))
	}
	if s, ok := specAbbrev[e.Key]; ok {
		return s
	}
	return e.Key.String()
}

// Equals reports whether e and other are the same press.
func (e Event) Equals(other Event) bool { return e == other }

// Matches reports whether e is the press spec describes. Shift is ignored
// between two character events.
func (e Event) Matches(spec string) bool {
	want, err := Parse(spec)
	if err != nil {
		return false
	}
	if e.IsRune() && want.IsRune() {
		return e.Rune == want.Rune &&
			e.Modifiers.Without(ModShift) == want.Modifiers.Without(ModShift)
	}
	return e == want
}

// WithModifier returns e with mod also held.
func (e Event) WithModifier(mod Modifier) Event {
	e.Modifiers = e.Modifiers.With(mod)
	return e
}

func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{%s %q %s}", e.Key, e.Rune, e.Modifiers)
}
