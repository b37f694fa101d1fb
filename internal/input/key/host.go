package key

import "unicode/utf8"

// HostInput is a key press as reported by a host editing surface: the
// key name the surface produced plus the state of the modifier keys.
// Names follow browser conventions ("a", "(", "Backspace", "ArrowLeft").
type HostInput struct {
	Key     string
	CtrlKey bool
	MetaKey bool
	AltKey  bool
}

// Event converts the host input to an Event.
func (h HostInput) Event() Event {
	return FromHost(h.Key, h.CtrlKey, h.MetaKey, h.AltKey)
}

// FromHost converts a host key name and modifier flags to an Event.
// Names that identify neither a character nor a known special key
// (modifier-only presses, function keys, dead keys) yield a KeyNone event.
func FromHost(name string, ctrl, meta, alt bool) Event {
	var mods Modifier
	if ctrl {
		mods = mods.With(ModCtrl)
	}
	if meta {
		mods = mods.With(ModMeta)
	}
	if alt {
		mods = mods.With(ModAlt)
	}

	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if mods.HasCtrl() || mods.HasMeta() {
			r = toLowerASCII(r)
		}
		return NewRuneEvent(r, mods)
	}

	switch name {
	case "Spacebar":
		return NewRuneEvent(' ', mods)
	case "Esc":
		return NewSpecialEvent(KeyEscape, mods)
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods)
	}
	return Event{Key: KeyNone, Modifiers: mods}
}

// HostName returns the browser-style key name for the event, the inverse
// of FromHost for keys this package knows about.
func (e Event) HostName() string {
	switch e.Key {
	case KeyRune:
		return string(e.Rune)
	case KeyUp:
		return "ArrowUp"
	case KeyDown:
		return "ArrowDown"
	case KeyLeft:
		return "ArrowLeft"
	case KeyRight:
		return "ArrowRight"
	case KeyNone:
		return ""
	default:
		return e.Key.String()
	}
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
