package app

import (
	"testing"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input/key"
)

func TestHostDefault(t *testing.T) {
	special := func(k key.Key) key.Event { return key.NewSpecialEvent(k, key.ModNone) }

	tests := []struct {
		name     string
		ev       key.Event
		st       buffer.State
		readOnly bool
		want     buffer.State
		ok       bool
	}{
		{"typed", key.NewRuneEvent('a', key.ModNone), buffer.CaretState("xy", 1), false, buffer.CaretState("xay", 2), true},
		{"typed shift", key.NewRuneEvent('A', key.ModShift), buffer.CaretState("", 0), false, buffer.CaretState("A", 1), true},
		{"typed replaces selection", key.NewRuneEvent('z', key.ModNone), buffer.NewState("abc", 0, 2), false, buffer.CaretState("zc", 1), true},
		{"typed multibyte", key.NewRuneEvent('é', key.ModNone), buffer.CaretState("日本", 1), false, buffer.CaretState("日é本", 2), true},
		{"ctrl ignored", key.NewRuneEvent('x', key.ModCtrl), buffer.CaretState("ab", 1), false, buffer.CaretState("ab", 1), false},
		{"meta ignored", special(key.KeyLeft).WithModifier(key.ModMeta), buffer.CaretState("ab", 1), false, buffer.CaretState("ab", 1), false},
		{"enter", special(key.KeyEnter), buffer.CaretState("ab", 1), false, buffer.CaretState("a\nb", 2), true},
		{"tab", special(key.KeyTab), buffer.CaretState("ab", 0), false, buffer.CaretState("\tab", 1), true},
		{"backspace", special(key.KeyBackspace), buffer.CaretState("ab", 1), false, buffer.CaretState("b", 0), true},
		{"backspace at start", special(key.KeyBackspace), buffer.CaretState("ab", 0), false, buffer.CaretState("ab", 0), true},
		{"backspace selection", special(key.KeyBackspace), buffer.NewState("abcd", 1, 3), false, buffer.CaretState("ad", 1), true},
		{"delete", special(key.KeyDelete), buffer.CaretState("ab", 1), false, buffer.CaretState("a", 1), true},
		{"delete at end", special(key.KeyDelete), buffer.CaretState("ab", 2), false, buffer.CaretState("ab", 2), true},
		{"left", special(key.KeyLeft), buffer.CaretState("ab", 1), false, buffer.CaretState("ab", 0), true},
		{"left at start", special(key.KeyLeft), buffer.CaretState("ab", 0), false, buffer.CaretState("ab", 0), true},
		{"left collapses", special(key.KeyLeft), buffer.NewState("abcd", 1, 3), false, buffer.CaretState("abcd", 1), true},
		{"right", special(key.KeyRight), buffer.CaretState("ab", 1), false, buffer.CaretState("ab", 2), true},
		{"right collapses", special(key.KeyRight), buffer.NewState("abcd", 1, 3), false, buffer.CaretState("abcd", 3), true},
		{"home", special(key.KeyHome), buffer.CaretState("ab\ncd", 4), false, buffer.CaretState("ab\ncd", 3), true},
		{"end", special(key.KeyEnd), buffer.CaretState("ab\ncd", 0), false, buffer.CaretState("ab\ncd", 2), true},
		{"up", special(key.KeyUp), buffer.CaretState("abc\nde", 5), false, buffer.CaretState("abc\nde", 1), true},
		{"up first line", special(key.KeyUp), buffer.CaretState("abc\nde", 2), false, buffer.CaretState("abc\nde", 2), true},
		{"down clamps column", special(key.KeyDown), buffer.CaretState("abc\nde", 3), false, buffer.CaretState("abc\nde", 6), true},
		{"down last line", special(key.KeyDown), buffer.CaretState("abc\nde", 5), false, buffer.CaretState("abc\nde", 5), true},
		{"read-only typed", key.NewRuneEvent('a', key.ModNone), buffer.CaretState("xy", 1), true, buffer.CaretState("xy", 1), false},
		{"read-only backspace", special(key.KeyBackspace), buffer.CaretState("xy", 1), true, buffer.CaretState("xy", 1), false},
		{"read-only movement", special(key.KeyRight), buffer.CaretState("xy", 1), true, buffer.CaretState("xy", 2), true},
		{"escape ignored", special(key.KeyEscape), buffer.CaretState("xy", 1), false, buffer.CaretState("xy", 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := hostDefault(tt.ev, tt.st, tt.readOnly)
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %q %+v, want %q %+v", got.Text, got.Selection, tt.want.Text, tt.want.Selection)
			}
		})
	}
}

func TestHostDefaultInvalidSelection(t *testing.T) {
	st := buffer.CaretState("ab", 9)
	got, ok := hostDefault(key.NewSpecialEvent(key.KeyHome, key.ModNone), st, false)
	if !ok || !got.Equal(st) {
		t.Errorf("invalid selection should be left alone, got %+v", got)
	}
}
