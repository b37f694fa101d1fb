package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModShift)},
		{"(", NewRuneEvent('(', ModNone)},
		{"+", NewRuneEvent('+', ModNone)},
		{"-", NewRuneEvent('-', ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"BS", NewSpecialEvent(KeyBackspace, ModNone)},
		{"Del", NewSpecialEvent(KeyDelete, ModNone)},
		{"<BS>", NewSpecialEvent(KeyBackspace, ModNone)},
		{"C-h", NewRuneEvent('h', ModCtrl)},
		{"<C-d>", NewRuneEvent('d', ModCtrl)},
		{"<D-b>", NewRuneEvent('b', ModMeta)},
		{"<A-b>", NewRuneEvent('b', ModAlt)},
		{"<C-S-Left>", NewSpecialEvent(KeyLeft, ModCtrl|ModShift)},
		{"Ctrl+F", NewRuneEvent('f', ModCtrl)},
		{"Meta+B", NewRuneEvent('b', ModMeta)},
		{"Ctrl++", NewRuneEvent('+', ModCtrl)},
		{"<C-->", NewRuneEvent('-', ModCtrl)},
		{"<lt>", NewRuneEvent('<', ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"<X-a>", ErrInvalidSpec},
		{"Hyper+a", ErrInvalidSpec},
		{"notakey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("")
}

func TestNormalizeSpec(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"Ctrl+H", "<C-h>"},
		{"C-h", "<C-h>"},
		{"Backspace", "<BS>"},
		{"Cmd+B", "<D-b>"},
		{"[", "["},
	}

	for _, tt := range tests {
		got, err := NormalizeSpec(tt.spec)
		if err != nil {
			t.Fatalf("NormalizeSpec(%q) error: %v", tt.spec, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeSpec(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}
