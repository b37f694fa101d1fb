package key

import "testing"

func TestModifierHas(t *testing.T) {
	m := ModCtrl | ModMeta
	if !m.HasCtrl() || !m.HasMeta() {
		t.Errorf("Modifier %v should have Ctrl and Meta", m)
	}
	if m.HasAlt() || m.HasShift() {
		t.Errorf("Modifier %v should not have Alt or Shift", m)
	}
}

func TestModifierWithWithout(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)
	if m != ModCtrl|ModShift {
		t.Errorf("With = %v, want Ctrl+Shift", m)
	}
	m = m.Without(ModShift)
	if m != ModCtrl {
		t.Errorf("Without = %v, want Ctrl", m)
	}
	if !ModNone.IsEmpty() || m.IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModAlt, "Ctrl+Alt"},
		{ModMeta | ModShift, "Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"cmd", ModMeta},
		{"D", ModMeta},
		{"option", ModAlt},
		{"shift", ModShift},
		{"hyper", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
