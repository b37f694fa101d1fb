package keymap

import "sort"

// Condition names understood by the default keymap.
const (
	CondAutoPair   = "autoPair"
	CondWikiLinks  = "wikiLinks"
	CondUnixKeys   = "unixKeys"
	CondBoldToggle = "boldToggle"
)

// LoadDefaults registers the default keymap.
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultKeymap())
}

// DefaultKeymap returns the built-in bindings. Typed characters are not
// listed here; the dispatcher classifies them against the bracket table.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{Keys: "BS", Action: "pair.deleteBackward", When: CondAutoPair, Description: "Delete backward, removing bracket pairs together", Category: "Editing"},
			{Keys: "Del", Action: "pair.deleteForward", When: CondAutoPair, Description: "Delete forward, removing bracket pairs together", Category: "Editing"},
			{Keys: "C-h", Action: "pair.deleteBackward", When: CondUnixKeys, Description: "Delete backward", Category: "Editing"},
			{Keys: "C-d", Action: "pair.deleteForward", When: CondUnixKeys, Description: "Delete forward", Category: "Editing"},

			{Keys: "C-b", Action: "cursor.left", When: CondUnixKeys, Description: "Move left", Category: "Movement"},
			{Keys: "C-f", Action: "cursor.right", When: CondUnixKeys, Description: "Move right", Category: "Movement"},
			{Keys: "C-a", Action: "cursor.lineStart", When: CondUnixKeys, Description: "Move to start of line", Category: "Movement"},
			{Keys: "C-e", Action: "cursor.lineEnd", When: CondUnixKeys, Description: "Move to end of line", Category: "Movement"},

			{Keys: "D-b", Action: "format.bold", When: CondBoldToggle, Description: "Toggle bold", Category: "Format"},
			{Keys: "A-b", Action: "format.bold", When: CondBoldToggle, Description: "Toggle bold", Category: "Format"},
		},
	}
}

// UserKeymap builds a keymap from user-configured bindings. It takes
// precedence over the default keymap.
func UserKeymap(bindings map[string]string) *Keymap {
	km := NewKeymap("user").WithSource("user").WithPriority(10)
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		km.AddBinding(Binding{Keys: k, Action: bindings[k], Category: "User"})
	}
	return km
}
