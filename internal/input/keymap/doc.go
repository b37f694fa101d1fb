// Package keymap maps key chords to action names.
//
// A Keymap is a named collection of bindings. The Registry indexes every
// registered keymap by normalized key and answers lookups for a single
// key event; there are no multi-key sequences.
//
// # Binding Precedence
//
// When multiple bindings match a key, precedence is determined by:
//  1. Keymap priority * 100 + binding priority (higher wins)
//  2. Registration order (later wins)
//
// User bindings from configuration are registered in a keymap with
// priority 10 and therefore override the defaults. Keymap files (TOML or
// YAML, see LoadFile) carry their own priority.
//
// # Conditional Bindings
//
// A binding may carry a When expression evaluated against the
// LookupContext. The default keymap uses the editor feature switches:
//
//	{Keys: "C-b", Action: "cursor.left", When: "unixKeys"}
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	keymap.LoadDefaults(registry)
//
//	ctx := keymap.NewLookupContext()
//	ctx.Conditions["unixKeys"] = true
//	if b := registry.Lookup(key.MustParse("C-b"), ctx); b != nil {
//	    // dispatch b.Action
//	}
package keymap
