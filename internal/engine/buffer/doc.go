// Package buffer defines the value types the editing engine operates on:
// a Selection of rune offsets and a State pairing a text snapshot with
// its selection.
//
// A State is immutable per step. Handlers receive one, compute a
// replacement and return it; nothing in this package mutates a State in
// place.
//
// Offsets are rune (code point) indices, not byte offsets:
//
//	st := buffer.NewState("héllo", 2, 4)
//	st.Selected()   // "ll"
//	st.RuneLen()    // 5
//
// Splice is the single primitive used to build new text:
//
//	runes := st.Runes()
//	out := buffer.Splice(runes, 1, 2, []rune("e"))  // "hello"
package buffer
