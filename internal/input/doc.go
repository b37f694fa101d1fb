// Package input defines the Action type that carries a resolved key
// press from the dispatcher to a handler.
//
// Subpackages:
//
//   - key: key events, modifiers and the key spec parser
//   - keymap: bindings from key specs to action names
//
// An Action names a command in "namespace.verb" form:
//
//	pair.open            typed open bracket, Args.Rune and Args.Token set
//	pair.close           typed close bracket
//	pair.deleteBackward  Backspace, Ctrl-H
//	pair.deleteForward   Delete, Ctrl-D
//	cursor.left          Ctrl-B
//	cursor.right         Ctrl-F
//	cursor.lineStart     Ctrl-A
//	cursor.lineEnd       Ctrl-E
//	format.bold          Meta-B
package input
