// Package brackets holds the bracket table, the token classifier and the
// depth-counted matching search the pair handlers are built on.
//
// The table pairs ( [ { with ) ] } and treats the backtick and both quote
// characters as symmetric delimiters whose open and close runes are the
// same. The wiki-link token "[[" / "]]" is recognized from context and
// always takes priority over the single "[" / "]" entries.
//
// All functions operate on rune slices and rune offsets and never modify
// their input.
package brackets
