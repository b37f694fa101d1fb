// Package pair provides the bracket-pair editing handlers.
//
// The Handler type serves the "pair" namespace:
//   - pair.open: Insert an open token and its close partner, wrapping any selection
//   - pair.close: Step over an identical close rune instead of inserting it
//   - pair.deleteBackward (BS, C-h): Delete backward, removing matched pairs together
//   - pair.deleteForward (Del, C-d): Delete forward, removing matched pairs together
//
// InsertPair, SkipOver and Delete are pure functions over a buffer.State and
// can be called without a dispatcher.
//
// # Deletion Order
//
// Delete tries, in order:
//
//  1. caret between "[[" and "]]": remove all four runes
//  2. caret between an open rune and its close: remove both
//  3. rune about to be removed is a delimiter with a partner: remove both
//     delimiters, keeping the enclosed text
//  4. plain single-rune deletion
//
// Unbalanced input never fails; it falls through to step 4.
package pair
