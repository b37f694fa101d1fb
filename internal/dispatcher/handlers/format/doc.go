// Package format provides handlers for inline markdown formatting.
//
// The Handler type provides:
//   - format.bold (D-b, A-b): Wrap the selection in "**", or unwrap it when
//     it is already bounded by "**" on both sides
//
// Toggling twice restores the original text and selection. An empty
// selection is declined.
package format
