// Package cursor provides handlers for terminal-style caret movement.
//
// The Handler type provides:
//   - cursor.left (C-b): Move the caret one rune left
//   - cursor.right (C-f): Move the caret one rune right
//   - cursor.lineStart (C-a): Move to the start of the current line
//   - cursor.lineEnd (C-e): Move to the end of the current line
//
// A selection collapses: left and lineStart work from its start, right and
// lineEnd from its end. Movement is clamped to the buffer and always
// reported as handled, so the host's own binding for the chord never runs.
package cursor
