// Package key provides key event types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input
// delivered by a host editing surface:
//
//   - Key: Identifies a keyboard key (special keys or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers
//
// # Key Specifications
//
// Key specifications are used by keymaps and configuration files and can be
// written in multiple formats:
//
//   - Simple keys: "a", "(", "Enter", "BS", "Del"
//   - With modifiers: "Ctrl+H", "Meta+B", "Ctrl+Shift+P"
//   - Vim-style: "<C-h>", "<D-b>", "<A-b>", "<BS>", "<Del>"
//
// # Host Events
//
// Editing surfaces that report keys the way a browser does (a key name such
// as "Backspace" or "ArrowLeft" plus ctrl/meta/alt flags) are converted with
// FromHost.
package key
