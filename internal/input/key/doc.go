// Package key provides the key event types delivered to the editor.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//
// # Key Specifications
//
// Bindings in configuration files name keys with Parse:
//
//   - Simple keys: "a", "Enter", "Escape", "PgDn"
//   - With modifiers: "Ctrl+Z", "Alt+F4", "Ctrl+Shift+Up"
//
// Control characters are always reported as KeyRune with ModCtrl, so
// "Ctrl+C" matches Event{Key: KeyRune, Rune: 'c', Modifiers: ModCtrl}.
package key
