// Package keymap binds single key presses to named application actions.
//
// Bindings use the key specification syntax of package key, such as
// "Ctrl+Z" or "Shift+Left". Keys that no binding claims fall through to
// the editor component.
package keymap
