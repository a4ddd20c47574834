// Package renderer turns the state of an editor component into paint
// operations.
//
// A render pass reads a settled buffer and emits, in order:
//
//	content     every visible row, plain or highlighted
//	selection   the visible part of each selected row
//	caret       the cluster under the caret in reverse video (focused only)
//
// Content is produced by one of three strategies chosen by the engine's
// HighlightMode: plain text, the grammar highlighter with a plain fallback
// per line, or the grammar highlighter followed by the document override
// highlighter. Highlighting is cosmetic; highlighter errors and panics are
// logged and the affected rows fall back to simpler rendering.
//
// An empty buffer renders a placeholder message instead, plus a marker one
// row below when the component has focus.
//
// Usage:
//
//	r := renderer.New(renderer.WithTheme(highlight.DefaultTheme()))
//	ops := r.Render(eng, renderer.Box{Size: size}, focus)
//	term.Execute(ops)
package renderer
