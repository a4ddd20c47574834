// Package buffer holds the state of one document being edited: its lines,
// the caret, the scroll offset, the per-row selection map, undo history and
// an optional language tag used for highlighting.
//
// The buffer package provides:
//
//   - A single mutation funnel (MutateLines) after which caret validity and
//     scroll offset are re-established unconditionally
//   - Grapheme-aware editing primitives (insert, newline, delete, backspace)
//   - Caret movement by cluster, by row and by page
//   - Selection management and selected-text extraction
//   - Snapshot-based undo/redo
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello", buffer.WithLanguage("md"))
//	buf.SetViewport(cursor.Size{Cols: 80, Rows: 24})
//
//	buf.MoveCaret(buffer.End)
//	buf.InsertString(", World!")  // "Hello, World!"
//	buf.Backspace()                // "Hello, World"
//
// Coordinates:
//
// The caret and selections are expressed in display columns, not bytes or
// runes. A wide glyph occupies two columns and the caret never rests between
// them; see package grapheme for the conversions.
//
// Thread Safety:
//
// A Buffer is owned by exactly one editing session and is not safe for
// concurrent use. The caller serialises input handling and rendering.
package buffer
