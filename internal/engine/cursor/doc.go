// Package cursor provides caret positions and per-row selections for the
// editor buffer.
//
// Positions are expressed in display coordinates: RowIndex addresses a line
// and ColIndex a terminal column within it. A wide glyph covers two columns
// and a valid caret column never lands between them (see package grapheme).
//
// Selection Model:
//
// A SelectionMap associates a row index with a half-open column range
// [Start, End) on that row. A row without an entry has no selection. Ranges
// are not revalidated when lines change, so readers clip them against the
// current line content at read time:
//
//	m := cursor.NewSelectionMap()
//	m.Set(2, cursor.NewSelectionRange(4, 9))
//	for _, row := range m.OrderedIndices() {
//	    r, _ := m.Get(row)
//	    text := r.ClipToLine(lines[row])
//	}
//
// Selections are independent of caret movement; they are only changed by
// explicit Set, Extend and Clear calls.
//
// Thread Safety:
//
// Position and SelectionRange are immutable value types. SelectionMap is not
// thread-safe; it is owned by exactly one buffer.
package cursor
