package buffer

import (
	"strings"

	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/grapheme"
)

// Selection returns a copy of the selection map.
func (b *Buffer) Selection() *cursor.SelectionMap {
	return b.selection.Clone()
}

// HasSelection returns true if any row has a selection.
func (b *Buffer) HasSelection() bool {
	return !b.selection.IsEmpty()
}

// SetSelection replaces the selection on row.
func (b *Buffer) SetSelection(row int, r cursor.SelectionRange) {
	b.selection.Set(row, r)
}

// ExtendSelection grows the selection on row to cover col.
func (b *Buffer) ExtendSelection(row, anchor, col int) {
	b.selection.Extend(row, anchor, col)
}

// ClearSelection removes the selection on row.
func (b *Buffer) ClearSelection(row int) {
	b.selection.Clear(row)
}

// ClearAllSelections removes every selection.
func (b *Buffer) ClearAllSelections() {
	b.selection.ClearAll()
}

// SelectAll selects every line in full.
func (b *Buffer) SelectAll() {
	b.selection.ClearAll()
	for row, line := range b.lines {
		b.selection.Set(row, cursor.NewSelectionRange(0, grapheme.Width(line)))
	}
}

// SelectedText returns the clipped selected text of each selected row in
// ascending row order, joined with newlines.
func (b *Buffer) SelectedText() string {
	var parts []string
	for _, row := range b.selection.OrderedIndices() {
		if row >= len(b.lines) {
			continue
		}
		r, _ := b.selection.Get(row)
		parts = append(parts, r.ClipToLine(b.lines[row]))
	}
	return strings.Join(parts, "\n")
}
