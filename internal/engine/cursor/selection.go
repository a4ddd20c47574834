package cursor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/kedit/internal/engine/grapheme"
)

// SelectionRange is a half-open display-column range [Start, End) on one row.
// SelectionRange is an immutable value type.
type SelectionRange struct {
	Start int
	End   int
}

// NewSelectionRange creates a range from a to b, ordering the bounds so
// that Start <= End.
func NewSelectionRange(a, b int) SelectionRange {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if b < a {
		a, b = b, a
	}
	return SelectionRange{Start: a, End: b}
}

// IsEmpty returns true if the range covers no columns.
func (r SelectionRange) IsEmpty() bool {
	return r.End <= r.Start
}

// Len returns the number of columns covered.
func (r SelectionRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// Contains returns true if col lies within the range.
func (r SelectionRange) Contains(col int) bool {
	return col >= r.Start && col < r.End
}

// String returns a string representation of the range.
func (r SelectionRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// ClipToLine returns the part of line covered by the range, intersected with
// the line's actual bounds. It is empty if the range lies outside the line.
func (r SelectionRange) ClipToLine(line string) string {
	return grapheme.ClipRange(line, r.Start, r.End)
}

// ScrollOffsetLocation classifies a range against a horizontal scroll offset.
type ScrollOffsetLocation uint8

const (
	// Underflow means the range starts at or after the scroll column and can
	// be used as-is.
	Underflow ScrollOffsetLocation = iota

	// Overflow means the range starts before the scroll column and must be
	// re-clipped to begin at it.
	Overflow
)

// String returns the name of the location.
func (l ScrollOffsetLocation) String() string {
	if l == Overflow {
		return "Overflow"
	}
	return "Underflow"
}

// LocateScrollOffsetCol classifies the range relative to scroll.ColIndex.
func (r SelectionRange) LocateScrollOffsetCol(scroll Position) ScrollOffsetLocation {
	if r.Start >= scroll.ColIndex {
		return Underflow
	}
	return Overflow
}

// VisibleFrom returns the portion of the range at or right of the scroll
// column. The result is empty when the range has scrolled out entirely.
func (r SelectionRange) VisibleFrom(scroll Position) SelectionRange {
	if r.LocateScrollOffsetCol(scroll) == Underflow {
		return r
	}
	if r.End <= scroll.ColIndex {
		return SelectionRange{Start: scroll.ColIndex, End: scroll.ColIndex}
	}
	return SelectionRange{Start: scroll.ColIndex, End: r.End}
}

// SelectionMap maps row indices to the selected column range on that row.
// The zero value is not usable; create maps with NewSelectionMap.
type SelectionMap struct {
	rows map[int]SelectionRange
}

// NewSelectionMap creates an empty selection map.
func NewSelectionMap() *SelectionMap {
	return &SelectionMap{rows: make(map[int]SelectionRange)}
}

// Len returns the number of rows with an active selection.
func (m *SelectionMap) Len() int {
	return len(m.rows)
}

// IsEmpty returns true if no row has a selection.
func (m *SelectionMap) IsEmpty() bool {
	return len(m.rows) == 0
}

// Get returns the selection on row.
func (m *SelectionMap) Get(row int) (SelectionRange, bool) {
	r, ok := m.rows[row]
	return r, ok
}

// Set replaces the selection on row. An empty range is kept: it marks a row
// that takes part in a multi-row selection without covering any text.
func (m *SelectionMap) Set(row int, r SelectionRange) {
	if row < 0 {
		return
	}
	m.rows[row] = NewSelectionRange(r.Start, r.End)
}

// Extend grows the selection on row so that it also covers col. A row without
// a selection starts one anchored at anchor.
func (m *SelectionMap) Extend(row, anchor, col int) {
	r, ok := m.rows[row]
	if !ok {
		m.Set(row, NewSelectionRange(anchor, col))
		return
	}
	if col < r.Start {
		r.Start = col
	} else if col > r.End {
		r.End = col
	}
	m.Set(row, r)
}

// Clear removes the selection on row.
func (m *SelectionMap) Clear(row int) {
	delete(m.rows, row)
}

// ClearAll removes every selection.
func (m *SelectionMap) ClearAll() {
	clear(m.rows)
}

// OrderedIndices returns the rows with an active selection in ascending order.
func (m *SelectionMap) OrderedIndices() []int {
	return slices.Sorted(maps.Keys(m.rows))
}

// Clone returns an independent copy of the map.
func (m *SelectionMap) Clone() *SelectionMap {
	return &SelectionMap{rows: maps.Clone(m.rows)}
}

// Equal reports whether both maps hold the same selections.
func (m *SelectionMap) Equal(other *SelectionMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	return maps.Equal(m.rows, other.rows)
}
