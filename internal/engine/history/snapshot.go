package history

import (
	"slices"

	"github.com/dshills/kedit/internal/engine/cursor"
)

// Snapshot is an immutable copy of buffer content, caret and selection.
type Snapshot struct {
	Lines     []string
	Caret     cursor.Position
	Selection *cursor.SelectionMap
}

// NewSnapshot copies the given state into a new snapshot.
func NewSnapshot(lines []string, caret cursor.Position, sel *cursor.SelectionMap) Snapshot {
	return Snapshot{Lines: slices.Clone(lines), Caret: caret, Selection: cloneSelection(sel)}.normalize()
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return NewSnapshot(s.Lines, s.Caret, s.Selection)
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Caret == other.Caret &&
		slices.Equal(s.Lines, other.Lines) &&
		s.Selection.Equal(other.Selection)
}

func (s Snapshot) normalize() Snapshot {
	if s.Lines == nil {
		s.Lines = []string{}
	}
	return s
}

func cloneSelection(sel *cursor.SelectionMap) *cursor.SelectionMap {
	if sel == nil {
		return cursor.NewSelectionMap()
	}
	return sel.Clone()
}
