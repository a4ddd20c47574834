package buffer

import (
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/history"
)

// Snapshot captures the lines, caret and selection.
func (b *Buffer) Snapshot() history.Snapshot {
	return history.NewSnapshot(b.lines, b.caret, b.selection)
}

// RecordHistory pushes the current state onto the undo history.
func (b *Buffer) RecordHistory() {
	b.history.Push(b.Snapshot())
}

// HistoryIsEmpty returns true if no state was ever recorded.
func (b *Buffer) HistoryIsEmpty() bool {
	return b.history.IsEmpty()
}

// CanUndo returns true if there is something to undo.
func (b *Buffer) CanUndo() bool {
	return b.history.CanUndo()
}

// CanRedo returns true if there is something to redo.
func (b *Buffer) CanRedo() bool {
	return b.history.CanRedo()
}

// Undo restores the previous snapshot.
// Returns history.ErrNothingToUndo at the oldest entry.
func (b *Buffer) Undo() error {
	snap, err := b.history.Undo()
	if err != nil {
		return err
	}
	b.restore(snap)
	return nil
}

// Redo restores the next snapshot.
// Returns history.ErrNothingToRedo at the newest entry.
func (b *Buffer) Redo() error {
	snap, err := b.history.Redo()
	if err != nil {
		return err
	}
	b.restore(snap)
	return nil
}

func (b *Buffer) restore(snap history.Snapshot) {
	b.selection = snap.Selection.Clone()
	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		*lines = snap.Lines
		*caret = snap.Caret
	})
}
