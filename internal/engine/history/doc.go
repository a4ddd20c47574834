// Package history provides undo/redo for the editor buffer.
//
// History is a linear stack of Snapshots with a cursor marking the state the
// buffer currently shows. Each snapshot is an independent deep copy of the
// buffer's lines, caret and selection, so restoring one never aliases live
// buffer storage.
//
// # Pushing
//
// The buffer pushes once per content-changing command. The first push on an
// empty history records the state before the edit, which makes the very
// first edit undoable:
//
//	h := history.New(1000) // Max 1000 snapshots
//	h.Push(before)         // only when h.IsEmpty()
//	h.Push(after)
//
// Pushing while the cursor is not at the newest entry discards the entries
// beyond it (classic linear undo). Identical consecutive snapshots are
// pushed once.
//
// # Undo/Redo
//
//	snap, err := h.Undo() // ErrNothingToUndo at the oldest entry
//	snap, err = h.Redo()  // ErrNothingToRedo at the newest entry
//
// Neither call touches the buffer; the caller restores the returned snapshot.
package history
