package history

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when New is given a non-positive limit.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	entries []Snapshot

	// index of the snapshot matching the live buffer, -1 when empty
	current int

	maxEntries int
}

// New creates a history that keeps at most maxEntries snapshots.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{current: -1, maxEntries: maxEntries}
}

// Push records snap as the newest state. Entries beyond the cursor are
// discarded. A snapshot equal to the current one is ignored.
func (h *History) Push(snap Snapshot) {
	if top, ok := h.Current(); ok && top.Equal(snap) {
		return
	}

	h.entries = append(h.entries[:h.current+1], snap.Clone())

	// Enforce max entries
	if excess := len(h.entries) - h.maxEntries; excess > 0 {
		h.entries = h.entries[excess:]
	}
	h.current = len(h.entries) - 1
}

// Undo moves the cursor back one entry and returns the snapshot there.
func (h *History) Undo() (Snapshot, error) {
	if h.current <= 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	h.current--
	return h.entries[h.current].Clone(), nil
}

// Redo moves the cursor forward one entry and returns the snapshot there.
func (h *History) Redo() (Snapshot, error) {
	if h.current >= len(h.entries)-1 {
		return Snapshot{}, ErrNothingToRedo
	}
	h.current++
	return h.entries[h.current].Clone(), nil
}

// Current returns the snapshot at the cursor.
func (h *History) Current() (Snapshot, bool) {
	if h.current < 0 {
		return Snapshot{}, false
	}
	return h.entries[h.current], true
}

// CanUndo returns true if there is something to undo.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if there is something to redo.
func (h *History) CanRedo() bool {
	return h.current < len(h.entries)-1
}

// IsEmpty returns true if nothing was ever pushed.
func (h *History) IsEmpty() bool {
	return len(h.entries) == 0
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the cursor position, -1 when empty.
func (h *History) Index() int {
	return h.current
}

// MaxEntries returns the snapshot limit.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// Clear removes all snapshots.
func (h *History) Clear() {
	h.entries = nil
	h.current = -1
}
