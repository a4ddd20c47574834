package cursor

import "fmt"

// Position is a display-coordinate location in a buffer.
type Position struct {
	RowIndex int
	ColIndex int
}

// Pos is shorthand for Position{RowIndex: row, ColIndex: col}.
func Pos(row, col int) Position {
	return Position{RowIndex: row, ColIndex: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.RowIndex, p.ColIndex)
}

// Add returns p shifted by other.
func (p Position) Add(other Position) Position {
	return Position{RowIndex: p.RowIndex + other.RowIndex, ColIndex: p.ColIndex + other.ColIndex}
}

// Sub returns p relative to origin.
func (p Position) Sub(origin Position) Position {
	return Position{RowIndex: p.RowIndex - origin.RowIndex, ColIndex: p.ColIndex - origin.ColIndex}
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Rows are compared first.
func (p Position) Compare(other Position) int {
	switch {
	case p.RowIndex < other.RowIndex:
		return -1
	case p.RowIndex > other.RowIndex:
		return 1
	case p.ColIndex < other.ColIndex:
		return -1
	case p.ColIndex > other.ColIndex:
		return 1
	}
	return 0
}

// Size is the extent of a viewport in terminal cells.
type Size struct {
	Cols int
	Rows int
}

// IsZero reports whether the size has no visible area.
func (s Size) IsZero() bool {
	return s.Cols <= 0 || s.Rows <= 0
}
