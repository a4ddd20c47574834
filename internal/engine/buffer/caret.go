package buffer

import (
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/grapheme"
)

// Direction is a caret movement.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	Home
	End
	PageUp
	PageDown
)

var directionNames = [...]string{
	Left:     "Left",
	Right:    "Right",
	Up:       "Up",
	Down:     "Down",
	Home:     "Home",
	End:      "End",
	PageUp:   "PageUp",
	PageDown: "PageDown",
}

// String returns the name of the direction.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "Unknown"
}

// MoveCaret moves the caret one step in dir. Left and Right move by one
// grapheme cluster and wrap across line ends. Up and Down keep a preferred
// column across rows that are too short for it. PageUp and PageDown move by
// the viewport height.
func (b *Buffer) MoveCaret(dir Direction) {
	if b.IsEmpty() {
		return
	}

	vertical := dir == Up || dir == Down || dir == PageUp || dir == PageDown
	if !vertical {
		b.preferredCol = -1
	}

	b.MutateCaret(func(lines []string, caret *cursor.Position) {
		last := len(lines) - 1
		line := lines[caret.RowIndex]

		switch dir {
		case Left:
			if caret.ColIndex > 0 {
				caret.ColIndex = prevBoundary(line, caret.ColIndex)
			} else if caret.RowIndex > 0 {
				caret.RowIndex--
				caret.ColIndex = grapheme.Width(lines[caret.RowIndex])
			}
		case Right:
			if seg, ok := grapheme.ClusterAt(line, caret.ColIndex); ok {
				caret.ColIndex = seg.End()
			} else if caret.RowIndex < last {
				caret.RowIndex++
				caret.ColIndex = 0
			}
		case Home:
			caret.ColIndex = 0
		case End:
			caret.ColIndex = grapheme.Width(line)
		case Up:
			b.moveVertical(lines, caret, -1)
		case Down:
			b.moveVertical(lines, caret, 1)
		case PageUp:
			b.moveVertical(lines, caret, -b.pageSize())
		case PageDown:
			b.moveVertical(lines, caret, b.pageSize())
		}
	})
}

// moveVertical moves the caret delta rows, aiming for the preferred column
// and clamping to the target row's end of line.
func (b *Buffer) moveVertical(lines []string, caret *cursor.Position, delta int) {
	target := clamp(caret.RowIndex+delta, 0, len(lines)-1)
	if target == caret.RowIndex {
		return
	}
	if b.preferredCol < 0 {
		b.preferredCol = caret.ColIndex
	}
	caret.RowIndex = target
	caret.ColIndex = min(b.preferredCol, grapheme.Width(lines[target]))
}

func (b *Buffer) pageSize() int {
	return max(b.viewport.Rows, 1)
}

// prevBoundary returns the start column of the last cluster starting before
// col.
func prevBoundary(line string, col int) int {
	prev := 0
	for _, seg := range grapheme.Segments(line) {
		if seg.Col >= col {
			break
		}
		prev = seg.Col
	}
	return prev
}

// SetCaret places the caret at pos, snapped onto a valid position.
func (b *Buffer) SetCaret(pos cursor.Position) {
	b.preferredCol = -1
	b.MutateCaret(func(_ []string, caret *cursor.Position) {
		*caret = pos
	})
}
