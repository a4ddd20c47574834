package buffer

import (
	"slices"
	"strings"

	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/grapheme"
)

// InsertString splices text into the current line at the caret. Newlines in
// text split the line; the caret ends after the last inserted segment. An
// empty buffer gains its first line.
func (b *Buffer) InsertString(text string) {
	if text == "" {
		return
	}
	segments := strings.Split(normalizeLineEndings(text), "\n")

	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		if len(*lines) == 0 {
			*lines = []string{""}
			*caret = cursor.Position{}
		}
		for i, seg := range segments {
			if i > 0 {
				splitLine(lines, caret)
			}
			insertSegment(*lines, caret, seg)
		}
	})
}

// InsertChar inserts a single character at the caret.
func (b *Buffer) InsertChar(r rune) {
	b.InsertString(string(r))
}

// InsertNewLine splits the current line at the caret and moves the caret to
// column 0 of the new row.
func (b *Buffer) InsertNewLine() {
	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		if len(*lines) == 0 {
			*lines = []string{""}
			*caret = cursor.Position{}
		}
		splitLine(lines, caret)
	})
}

// Delete removes the cluster at the caret. At end of line the next line is
// joined onto the current one. The caret does not move.
func (b *Buffer) Delete() {
	if b.IsEmpty() {
		return
	}
	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		row := caret.RowIndex
		line := (*lines)[row]

		if seg, ok := grapheme.ClusterAt(line, caret.ColIndex); ok {
			(*lines)[row] = line[:seg.Byte] + line[seg.Byte+len(seg.Cluster):]
			return
		}
		if row+1 < len(*lines) {
			(*lines)[row] = line + (*lines)[row+1]
			*lines = slices.Delete(*lines, row+1, row+2)
		}
	})
}

// Backspace removes the cluster before the caret and moves the caret left by
// its width. At column 0 the current line is appended to the previous one and
// the caret lands at the former end of the previous line.
func (b *Buffer) Backspace() {
	if b.IsEmpty() {
		return
	}
	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		row := caret.RowIndex
		line := (*lines)[row]

		if caret.ColIndex > 0 {
			if seg, ok := grapheme.ClusterBefore(line, caret.ColIndex); ok {
				(*lines)[row] = line[:seg.Byte] + line[seg.Byte+len(seg.Cluster):]
				caret.ColIndex = seg.Col
			}
			return
		}
		if row > 0 {
			prev := (*lines)[row-1]
			(*lines)[row-1] = prev + line
			*lines = slices.Delete(*lines, row, row+1)
			*caret = cursor.Pos(row-1, grapheme.Width(prev))
		}
	})
}

// DeleteSelection removes the selected text of every row. A row whose
// selection reaches its end of line is joined with the next row when that
// row's selection starts at column 0. The caret moves to the start of the
// first selected row and the selection is cleared. It reports whether
// anything was selected.
func (b *Buffer) DeleteSelection() bool {
	rows := b.selection.OrderedIndices()
	rows = slices.DeleteFunc(rows, func(r int) bool { return r >= len(b.lines) })
	if len(rows) == 0 {
		b.selection.ClearAll()
		return false
	}

	sel := b.selection.Clone()
	b.selection.ClearAll()

	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		toEOL := make(map[int]bool, len(rows))
		for _, row := range rows {
			r, _ := sel.Get(row)
			line := (*lines)[row]
			toEOL[row] = r.End >= grapheme.Width(line)
			if lo, hi, ok := grapheme.ByteRange(line, r.Start, r.End); ok {
				(*lines)[row] = line[:lo] + line[hi:]
			}
		}

		for _, row := range slices.Backward(rows) {
			next, ok := sel.Get(row + 1)
			if !toEOL[row] || !ok || next.Start != 0 || row+1 >= len(*lines) {
				continue
			}
			(*lines)[row] += (*lines)[row+1]
			*lines = slices.Delete(*lines, row+1, row+2)
		}

		first, _ := sel.Get(rows[0])
		*caret = cursor.Pos(rows[0], first.Start)
	})
	return true
}

// splitLine breaks the caret's line at the caret and moves the caret to the
// start of the new row.
func splitLine(lines *[]string, caret *cursor.Position) {
	row := caret.RowIndex
	left, right := grapheme.SplitAt((*lines)[row], caret.ColIndex)
	(*lines)[row] = left
	*lines = slices.Insert(*lines, row+1, right)
	*caret = cursor.Pos(row+1, 0)
}

// insertSegment splices text without newlines into the caret's line.
func insertSegment(lines []string, caret *cursor.Position, text string) {
	if text == "" {
		return
	}
	left, right := grapheme.SplitAt(lines[caret.RowIndex], caret.ColIndex)
	lines[caret.RowIndex] = left + text + right
	caret.ColIndex = grapheme.Width(left + text)
}
