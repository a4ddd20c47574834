// Package grapheme converts between logical positions (grapheme cluster
// indices) and display columns (terminal cells) within a single line.
//
// Every function here is pure and total: out-of-range indices and columns
// are clamped instead of causing a panic. Cluster boundaries and widths come
// from github.com/rivo/uniseg, so a wide glyph such as "😀" occupies two
// columns and a combining mark contributes zero columns to its cluster.
// Every cluster occupies at least one column: a cluster with no glyph of its
// own, such as a tab, a zero-width space or a control character, is one
// blank cell wide so the caret can always step over it.
//
// Basic usage:
//
//	w := grapheme.Width("a😀")                       // 3
//	col := grapheme.DisplayWidth("a😀b", 2)          // 3
//	idx := grapheme.LogicalIndex("a😀b", 3)          // 2
//	col = grapheme.NearestValidCaretCol("a😀b", 2)   // 1 (snaps left)
package grapheme

import "github.com/rivo/uniseg"

// Segment describes one grapheme cluster of a line.
type Segment struct {
	// Cluster is the text of the cluster.
	Cluster string

	// Byte is the byte offset of the cluster within the line.
	Byte int

	// Col is the display column the cluster starts at.
	Col int

	// Width is the number of display columns the cluster occupies. It is
	// always at least 1.
	Width int

	// Blank is set for clusters painted as a space because they have no
	// glyph of their own.
	Blank bool
}

// blankGlyph is painted in place of clusters without a glyph.
const blankGlyph = " "

// Glyph returns the text to paint for the cluster.
func (s Segment) Glyph() string {
	if s.Blank {
		return blankGlyph
	}
	return s.Cluster
}

// End returns the display column just past the cluster.
func (s Segment) End() int {
	return s.Col + s.Width
}

// Segments splits line into grapheme clusters annotated with their byte
// offsets and display columns.
func Segments(line string) []Segment {
	if line == "" {
		return nil
	}

	segs := make([]Segment, 0, len(line))
	state := -1
	rest := line
	byteOff, col := 0, 0
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		seg := Segment{Cluster: cluster, Byte: byteOff, Col: col, Width: width}
		if width <= 0 {
			seg.Width, seg.Blank = 1, true
		}
		segs = append(segs, seg)
		byteOff += len(cluster)
		col += seg.Width
	}
	return segs
}

// Width returns the display width of the whole line.
func Width(line string) int {
	w := 0
	for _, seg := range Segments(line) {
		w += seg.Width
	}
	return w
}

// Count returns the number of grapheme clusters in line.
func Count(line string) int {
	return uniseg.GraphemeClusterCount(line)
}

// DisplayWidth returns the summed width of the clusters before the logical
// index upTo. upTo is clamped to [0, Count(line)].
func DisplayWidth(line string, upTo int) int {
	if upTo <= 0 {
		return 0
	}
	col := 0
	for i, seg := range Segments(line) {
		if i >= upTo {
			break
		}
		col += seg.Width
	}
	return col
}

// LogicalIndex returns the number of clusters that end at or before col.
// It is the inverse of DisplayWidth on valid caret columns.
func LogicalIndex(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for _, seg := range Segments(line) {
		if seg.End() > col {
			break
		}
		n++
	}
	return n
}

// ByteOffset returns the byte offset of the cluster boundary at col.
// A column inside a wide cluster resolves to the start of that cluster.
func ByteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	for _, seg := range Segments(line) {
		if seg.End() > col {
			return seg.Byte
		}
	}
	return len(line)
}

// SplitAt splits line at the cluster boundary at col.
func SplitAt(line string, col int) (left, right string) {
	off := ByteOffset(line, col)
	return line[:off], line[off:]
}

// NearestValidCaretCol clamps col to [0, Width(line)] and snaps a column
// that falls inside a wide cluster to the start of that cluster.
func NearestValidCaretCol(line string, col int) int {
	if col <= 0 {
		return 0
	}
	for _, seg := range Segments(line) {
		if col < seg.End() {
			if col > seg.Col {
				return seg.Col
			}
			return col
		}
	}
	return Width(line)
}

// IsBoundary reports whether col is a valid caret column for line.
func IsBoundary(line string, col int) bool {
	return col >= 0 && NearestValidCaretCol(line, col) == col
}

// ClusterAt returns the cluster at the logical position addressed by the
// caret column col, i.e. the one a forward delete would remove.
func ClusterAt(line string, col int) (Segment, bool) {
	segs := Segments(line)
	idx := LogicalIndex(line, col)
	if idx >= len(segs) {
		return Segment{}, false
	}
	return segs[idx], true
}

// ClusterBefore returns the cluster immediately left of the caret column col.
func ClusterBefore(line string, col int) (Segment, bool) {
	segs := Segments(line)
	idx := LogicalIndex(line, col)
	if idx == 0 || idx > len(segs) {
		return Segment{}, false
	}
	return segs[idx-1], true
}

// ByteRange returns the byte bounds of the clusters lying fully inside the
// display column window [startCol, endCol). Wide clusters cut by either edge
// of the window are excluded. ok is false when no cluster qualifies.
func ByteRange(line string, startCol, endCol int) (lo, hi int, ok bool) {
	if startCol < 0 {
		startCol = 0
	}
	lo, hi = -1, -1
	for _, seg := range Segments(line) {
		if seg.Col < startCol {
			continue
		}
		if seg.End() > endCol || seg.Col >= endCol {
			break
		}
		if lo < 0 {
			lo = seg.Byte
		}
		hi = seg.Byte + len(seg.Cluster)
	}
	if lo < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}

// Clip returns the clusters of line lying fully inside the display column
// window [startCol, startCol+maxCols). Wide clusters cut by either edge of
// the window are dropped rather than split.
func Clip(line string, startCol, maxCols int) string {
	if maxCols <= 0 {
		return ""
	}
	if startCol < 0 {
		startCol = 0
	}
	lo, hi, ok := ByteRange(line, startCol, startCol+maxCols)
	if !ok {
		return ""
	}
	return line[lo:hi]
}

// ClipRange returns the part of line covered by the half-open display
// column range [start, end), intersected with the line's bounds.
func ClipRange(line string, start, end int) string {
	if end <= start {
		return ""
	}
	return Clip(line, start, end-start)
}
