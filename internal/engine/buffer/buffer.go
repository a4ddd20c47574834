package buffer

import (
	"io"
	"slices"
	"strings"

	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/grapheme"
	"github.com/dshills/kedit/internal/engine/history"
)

// Buffer owns the lines of one document together with its caret, scroll
// offset, selection, undo history and language tag.
type Buffer struct {
	lines        []string
	caret        cursor.Position
	scrollOffset cursor.Position
	viewport     cursor.Size
	selection    *cursor.SelectionMap
	history      *history.History
	languageTag  string

	// preferredCol is the column Up/Down aim for, -1 when unset.
	preferredCol int

	// revision counts mutations that changed line content.
	revision uint64
}

// New creates a new empty buffer with zero lines.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		selection:    cursor.NewSelectionMap(),
		history:      history.New(history.DefaultMaxEntries),
		preferredCol: -1,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromLines creates a buffer holding a copy of lines.
func NewFromLines(lines []string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = slices.Clone(lines)
	b.validate()
	return b
}

// NewFromString creates a buffer from text. An empty string yields a buffer
// with zero lines.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	if s != "" {
		b.lines = strings.Split(normalizeLineEndings(s), "\n")
	}
	b.validate()
	return b
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read all content first so CRLF pairs split across reads still normalise
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Lines returns a copy of the buffer's lines.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// Line returns the text of row, or "" if row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// IsEmpty returns true if the buffer has zero lines.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Text returns the content joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Caret returns the caret position.
func (b *Buffer) Caret() cursor.Position {
	return b.caret
}

// ScrollOffset returns the top-left visible display coordinate.
func (b *Buffer) ScrollOffset() cursor.Position {
	return b.scrollOffset
}

// Viewport returns the viewport size used for scroll computation.
func (b *Buffer) Viewport() cursor.Size {
	return b.viewport
}

// LanguageTag returns the language tag set at creation.
func (b *Buffer) LanguageTag() string {
	return b.languageTag
}

// Revision returns a counter that increases whenever line content changes.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// SetViewport updates the viewport size and recomputes the scroll offset.
func (b *Buffer) SetViewport(size cursor.Size) {
	b.viewport = size
	b.validate()
}

// MutateLines is the single write path for line content. fn receives the
// lines and caret together; the caret is re-validated and the scroll offset
// recomputed after fn returns, whatever fn did.
func (b *Buffer) MutateLines(fn func(lines *[]string, caret *cursor.Position)) {
	before := slices.Clone(b.lines)
	fn(&b.lines, &b.caret)
	if !slices.Equal(before, b.lines) {
		b.revision++
	}
	b.preferredCol = -1
	b.validate()
}

// MutateCaret moves the caret without touching content. The caret is
// re-validated and the scroll offset recomputed after fn returns.
func (b *Buffer) MutateCaret(fn func(lines []string, caret *cursor.Position)) {
	fn(b.lines, &b.caret)
	b.validate()
}

// validate clamps the caret onto a valid cluster boundary and scrolls the
// minimum amount needed to keep it in view.
func (b *Buffer) validate() {
	if len(b.lines) == 0 {
		b.caret = cursor.Position{}
		b.scrollOffset = cursor.Position{}
		return
	}

	b.caret.RowIndex = clamp(b.caret.RowIndex, 0, len(b.lines)-1)
	b.caret.ColIndex = grapheme.NearestValidCaretCol(b.lines[b.caret.RowIndex], b.caret.ColIndex)

	b.scrollOffset.RowIndex = scrollAxis(b.scrollOffset.RowIndex, b.caret.RowIndex, b.viewport.Rows)
	b.scrollOffset.ColIndex = scrollAxis(b.scrollOffset.ColIndex, b.caret.ColIndex, b.viewport.Cols)
}

// scrollAxis returns the offset closest to offset that shows pos inside a
// window of the given extent. A non-positive extent only keeps pos at or
// after the offset.
func scrollAxis(offset, pos, extent int) int {
	if offset < 0 {
		offset = 0
	}
	if pos < offset {
		return pos
	}
	if extent > 0 && pos >= offset+extent {
		return pos - extent + 1
	}
	return offset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
