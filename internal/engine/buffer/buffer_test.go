package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/grapheme"
	"github.com/dshills/kedit/internal/engine/history"
)

func assertCaretValid(t *testing.T, b *Buffer) {
	t.Helper()
	c := b.Caret()
	if b.IsEmpty() {
		assert.Equal(t, cursor.Position{}, c)
		return
	}
	require.GreaterOrEqual(t, c.RowIndex, 0)
	require.Less(t, c.RowIndex, b.LineCount())
	assert.True(t, grapheme.IsBoundary(b.Line(c.RowIndex), c.ColIndex),
		"caret %v not on a boundary of %q", c, b.Line(c.RowIndex))
}

func TestNewBuffer(t *testing.T) {
	b := New()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.LineCount())
	assert.Equal(t, cursor.Position{}, b.Caret())
	assert.True(t, b.HistoryIsEmpty())
	assert.Empty(t, b.LanguageTag())
}

func TestNewFromString(t *testing.T) {
	b := NewFromString("one\r\ntwo\rthree\n", WithLanguage("md"))
	assert.Equal(t, []string{"one", "two", "three", ""}, b.Lines())
	assert.Equal(t, "md", b.LanguageTag())

	assert.True(t, NewFromString("").IsEmpty())
}

func TestNewFromReader(t *testing.T) {
	b, err := NewFromReader(strings.NewReader("a\nb"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb", b.Text())
}

func TestLinesReturnsCopy(t *testing.T) {
	b := NewFromLines([]string{"abc"})
	lines := b.Lines()
	lines[0] = "changed"
	assert.Equal(t, "abc", b.Line(0))
	assert.Empty(t, b.Line(5))
}

func TestMutateLinesValidatesCaret(t *testing.T) {
	b := NewFromLines([]string{"a😀b", "x"})

	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		*caret = cursor.Pos(0, 2)
	})
	assert.Equal(t, cursor.Pos(0, 1), b.Caret(), "inside wide glyph snaps left")

	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		*caret = cursor.Pos(10, 10)
	})
	assert.Equal(t, cursor.Pos(1, 1), b.Caret(), "row and column clamp")

	b.MutateLines(func(lines *[]string, caret *cursor.Position) {
		*lines = (*lines)[:0]
	})
	assert.Equal(t, cursor.Position{}, b.Caret())
}

func TestRevisionTracksContentChanges(t *testing.T) {
	b := NewFromLines([]string{"a"})
	rev := b.Revision()

	b.MoveCaret(End)
	assert.Equal(t, rev, b.Revision())

	b.InsertChar('b')
	assert.Greater(t, b.Revision(), rev)

	rev = b.Revision()
	b.MutateLines(func(*[]string, *cursor.Position) {})
	assert.Equal(t, rev, b.Revision())
}

func TestInsertString(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		caret     cursor.Position
		text      string
		wantLines []string
		wantCaret cursor.Position
	}{
		{"into empty buffer", nil, cursor.Pos(0, 0), "hi", []string{"hi"}, cursor.Pos(0, 2)},
		{"middle", []string{"ac"}, cursor.Pos(0, 1), "b", []string{"abc"}, cursor.Pos(0, 2)},
		{"wide glyph", []string{""}, cursor.Pos(0, 0), "😀", []string{"😀"}, cursor.Pos(0, 2)},
		{"after wide glyph", []string{"😀"}, cursor.Pos(0, 2), "x", []string{"😀x"}, cursor.Pos(0, 3)},
		{"multi line", []string{"ad"}, cursor.Pos(0, 1), "b\nc", []string{"ab", "cd"}, cursor.Pos(1, 1)},
		{"trailing newline", []string{"x"}, cursor.Pos(0, 1), "y\n", []string{"xy", ""}, cursor.Pos(1, 0)},
		{"crlf normalised", []string{""}, cursor.Pos(0, 0), "a\r\nb", []string{"a", "b"}, cursor.Pos(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromLines(tt.lines)
			b.SetCaret(tt.caret)
			b.InsertString(tt.text)

			assert.Equal(t, tt.wantLines, b.Lines())
			assert.Equal(t, tt.wantCaret, b.Caret())
			assertCaretValid(t, b)
		})
	}
}

func TestInsertNewLine(t *testing.T) {
	b := NewFromLines([]string{"hello"})
	b.SetCaret(cursor.Pos(0, 2))
	b.InsertNewLine()
	assert.Equal(t, []string{"he", "llo"}, b.Lines())
	assert.Equal(t, cursor.Pos(1, 0), b.Caret())

	empty := New()
	empty.InsertNewLine()
	assert.Equal(t, []string{"", ""}, empty.Lines())
	assert.Equal(t, cursor.Pos(1, 0), empty.Caret())
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		caret     cursor.Position
		wantLines []string
	}{
		{"middle", []string{"abc"}, cursor.Pos(0, 1), []string{"ac"}},
		{"wide glyph", []string{"a😀b"}, cursor.Pos(0, 1), []string{"ab"}},
		{"joins next line", []string{"ab", "cd"}, cursor.Pos(0, 2), []string{"abcd"}},
		{"end of document", []string{"ab"}, cursor.Pos(0, 2), []string{"ab"}},
		{"leading tab", []string{"\tab"}, cursor.Pos(0, 0), []string{"ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromLines(tt.lines)
			b.SetCaret(tt.caret)
			b.Delete()
			assert.Equal(t, tt.wantLines, b.Lines())
			assert.Equal(t, tt.caret, b.Caret(), "delete does not move the caret")
		})
	}

	b := New()
	b.Delete()
	assert.True(t, b.IsEmpty())
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		caret     cursor.Position
		wantLines []string
		wantCaret cursor.Position
	}{
		{"end of line", []string{"ab"}, cursor.Pos(0, 2), []string{"a"}, cursor.Pos(0, 1)},
		{"joins previous line", []string{"a", "b"}, cursor.Pos(1, 0), []string{"ab"}, cursor.Pos(0, 1)},
		{"wide glyph", []string{"a😀"}, cursor.Pos(0, 3), []string{"a"}, cursor.Pos(0, 1)},
		{"combining cluster", []string{"xé"}, cursor.Pos(0, 2), []string{"x"}, cursor.Pos(0, 1)},
		{"document start", []string{"ab"}, cursor.Pos(0, 0), []string{"ab"}, cursor.Pos(0, 0)},
		{"before tab", []string{"a\tab"}, cursor.Pos(0, 1), []string{"\tab"}, cursor.Pos(0, 0)},
		{"after tab", []string{"a\tab"}, cursor.Pos(0, 2), []string{"aab"}, cursor.Pos(0, 1)},
		{"zero width space", []string{"\u200bx"}, cursor.Pos(0, 1), []string{"x"}, cursor.Pos(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromLines(tt.lines)
			b.SetCaret(tt.caret)
			b.Backspace()
			assert.Equal(t, tt.wantLines, b.Lines())
			assert.Equal(t, tt.wantCaret, b.Caret())
		})
	}
}

func TestInsertThenBackspaceRoundTrip(t *testing.T) {
	for _, r := range []rune{'x', '😀', '世', 'é'} {
		b := NewFromLines([]string{"ab", "cd"})
		b.SetCaret(cursor.Pos(1, 1))
		before, caret := b.Lines(), b.Caret()

		b.InsertChar(r)
		b.Backspace()

		assert.Equal(t, before, b.Lines(), "rune %q", r)
		assert.Equal(t, caret, b.Caret(), "rune %q", r)
	}
}

func TestMoveCaretHorizontal(t *testing.T) {
	b := NewFromLines([]string{"a😀", "b"})

	b.MoveCaret(Right)
	assert.Equal(t, cursor.Pos(0, 1), b.Caret())
	b.MoveCaret(Right)
	assert.Equal(t, cursor.Pos(0, 3), b.Caret(), "steps over the wide glyph")
	b.MoveCaret(Right)
	assert.Equal(t, cursor.Pos(1, 0), b.Caret(), "wraps to next line")
	b.MoveCaret(Right)
	b.MoveCaret(Right)
	assert.Equal(t, cursor.Pos(1, 1), b.Caret(), "no wrap at document end")

	b.MoveCaret(Left)
	b.MoveCaret(Left)
	assert.Equal(t, cursor.Pos(0, 3), b.Caret(), "wraps to previous line end")
	b.MoveCaret(Left)
	assert.Equal(t, cursor.Pos(0, 1), b.Caret())
	b.MoveCaret(Left)
	b.MoveCaret(Left)
	assert.Equal(t, cursor.Pos(0, 0), b.Caret(), "no wrap at document start")
}

func TestMoveCaretOverBlankClusters(t *testing.T) {
	for _, line := range []string{"\tab", "\u200bab", "\t\u200ba"} {
		t.Run(line, func(t *testing.T) {
			b := NewFromLines([]string{line})
			for want := 1; want <= 3; want++ {
				b.MoveCaret(Right)
				assert.Equal(t, cursor.Pos(0, want), b.Caret())
			}
			b.MoveCaret(Right)
			assert.Equal(t, cursor.Pos(0, 3), b.Caret(), "stops at end of line")

			for want := 2; want >= 0; want-- {
				b.MoveCaret(Left)
				assert.Equal(t, cursor.Pos(0, want), b.Caret())
			}
		})
	}
}

func TestMoveCaretVerticalPreferredColumn(t *testing.T) {
	b := NewFromLines([]string{"long line", "ab", "another long"})
	b.SetCaret(cursor.Pos(0, 7))

	b.MoveCaret(Down)
	assert.Equal(t, cursor.Pos(1, 2), b.Caret(), "clamps to short line")
	b.MoveCaret(Down)
	assert.Equal(t, cursor.Pos(2, 7), b.Caret(), "restores preferred column")
	b.MoveCaret(Down)
	assert.Equal(t, cursor.Pos(2, 7), b.Caret(), "no movement past last row")

	b.MoveCaret(Up)
	b.MoveCaret(Left)
	b.MoveCaret(Down)
	assert.Equal(t, cursor.Pos(2, 1), b.Caret(), "horizontal move resets preferred column")
}

func TestMoveCaretVerticalSnapsOutOfWideGlyph(t *testing.T) {
	b := NewFromLines([]string{"abc", "😀😀"})
	b.SetCaret(cursor.Pos(0, 3))
	b.MoveCaret(Down)
	assert.Equal(t, cursor.Pos(1, 2), b.Caret())
}

func TestMoveCaretHomeEndPage(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	b := NewFromLines(lines, WithViewport(cursor.Size{Cols: 80, Rows: 10}))
	b.SetCaret(cursor.Pos(0, 2))

	b.MoveCaret(End)
	assert.Equal(t, cursor.Pos(0, 4), b.Caret())
	b.MoveCaret(Home)
	assert.Equal(t, cursor.Pos(0, 0), b.Caret())

	b.MoveCaret(PageDown)
	assert.Equal(t, 10, b.Caret().RowIndex)
	b.MoveCaret(PageDown)
	b.MoveCaret(PageDown)
	assert.Equal(t, 29, b.Caret().RowIndex, "clamped to last row")
	b.MoveCaret(PageUp)
	assert.Equal(t, 19, b.Caret().RowIndex)
}

func TestScrollFollowsCaret(t *testing.T) {
	b := NewFromLines([]string{"0", "1", "2", "3", "4", "5"}, WithViewport(cursor.Size{Cols: 4, Rows: 3}))

	for i := 0; i < 4; i++ {
		b.MoveCaret(Down)
	}
	assert.Equal(t, cursor.Pos(2, 0), b.ScrollOffset(), "scrolls by the minimum amount")

	b.MoveCaret(Up)
	assert.Equal(t, cursor.Pos(2, 0), b.ScrollOffset(), "no scroll while visible")

	b.SetCaret(cursor.Pos(0, 0))
	assert.Equal(t, cursor.Pos(0, 0), b.ScrollOffset())

	b.InsertString("abcdef")
	assert.Equal(t, cursor.Pos(0, 6), b.Caret())
	assert.Equal(t, cursor.Pos(0, 3), b.ScrollOffset())
}

func TestSelectedTextAndDeleteSelection(t *testing.T) {
	b := NewFromLines([]string{"hello world", "second", "third"})
	b.SetSelection(0, cursor.NewSelectionRange(6, 11))
	b.SetSelection(1, cursor.NewSelectionRange(0, 3))

	assert.Equal(t, "world\nsec", b.SelectedText())

	require.True(t, b.DeleteSelection())
	assert.Equal(t, []string{"hello ond", "third"}, b.Lines())
	assert.Equal(t, cursor.Pos(0, 6), b.Caret())
	assert.False(t, b.HasSelection())

	assert.False(t, b.DeleteSelection(), "nothing selected")
}

func TestDeleteSelectionKeepsRowsWithPartialSelection(t *testing.T) {
	b := NewFromLines([]string{"abc", "def"})
	b.SetSelection(0, cursor.NewSelectionRange(0, 1))
	b.SetSelection(1, cursor.NewSelectionRange(1, 2))

	require.True(t, b.DeleteSelection())
	assert.Equal(t, []string{"bc", "df"}, b.Lines())
}

func TestSelectAllCutLeavesSingleEmptyLine(t *testing.T) {
	b := NewFromLines([]string{"a", "", "b😀"})
	b.SelectAll()
	assert.Equal(t, "a\n\nb😀", b.SelectedText())

	require.True(t, b.DeleteSelection())
	assert.Equal(t, []string{""}, b.Lines())
	assert.Equal(t, cursor.Position{}, b.Caret())
}

func TestSelectionSurvivesCaretMovement(t *testing.T) {
	b := NewFromLines([]string{"abc"})
	b.ExtendSelection(0, 0, 2)
	b.MoveCaret(Right)

	r, ok := b.Selection().Get(0)
	require.True(t, ok)
	assert.Equal(t, cursor.NewSelectionRange(0, 2), r)

	b.ClearSelection(0)
	assert.False(t, b.HasSelection())
}

func TestSelectedTextClipsShrunkLines(t *testing.T) {
	b := NewFromLines([]string{"abcdef"})
	b.SetSelection(0, cursor.NewSelectionRange(2, 6))
	b.SetSelection(4, cursor.NewSelectionRange(0, 2))
	b.MutateLines(func(lines *[]string, _ *cursor.Position) {
		(*lines)[0] = "abc"
	})
	assert.Equal(t, "c", b.SelectedText())
}

func TestUndoRedo(t *testing.T) {
	b := NewFromLines([]string{""})

	b.RecordHistory()
	b.InsertString("ab")
	b.RecordHistory()
	b.InsertNewLine()
	b.RecordHistory()

	require.NoError(t, b.Undo())
	assert.Equal(t, []string{"ab"}, b.Lines())
	assert.Equal(t, cursor.Pos(0, 2), b.Caret())

	require.NoError(t, b.Undo())
	assert.Equal(t, []string{""}, b.Lines())
	assert.ErrorIs(t, b.Undo(), history.ErrNothingToUndo)

	require.NoError(t, b.Redo())
	require.NoError(t, b.Redo())
	assert.Equal(t, []string{"ab", ""}, b.Lines())
	assert.Equal(t, cursor.Pos(1, 0), b.Caret())
	assert.ErrorIs(t, b.Redo(), history.ErrNothingToRedo)
}

func TestUndoRestoresSelection(t *testing.T) {
	b := NewFromLines([]string{"abc"})
	b.SetSelection(0, cursor.NewSelectionRange(0, 2))

	b.RecordHistory()
	b.DeleteSelection()
	b.RecordHistory()
	assert.False(t, b.HasSelection())

	require.NoError(t, b.Undo())
	assert.Equal(t, []string{"abc"}, b.Lines())
	r, ok := b.Selection().Get(0)
	require.True(t, ok)
	assert.Equal(t, cursor.NewSelectionRange(0, 2), r)
}

func TestHistoryLimit(t *testing.T) {
	b := NewFromLines([]string{""}, WithHistoryLimit(2))
	b.RecordHistory()
	for _, r := range "abc" {
		b.InsertChar(r)
		b.RecordHistory()
	}

	require.NoError(t, b.Undo())
	assert.False(t, b.CanUndo())
	assert.Equal(t, []string{"ab"}, b.Lines())
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "PageDown", PageDown.String())
	assert.Equal(t, "Unknown", Direction(99).String())
}
