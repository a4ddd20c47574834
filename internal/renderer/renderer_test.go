package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kedit/internal/engine"
	"github.com/dshills/kedit/internal/engine/buffer"
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/renderer/core"
	"github.com/dshills/kedit/internal/renderer/highlight"
	"github.com/dshills/kedit/internal/renderer/paint"
)

var red = core.NewStyle(core.ColorRed)

// fakeGrammar colours every line red, except lines containing "x" for
// which it has no grammar.
type fakeGrammar struct {
	calls int
	panic bool
}

func (g *fakeGrammar) HighlightLine(line, _ string, _ *highlight.Theme) (highlight.Line, error) {
	g.calls++
	if g.panic {
		panic("boom")
	}
	if strings.Contains(line, "x") {
		return nil, highlight.ErrNoGrammar
	}
	return highlight.PlainLine(line, red), nil
}

type fakeOverride struct {
	calls int
	rows  map[int]highlight.Line
	err   error
	panic bool
}

func (o *fakeOverride) HighlightDocument(_ []string, _ string, _ *highlight.Theme) (map[int]highlight.Line, error) {
	o.calls++
	if o.panic {
		panic("boom")
	}
	return o.rows, o.err
}

func newBuffer(lines []string, size cursor.Size) *buffer.Buffer {
	return buffer.NewFromLines(lines, buffer.WithViewport(size), buffer.WithLanguage("fake"))
}

// textRows maps each painted text to the viewport row it was painted on.
func textRows(ops paint.Ops) map[int][]string {
	out := make(map[int][]string)
	row := -1
	for _, op := range ops {
		switch o := op.(type) {
		case paint.MoveCursorTo:
			row = o.Pos.RowIndex
		case paint.PaintText:
			out[row] = append(out[row], o.Text)
		}
	}
	return out
}

type selectionPaint struct {
	pos  cursor.Position
	text string
}

// selectionPaints collects the texts painted with the selection colours.
func selectionPaints(ops paint.Ops, theme *highlight.Theme) []selectionPaint {
	var out []selectionPaint
	for i := 2; i < len(ops); i++ {
		colors, ok := ops[i-1].(paint.ApplyColors)
		if !ok || colors.Style == nil || *colors.Style != theme.Selection {
			continue
		}
		move := ops[i-2].(paint.MoveCursorTo)
		out = append(out, selectionPaint{pos: move.Pos, text: ops[i].(paint.PaintText).Text})
	}
	return out
}

func TestRenderEmptyState(t *testing.T) {
	r := New()
	theme := r.Theme()
	origin := cursor.Pos(2, 3)
	box := Box{Origin: origin, Size: cursor.Size{Cols: 20, Rows: 5}}

	unfocused := r.RenderBuffer(buffer.New(), engine.HighlightNone, box, false)
	assert.Equal(t, paint.Ops{
		paint.MoveCursorTo{Origin: origin, Pos: cursor.Pos(0, 0)},
		paint.ApplyColors{Style: &theme.Placeholder},
		paint.PaintText{Text: "No content added"},
		paint.ResetColors{},
	}, unfocused)
	assert.Equal(t, core.ColorRed, theme.Placeholder.Foreground)

	focused := r.RenderBuffer(buffer.New(), engine.HighlightNone, box, true)
	require.Len(t, focused, 7)
	assert.Equal(t, unfocused, focused[:4])
	assert.Equal(t, paint.Ops{
		paint.MoveCursorTo{Origin: origin, Pos: cursor.Pos(1, 0)},
		paint.PaintText{Text: "👀"},
		paint.ResetColors{},
	}, focused[4:])

	// The marker stays inside a one-row box.
	short := r.RenderBuffer(buffer.New(), engine.HighlightNone, Box{Size: cursor.Size{Cols: 20, Rows: 1}}, true)
	assert.Equal(t, cursor.Pos(0, 0), short[4].(paint.MoveCursorTo).Pos)
}

func TestRenderPlainClipsToViewport(t *testing.T) {
	size := cursor.Size{Cols: 3, Rows: 2}
	buf := newBuffer([]string{"hello", "world", "third"}, size)
	buf.SetCaret(cursor.Pos(2, 4))
	require.Equal(t, cursor.Pos(1, 2), buf.ScrollOffset())

	ops := New().RenderBuffer(buf, engine.HighlightNone, Box{Size: size}, false)
	assert.Equal(t, map[int][]string{0: {"rld"}, 1: {"ird"}}, textRows(ops))

	for _, op := range ops {
		if m, ok := op.(paint.MoveCursorTo); ok {
			assert.GreaterOrEqual(t, m.Pos.RowIndex, 0)
			assert.Less(t, m.Pos.RowIndex, size.Rows)
		}
	}
}

func TestRenderDropsWideClusterCutByEdge(t *testing.T) {
	size := cursor.Size{Cols: 3, Rows: 1}
	buf := newBuffer([]string{"ab😀c"}, size)

	ops := New().RenderBuffer(buf, engine.HighlightNone, Box{Size: size}, false)
	assert.Equal(t, map[int][]string{0: {"ab"}}, textRows(ops))
}

func TestRenderWideClusterCutByLeftEdgeKeepsColumns(t *testing.T) {
	size := cursor.Size{Cols: 5, Rows: 2}
	buf := newBuffer([]string{"xxxxx", "😀ab"}, size)
	buf.SetCaret(cursor.Pos(0, 5))
	require.Equal(t, 1, buf.ScrollOffset().ColIndex)
	buf.SetSelection(1, cursor.NewSelectionRange(2, 3))

	r := New()
	ops := r.RenderBuffer(buf, engine.HighlightNone, Box{Size: size}, false)

	// The half of 😀 left of the window is dropped; "ab" stays at column 1
	// so the selected "a" lines up with the content underneath it.
	var contentPos cursor.Position
	for i, op := range ops {
		if p, ok := op.(paint.PaintText); ok && p.Text == "ab" {
			contentPos = ops[i-2].(paint.MoveCursorTo).Pos
		}
	}
	assert.Equal(t, cursor.Pos(1, 1), contentPos)
	assert.Equal(t, []selectionPaint{{cursor.Pos(1, 1), "a"}}, selectionPaints(ops, r.Theme()))
}

func TestRenderSelectionClipping(t *testing.T) {
	size := cursor.Size{Cols: 4, Rows: 3}
	r := New()

	tests := []struct {
		name string
		sel  cursor.SelectionRange
		want []selectionPaint
	}{
		{"left of scroll offset", cursor.NewSelectionRange(1, 2), nil},
		{"ends at scroll offset", cursor.NewSelectionRange(0, 3), nil},
		{"straddles scroll offset", cursor.NewSelectionRange(2, 5), []selectionPaint{{cursor.Pos(0, 0), "de"}}},
		{"inside window", cursor.NewSelectionRange(4, 5), []selectionPaint{{cursor.Pos(0, 1), "e"}}},
		{"past right edge", cursor.NewSelectionRange(5, 20), []selectionPaint{{cursor.Pos(0, 2), "fg"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := newBuffer([]string{"abcdefgh"}, size)
			buf.SetCaret(cursor.Pos(0, 6))
			require.Equal(t, 3, buf.ScrollOffset().ColIndex)
			buf.SetSelection(0, tt.sel)

			ops := r.RenderBuffer(buf, engine.HighlightNone, Box{Size: size}, false)
			assert.Equal(t, tt.want, selectionPaints(ops, r.Theme()))
		})
	}
}

func TestRenderSelectionSkipsRowsOutsideViewport(t *testing.T) {
	size := cursor.Size{Cols: 10, Rows: 2}
	buf := newBuffer([]string{"a", "b", "c", "d"}, size)
	buf.SetCaret(cursor.Pos(3, 0))
	buf.SelectAll()

	r := New()
	ops := r.RenderBuffer(buf, engine.HighlightNone, Box{Size: size}, false)
	assert.Equal(t, []selectionPaint{
		{cursor.Pos(0, 0), "c"},
		{cursor.Pos(1, 0), "d"},
	}, selectionPaints(ops, r.Theme()))
}

func TestRenderCaret(t *testing.T) {
	size := cursor.Size{Cols: 10, Rows: 3}
	r := New()

	tests := []struct {
		name  string
		caret cursor.Position
		glyph string
	}{
		{"on narrow cluster", cursor.Pos(0, 0), "a"},
		{"on wide cluster", cursor.Pos(0, 1), "😀"},
		{"past end of line", cursor.Pos(0, 4), "▒"},
		{"empty line", cursor.Pos(1, 0), "▒"},
		{"on tab", cursor.Pos(2, 0), " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := newBuffer([]string{"a😀b", "", "\tx"}, size)
			buf.SetCaret(tt.caret)

			ops := r.RenderBuffer(buf, engine.HighlightNone, Box{Size: size}, true)
			require.GreaterOrEqual(t, len(ops), 4)
			tail := ops[len(ops)-4:]
			theme := r.Theme()
			assert.Equal(t, paint.Ops{
				paint.MoveCursorTo{Pos: tt.caret},
				paint.PaintText{Text: tt.glyph, Style: &theme.Caret},
				paint.MoveCursorTo{Pos: tt.caret},
				paint.ResetColors{},
			}, tail)
			assert.True(t, theme.Caret.Attributes.Has(core.AttrReverse))
		})
	}

	buf := newBuffer([]string{"abc"}, size)
	unfocused := r.RenderBuffer(buf, engine.HighlightNone, Box{Size: size}, false)
	assert.NotContains(t, unfocused.Texts(), "▒")
	assert.Equal(t, []string{"abc"}, unfocused.Texts())
}

func TestRenderCaretIsViewportRelative(t *testing.T) {
	size := cursor.Size{Cols: 3, Rows: 2}
	buf := newBuffer([]string{"hello", "world", "third"}, size)
	buf.SetCaret(cursor.Pos(2, 4))

	origin := cursor.Pos(5, 5)
	ops := New().RenderBuffer(buf, engine.HighlightNone, Box{Origin: origin, Size: size}, true)
	move := ops[len(ops)-2].(paint.MoveCursorTo)
	assert.Equal(t, cursor.Pos(1, 2), move.Pos)
	assert.Equal(t, cursor.Pos(6, 7), move.Absolute())
}

func TestRenderGrammarFallsBackPerLine(t *testing.T) {
	size := cursor.Size{Cols: 10, Rows: 3}
	grammar := &fakeGrammar{}
	r := New(WithLineHighlighter(grammar), WithDocumentHighlighter(nil))
	buf := newBuffer([]string{"one", "xx", "two"}, size)

	ops := r.RenderBuffer(buf, engine.HighlightGrammar, Box{Size: size}, false)

	styles := map[string]core.Style{}
	for _, op := range ops {
		if p, ok := op.(paint.PaintText); ok {
			require.NotNil(t, p.Style)
			styles[p.Text] = *p.Style
		}
	}
	assert.Equal(t, red, styles["one"])
	assert.Equal(t, red, styles["two"])
	assert.Equal(t, r.Theme().Text, styles["xx"])

	// Lines are cached across frames.
	r.RenderBuffer(buf, engine.HighlightGrammar, Box{Size: size}, false)
	assert.Equal(t, 3, grammar.calls)
	assert.Equal(t, uint64(3), r.CacheStats().Hits)

	r.InvalidateCache()
	r.RenderBuffer(buf, engine.HighlightGrammar, Box{Size: size}, false)
	assert.Equal(t, 6, grammar.calls)
}

func TestRenderGrammarPanicFallsBack(t *testing.T) {
	size := cursor.Size{Cols: 10, Rows: 1}
	r := New(WithLineHighlighter(&fakeGrammar{panic: true}), WithCacheSize(0))
	buf := newBuffer([]string{"one"}, size)

	ops := r.RenderBuffer(buf, engine.HighlightGrammar, Box{Size: size}, false)
	assert.Equal(t, []string{"one"}, ops.Texts())
}

func TestRenderNoneSkipsHighlighters(t *testing.T) {
	size := cursor.Size{Cols: 10, Rows: 1}
	grammar := &fakeGrammar{}
	override := &fakeOverride{}
	r := New(WithLineHighlighter(grammar), WithDocumentHighlighter(override))

	r.RenderBuffer(newBuffer([]string{"one"}, size), engine.HighlightNone, Box{Size: size}, false)
	assert.Zero(t, grammar.calls)
	assert.Zero(t, override.calls)

	r.RenderBuffer(newBuffer([]string{"one"}, size), engine.HighlightGrammar, Box{Size: size}, false)
	assert.Equal(t, 1, grammar.calls)
	assert.Zero(t, override.calls)
}

func TestRenderOverride(t *testing.T) {
	size := cursor.Size{Cols: 10, Rows: 3}
	bold := core.DefaultStyle().Bold()
	lines := []string{"one", "two", "three"}

	render := func(o *fakeOverride) paint.Ops {
		r := New(WithLineHighlighter(&fakeGrammar{}), WithDocumentHighlighter(o))
		return r.RenderBuffer(newBuffer(lines, size), engine.HighlightGrammarOverride, Box{Size: size}, false)
	}
	baseline := New(WithLineHighlighter(&fakeGrammar{}), WithDocumentHighlighter(nil)).
		RenderBuffer(newBuffer(lines, size), engine.HighlightGrammarOverride, Box{Size: size}, false)

	t.Run("rows replaced", func(t *testing.T) {
		ops := render(&fakeOverride{rows: map[int]highlight.Line{
			1: highlight.PlainLine("two", bold),
			2: highlight.PlainLine("stale text", bold),
		}})
		var twoStyle, threeStyle core.Style
		for _, op := range ops {
			if p, ok := op.(paint.PaintText); ok && p.Style != nil {
				switch p.Text {
				case "two":
					twoStyle = *p.Style
				case "three":
					threeStyle = *p.Style
				}
			}
		}
		assert.Equal(t, bold, twoStyle)
		assert.Equal(t, red, threeStyle, "overrides that do not match the row are dropped")
	})

	t.Run("error swallowed", func(t *testing.T) {
		assert.Equal(t, baseline, render(&fakeOverride{err: errors.New("parse failed")}))
	})

	t.Run("panic swallowed", func(t *testing.T) {
		assert.Equal(t, baseline, render(&fakeOverride{panic: true}))
	})
}

func TestRenderMarkdownWithDefaultHighlighters(t *testing.T) {
	size := cursor.Size{Cols: 40, Rows: 3}
	r := New()
	buf := buffer.NewFromLines([]string{"# Title", "body"}, buffer.WithViewport(size), buffer.WithLanguage("md"))

	ops := r.RenderBuffer(buf, engine.HighlightGrammarOverride, Box{Size: size}, false)
	for _, op := range ops {
		if p, ok := op.(paint.PaintText); ok && p.Text == "# Title" {
			assert.Equal(t, r.Theme().StyleForToken(highlight.TokenHeading), *p.Style)
			return
		}
	}
	t.Fatalf("heading not painted as one span:\n%s", ops)
}

func TestRenderWithEngineFocus(t *testing.T) {
	size := cursor.Size{Cols: 10, Rows: 2}
	e := engine.New(buffer.NewFromLines([]string{"abc"}, buffer.WithViewport(size)))
	r := New()
	var focus Focus

	ops := r.Render(e, Box{Size: size}, &focus)
	assert.Equal(t, []string{"abc"}, ops.Texts())

	focus.Set(e.ID())
	assert.True(t, focus.Has(e.ID()))
	ops = r.Render(e, Box{Size: size}, &focus)
	assert.Equal(t, []string{"abc", "a"}, ops.Texts())

	focus.Clear()
	assert.False(t, focus.Has(e.ID()))
	assert.False(t, (*Focus)(nil).Has(e.ID()))
}

func TestRenderZeroSizeBox(t *testing.T) {
	buf := newBuffer([]string{"abc"}, cursor.Size{})
	assert.Empty(t, New().RenderBuffer(buf, engine.HighlightNone, Box{}, true))
}
