package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/kedit/internal/engine"
	"github.com/dshills/kedit/internal/engine/buffer"
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/grapheme"
	"github.com/dshills/kedit/internal/renderer/highlight"
	"github.com/dshills/kedit/internal/renderer/linecache"
	"github.com/dshills/kedit/internal/renderer/paint"
)

// DefaultCacheSize is the number of grammar-highlighted lines kept between
// frames.
const DefaultCacheSize = 1000

// Box is the screen area an editor component renders into.
type Box struct {
	// Origin is the top-left cell of the component on screen.
	Origin cursor.Position

	// Size is the visible area. It should match the viewport the buffer
	// scrolls within.
	Size cursor.Size
}

// Renderer produces paint operations for editor components. A Renderer
// may be shared by several components; each Render call is independent.
type Renderer struct {
	theme    *highlight.Theme
	grammar  highlight.LineHighlighter
	override highlight.DocumentHighlighter
	logger   *slog.Logger

	cacheSize int
	cache     *linecache.Cache
}

// New creates a renderer. Without options it uses the default theme, the
// chroma grammar highlighter and the markdown override highlighter.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		theme:     highlight.DefaultTheme(),
		grammar:   highlight.NewChroma(),
		override:  highlight.NewMarkdown(),
		logger:    slog.New(slog.DiscardHandler),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	cacheConfig := linecache.DefaultConfig()
	cacheConfig.MaxCachedLines = r.cacheSize
	r.cache = linecache.New(cacheConfig)
	r.logger = r.logger.With("component", "renderer")
	return r
}

// Theme returns the active theme.
func (r *Renderer) Theme() *highlight.Theme {
	return r.theme
}

// SetTheme replaces the theme and drops cached highlighting.
func (r *Renderer) SetTheme(theme *highlight.Theme) {
	if theme == nil {
		return
	}
	r.theme = theme
	r.InvalidateCache()
}

// InvalidateCache drops all cached highlighted lines.
func (r *Renderer) InvalidateCache() {
	r.cache.InvalidateAll()
}

// CacheStats reports line cache usage.
func (r *Renderer) CacheStats() linecache.CacheStats {
	return r.cache.Stats()
}

// Render paints the component owned by e into box. The caret is drawn only
// when focus is on the component.
func (r *Renderer) Render(e *engine.Engine, box Box, focus *Focus) paint.Ops {
	return r.RenderBuffer(e.Buffer(), e.Config().HighlightMode, box, focus.Has(e.ID()))
}

// RenderBuffer paints buf into box using the given content strategy.
func (r *Renderer) RenderBuffer(buf *buffer.Buffer, mode engine.HighlightMode, box Box, focused bool) paint.Ops {
	if buf.IsEmpty() {
		return r.renderEmptyState(box, focused)
	}

	var ops paint.Ops
	if box.Size.IsZero() {
		return ops
	}

	lines := buf.Lines()
	r.renderContent(&ops, lines, buf, mode, box)
	r.renderSelection(&ops, lines, buf, box)
	if focused {
		r.renderCaret(&ops, lines, buf, box)
	}
	return ops
}

// visibleRows returns the half-open range of buffer rows inside box.
func visibleRows(buf *buffer.Buffer, box Box) (first, last int) {
	first = buf.ScrollOffset().RowIndex
	last = min(first+box.Size.Rows, buf.LineCount())
	return first, max(last, first)
}

func (r *Renderer) renderEmptyState(box Box, focused bool) paint.Ops {
	var ops paint.Ops
	ops.MoveTo(box.Origin, cursor.Pos(0, 0))
	ops.Colors(r.theme.Placeholder)
	ops.Text(r.theme.PlaceholderText)
	ops.Reset()

	if focused {
		row := max(min(1, box.Size.Rows-1), 0)
		ops.MoveTo(box.Origin, cursor.Pos(row, 0))
		ops.Text(r.theme.FocusMarker)
		ops.Reset()
	}
	return ops
}

func (r *Renderer) renderContent(ops *paint.Ops, lines []string, buf *buffer.Buffer, mode engine.HighlightMode, box Box) {
	first, last := visibleRows(buf, box)
	scrollCol := buf.ScrollOffset().ColIndex
	lang := buf.LanguageTag()

	var overrides map[int]highlight.Line
	if mode == engine.HighlightGrammarOverride {
		overrides = r.overrideLines(lines, lang)
	}

	for row := first; row < last; row++ {
		var styled highlight.Line
		switch mode {
		case engine.HighlightNone:
			styled = highlight.PlainLine(lines[row], r.theme.Text)
		default:
			styled = r.grammarLine(lines[row], lang)
		}
		if o, ok := overrides[row]; ok {
			styled = o
		}

		visible, lead := styled.Clip(scrollCol, box.Size.Cols)
		ops.MoveTo(box.Origin, cursor.Pos(row-first, lead))
		for _, span := range visible {
			ops.Colors(span.Style)
			ops.StyledText(span.Text, span.Style)
		}
		ops.Reset()
	}
}

// grammarLine highlights one line, falling back to plain text when the
// grammar highlighter has nothing for it.
func (r *Renderer) grammarLine(line, lang string) highlight.Line {
	plain := highlight.PlainLine(line, r.theme.Text)
	if r.grammar == nil || lang == "" {
		return plain
	}

	key := linecache.Key{Lang: lang, Text: line}
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	styled, err := r.safeHighlightLine(line, lang)
	if err != nil {
		if !errors.Is(err, highlight.ErrNoGrammar) {
			r.logger.Debug("grammar highlighting failed", "lang", lang, "error", err)
		}
		styled = plain
	}
	r.cache.Put(key, styled)
	return styled
}

func (r *Renderer) safeHighlightLine(line, lang string) (styled highlight.Line, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("grammar highlighter panicked: %v", p)
		}
	}()
	return r.grammar.HighlightLine(line, lang, r.theme)
}

// overrideLines runs the document highlighter. Failures are logged and
// yield no overrides.
func (r *Renderer) overrideLines(lines []string, lang string) (out map[int]highlight.Line) {
	if r.override == nil {
		return nil
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("override highlighter panicked", "lang", lang, "panic", p)
			out = nil
		}
	}()

	overrides, err := r.override.HighlightDocument(lines, lang, r.theme)
	if err != nil {
		r.logger.Debug("override highlighting skipped", "lang", lang, "error", err)
		return nil
	}
	for row, line := range overrides {
		if row < 0 || row >= len(lines) || line.Text() != lines[row] {
			r.logger.Debug("override highlighting dropped row", "row", row)
			delete(overrides, row)
		}
	}
	return overrides
}

func (r *Renderer) renderSelection(ops *paint.Ops, lines []string, buf *buffer.Buffer, box Box) {
	sel := buf.Selection()
	if sel.IsEmpty() {
		return
	}
	first, last := visibleRows(buf, box)
	scroll := buf.ScrollOffset()
	rightEdge := scroll.ColIndex + box.Size.Cols

	for _, row := range sel.OrderedIndices() {
		if row < first || row >= last {
			continue
		}
		rng, _ := sel.Get(row)
		visible := rng.VisibleFrom(scroll)
		visible.End = min(visible.End, rightEdge)

		line := lines[row]
		lo, hi, ok := grapheme.ByteRange(line, visible.Start, visible.End)
		if !ok {
			continue
		}
		startCol := grapheme.Width(line[:lo])

		ops.MoveTo(box.Origin, cursor.Pos(row-first, startCol-scroll.ColIndex))
		ops.Colors(r.theme.Selection)
		ops.Text(line[lo:hi])
		ops.Reset()
	}
}

func (r *Renderer) renderCaret(ops *paint.Ops, lines []string, buf *buffer.Buffer, box Box) {
	caret := buf.Caret()
	pos := caret.Sub(buf.ScrollOffset())
	if pos.RowIndex < 0 || pos.RowIndex >= box.Size.Rows || pos.ColIndex < 0 || pos.ColIndex >= box.Size.Cols {
		return
	}

	glyph := r.theme.CaretGlyph
	if seg, ok := grapheme.ClusterAt(lines[caret.RowIndex], caret.ColIndex); ok {
		glyph = seg.Glyph()
	}

	ops.MoveTo(box.Origin, pos)
	ops.StyledText(glyph, r.theme.Caret)
	ops.MoveTo(box.Origin, pos)
	ops.Reset()
}
