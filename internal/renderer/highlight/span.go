package highlight

import (
	"strings"

	"github.com/dshills/kedit/internal/engine/grapheme"
	"github.com/dshills/kedit/internal/renderer/core"
)

// Span is a run of text painted with one style.
type Span struct {
	Style core.Style
	Text  string
}

// Line is the styled form of one buffer line. The span texts concatenate to
// the source line.
type Line []Span

// PlainLine returns text as a single span.
func PlainLine(text string, style core.Style) Line {
	if text == "" {
		return nil
	}
	return Line{{Style: style, Text: text}}
}

// Text returns the concatenated span texts.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += grapheme.Width(s.Text)
	}
	return w
}

// Append adds text in style, extending the last span when the styles match.
func (l Line) Append(style core.Style, text string) Line {
	if text == "" {
		return l
	}
	if n := len(l); n > 0 && l[n-1].Style == style {
		l[n-1].Text += text
		return l
	}
	return append(l, Span{Style: style, Text: text})
}

// Clip returns the part of the line visible in the display column window
// [scrollCol, scrollCol+maxCols). Wide clusters cut by an edge of the window
// are dropped. lead is the window column the first kept cluster starts at;
// it is non-zero when a wide cluster cut by the left edge was dropped.
func (l Line) Clip(scrollCol, maxCols int) (out Line, lead int) {
	if maxCols <= 0 {
		return nil, 0
	}
	winStart, winEnd := max(scrollCol, 0), max(scrollCol, 0)+maxCols

	col := 0
	kept := false
	for _, s := range l {
		w := grapheme.Width(s.Text)
		start, end := col, col+w
		col = end
		if end <= winStart {
			continue
		}
		if start >= winEnd {
			break
		}
		lo, hi, ok := grapheme.ByteRange(s.Text, max(winStart-start, 0), winEnd-start)
		if !ok {
			continue
		}
		if !kept {
			lead = start + grapheme.Width(s.Text[:lo]) - winStart
			kept = true
		}
		out = out.Append(s.Style, s.Text[lo:hi])
	}
	return out, lead
}
