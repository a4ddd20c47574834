// Package paint defines the paint operations a render pass produces. A
// backend executes them in order; nothing in this package touches a
// terminal.
package paint

import (
	"fmt"
	"strings"

	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/renderer/core"
)

// Op is one drawing instruction. The set of operations is closed.
type Op interface {
	fmt.Stringer
	paintOp()
}

// MoveCursorTo moves the paint cursor to Pos, relative to Origin.
type MoveCursorTo struct {
	Origin cursor.Position
	Pos    cursor.Position
}

// Absolute returns the screen position the operation moves to.
func (m MoveCursorTo) Absolute() cursor.Position {
	return m.Origin.Add(m.Pos)
}

func (m MoveCursorTo) String() string {
	return fmt.Sprintf("MoveCursorTo(%s+%s)", m.Origin, m.Pos)
}

// ApplyColors sets the current colours. A nil style leaves them unchanged.
type ApplyColors struct {
	Style *core.Style
}

func (a ApplyColors) String() string {
	return "ApplyColors(" + describe(a.Style) + ")"
}

// PaintText writes Text at the paint cursor and advances it by the text's
// display width. A non-nil Style is applied to this text only, on top of
// the current colours.
type PaintText struct {
	Text  string
	Style *core.Style
}

func (p PaintText) String() string {
	return fmt.Sprintf("PaintText(%q, %s)", p.Text, describe(p.Style))
}

// ResetColors restores the terminal's default colours and attributes.
type ResetColors struct{}

func (ResetColors) String() string { return "ResetColors" }

func (MoveCursorTo) paintOp() {}
func (ApplyColors) paintOp()  {}
func (PaintText) paintOp()    {}
func (ResetColors) paintOp()  {}

func describe(s *core.Style) string {
	if s == nil {
		return "none"
	}
	return fmt.Sprintf("fg=%s bg=%s attr=%s", s.Foreground, s.Background, s.Attributes)
}

// Ops is an ordered list of paint operations.
type Ops []Op

// Push appends operations in order.
func (o *Ops) Push(ops ...Op) {
	*o = append(*o, ops...)
}

// MoveTo appends a MoveCursorTo.
func (o *Ops) MoveTo(origin, pos cursor.Position) {
	o.Push(MoveCursorTo{Origin: origin, Pos: pos})
}

// Colors appends an ApplyColors for style.
func (o *Ops) Colors(style core.Style) {
	o.Push(ApplyColors{Style: &style})
}

// Text appends a PaintText with no style of its own.
func (o *Ops) Text(text string) {
	o.Push(PaintText{Text: text})
}

// StyledText appends a PaintText carrying style.
func (o *Ops) StyledText(text string, style core.Style) {
	o.Push(PaintText{Text: text, Style: &style})
}

// Reset appends a ResetColors.
func (o *Ops) Reset() {
	o.Push(ResetColors{})
}

// Texts returns the text of every PaintText in order.
func (o Ops) Texts() []string {
	var out []string
	for _, op := range o {
		if p, ok := op.(PaintText); ok {
			out = append(out, p.Text)
		}
	}
	return out
}

// String renders the list one operation per line.
func (o Ops) String() string {
	var sb strings.Builder
	for _, op := range o {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
