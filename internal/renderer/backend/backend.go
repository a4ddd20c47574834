// Package backend executes paint operations on a screen and decodes
// terminal input into key events.
package backend

import (
	"github.com/dshills/kedit/internal/engine/grapheme"
	"github.com/dshills/kedit/internal/input/key"
	"github.com/dshills/kedit/internal/renderer/core"
	"github.com/dshills/kedit/internal/renderer/paint"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
	EventFocus
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Focused is set for EventFocus. For EventPaste it is true at the start
	// of a bracketed paste and false at its end.
	Focused bool
}

// Backend is a screen that paint operations can be executed on.
type Backend interface {
	// Init prepares the screen for use.
	Init() error

	// Shutdown releases the screen and restores terminal state.
	Shutdown()

	// Size returns the screen dimensions in cells.
	Size() (width, height int)

	// Clear blanks the whole screen.
	Clear()

	// Execute runs ops in order. Cells outside the screen are ignored.
	Execute(ops paint.Ops)

	// Show flushes pending changes to the display.
	Show()

	// PollEvent blocks until the next event is available.
	PollEvent() Event

	// PostEvent queues a synthetic event.
	PostEvent(ev Event)
}

// Cell is one screen cell. The second cell of a wide cluster has Width 0
// and no text.
type Cell struct {
	Text  string
	Width int
	Style core.Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1, Style: core.DefaultStyle()}
}

// IsContinuation returns true for the trailing cell of a wide cluster.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Text == ""
}

// painter tracks the paint cursor and colours while ops execute and hands
// each cluster to put.
type painter struct {
	x, y  int
	style core.Style
	put   func(x, y int, cell Cell)
}

func newPainter(put func(x, y int, cell Cell)) *painter {
	return &painter{style: core.DefaultStyle(), put: put}
}

func (p *painter) run(ops paint.Ops) {
	for _, op := range ops {
		switch o := op.(type) {
		case paint.MoveCursorTo:
			abs := o.Absolute()
			p.x, p.y = abs.ColIndex, abs.RowIndex
		case paint.ApplyColors:
			if o.Style != nil {
				p.style = *o.Style
			}
		case paint.PaintText:
			style := p.style
			if o.Style != nil {
				style = style.Merge(*o.Style)
			}
			p.text(o.Text, style)
		case paint.ResetColors:
			p.style = core.DefaultStyle()
		}
	}
}

func (p *painter) text(s string, style core.Style) {
	for _, seg := range grapheme.Segments(s) {
		p.put(p.x, p.y, Cell{Text: seg.Glyph(), Width: seg.Width, Style: style})
		for i := 1; i < seg.Width; i++ {
			p.put(p.x+i, p.y, Cell{Style: style})
		}
		p.x += seg.Width
	}
}
