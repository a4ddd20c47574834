// Package command defines the closed set of editing intents applied to a
// buffer and the mapping from key events to those intents.
package command

import (
	"fmt"

	"github.com/dshills/kedit/internal/engine/buffer"
	"github.com/dshills/kedit/internal/input/key"
)

// Command is one editing intent. The set of implementations is closed.
type Command interface {
	// Mutates reports whether applying the command may change content.
	Mutates() bool

	fmt.Stringer

	command()
}

// InsertChar inserts a single character at the caret.
type InsertChar struct {
	Char rune
}

// InsertString inserts text at the caret; newlines split lines.
type InsertString struct {
	Text string
}

// InsertNewLine splits the current line at the caret.
type InsertNewLine struct{}

// Delete removes the cluster at the caret or joins the next line.
type Delete struct{}

// Backspace removes the cluster before the caret or joins the previous line.
type Backspace struct{}

// MoveCaret moves the caret in a direction.
type MoveCaret struct {
	Direction buffer.Direction
}

// Copy puts the selected text on the clipboard.
type Copy struct{}

// Cut copies the selected text and removes it.
type Cut struct{}

// Paste inserts the clipboard text at the caret.
type Paste struct{}

func (InsertChar) command()    {}
func (InsertString) command()  {}
func (InsertNewLine) command() {}
func (Delete) command()        {}
func (Backspace) command()     {}
func (MoveCaret) command()     {}
func (Copy) command()          {}
func (Cut) command()           {}
func (Paste) command()         {}

func (InsertChar) Mutates() bool    { return true }
func (InsertString) Mutates() bool  { return true }
func (InsertNewLine) Mutates() bool { return true }
func (Delete) Mutates() bool        { return true }
func (Backspace) Mutates() bool     { return true }
func (MoveCaret) Mutates() bool     { return false }
func (Copy) Mutates() bool          { return false }
func (Cut) Mutates() bool           { return true }
func (Paste) Mutates() bool         { return true }

func (c InsertChar) String() string   { return fmt.Sprintf("InsertChar(%q)", c.Char) }
func (c InsertString) String() string { return fmt.Sprintf("InsertString(%q)", c.Text) }
func (InsertNewLine) String() string  { return "InsertNewLine" }
func (Delete) String() string         { return "Delete" }
func (Backspace) String() string      { return "Backspace" }
func (c MoveCaret) String() string    { return "MoveCaret(" + c.Direction.String() + ")" }
func (Copy) String() string           { return "Copy" }
func (Cut) String() string            { return "Cut" }
func (Paste) String() string          { return "Paste" }

// FromEvent maps a key event to a command. ok is false for events with no
// matching command; the caller should offer them to other handlers.
func FromEvent(ev key.Event) (cmd Command, ok bool) {
	switch ev.Key {
	case key.KeyRune:
		if ev.IsChar() {
			return InsertChar{Char: ev.Rune}, true
		}
		if ev.Modifiers.Without(key.ModShift) == key.ModCtrl {
			switch ev.Rune {
			case 'c', 'C':
				return Copy{}, true
			case 'x', 'X':
				return Cut{}, true
			case 'v', 'V':
				return Paste{}, true
			}
		}
		return nil, false
	case key.KeyEnter:
		return InsertNewLine{}, true
	case key.KeyDelete:
		return Delete{}, true
	case key.KeyBackspace:
		return Backspace{}, true
	}

	if ev.Modifiers != key.ModNone {
		return nil, false
	}
	switch ev.Key {
	case key.KeyLeft:
		return MoveCaret{Direction: buffer.Left}, true
	case key.KeyRight:
		return MoveCaret{Direction: buffer.Right}, true
	case key.KeyUp:
		return MoveCaret{Direction: buffer.Up}, true
	case key.KeyDown:
		return MoveCaret{Direction: buffer.Down}, true
	case key.KeyHome:
		return MoveCaret{Direction: buffer.Home}, true
	case key.KeyEnd:
		return MoveCaret{Direction: buffer.End}, true
	case key.KeyPageUp:
		return MoveCaret{Direction: buffer.PageUp}, true
	case key.KeyPageDown:
		return MoveCaret{Direction: buffer.PageDown}, true
	}
	return nil, false
}

// Apply performs cmd's buffer edit. Clipboard commands are not handled here
// since they need a clipboard; Apply reports false for them.
func Apply(buf *buffer.Buffer, cmd Command) bool {
	switch c := cmd.(type) {
	case InsertChar:
		buf.InsertChar(c.Char)
	case InsertString:
		buf.InsertString(c.Text)
	case InsertNewLine:
		buf.InsertNewLine()
	case Delete:
		buf.Delete()
	case Backspace:
		buf.Backspace()
	case MoveCaret:
		buf.MoveCaret(c.Direction)
	default:
		return false
	}
	return true
}
