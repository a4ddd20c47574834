package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/kedit/internal/clipboard"
	"github.com/dshills/kedit/internal/engine/buffer"
	"github.com/dshills/kedit/internal/engine/command"
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/input/key"
)

// EditMode controls which commands the engine accepts.
type EditMode uint8

const (
	// ReadWrite accepts every command.
	ReadWrite EditMode = iota

	// ReadOnly accepts caret movement only.
	ReadOnly
)

// String returns the name of the mode.
func (m EditMode) String() string {
	if m == ReadOnly {
		return "read-only"
	}
	return "read-write"
}

// HighlightMode selects the content rendering strategy.
type HighlightMode uint8

const (
	// HighlightNone paints lines as plain text.
	HighlightNone HighlightMode = iota

	// HighlightGrammar colours each line with the external grammar
	// highlighter, falling back to plain text per line.
	HighlightGrammar

	// HighlightGrammarOverride applies the grammar highlighter and then lets
	// the internal structural highlighter override rows it recognises.
	HighlightGrammarOverride
)

var highlightModeNames = map[HighlightMode]string{
	HighlightNone:            "none",
	HighlightGrammar:         "grammar",
	HighlightGrammarOverride: "grammar+override",
}

// String returns the configuration name of the mode.
func (m HighlightMode) String() string {
	if name, ok := highlightModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseHighlightMode converts a configuration name to a HighlightMode.
func ParseHighlightMode(s string) (HighlightMode, bool) {
	for mode, name := range highlightModeNames {
		if name == s {
			return mode, true
		}
	}
	return HighlightNone, false
}

// Config is the per-component engine configuration.
type Config struct {
	EditMode      EditMode
	HighlightMode HighlightMode
}

// DefaultConfig returns a read-write configuration with grammar and
// override highlighting enabled.
func DefaultConfig() Config {
	return Config{EditMode: ReadWrite, HighlightMode: HighlightGrammarOverride}
}

// Result reports whether an event or command was applied.
type Result uint8

const (
	// NotApplied means nothing matched; the caller may try other handlers.
	NotApplied Result = iota

	// Applied means the command was consumed.
	Applied
)

// String returns the name of the result.
func (r Result) String() string {
	if r == Applied {
		return "Applied"
	}
	return "NotApplied"
}

// Engine is the edit command layer for one editor component. It owns the
// component's buffer and applies commands to it, recording undo history and
// talking to the clipboard.
//
// Engine is not safe for concurrent use; input handling and rendering run
// sequentially on the caller's event loop.
type Engine struct {
	id        uuid.UUID
	buf       *buffer.Buffer
	config    Config
	clipboard clipboard.Clipboard
	logger    *slog.Logger
}

// New creates an engine editing buf.
func New(buf *buffer.Buffer, opts ...Option) *Engine {
	e := &Engine{
		id:        uuid.New(),
		buf:       buf,
		config:    DefaultConfig(),
		clipboard: clipboard.NewMemory(),
		logger:    slog.New(slog.DiscardHandler),
	}
	if e.buf == nil {
		e.buf = buffer.New()
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With("component", "engine", "id", e.id.String())
	return e
}

// ID returns the component identity.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Buffer returns the edited buffer.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// SetConfig replaces the engine configuration.
func (e *Engine) SetConfig(cfg Config) {
	e.config = cfg
}

// IsReadOnly returns true if the engine only accepts caret movement.
func (e *Engine) IsReadOnly() bool {
	return e.config.EditMode == ReadOnly
}

// Resize updates the viewport the buffer scrolls within.
func (e *Engine) Resize(size cursor.Size) {
	e.buf.SetViewport(size)
}

// ApplyEvent maps ev to a command and applies it. Events with no matching
// command, and content-changing events in read-only mode, are NotApplied and
// leave the buffer untouched.
func (e *Engine) ApplyEvent(ev key.Event) Result {
	if e.IsReadOnly() && !ev.Key.IsNavigationKey() {
		e.logger.Debug("key rejected in read-only mode", "key", ev.String())
		return NotApplied
	}
	cmd, ok := command.FromEvent(ev)
	if !ok {
		return NotApplied
	}
	return e.Apply(cmd)
}

// Apply applies cmd to the buffer. Content-changing commands record one
// history snapshot per command; the first one on an empty history also
// records the state before the edit.
func (e *Engine) Apply(cmd command.Command) Result {
	if e.IsReadOnly() && !allowedReadOnly(cmd) {
		e.logger.Debug("command rejected in read-only mode", "command", cmd.String())
		return NotApplied
	}

	mutates := cmd.Mutates()
	if mutates && e.buf.HistoryIsEmpty() {
		e.buf.RecordHistory()
	}
	rev := e.buf.Revision()

	switch cmd.(type) {
	case command.Copy:
		e.copySelection()
	case command.Cut:
		if e.copySelection() {
			e.buf.DeleteSelection()
		}
	case command.Paste:
		e.paste()
	default:
		command.Apply(e.buf, cmd)
	}

	if mutates && e.buf.Revision() != rev {
		e.buf.RecordHistory()
	}
	return Applied
}

// allowedReadOnly reports whether cmd may run in read-only mode.
func allowedReadOnly(cmd command.Command) bool {
	_, ok := cmd.(command.MoveCaret)
	return ok
}

// copySelection puts the selected text on the clipboard. It reports whether
// the clipboard accepted a non-empty selection.
func (e *Engine) copySelection() bool {
	if !e.buf.HasSelection() {
		return false
	}
	text := e.buf.SelectedText()
	if err := e.clipboard.Put(text); err != nil {
		e.logger.Warn("copy to clipboard failed", "error", err)
		return false
	}
	e.logger.Debug("copied selection", "bytes", len(text))
	return true
}

// paste inserts the clipboard text at the caret as one edit.
func (e *Engine) paste() {
	text, err := e.clipboard.Get()
	if err != nil {
		e.logger.Warn("paste from clipboard failed", "error", err)
		return
	}
	e.buf.InsertString(text)
}

// Undo restores the state before the last content-changing command.
func (e *Engine) Undo() error {
	if e.IsReadOnly() {
		return ErrReadOnly
	}
	return e.buf.Undo()
}

// Redo re-applies the last undone command.
func (e *Engine) Redo() error {
	if e.IsReadOnly() {
		return ErrReadOnly
	}
	return e.buf.Redo()
}
