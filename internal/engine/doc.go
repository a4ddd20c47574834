// Package engine provides the edit command layer of the editor component.
//
// The engine package serves as the facade over one buffer: it turns key
// events into commands, applies them through the buffer's mutation funnel,
// records undo snapshots and moves text to and from the clipboard.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - grapheme: display-column math over grapheme clusters
//   - cursor: positions, selection ranges and the per-row selection map
//   - history: snapshot stack for undo/redo
//   - buffer: lines, caret, scroll offset, selection and history
//   - command: the closed set of editing commands and event mapping
//
// # Basic Usage
//
//	buf := buffer.NewFromString("Hello")
//	e := engine.New(buf, engine.WithClipboard(clipboard.Default()))
//
//	e.ApplyEvent(key.NewSpecialEvent(key.KeyEnd, key.ModNone))
//	e.ApplyEvent(key.NewRuneEvent('!', key.ModNone)) // "Hello!"
//	e.Undo()                                         // "Hello"
//
// # History
//
// Every content-changing command pushes exactly one snapshot, including a
// multi-line Paste. The first push on an empty history also captures the
// state before the edit. Caret movement, selection changes and Copy never
// push.
//
// # Read-Only Mode
//
// A read-only engine applies MoveCaret commands only. Every other command is
// reported as NotApplied so the event can be offered to other handlers.
//
// # Errors
//
// Clipboard failures are logged and the clipboard step is skipped; the
// command is still consumed and the buffer is left unchanged. Applying a
// command never returns an error.
package engine
