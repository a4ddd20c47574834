package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kedit/internal/clipboard"
	"github.com/dshills/kedit/internal/config"
	"github.com/dshills/kedit/internal/engine"
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/input/key"
	"github.com/dshills/kedit/internal/renderer/backend"
)

func newTestApp(t *testing.T, content string, cfg *config.Config) (*Application, *backend.Memory) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	screen := backend.NewMemory(20, 4)
	app, err := New(Options{
		Config:    cfg,
		File:      path,
		Backend:   screen,
		Clipboard: clipboard.NewMemory(),
	})
	require.NoError(t, err)
	require.NoError(t, app.HandleEvent(backend.Event{Type: backend.EventResize, Width: 20, Height: 4}))
	return app, screen
}

func keyEvent(ev key.Event) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: ev}
}

func runeKey(r rune) backend.Event {
	return keyEvent(key.NewRuneEvent(r, key.ModNone))
}

func ctrlKey(r rune) backend.Event {
	return keyEvent(key.NewRuneEvent(r, key.ModCtrl))
}

func TestNewShowsSample(t *testing.T) {
	screen := backend.NewMemory(40, 3)
	app, err := New(Options{Backend: screen, Clipboard: clipboard.NewMemory()})
	require.NoError(t, err)

	assert.Equal(t, "md", app.Document().Language)
	assert.Equal(t, "md", app.Engine().Buffer().LanguageTag())
	assert.True(t, app.focus.Has(app.Engine().ID()))

	require.NoError(t, app.HandleEvent(backend.Event{Type: backend.EventResize, Width: 40, Height: 3}))
	assert.Equal(t, "@title: kedit sample", screen.Row(0))
	assert.Equal(t, cursor.Size{Cols: 40, Rows: 3}, app.Engine().Buffer().Viewport())
}

func TestTypingUndoRedo(t *testing.T) {
	app, screen := newTestApp(t, "hello", nil)
	buf := app.Engine().Buffer()

	require.NoError(t, app.HandleEvent(runeKey('X')))
	assert.Equal(t, "Xhello", buf.Text())
	assert.Equal(t, "Xhello", screen.Row(0))

	require.NoError(t, app.HandleEvent(ctrlKey('z')))
	assert.Equal(t, "hello", buf.Text())
	assert.Equal(t, "hello", screen.Row(0))

	require.NoError(t, app.HandleEvent(ctrlKey('y')))
	assert.Equal(t, "Xhello", buf.Text())

	// Nothing more to redo; the event is still handled.
	require.NoError(t, app.HandleEvent(ctrlKey('y')))
	assert.Equal(t, "Xhello", buf.Text())
}

func TestEmptyFileShowsPlaceholder(t *testing.T) {
	_, screen := newTestApp(t, "", nil)
	assert.Equal(t, "No content added", screen.Row(0))
	assert.Equal(t, "👀", screen.Row(1))
}

func TestQuitBinding(t *testing.T) {
	app, _ := newTestApp(t, "hello", nil)
	assert.ErrorIs(t, app.HandleEvent(ctrlKey('q')), ErrQuit)
	assert.Equal(t, "hello", app.Engine().Buffer().Text())
}

func TestSelectionBindings(t *testing.T) {
	app, _ := newTestApp(t, "hello\nworld", nil)
	buf := app.Engine().Buffer()

	shiftRight := keyEvent(key.NewSpecialEvent(key.KeyRight, key.ModShift))
	require.NoError(t, app.HandleEvent(shiftRight))
	require.NoError(t, app.HandleEvent(shiftRight))

	r, ok := buf.Selection().Get(0)
	require.True(t, ok)
	assert.Equal(t, cursor.NewSelectionRange(0, 2), r)
	assert.Equal(t, "he", buf.SelectedText())

	require.NoError(t, app.HandleEvent(keyEvent(key.NewSpecialEvent(key.KeyEscape, key.ModNone))))
	assert.False(t, buf.HasSelection())

	require.NoError(t, app.HandleEvent(ctrlKey('a')))
	assert.Equal(t, "hello\nworld", buf.SelectedText())

	// Cut goes through the engine.
	require.NoError(t, app.HandleEvent(ctrlKey('x')))
	assert.False(t, buf.HasSelection())
}

func TestFocusEvents(t *testing.T) {
	app, _ := newTestApp(t, "hello", nil)
	id := app.Engine().ID()

	require.NoError(t, app.HandleEvent(backend.Event{Type: backend.EventFocus, Focused: false}))
	assert.False(t, app.focus.Has(id))

	require.NoError(t, app.HandleEvent(backend.Event{Type: backend.EventFocus, Focused: true}))
	assert.True(t, app.focus.Has(id))
}

func TestReconfigure(t *testing.T) {
	app, _ := newTestApp(t, "hello", nil)

	cfg := config.Default()
	cfg.Editor.ReadOnly = true
	cfg.Editor.Highlight = "none"
	cfg.Theme.CaretGlyph = "_"
	require.NoError(t, app.Reconfigure(cfg))

	assert.True(t, app.Engine().IsReadOnly())
	assert.Equal(t, engine.HighlightNone, app.Engine().Config().HighlightMode)
	assert.Equal(t, "_", app.Renderer().Theme().CaretGlyph)
	assert.Same(t, cfg, app.Config())

	require.NoError(t, app.HandleEvent(runeKey('X')))
	assert.Equal(t, "hello", app.Engine().Buffer().Text())

	bad := config.Default()
	bad.Editor.Highlight = "rainbow"
	assert.ErrorIs(t, app.Reconfigure(bad), config.ErrInvalidValue)
	assert.Same(t, cfg, app.Config())
}

func TestReadOnlyFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.ReadOnly = true
	app, _ := newTestApp(t, "hello", cfg)

	require.NoError(t, app.HandleEvent(keyEvent(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))))
	require.NoError(t, app.HandleEvent(keyEvent(key.NewSpecialEvent(key.KeyEnd, key.ModNone))))
	assert.Equal(t, "hello", app.Engine().Buffer().Text())
	assert.Equal(t, cursor.Pos(0, 5), app.Engine().Buffer().Caret())
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.go")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	screen := backend.NewMemory(20, 4)
	app, err := New(Options{File: path, Backend: screen, Clipboard: clipboard.NewMemory()})
	require.NoError(t, err)
	assert.Equal(t, "go", app.Document().Language)

	screen.PostEvent(runeKey('a'))
	screen.PostEvent(runeKey('b'))
	screen.PostEvent(ctrlKey('q'))

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	assert.Equal(t, "abx", app.Engine().Buffer().Text())
	assert.Equal(t, "abx", screen.Row(0))
	assert.False(t, app.IsRunning())
}

func TestRunStopsOnShutdown(t *testing.T) {
	app, _ := newTestApp(t, "hello", nil)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	require.Eventually(t, app.IsRunning, 5*time.Second, 10*time.Millisecond)
	app.Shutdown()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestRunWithoutBackend(t *testing.T) {
	app, err := New(Options{Clipboard: clipboard.NewMemory()})
	require.NoError(t, err)
	assert.ErrorIs(t, app.Run(context.Background()), ErrNoBackend)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "missing.txt")})
	var ierr *InitError
	require.ErrorAs(t, err, &ierr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
