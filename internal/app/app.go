// Package app runs a single editor component full-screen on a terminal
// backend. It wires together the engine, the renderer, the keymap and the
// configuration, and owns the event loop.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dshills/kedit/internal/clipboard"
	"github.com/dshills/kedit/internal/config"
	"github.com/dshills/kedit/internal/engine"
	"github.com/dshills/kedit/internal/engine/buffer"
	"github.com/dshills/kedit/internal/engine/command"
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/history"
	"github.com/dshills/kedit/internal/input/key"
	"github.com/dshills/kedit/internal/input/keymap"
	"github.com/dshills/kedit/internal/logging"
	"github.com/dshills/kedit/internal/renderer"
	"github.com/dshills/kedit/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// Config holds the settings. Nil uses config.Default().
	Config *config.Config

	// ConfigPath is watched for changes when set.
	ConfigPath string

	// File is opened on startup. Empty shows the built-in sample.
	File string

	// Backend is the screen. Required for Run.
	Backend backend.Backend

	// Clipboard backs copy and paste. Nil uses clipboard.Default().
	Clipboard clipboard.Clipboard

	// Keymap holds the application bindings. Nil uses
	// keymap.DefaultGlobalKeymap().
	Keymap *keymap.Keymap

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Application is the central coordinator for the editor component.
type Application struct {
	mu sync.RWMutex

	config   *config.Config
	document *Document
	engine   *engine.Engine
	renderer *renderer.Renderer
	backend  backend.Backend
	keymap   *keymap.Keymap
	focus    renderer.Focus
	logger   *slog.Logger

	configPath string
	reloads    chan *config.Config

	// State
	running atomic.Bool
	done    chan struct{}
	stop    sync.Once
}

// New creates an application. It loads the document and applies the
// configuration but does not touch the backend.
func New(opts Options) (*Application, error) {
	app := &Application{
		config:     opts.Config,
		backend:    opts.Backend,
		keymap:     opts.Keymap,
		logger:     opts.Logger,
		configPath: opts.ConfigPath,
		reloads:    make(chan *config.Config, 1),
		done:       make(chan struct{}),
	}
	if app.config == nil {
		app.config = config.Default()
	}
	if app.keymap == nil {
		app.keymap = keymap.DefaultGlobalKeymap()
	}
	if app.logger == nil {
		app.logger = logging.Discard()
	}
	app.logger = logging.Component(app.logger, "app")

	bufOpts := []buffer.Option{buffer.WithHistoryLimit(app.config.Editor.HistoryLimit)}
	if opts.File != "" {
		doc, err := OpenDocument(opts.File, app.config.Editor.Language, bufOpts...)
		if err != nil {
			return nil, &InitError{Component: "document", Err: err}
		}
		app.document = doc
	} else {
		app.document = NewSampleDocument(bufOpts...)
	}

	theme, err := app.config.BuildTheme()
	if err != nil {
		return nil, &InitError{Component: "theme", Err: err}
	}
	app.renderer = renderer.New(
		renderer.WithTheme(theme),
		renderer.WithLogger(opts.Logger),
	)

	cb := opts.Clipboard
	if cb == nil {
		cb = clipboard.Default()
	}
	app.engine = engine.New(app.document.Buffer,
		engine.WithConfig(app.config.EngineConfig()),
		engine.WithClipboard(cb),
		engine.WithLogger(opts.Logger),
	)
	app.focus.Set(app.engine.ID())

	return app, nil
}

// Run initialises the backend and processes events until Ctrl+Q, Shutdown
// or cancellation of ctx.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan backend.Event)
	var pollers sync.WaitGroup
	pollers.Add(1)
	go app.pollEvents(ctx, events, &pollers)
	defer func() {
		cancel()
		// Wake the poller if it is blocked on the backend.
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
		pollers.Wait()
	}()

	if app.configPath != "" {
		go app.watchConfig(ctx)
	}

	app.resize(app.backend.Size())
	app.Render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case cfg := <-app.reloads:
			if err := app.Reconfigure(cfg); err != nil {
				app.logger.Warn("config reload rejected", "error", err)
			}
			app.Render()
		case ev := <-events:
			err := app.HandleEvent(ev)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// pollEvents forwards backend events until ctx is done.
func (app *Application) pollEvents(ctx context.Context, out chan<- backend.Event, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		ev := app.backend.PollEvent()
		if ctx.Err() != nil {
			return
		}
		if ev.Type == backend.EventNone || ev.Type == backend.EventInterrupt {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// watchConfig queues reloaded configurations for the event loop.
func (app *Application) watchConfig(ctx context.Context) {
	err := config.Watch(ctx, app.configPath, func(cfg *config.Config, err error) {
		if err != nil {
			app.logger.Warn("config reload failed", "path", app.configPath, "error", err)
			return
		}
		select {
		case app.reloads <- cfg:
		default:
			// A reload is already pending; the newer file will be read again.
		}
	})
	if err != nil {
		app.logger.Warn("config watcher stopped", "path", app.configPath, "error", err)
	}
}

// HandleEvent processes one backend event and repaints. It returns ErrQuit
// when the quit binding is pressed.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
	case backend.EventFocus:
		app.mu.Lock()
		if ev.Focused {
			app.focus.Set(app.engine.ID())
		} else {
			app.focus.Clear()
		}
		app.mu.Unlock()
	case backend.EventKey:
		if err := app.handleKey(ev.Key); err != nil {
			return err
		}
	default:
		return nil
	}
	app.Render()
	return nil
}

// handleKey runs a bound action or hands the key to the engine.
func (app *Application) handleKey(ev key.Event) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if b, ok := app.keymap.Lookup(ev); ok {
		return app.runAction(b.Action)
	}
	if res := app.engine.ApplyEvent(ev); res == engine.NotApplied {
		app.logger.Debug("key not applied", "key", ev.String())
	}
	return nil
}

func (app *Application) runAction(action string) error {
	buf := app.engine.Buffer()
	switch action {
	case keymap.ActionQuit:
		return ErrQuit
	case keymap.ActionUndo:
		app.logHistory("undo", app.engine.Undo())
	case keymap.ActionRedo:
		app.logHistory("redo", app.engine.Redo())
	case keymap.ActionSelectAll:
		buf.SelectAll()
	case keymap.ActionClearSelection:
		buf.ClearAllSelections()
	case keymap.ActionSelectLeft:
		app.extendSelection(buffer.Left)
	case keymap.ActionSelectRight:
		app.extendSelection(buffer.Right)
	case keymap.ActionSelectHome:
		app.extendSelection(buffer.Home)
	case keymap.ActionSelectEnd:
		app.extendSelection(buffer.End)
	default:
		app.logger.Debug("unknown action", "action", action)
	}
	return nil
}

func (app *Application) logHistory(op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, history.ErrNothingToUndo), errors.Is(err, history.ErrNothingToRedo):
		app.logger.Debug(op+" skipped", "reason", err)
	default:
		app.logger.Debug(op+" failed", "error", err)
	}
}

// extendSelection moves the caret within its row and grows the row's
// selection to cover the columns passed over.
func (app *Application) extendSelection(dir buffer.Direction) {
	buf := app.engine.Buffer()
	before := buf.Caret()
	app.engine.Apply(command.MoveCaret{Direction: dir})
	after := buf.Caret()
	if after.RowIndex != before.RowIndex || after.ColIndex == before.ColIndex {
		return
	}
	buf.ExtendSelection(before.RowIndex, before.ColIndex, after.ColIndex)
}

// resize fits the editor component to the screen.
func (app *Application) resize(width, height int) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.engine.Resize(cursor.Size{Cols: max(width, 0), Rows: max(height, 0)})
}

// Render repaints the whole screen.
func (app *Application) Render() {
	if app.backend == nil {
		return
	}
	app.mu.RLock()
	w, h := app.backend.Size()
	box := renderer.Box{Size: cursor.Size{Cols: w, Rows: h}}
	ops := app.renderer.Render(app.engine, box, &app.focus)
	app.mu.RUnlock()

	app.backend.Clear()
	app.backend.Execute(ops)
	app.backend.Show()
}

// Reconfigure applies new settings to the running component. The document
// and its history are kept.
func (app *Application) Reconfigure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	theme, err := cfg.BuildTheme()
	if err != nil {
		return err
	}

	app.mu.Lock()
	defer app.mu.Unlock()
	app.config = cfg
	app.engine.SetConfig(cfg.EngineConfig())
	app.renderer.SetTheme(theme)
	app.logger.Info("configuration applied",
		"highlight", cfg.Editor.Highlight,
		"read_only", cfg.Editor.ReadOnly,
		"theme", cfg.Theme.Name)
	return nil
}

// Shutdown stops a running event loop.
func (app *Application) Shutdown() {
	app.stop.Do(func() { close(app.done) })
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Engine returns the editor component's engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.document
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}
