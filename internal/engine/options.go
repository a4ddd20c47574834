package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/kedit/internal/clipboard"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithConfig sets the engine configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithReadOnly creates a read-only engine.
// Only caret movement is applied; undo and redo return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.config.EditMode = ReadOnly
	}
}

// WithClipboard sets the clipboard used by copy, cut and paste.
func WithClipboard(cb clipboard.Clipboard) Option {
	return func(e *Engine) {
		if cb != nil {
			e.clipboard = cb
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithID sets the component identity instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(e *Engine) {
		e.id = id
	}
}
