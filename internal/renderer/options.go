package renderer

import (
	"log/slog"

	"github.com/dshills/kedit/internal/renderer/highlight"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the colour theme.
func WithTheme(theme *highlight.Theme) Option {
	return func(r *Renderer) {
		if theme != nil {
			r.theme = theme
		}
	}
}

// WithLineHighlighter sets the grammar highlighter used by the grammar
// strategies. A nil highlighter renders those strategies as plain text.
func WithLineHighlighter(h highlight.LineHighlighter) Option {
	return func(r *Renderer) {
		r.grammar = h
	}
}

// WithDocumentHighlighter sets the override highlighter.
func WithDocumentHighlighter(h highlight.DocumentHighlighter) Option {
	return func(r *Renderer) {
		r.override = h
	}
}

// WithLogger sets the logger for highlighter fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCacheSize sets how many highlighted lines are cached. Zero disables
// the cache.
func WithCacheSize(n int) Option {
	return func(r *Renderer) {
		r.cacheSize = max(n, 0)
	}
}
