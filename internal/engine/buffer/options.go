package buffer

import (
	"github.com/dshills/kedit/internal/engine/cursor"
	"github.com/dshills/kedit/internal/engine/history"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLanguage sets the language tag used to pick a highlighting grammar,
// typically a file extension such as "go" or "md".
func WithLanguage(tag string) Option {
	return func(b *Buffer) {
		b.languageTag = tag
	}
}

// WithHistoryLimit caps the number of undo snapshots kept.
func WithHistoryLimit(max int) Option {
	return func(b *Buffer) {
		if max > 0 {
			b.history = history.New(max)
		}
	}
}

// WithViewport sets the initial viewport size.
func WithViewport(size cursor.Size) Option {
	return func(b *Buffer) {
		b.viewport = size
	}
}
