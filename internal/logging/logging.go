// Package logging configures the structured logger shared by the editor
// components.
//
// The terminal belongs to the renderer, so logs are written to a file or
// discarded. Components tag their records with a "component" attribute.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel parses a level name. Unknown names yield slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level name, such as "debug".
	Level string

	// File is the path logs are appended to. Empty discards logs.
	File string

	// Output overrides File when set.
	Output io.Writer
}

// New creates a logger. The returned close function releases the log
// file and is never nil.
func New(cfg Config) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	out := cfg.Output
	closeFn := noop
	if out == nil {
		if cfg.File == "" {
			return Discard(), noop, nil
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		out, closeFn = f, f.Close
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})
	return slog.New(handler).With("app", "kedit"), closeFn, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Component returns a logger tagged with the component name.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With("component", name)
}
