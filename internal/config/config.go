package config

import (
	"fmt"
	"strings"

	"github.com/dshills/kedit/internal/engine"
	"github.com/dshills/kedit/internal/renderer/core"
	"github.com/dshills/kedit/internal/renderer/highlight"
)

// Config holds all editor settings.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Theme  ThemeConfig  `toml:"theme" yaml:"theme"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig configures the editor component.
type EditorConfig struct {
	// ReadOnly restricts the component to caret movement.
	ReadOnly bool `toml:"read_only" yaml:"read_only"`

	// Highlight is "none", "grammar" or "grammar+override".
	Highlight string `toml:"highlight" yaml:"highlight"`

	// HistoryLimit caps undo snapshots. Zero means unlimited.
	HistoryLimit int `toml:"history_limit" yaml:"history_limit"`

	// Language is the language tag used when the file name has no
	// extension, such as "go" or "md".
	Language string `toml:"language" yaml:"language"`
}

// ThemeConfig adjusts the named base theme. Empty fields keep the base
// theme's value. Colours are "#rgb" or "#rrggbb".
type ThemeConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Syntax      string `toml:"syntax" yaml:"syntax"`
	Text        string `toml:"text" yaml:"text"`
	SelectionFG string `toml:"selection_fg" yaml:"selection_fg"`
	SelectionBG string `toml:"selection_bg" yaml:"selection_bg"`
	Placeholder string `toml:"placeholder" yaml:"placeholder"`
	CaretGlyph  string `toml:"caret_glyph" yaml:"caret_glyph"`
	FocusMarker string `toml:"focus_marker" yaml:"focus_marker"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards logs, since the terminal
	// belongs to the editor.
	File string `toml:"file" yaml:"file"`
}

// Default values.
const (
	DefaultHighlight    = "grammar+override"
	DefaultHistoryLimit = 1000
	DefaultThemeName    = "dark"
	DefaultLogLevel     = "info"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Highlight:    DefaultHighlight,
			HistoryLimit: DefaultHistoryLimit,
		},
		Theme: ThemeConfig{
			Name:   DefaultThemeName,
			Syntax: highlight.DefaultSyntaxStyle,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if _, ok := engine.ParseHighlightMode(c.Editor.Highlight); !ok {
		return &ValidationError{Path: "editor.highlight", Value: c.Editor.Highlight,
			Message: `must be "none", "grammar" or "grammar+override"`}
	}
	if c.Editor.HistoryLimit < 0 {
		return &ValidationError{Path: "editor.history_limit", Value: c.Editor.HistoryLimit,
			Message: "must not be negative"}
	}
	if _, ok := highlight.NewThemeRegistry().Get(c.Theme.Name); !ok {
		return &ValidationError{Path: "theme.name", Value: c.Theme.Name,
			Message: "unknown theme"}
	}
	colors := []struct {
		path, value string
	}{
		{"theme.text", c.Theme.Text},
		{"theme.selection_fg", c.Theme.SelectionFG},
		{"theme.selection_bg", c.Theme.SelectionBG},
		{"theme.placeholder", c.Theme.Placeholder},
	}
	for _, col := range colors {
		if _, err := core.ColorFromHex(col.value); err != nil {
			return &ValidationError{Path: col.path, Value: col.value, Message: "not a hex colour"}
		}
	}
	if !isLogLevel(c.Log.Level) {
		return &ValidationError{Path: "log.level", Value: c.Log.Level,
			Message: "must be one of " + strings.Join(logLevels, ", ")}
	}
	return nil
}

func isLogLevel(s string) bool {
	s = strings.ToLower(s)
	for _, l := range logLevels {
		if s == l {
			return true
		}
	}
	return s == "warning"
}

// EngineConfig returns the engine settings. The configuration must be
// valid.
func (c *Config) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if mode, ok := engine.ParseHighlightMode(c.Editor.Highlight); ok {
		cfg.HighlightMode = mode
	}
	if c.Editor.ReadOnly {
		cfg.EditMode = engine.ReadOnly
	}
	return cfg
}

// BuildTheme returns the named base theme with the configured overrides
// applied.
func (c *Config) BuildTheme() (*highlight.Theme, error) {
	base, ok := highlight.NewThemeRegistry().Get(c.Theme.Name)
	if !ok {
		return nil, &ValidationError{Path: "theme.name", Value: c.Theme.Name, Message: "unknown theme"}
	}
	theme := base.Clone()

	if c.Theme.Syntax != "" {
		theme.Syntax = c.Theme.Syntax
	}
	if c.Theme.CaretGlyph != "" {
		theme.CaretGlyph = c.Theme.CaretGlyph
	}
	if c.Theme.FocusMarker != "" {
		theme.FocusMarker = c.Theme.FocusMarker
	}

	colors := []struct {
		path, value string
		apply       func(core.Color)
	}{
		{"theme.text", c.Theme.Text, func(col core.Color) { theme.Text.Foreground = col }},
		{"theme.selection_fg", c.Theme.SelectionFG, func(col core.Color) { theme.Selection.Foreground = col }},
		{"theme.selection_bg", c.Theme.SelectionBG, func(col core.Color) { theme.Selection.Background = col }},
		{"theme.placeholder", c.Theme.Placeholder, func(col core.Color) { theme.Placeholder.Foreground = col }},
	}
	for _, col := range colors {
		if col.value == "" {
			continue
		}
		parsed, err := core.ColorFromHex(col.value)
		if err != nil {
			return nil, fmt.Errorf("build theme: %w", &ValidationError{Path: col.path, Value: col.value, Message: "not a hex colour"})
		}
		col.apply(parsed)
	}
	return theme, nil
}
