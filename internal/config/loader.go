package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads and validates the settings file at path on top of the
// defaults. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := decode(cfg, path, data, format); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads settings in the given format from r on top of the
// defaults and validates them.
func Decode(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := decode(cfg, "<reader>", data, format); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(cfg *Config, source string, data []byte, format Format) error {
	switch format {
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			perr := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, _ = derr.Position()
			}
			return perr
		}
	}
	return nil
}

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "KEDIT_"

// ApplyEnv overrides settings from KEDIT_* environment variables using
// lookup, typically os.LookupEnv. Empty values are treated as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"HIGHLIGHT":    &c.Editor.Highlight,
		"LANGUAGE":     &c.Editor.Language,
		"THEME":        &c.Theme.Name,
		"SYNTAX_STYLE": &c.Theme.Syntax,
		"LOG_LEVEL":    &c.Log.Level,
		"LOG_FILE":     &c.Log.File,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "READ_ONLY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Path: EnvPrefix + "READ_ONLY", Value: v, Message: "not a boolean"}
		}
		c.Editor.ReadOnly = b
	}
	if v, ok := lookup(EnvPrefix + "HISTORY_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Path: EnvPrefix + "HISTORY_LIMIT", Value: v, Message: "not an integer"}
		}
		c.Editor.HistoryLimit = n
	}
	return c.Validate()
}
