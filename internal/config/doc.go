// Package config loads editor settings.
//
// Settings come from, lowest priority first:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← applied by cmd/kedit
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← KEDIT_*
//	├─────────────────────────────┤
//	│  2. Settings File           │  ← settings.toml or settings.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A settings file in TOML looks like:
//
//	[editor]
//	read_only = false
//	highlight = "grammar+override"
//	history_limit = 500
//	language = "md"
//
//	[theme]
//	name = "dark"
//	syntax = "monokai"
//	selection_bg = "#3a5a80"
//	caret_glyph = "▒"
//
//	[log]
//	level = "debug"
//	file = "/tmp/kedit.log"
//
// The same keys are accepted in YAML. A missing file is not an error; the
// defaults are used instead.
//
// Watch reloads the file whenever it changes on disk.
package config
