package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/kedit/internal/engine/buffer"
)

// Document is the content shown by the editor component.
type Document struct {
	// Path is the absolute file path (empty for the built-in sample).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Language is the tag used to pick highlighting, such as "go" or "md".
	Language string

	// Buffer holds the document content.
	Buffer *buffer.Buffer
}

// sampleLanguage is the language of the built-in sample.
const sampleLanguage = "md"

// sampleContent is shown when no file is given.
var sampleContent = []string{
	"@title: kedit sample",
	"@tags: editor, terminal, demo",
	"",
	"# A small editor component",
	"## Type to edit; Ctrl+Q quits 😀",
	"",
	"1. Arrow keys, Home, End, PgUp and PgDn move the caret",
	"2. Shift with an arrow key extends the selection",
	"3. Ctrl+C, Ctrl+X and Ctrl+V copy, cut and paste",
	"4. Ctrl+Z undoes, Ctrl+Y redoes, Ctrl+A selects all",
	"",
	"```go",
	"fmt.Println(\"hello, 世界\")",
	"```",
	"",
	"Some `inline code`, *emphasis* and **strong** text.",
	"A [link](https://go.dev/) and a quote:",
	"",
	"> Wide clusters like 世界 and 👍🏽 take two columns.",
}

// NewSampleDocument returns the built-in sample document.
func NewSampleDocument(opts ...buffer.Option) *Document {
	opts = append([]buffer.Option{buffer.WithLanguage(sampleLanguage)}, opts...)
	return &Document{
		Name:     "Untitled",
		Language: sampleLanguage,
		Buffer:   buffer.NewFromLines(sampleContent, opts...),
	}
}

// OpenDocument reads the file at path. The language comes from the file
// extension, or fallback when the file has none. Options are applied
// after the language.
func OpenDocument(path, fallback string, opts ...buffer.Option) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, &FileError{Path: absPath, Err: err}
	}
	defer f.Close()

	lang := DetectLanguage(absPath, fallback)
	opts = append([]buffer.Option{buffer.WithLanguage(lang)}, opts...)
	buf, err := buffer.NewFromReader(f, opts...)
	if err != nil {
		return nil, &FileError{Path: absPath, Err: err}
	}

	return &Document{
		Path:     absPath,
		Name:     filepath.Base(absPath),
		Language: lang,
		Buffer:   buf,
	}, nil
}

// DetectLanguage returns the lower-cased file extension of path without
// the dot, or fallback when there is none.
func DetectLanguage(path, fallback string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return fallback
	}
	return strings.ToLower(ext)
}
