package highlight

import "errors"

var (
	// ErrNoGrammar is returned when no grammar matches a language tag.
	ErrNoGrammar = errors.New("no grammar for language")

	// ErrUnsupportedLanguage is returned by a document highlighter asked to
	// handle a language it does not know.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
