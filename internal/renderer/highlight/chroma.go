package highlight

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/kedit/internal/renderer/core"
)

// LineHighlighter colours a single line with a grammar chosen by language
// tag. It returns ErrNoGrammar (possibly wrapped) when it has nothing to
// offer for the line.
type LineHighlighter interface {
	HighlightLine(line, lang string, theme *Theme) (Line, error)
}

// Chroma is a LineHighlighter backed by chroma lexers and styles.
type Chroma struct {
	mu sync.Mutex

	// lexers caches lookups by language tag; nil records a miss.
	lexers map[string]chroma.Lexer
}

// NewChroma creates a chroma line highlighter.
func NewChroma() *Chroma {
	return &Chroma{lexers: make(map[string]chroma.Lexer)}
}

// HighlightLine tokenises line with the lexer registered for lang (a name,
// alias or file extension) and styles the tokens with the theme's chroma
// style. Token backgrounds are ignored so the terminal background shows
// through.
func (c *Chroma) HighlightLine(line, lang string, theme *Theme) (Line, error) {
	lexer := c.lexer(lang)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoGrammar, lang)
	}

	iter, err := lexer.Tokenise(nil, line)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s line: %w", lang, err)
	}

	style := styles.Get(theme.Syntax)
	var out Line
	for _, tok := range iter.Tokens() {
		text := strings.ReplaceAll(tok.Value, "\n", "")
		out = out.Append(theme.Text.Merge(styleFromEntry(style.Get(tok.Type))), text)
	}

	if out.Text() != line {
		return nil, fmt.Errorf("%w: %s tokens do not cover the line", ErrNoGrammar, lang)
	}
	return out, nil
}

func (c *Chroma) lexer(lang string) chroma.Lexer {
	lang = strings.ToLower(strings.TrimPrefix(lang, "."))
	if lang == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.lexers[lang]; ok {
		return l
	}
	var l chroma.Lexer
	if found := lexers.Get(lang); found != nil {
		l = chroma.Coalesce(found)
	}
	c.lexers[lang] = l
	return l
}

// styleFromEntry converts the foreground and attributes of a chroma style
// entry.
func styleFromEntry(e chroma.StyleEntry) core.Style {
	s := core.DefaultStyle()
	if e.Colour.IsSet() {
		s.Foreground = core.ColorFromRGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	if e.Bold == chroma.Yes {
		s = s.Bold()
	}
	if e.Italic == chroma.Yes {
		s = s.Italic()
	}
	if e.Underline == chroma.Yes {
		s = s.Underline()
	}
	return s
}
