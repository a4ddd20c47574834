package highlight

import (
	"maps"
	"slices"

	"github.com/dshills/kedit/internal/renderer/core"
)

// Default glyphs and texts used by the render pipeline.
const (
	DefaultPlaceholderText = "No content added"
	DefaultCaretGlyph      = "▒"
	DefaultFocusMarker     = "👀"
	DefaultSyntaxStyle     = "monokai"
)

// Theme defines the colours and glyphs an editor component paints with.
type Theme struct {
	// Name is the registry key of the theme.
	Name string

	// Text is the base style for unhighlighted content.
	Text core.Style

	// Selection styles the selection overlay.
	Selection core.Style

	// Caret styles the cluster under the caret.
	Caret core.Style

	// Placeholder styles the empty-buffer message.
	Placeholder core.Style

	// PlaceholderText is painted when the buffer has no lines.
	PlaceholderText string

	// CaretGlyph is painted when the caret sits past end of line.
	CaretGlyph string

	// FocusMarker is painted below the placeholder when focused.
	FocusMarker string

	// Syntax names the chroma style used by the grammar highlighter.
	Syntax string

	// TokenStyles maps structural token types to their styles.
	TokenStyles map[TokenType]core.Style
}

// StyleForToken returns the text style overlaid with the style of tokenType.
func (t *Theme) StyleForToken(tokenType TokenType) core.Style {
	if style, ok := t.TokenStyles[tokenType]; ok {
		return t.Text.Merge(style)
	}
	return t.Text
}

// Clone returns a deep copy of t.
func (t *Theme) Clone() *Theme {
	c := *t
	c.TokenStyles = maps.Clone(t.TokenStyles)
	return &c
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme for dark terminal backgrounds.
func DarkTheme() *Theme {
	bg := core.ColorFromRGB(30, 30, 30)
	accent := core.ColorFromRGB(86, 156, 214)

	return &Theme{
		Name:            "dark",
		Text:            core.DefaultStyle(),
		Selection:       core.NewStyle(core.ColorWhite).WithBackground(bg.Blend(accent, 0.6)),
		Caret:           core.DefaultStyle().Reverse(),
		Placeholder:     core.NewStyle(core.ColorRed),
		PlaceholderText: DefaultPlaceholderText,
		CaretGlyph:      DefaultCaretGlyph,
		FocusMarker:     DefaultFocusMarker,
		Syntax:          DefaultSyntaxStyle,
		TokenStyles:     darkTokenStyles(),
	}
}

// LightTheme returns a theme for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		Name:            "light",
		Text:            core.DefaultStyle(),
		Selection:       core.NewStyle(core.ColorBlack).WithBackground(core.ColorFromRGB(173, 214, 255)),
		Caret:           core.DefaultStyle().Reverse(),
		Placeholder:     core.NewStyle(core.ColorRed),
		PlaceholderText: DefaultPlaceholderText,
		CaretGlyph:      DefaultCaretGlyph,
		FocusMarker:     DefaultFocusMarker,
		Syntax:          "github",
		TokenStyles:     lightTokenStyles(),
	}
}

func darkTokenStyles() map[TokenType]core.Style {
	heading := core.ColorFromRGB(86, 156, 214)   // Blue
	code := core.ColorFromRGB(206, 145, 120)     // Orange
	link := core.ColorFromRGB(78, 201, 176)      // Teal
	quote := core.ColorFromRGB(106, 153, 85)     // Green
	metadata := core.ColorFromRGB(197, 134, 192) // Purple
	muted := core.ColorGray

	return map[TokenType]core.Style{
		TokenHeading:       core.NewStyle(heading).Bold(),
		TokenEmphasis:      core.DefaultStyle().Italic(),
		TokenStrong:        core.DefaultStyle().Bold(),
		TokenCode:          core.NewStyle(code),
		TokenCodeBlock:     core.NewStyle(code),
		TokenCodeFence:     core.NewStyle(muted),
		TokenLink:          core.NewStyle(link).Underline(),
		TokenQuote:         core.NewStyle(quote).Italic(),
		TokenMetadataKey:   core.NewStyle(metadata).Bold(),
		TokenMetadataValue: core.NewStyle(metadata),
	}
}

func lightTokenStyles() map[TokenType]core.Style {
	heading := core.ColorFromRGB(0, 0, 255)
	code := core.ColorFromRGB(163, 21, 21)
	link := core.ColorFromRGB(0, 112, 193)
	quote := core.ColorFromRGB(0, 128, 0)
	metadata := core.ColorFromRGB(128, 0, 128)
	muted := core.ColorGray

	return map[TokenType]core.Style{
		TokenHeading:       core.NewStyle(heading).Bold(),
		TokenEmphasis:      core.DefaultStyle().Italic(),
		TokenStrong:        core.DefaultStyle().Bold(),
		TokenCode:          core.NewStyle(code),
		TokenCodeBlock:     core.NewStyle(code),
		TokenCodeFence:     core.NewStyle(muted),
		TokenLink:          core.NewStyle(link).Underline(),
		TokenQuote:         core.NewStyle(quote).Italic(),
		TokenMetadataKey:   core.NewStyle(metadata).Bold(),
		TokenMetadataValue: core.NewStyle(metadata),
	}
}

// ThemeRegistry manages the available themes by name.
type ThemeRegistry struct {
	themes  map[string]*Theme
	current *Theme
}

// NewThemeRegistry creates a registry holding the built-in themes, with the
// dark theme current.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{
		themes: make(map[string]*Theme),
	}
	r.Register(DarkTheme())
	r.Register(LightTheme())
	r.current = r.themes["dark"]
	return r
}

// Register adds a theme to the registry.
func (r *ThemeRegistry) Register(theme *Theme) {
	r.themes[theme.Name] = theme
}

// Get returns a theme by name.
func (r *ThemeRegistry) Get(name string) (*Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Current returns the current theme.
func (r *ThemeRegistry) Current() *Theme {
	return r.current
}

// SetCurrent sets the current theme by name.
func (r *ThemeRegistry) SetCurrent(name string) bool {
	if t, ok := r.themes[name]; ok {
		r.current = t
		return true
	}
	return false
}

// Names returns the registered theme names in sorted order.
func (r *ThemeRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.themes))
}
