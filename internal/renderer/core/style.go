package core

import "strings"

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << (iota - 1)
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
)

var attributeNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
	{AttrStrikethrough, "strikethrough"},
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// String lists the set attributes, e.g. "bold|italic".
func (a Attribute) String() string {
	var names []string
	for _, an := range attributeNames {
		if a.Has(an.attr) {
			names = append(names, an.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg, Background: ColorDefault}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	s.Attributes |= AttrItalic
	return s
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Merge overlays other onto s: non-default colors of other win and
// attributes are combined.
func (s Style) Merge(other Style) Style {
	if !other.Foreground.IsDefault() {
		s.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		s.Background = other.Background
	}
	s.Attributes |= other.Attributes
	return s
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() && s.Background.IsDefault() && s.Attributes == AttrNone
}
