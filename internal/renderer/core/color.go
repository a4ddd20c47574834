package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack  = Color{R: 0, G: 0, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorRed    = Color{R: 255, G: 0, B: 0}
	ColorYellow = Color{R: 255, G: 255, B: 0}
	ColorGray   = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#rgb" or "#rrggbb" (the leading # is optional).
// The empty string and "default" yield ColorDefault.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" || strings.EqualFold(hex, "default") {
		return ColorDefault, nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// MustColorFromHex is like ColorFromHex but panics on malformed input.
// It is intended for package-level theme tables.
func MustColorFromHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return c.colorful().Hex()
}

// Blend mixes c toward other in Lab space. amount 0 yields c, 1 yields other.
// Indexed and default colors do not blend; the nearer endpoint is returned.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	if amount <= 0 {
		return c
	}
	if amount >= 1 {
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}
