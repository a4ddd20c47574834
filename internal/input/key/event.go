package key

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidSpec is returned by Parse for malformed key specifications.
var ErrInvalidSpec = errors.New("invalid key specification")

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character typed without
// Ctrl, Alt or Meta.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// (since Shift changes the character itself).
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Matches reports whether e is the same key press as other, ignoring the
// timestamp and letter case of Ctrl/Alt combinations.
func (e Event) Matches(other Event) bool {
	if e.Key != other.Key || e.Modifiers.Without(ModShift) != other.Modifiers.Without(ModShift) {
		return false
	}
	if e.Key != KeyRune {
		return e.Modifiers == other.Modifiers
	}
	if e.IsModified() {
		return unicode.ToLower(e.Rune) == unicode.ToLower(other.Rune)
	}
	return e.Rune == other.Rune
}

// String returns a canonical representation such as "a", "Ctrl+z" or
// "Shift+Up".
func (e Event) String() string {
	var name string
	mods := e.Modifiers
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
		// Shift is part of the character
		mods = mods.Without(ModShift)
	default:
		name = e.Key.String()
	}

	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// Parse converts a specification such as "Ctrl+Z" or "Shift+PgDn" into the
// event it describes.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, fmt.Errorf("%w: empty", ErrInvalidSpec)
	}

	parts := strings.Split(spec, "+")
	// "Ctrl++" names the plus key
	if strings.HasSuffix(spec, "++") {
		parts = append(strings.Split(strings.TrimSuffix(spec, "++"), "+"), "+")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierFromName(strings.TrimSpace(p))
		if !ok {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods |= mod
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if strings.EqualFold(name, "space") {
		return Event{Key: KeyRune, Rune: ' ', Modifiers: mods}, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if mods.Has(ModCtrl | ModAlt | ModMeta) {
			r = unicode.ToLower(r)
		}
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}
	if k := KeyFromName(name); k != KeyNone {
		return Event{Key: k, Modifiers: mods}, nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, name, spec)
}
