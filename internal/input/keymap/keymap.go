package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/kedit/internal/input/key"
)

// ErrEmptyAction is returned for a binding without an action.
var ErrEmptyAction = errors.New("empty action")

// Keymap holds key bindings. Later bindings for the same key win.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	bindings []parsedBinding
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) error {
	return k.AddBinding(NewBinding(keys, action))
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(b Binding) error {
	if b.Action == "" {
		return fmt.Errorf("binding %q: %w", b.Keys, ErrEmptyAction)
	}
	ev, err := key.Parse(b.Keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	k.bindings = append(k.bindings, parsedBinding{Binding: b, event: ev})
	return nil
}

// Lookup returns the binding matching ev.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	for i := len(k.bindings) - 1; i >= 0; i-- {
		if k.bindings[i].event.Matches(ev) {
			return k.bindings[i].Binding, true
		}
	}
	return Binding{}, false
}

// Bindings returns the bindings in the order they were added.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, len(k.bindings))
	for i, b := range k.bindings {
		out[i] = b.Binding
	}
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Help returns one line per binding in the order added: the keys as written,
// padded to a common width, then the description.
func (k *Keymap) Help() []string {
	width := 0
	for _, b := range k.bindings {
		width = max(width, len(b.Keys))
	}
	lines := make([]string, 0, len(k.bindings))
	for _, b := range k.bindings {
		desc := b.Description
		if desc == "" {
			desc = b.Action
		}
		keys := b.Keys
		lines = append(lines, keys+strings.Repeat(" ", width-len(keys)+2)+desc)
	}
	return lines
}
