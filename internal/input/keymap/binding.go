package keymap

import "github.com/dshills/kedit/internal/input/key"

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	Keys string

	// Action is the name of the action to run, such as "history.undo".
	Action string

	// Description is the help text for the binding. Help falls back to
	// Action when it is empty.
	Description string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// parsedBinding is a binding with its key specification parsed.
type parsedBinding struct {
	Binding
	event key.Event
}
