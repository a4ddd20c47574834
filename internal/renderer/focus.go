package renderer

import "github.com/google/uuid"

// Focus records which editor component currently receives input. The zero
// value has no focused component.
type Focus struct {
	id uuid.UUID
}

// Set gives focus to the component with the given id.
func (f *Focus) Set(id uuid.UUID) {
	f.id = id
}

// Clear removes focus from every component.
func (f *Focus) Clear() {
	f.id = uuid.Nil
}

// ID returns the focused component, or uuid.Nil.
func (f *Focus) ID() uuid.UUID {
	if f == nil {
		return uuid.Nil
	}
	return f.id
}

// Has reports whether the component with the given id has focus.
func (f *Focus) Has(id uuid.UUID) bool {
	return f != nil && f.id != uuid.Nil && f.id == id
}
