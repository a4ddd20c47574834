// Package clipboard provides the clipboard used by copy, cut and paste.
//
// Clipboard failures are never fatal to an edit: callers log the error and
// skip the clipboard step, leaving the buffer untouched.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable indicates no clipboard provider is usable.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard stores and retrieves plain text.
type Clipboard interface {
	Put(text string) error
	Get() (string, error)
}

// System is the operating system clipboard.
type System struct{}

// NewSystem returns the OS clipboard, or ErrUnavailable when the platform
// has no supported clipboard utility.
func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnavailable
	}
	return &System{}, nil
}

// Put writes text to the OS clipboard.
func (*System) Put(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Get reads text from the OS clipboard.
func (*System) Get() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Put stores text.
func (m *Memory) Put(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Get returns the stored text.
func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Default returns the OS clipboard when available and an in-memory one
// otherwise.
func Default() Clipboard {
	if sys, err := NewSystem(); err == nil {
		return sys
	}
	return NewMemory()
}
