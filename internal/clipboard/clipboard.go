// Package clipboard connects an editor to a text clipboard.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard stores one text value.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

// ReadAll implements Clipboard.
func (System) ReadAll() (string, error) { return clipboard.ReadAll() }

// WriteAll implements Clipboard.
func (System) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemAvailable reports whether the platform has a usable clipboard
// command.
func SystemAvailable() bool { return !clipboard.Unsupported }

// Memory is an in-process clipboard. The zero value is empty and ready to
// use.
type Memory struct {
	mu   sync.Mutex
	text string
}

// ReadAll implements Clipboard.
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteAll implements Clipboard.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// New returns the system clipboard when system is set and the platform
// supports it, and a Memory clipboard otherwise.
func New(system bool) Clipboard {
	if system && SystemAvailable() {
		return System{}
	}
	return &Memory{}
}
