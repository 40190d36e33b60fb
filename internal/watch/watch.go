// Package watch reports changes to a single file on disk.
//
// A FileWatcher watches the file's parent directory rather than the file
// itself, so editors that save by writing a temporary file and renaming it
// over the original keep producing events. Bursts of events within the
// debounce delay are coalesced into one Event whose Op combines every
// operation seen.
package watch

import (
	"errors"
	"strings"
	"time"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
)

// Op is a set of file system operations.
type Op uint32

const (
	// OpCreate indicates the file was created, or renamed into place.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns the operation names joined by "|".
func (op Op) String() string {
	names := []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
	}
	var parts []string
	for _, n := range names {
		if op.Has(n.op) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(parts, "|")
}

// Has returns true if the operation includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event is a coalesced change to the watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op combines the operations seen during the debounce window.
	Op Op

	// Timestamp is when the first operation of the window arrived.
	Timestamp time.Time
}

// Exists reports whether the file should still be present after the event.
func (e Event) Exists() bool {
	return !e.Op.Has(OpRemove) && !e.Op.Has(OpRename) || e.Op.Has(OpCreate)
}
