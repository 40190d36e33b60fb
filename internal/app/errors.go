package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoFile indicates an operation that needs a file path was run on
	// an unnamed buffer.
	ErrNoFile = errors.New("no file")

	// ErrNotTerminal indicates the interactive editor was started without a
	// screen.
	ErrNotTerminal = errors.New("no terminal screen")
)

// OperationError represents an error that occurred during a specific
// operation.
type OperationError struct {
	Op     string // Operation name (e.g., "load", "save", "script")
	Target string // Target of the operation, usually a file path
	Err    error  // Underlying error
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
