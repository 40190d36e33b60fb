package script

import (
	"errors"
	"fmt"
)

// Errors returned by script runs.
var (
	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("script timeout")

	// ErrUnknownName is returned when a verb receives a direction, style or
	// block type name it does not recognise.
	ErrUnknownName = errors.New("unknown name")

	// ErrPanic is returned when the interpreter panics.
	ErrPanic = errors.New("script panic")
)

// Error is a failed script run.
type Error struct {
	// Source names the script, usually a file path or "<string>".
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
