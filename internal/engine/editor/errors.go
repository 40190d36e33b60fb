package editor

import (
	"errors"
	"fmt"
)

// Errors returned by editing operations.
var (
	// ErrInvalidPosition indicates a position or inline index that does not
	// address the expected content.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidBlockIndex indicates a block index outside the document.
	ErrInvalidBlockIndex = errors.New("invalid block index")

	// ErrEmptyDocument indicates an operation that needs content was applied
	// to a document with no blocks.
	ErrEmptyDocument = errors.New("document is empty")
)

func blockIndexError(index, count int) error {
	return fmt.Errorf("block %d of %d: %w", index, count, ErrInvalidBlockIndex)
}
