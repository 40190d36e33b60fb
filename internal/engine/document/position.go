package document

import "fmt"

// Position addresses a byte offset within the flattened text of a block.
type Position struct {
	Block  int
	Offset int
}

// Pos creates a Position.
func Pos(block, offset int) Position {
	return Position{Block: block, Offset: offset}
}

// Compare returns -1, 0 or 1 depending on whether p is before, equal to or
// after other in document order.
func (p Position) Compare(other Position) int {
	switch {
	case p.Block < other.Block:
		return -1
	case p.Block > other.Block:
		return 1
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// Before reports whether p comes before other.
func (p Position) Before(other Position) bool { return p.Compare(other) < 0 }

// After reports whether p comes after other.
func (p Position) After(other Position) bool { return p.Compare(other) > 0 }

// String returns "(block:offset)".
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Block, p.Offset)
}

// OrderPositions returns a and b in ascending order.
func OrderPositions(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
