package editor

import "github.com/dshills/richdoc/internal/engine/document"

// Selection is a range of the document between an anchor and a head.
// Anchor is where the selection started; Head is the end that moves.
// Selection is an immutable value type.
type Selection struct {
	Anchor document.Position
	Head   document.Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head document.Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// IsEmpty returns true if anchor and head coincide.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the selection's bounds in document order.
func (s Selection) Range() (start, end document.Position) {
	return document.OrderPositions(s.Anchor, s.Head)
}

// Start returns the lower bound of the selection.
func (s Selection) Start() document.Position {
	start, _ := s.Range()
	return start
}

// End returns the upper bound of the selection.
func (s Selection) End() document.Position {
	_, end := s.Range()
	return end
}

// IsForward returns true if the head is at or after the anchor.
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// Normalize returns a forward selection.
func (s Selection) Normalize() Selection {
	start, end := s.Range()
	return Selection{Anchor: start, Head: end}
}

// Extend returns a selection with the same anchor and a new head.
func (s Selection) Extend(head document.Position) Selection {
	return Selection{Anchor: s.Anchor, Head: head}
}

// Contains reports whether p lies in [Start, End).
func (s Selection) Contains(p document.Position) bool {
	start, end := s.Range()
	return !p.Before(start) && p.Before(end)
}

// Blocks returns the first and last block index touched by the selection.
func (s Selection) Blocks() (first, last int) {
	start, end := s.Range()
	return start.Block, end.Block
}
