package document

import "github.com/rivo/uniseg"

// graphemeBoundaries returns the byte offsets of every grapheme cluster
// boundary in text, including 0 and len(text).
func graphemeBoundaries(text string) []int {
	bounds := make([]int, 0, len(text)+1)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		bounds = append(bounds, from)
	}
	return append(bounds, len(text))
}

// GraphemeFloor returns the last grapheme boundary at or before offset.
func GraphemeFloor(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(text) {
		return len(text)
	}
	at := 0
	for _, b := range graphemeBoundaries(text) {
		if b > offset {
			break
		}
		at = b
	}
	return at
}

// GraphemeCeil returns the first grapheme boundary at or after offset.
func GraphemeCeil(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(text) {
		return len(text)
	}
	for _, b := range graphemeBoundaries(text) {
		if b >= offset {
			return b
		}
	}
	return len(text)
}

// PrevGraphemeBoundary returns the last boundary strictly before offset, or 0.
func PrevGraphemeBoundary(text string, offset int) int {
	at := 0
	for _, b := range graphemeBoundaries(text) {
		if b >= offset {
			break
		}
		at = b
	}
	return at
}

// NextGraphemeBoundary returns the first boundary strictly after offset, or
// len(text).
func NextGraphemeBoundary(text string, offset int) int {
	for _, b := range graphemeBoundaries(text) {
		if b > offset {
			return b
		}
	}
	return len(text)
}
