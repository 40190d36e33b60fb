package editor

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/richdoc/internal/engine/document"
)

// isWordSeparator reports whether r ends a word during word-wise movement
// and deletion: any whitespace or ASCII punctuation.
func isWordSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// isWordDelimiter is the stricter class used by WordStart and WordEnd: every
// ASCII character other than letters, digits and underscore, plus the
// no-break space and CJK punctuation.
func isWordDelimiter(r rune) bool {
	if r < utf8.RuneSelf {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}
	return r == 0xA0 || r >= 0x3000 && r <= 0x301F
}

func firstRune(s string) (rune, int) { return utf8.DecodeRuneInString(s) }

func lastRune(s string) (rune, int) { return utf8.DecodeLastRuneInString(s) }

// runeFloor clamps offset into text and moves it back to a rune start.
func runeFloor(text string, offset int) int {
	offset = min(max(offset, 0), len(text))
	for offset > 0 && offset < len(text) && !utf8.RuneStart(text[offset]) {
		offset--
	}
	return offset
}

func delimiterAt(text string, offset int) bool {
	if offset >= len(text) {
		return true
	}
	r, _ := firstRune(text[offset:])
	return isWordDelimiter(r)
}

// WordStart returns the start of the word containing offset. It walks back
// over word characters; if it stops on a delimiter it steps forward past
// it. In "one  two", offset 3 yields 4 and offset 4 yields 5.
func WordStart(text string, offset int) int {
	cur := runeFloor(text, offset)
	for cur > 0 && !delimiterAt(text, cur) {
		_, size := lastRune(text[:cur])
		cur -= size
	}
	if delimiterAt(text, cur) && cur < len(text) {
		_, size := firstRune(text[cur:])
		cur += size
	}
	return cur
}

// WordEnd returns the offset just past the word containing offset.
func WordEnd(text string, offset int) int {
	cur := runeFloor(text, offset)
	for cur < len(text) && !delimiterAt(text, cur) {
		_, size := firstRune(text[cur:])
		cur += size
	}
	return cur
}

// WordRightPosition returns the position one word to the right of p: past a
// run of separators, then past a run of word characters. At the end of a
// block it moves to the start of the next one.
func (e *Editor) WordRightPosition(p document.Position) document.Position {
	blk, ok := e.doc.Block(p.Block)
	if !ok {
		return e.doc.ClampPosition(p)
	}
	text := blk.PlainText()
	i := runeFloor(text, p.Offset)
	if i >= len(text) {
		if p.Block+1 < e.doc.BlockCount() {
			return document.Pos(p.Block+1, 0)
		}
		return e.doc.ClampPosition(p)
	}
	for i < len(text) {
		r, size := firstRune(text[i:])
		if !isWordSeparator(r) {
			break
		}
		i += size
	}
	for i < len(text) {
		r, size := firstRune(text[i:])
		if isWordSeparator(r) {
			break
		}
		i += size
	}
	return e.doc.ClampPositionForward(document.Pos(p.Block, i))
}

// WordLeftPosition mirrors WordRightPosition. At the start of a block it
// moves to the end of the previous one.
func (e *Editor) WordLeftPosition(p document.Position) document.Position {
	blk, ok := e.doc.Block(p.Block)
	if !ok {
		return e.doc.ClampPosition(p)
	}
	text := blk.PlainText()
	i := runeFloor(text, p.Offset)
	if i == 0 {
		if p.Block > 0 {
			prev, _ := e.doc.Block(p.Block - 1)
			return document.Pos(p.Block-1, prev.TextLen())
		}
		return e.doc.ClampPosition(p)
	}
	for i > 0 {
		r, size := lastRune(text[:i])
		if !isWordSeparator(r) {
			break
		}
		i -= size
	}
	for i > 0 {
		r, size := lastRune(text[:i])
		if isWordSeparator(r) {
			break
		}
		i -= size
	}
	return e.doc.ClampPosition(document.Pos(p.Block, i))
}
