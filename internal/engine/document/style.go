package document

import "unicode/utf8"

// TextStyle is the set of inline formatting flags carried by a TextRun.
type TextStyle struct {
	Bold          bool
	Italic        bool
	Code          bool
	Strikethrough bool
	Underline     bool
	Highlight     bool
}

// Plain returns a style with no flags set.
func Plain() TextStyle { return TextStyle{} }

// Bold returns a style with only Bold set.
func Bold() TextStyle { return TextStyle{Bold: true} }

// Italic returns a style with only Italic set.
func Italic() TextStyle { return TextStyle{Italic: true} }

// Code returns a style with only Code set.
func Code() TextStyle { return TextStyle{Code: true} }

// IsPlain reports whether no flag is set.
func (s TextStyle) IsPlain() bool {
	return s == TextStyle{}
}

// TextRun is a contiguous piece of text sharing one style.
type TextRun struct {
	Text  string
	Style TextStyle
}

// NewTextRun creates a run with the given text and style.
func NewTextRun(text string, style TextStyle) TextRun {
	return TextRun{Text: text, Style: style}
}

// PlainRun creates an unstyled run.
func PlainRun(text string) TextRun {
	return TextRun{Text: text}
}

// Len returns the byte length of the run's text.
func (r TextRun) Len() int { return len(r.Text) }

// IsEmpty reports whether the run has no text.
func (r TextRun) IsEmpty() bool { return r.Text == "" }

// TextLen implements Inline.
func (r TextRun) TextLen() int { return len(r.Text) }

// PlainText implements Inline.
func (r TextRun) PlainText() string { return r.Text }

// Clone implements Inline.
func (r TextRun) Clone() Inline { return r }

func (TextRun) isInline() {}

// SplitAt splits the run at a byte offset. The offset is clamped to the text
// and moved back to a rune boundary. Both halves keep the run's style.
func (r TextRun) SplitAt(offset int) (TextRun, TextRun) {
	offset = runeFloor(r.Text, offset)
	return TextRun{Text: r.Text[:offset], Style: r.Style},
		TextRun{Text: r.Text[offset:], Style: r.Style}
}

// Insert returns a copy of the run with s inserted at offset.
func (r TextRun) Insert(offset int, s string) TextRun {
	offset = runeFloor(r.Text, offset)
	return TextRun{Text: r.Text[:offset] + s + r.Text[offset:], Style: r.Style}
}

// Delete returns a copy of the run with the bytes in [start, end) removed.
// Any rune touched by the range is removed whole.
func (r TextRun) Delete(start, end int) TextRun {
	start = runeFloor(r.Text, start)
	end = runeCeil(r.Text, end)
	if start >= end {
		return r
	}
	return TextRun{Text: r.Text[:start] + r.Text[end:], Style: r.Style}
}

// runeFloor clamps offset into s and moves it back to a rune start.
func runeFloor(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(s) {
		return len(s)
	}
	for offset > 0 && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}

// runeCeil clamps offset into s and moves it forward to a rune start.
func runeCeil(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(s) {
		return len(s)
	}
	for offset < len(s) && !utf8.RuneStart(s[offset]) {
		offset++
	}
	return offset
}
