package document

import "strings"

// Link is the target of a Hyperlink. An empty Title means no title.
type Link struct {
	Destination string
	Title       string
}

// Inline is one item of a block's inline content. The set of
// implementations is closed: TextRun, Hyperlink, LineBreak and HardBreak.
type Inline interface {
	// TextLen returns the byte length the item contributes to the
	// block's flattened text.
	TextLen() int

	// PlainText returns the item's flattened text.
	PlainText() string

	// Clone returns a deep copy of the item.
	Clone() Inline

	isInline()
}

// Hyperlink wraps inline content with a link target.
type Hyperlink struct {
	Link    Link
	Content []Inline
}

// NewHyperlink creates a link whose content is a single plain run.
func NewHyperlink(dest, text string) Hyperlink {
	h := Hyperlink{Link: Link{Destination: dest}}
	if text != "" {
		h.Content = []Inline{PlainRun(text)}
	}
	return h
}

// TextLen implements Inline.
func (h Hyperlink) TextLen() int { return TextLen(h.Content) }

// PlainText implements Inline.
func (h Hyperlink) PlainText() string { return PlainText(h.Content) }

// Clone implements Inline.
func (h Hyperlink) Clone() Inline {
	return Hyperlink{Link: h.Link, Content: CloneInlines(h.Content)}
}

func (Hyperlink) isInline() {}

// LineBreak is a soft break. It flattens to a single space.
type LineBreak struct{}

// TextLen implements Inline.
func (LineBreak) TextLen() int { return 1 }

// PlainText implements Inline.
func (LineBreak) PlainText() string { return " " }

// Clone implements Inline.
func (LineBreak) Clone() Inline { return LineBreak{} }

func (LineBreak) isInline() {}

// HardBreak is a forced line break. It flattens to a single newline.
type HardBreak struct{}

// TextLen implements Inline.
func (HardBreak) TextLen() int { return 1 }

// PlainText implements Inline.
func (HardBreak) PlainText() string { return "\n" }

// Clone implements Inline.
func (HardBreak) Clone() Inline { return HardBreak{} }

func (HardBreak) isInline() {}

// TextLen returns the total flattened length of items.
func TextLen(items []Inline) int {
	n := 0
	for _, item := range items {
		n += item.TextLen()
	}
	return n
}

// PlainText returns the flattened text of items.
func PlainText(items []Inline) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(item.PlainText())
	}
	return sb.String()
}

// CloneInlines deep-copies items.
func CloneInlines(items []Inline) []Inline {
	if len(items) == 0 {
		return nil
	}
	out := make([]Inline, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// NormalizeInlines drops empty runs and empty links and merges adjacent runs
// that share a style. Link content is normalized recursively.
func NormalizeInlines(items []Inline) []Inline {
	out := make([]Inline, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case TextRun:
			if v.IsEmpty() {
				continue
			}
			if n := len(out); n > 0 {
				if prev, ok := out[n-1].(TextRun); ok && prev.Style == v.Style {
					out[n-1] = TextRun{Text: prev.Text + v.Text, Style: prev.Style}
					continue
				}
			}
			out = append(out, v)
		case Hyperlink:
			content := NormalizeInlines(v.Content)
			if len(content) == 0 {
				continue
			}
			out = append(out, Hyperlink{Link: v.Link, Content: content})
		default:
			out = append(out, item)
		}
	}
	return out
}

// SplitInlines splits items at a flattened offset. An item ending exactly at
// the offset goes left. Runs and links straddling the offset are split; a
// break sitting at the offset goes right.
func SplitInlines(items []Inline, offset int) (left, right []Inline) {
	pos := 0
	done := false
	for _, item := range items {
		if done {
			right = append(right, item.Clone())
			continue
		}
		n := item.TextLen()
		if pos+n <= offset {
			left = append(left, item.Clone())
			pos += n
			done = pos == offset && n > 0
			continue
		}
		local := offset - pos
		switch v := item.(type) {
		case TextRun:
			l, r := v.SplitAt(local)
			if !l.IsEmpty() {
				left = append(left, l)
			}
			if !r.IsEmpty() {
				right = append(right, r)
			}
		case Hyperlink:
			l, r := SplitInlines(v.Content, local)
			if len(l) > 0 {
				left = append(left, Hyperlink{Link: v.Link, Content: l})
			}
			if len(r) > 0 {
				right = append(right, Hyperlink{Link: v.Link, Content: r})
			}
		default:
			if local <= 0 {
				right = append(right, item.Clone())
			} else {
				left = append(left, item.Clone())
			}
		}
		done = true
	}
	return left, right
}

// DeleteInlines removes the flattened range [start, end) from items. Runs are
// trimmed, links are trimmed recursively and dropped once empty, and breaks
// inside the range are dropped. The result is not normalized.
func DeleteInlines(items []Inline, start, end int) []Inline {
	if start >= end {
		return items
	}
	out := make([]Inline, 0, len(items))
	pos := 0
	for _, item := range items {
		n := item.TextLen()
		itemStart, itemEnd := pos, pos+n
		pos = itemEnd
		if itemEnd <= start || itemStart >= end {
			out = append(out, item)
			continue
		}
		localStart := max(start-itemStart, 0)
		localEnd := min(end-itemStart, n)
		switch v := item.(type) {
		case TextRun:
			if r := v.Delete(localStart, localEnd); !r.IsEmpty() {
				out = append(out, r)
			}
		case Hyperlink:
			content := DeleteInlines(v.Content, localStart, localEnd)
			if TextLen(content) > 0 {
				out = append(out, Hyperlink{Link: v.Link, Content: content})
			}
		default:
			// a break overlapping the range is covered by it
		}
	}
	return out
}

// MapStyles returns a copy of items with apply run over the style of every
// run, including runs nested inside links.
func MapStyles(items []Inline, apply func(TextStyle) TextStyle) []Inline {
	out := make([]Inline, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case TextRun:
			out = append(out, TextRun{Text: v.Text, Style: apply(v.Style)})
		case Hyperlink:
			out = append(out, Hyperlink{Link: v.Link, Content: MapStyles(v.Content, apply)})
		default:
			out = append(out, item.Clone())
		}
	}
	return out
}

// InsertInlines inserts item at a flattened offset, splitting whatever
// straddles it.
func InsertInlines(items []Inline, offset int, insert ...Inline) []Inline {
	left, right := SplitInlines(items, offset)
	out := make([]Inline, 0, len(left)+len(insert)+len(right))
	out = append(out, left...)
	out = append(out, insert...)
	return append(out, right...)
}
