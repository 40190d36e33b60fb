package tui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/richdoc/internal/engine/document"
)

// glyph is one grapheme cluster placed on screen.
type glyph struct {
	text   string
	width  int
	offset int // byte offset of the cluster in its block
	style  tcell.Style
}

// line is one visual row of a laid out block.
type line struct {
	block  int
	prefix string
	glyphs []glyph

	// start and end are the block offsets covered by the row. A cursor at
	// end belongs to this row unless the next row of the block starts there.
	start, end int
}

// Display styles and markers.
var (
	styleText    = tcell.StyleDefault
	styleLink    = tcell.StyleDefault.Foreground(tcell.ColorBlue).Underline(true)
	stylePrefix  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	highlightBg  = tcell.ColorYellow
	highlightFg  = tcell.ColorBlack
	codeGutter   = "│ "
	bulletMarker = "• "
)

// blockPrefix returns the marker drawn before the first row of a block.
func blockPrefix(t document.BlockType) string {
	switch t.Kind {
	case document.KindHeading:
		return strings.Repeat("#", t.Level) + " "
	case document.KindBlockQuote:
		return "> "
	case document.KindCodeBlock:
		return codeGutter
	case document.KindListItem:
		switch {
		case t.Checkbox == document.Checked:
			return "[x] "
		case t.Checkbox == document.Unchecked:
			return "[ ] "
		case t.Ordered:
			return strconv.FormatUint(t.ListNumber(), 10) + ". "
		default:
			return bulletMarker
		}
	}
	return ""
}

// continuationPrefix is drawn before wrapped rows: blanks the width of the
// first prefix, except quotes and code keep their marker.
func continuationPrefix(t document.BlockType, first string) string {
	switch t.Kind {
	case document.KindBlockQuote, document.KindCodeBlock:
		return first
	}
	return strings.Repeat(" ", uniseg.StringWidth(first))
}

func textStyle(base tcell.Style, s document.TextStyle) tcell.Style {
	if s.Bold {
		base = base.Bold(true)
	}
	if s.Italic {
		base = base.Italic(true)
	}
	if s.Underline {
		base = base.Underline(true)
	}
	if s.Strikethrough {
		base = base.StrikeThrough(true)
	}
	if s.Code {
		base = base.Reverse(true)
	}
	if s.Highlight {
		base = base.Background(highlightBg).Foreground(highlightFg)
	}
	return base
}

// blockGlyphs flattens a block into glyphs. Hard breaks become nil entries
// that force a new row; line breaks draw as a space.
func blockGlyphs(blk document.Block) []*glyph {
	base := styleText
	switch blk.Type.Kind {
	case document.KindHeading:
		base = base.Bold(true)
	case document.KindBlockQuote:
		base = base.Italic(true)
	}

	var out []*glyph
	offset := 0
	var add func(items []document.Inline, linked bool)
	add = func(items []document.Inline, linked bool) {
		for _, item := range items {
			switch it := item.(type) {
			case document.TextRun:
				style := textStyle(base, it.Style)
				if linked {
					style = textStyle(styleLink, it.Style)
				}
				state := -1
				rest := it.Text
				for rest != "" {
					var cluster string
					var width int
					cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
					out = append(out, &glyph{text: cluster, width: width, offset: offset, style: style})
					offset += len(cluster)
				}
			case document.Hyperlink:
				add(it.Content, true)
			case document.LineBreak:
				out = append(out, &glyph{text: " ", width: 1, offset: offset, style: base})
				offset++
			case document.HardBreak:
				out = append(out, nil)
				offset++
			}
		}
	}
	add(blk.Content, false)
	return out
}

// layout wraps every block of doc into rows of at most width cells.
func layout(doc *document.Document, width int) []line {
	var lines []line
	for bi, blk := range doc.Blocks() {
		first := blockPrefix(blk.Type)
		cont := continuationPrefix(blk.Type, first)

		cur := line{block: bi, prefix: first}
		x := uniseg.StringWidth(first)
		offset := 0
		for _, g := range blockGlyphs(blk) {
			if g == nil {
				cur.end = offset
				lines = append(lines, cur)
				offset++
				cur = line{block: bi, prefix: cont, start: offset}
				x = uniseg.StringWidth(cont)
				continue
			}
			if x+g.width > width && len(cur.glyphs) > 0 {
				cur.end = g.offset
				lines = append(lines, cur)
				cur = line{block: bi, prefix: cont, start: g.offset}
				x = uniseg.StringWidth(cont)
			}
			cur.glyphs = append(cur.glyphs, *g)
			x += g.width
			offset = g.offset + len(g.text)
		}
		cur.end = offset
		lines = append(lines, cur)
	}
	return lines
}

// locate returns the row and column of p within lines.
func locate(lines []line, p document.Position) (row, col int, ok bool) {
	for i, ln := range lines {
		if ln.block != p.Block || p.Offset < ln.start || p.Offset > ln.end {
			continue
		}
		if p.Offset == ln.end && i+1 < len(lines) && lines[i+1].block == p.Block && lines[i+1].start == p.Offset {
			continue
		}
		col = uniseg.StringWidth(ln.prefix)
		for _, g := range ln.glyphs {
			if g.offset >= p.Offset {
				break
			}
			col += g.width
		}
		return i, col, true
	}
	return 0, 0, false
}
