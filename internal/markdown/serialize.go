package markdown

import (
	"strconv"
	"strings"

	"github.com/dshills/richdoc/internal/engine/document"
)

// Serialize renders doc as markdown, one block per paragraph with blocks
// separated by a blank line.
func Serialize(doc *document.Document, opts ...Option) string {
	o := buildOptions(opts)
	var sb strings.Builder
	for i, b := range doc.Blocks() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writeBlock(&sb, b, o)
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b document.Block, o options) {
	t := b.Type
	switch t.Kind {
	case document.KindHeading:
		sb.WriteString(strings.Repeat("#", t.Level))
		sb.WriteByte(' ')
	case document.KindBlockQuote:
		sb.WriteString("> ")
	case document.KindCodeBlock:
		code := b.PlainText()
		fence := strings.Repeat("`", max(3, longestRun(code, '`')+1))
		sb.WriteString(fence)
		sb.WriteString(t.Language)
		sb.WriteByte('\n')
		if code != "" {
			sb.WriteString(code)
			sb.WriteByte('\n')
		}
		sb.WriteString(fence)
		return
	case document.KindListItem:
		switch {
		case t.Ordered:
			sb.WriteString(strconv.FormatUint(t.ListNumber(), 10))
			sb.WriteString(". ")
		case t.Checkbox == document.Checked:
			sb.WriteString("- [x] ")
		case t.Checkbox == document.Unchecked:
			sb.WriteString("- [ ] ")
		default:
			sb.WriteString("- ")
		}
	}
	if t.Kind == document.KindHeading {
		writeInlines(sb, b.Content, o)
		return
	}
	var body strings.Builder
	writeInlines(&body, b.Content, o)
	sb.WriteString(escapeLineStarts(body.String()))
}

// escapeLineStarts escapes the first marker of every line that would
// otherwise open a heading, quote, list item or rule.
func escapeLineStarts(s string) string {
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = escapeLineStart(ln)
	}
	return strings.Join(lines, "\n")
}

func escapeLineStart(ln string) string {
	i := 0
	for i < len(ln) && i < 3 && ln[i] == ' ' {
		i++
	}
	if i == len(ln) {
		return ln
	}
	switch ln[i] {
	case '#', '>', '-', '+', '=':
		return ln[:i] + `\` + ln[i:]
	}
	j := i
	for j < len(ln) && j-i < 9 && ln[j] >= '0' && ln[j] <= '9' {
		j++
	}
	if j > i && j < len(ln) && (ln[j] == '.' || ln[j] == ')') {
		return ln[:j] + `\` + ln[j:]
	}
	return ln
}

func writeInlines(sb *strings.Builder, items []document.Inline, o options) {
	for _, item := range items {
		switch v := item.(type) {
		case document.TextRun:
			sb.WriteString(styledRun(v))
		case document.Hyperlink:
			writeLink(sb, v, o)
		case document.LineBreak:
			sb.WriteByte('\n')
		case document.HardBreak:
			sb.WriteString("  \n")
		}
	}
}

func writeLink(sb *strings.Builder, h document.Hyperlink, o options) {
	if o.wikiLinks && isWikiLink(h) {
		sb.WriteString("[[")
		sb.WriteString(h.Link.Destination)
		sb.WriteString("]]")
		return
	}
	sb.WriteByte('[')
	writeInlines(sb, h.Content, o)
	sb.WriteString("](")
	sb.WriteString(h.Link.Destination)
	if h.Link.Title != "" {
		sb.WriteString(` "`)
		sb.WriteString(strings.ReplaceAll(h.Link.Title, `"`, `\"`))
		sb.WriteByte('"')
	}
	sb.WriteByte(')')
}

// isWikiLink reports whether h is a single plain run naming its own
// destination.
func isWikiLink(h document.Hyperlink) bool {
	if len(h.Content) != 1 {
		return false
	}
	run, ok := h.Content[0].(document.TextRun)
	return ok && run.Style.IsPlain() && run.Text == h.Link.Destination &&
		!strings.ContainsAny(run.Text, "[]\n")
}

// styledRun wraps a run in its markers. Code wins over every other style;
// otherwise strikethrough is innermost, then bold/italic, then <u>, with
// <mark> outermost.
func styledRun(r document.TextRun) string {
	if r.Text == "" {
		return ""
	}
	if r.Style.Code {
		return codeSpan(r.Text)
	}
	s := escape(r.Text)
	if r.Style.Strikethrough {
		s = "~~" + s + "~~"
	}
	switch {
	case r.Style.Bold && r.Style.Italic:
		s = "***" + s + "***"
	case r.Style.Bold:
		s = "**" + s + "**"
	case r.Style.Italic:
		s = "*" + s + "*"
	}
	if r.Style.Underline {
		s = "<u>" + s + "</u>"
	}
	if r.Style.Highlight {
		s = "<mark>" + s + "</mark>"
	}
	return s
}

func codeSpan(s string) string {
	ticks := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return ticks + " " + s + " " + ticks
	}
	return ticks + s + ticks
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"~", `\~`,
	"<", `\<`,
)

func escape(s string) string {
	return escaper.Replace(s)
}

func longestRun(s string, c byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			longest = max(longest, cur)
		} else {
			cur = 0
		}
	}
	return longest
}
