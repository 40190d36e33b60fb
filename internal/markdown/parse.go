package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/dshills/richdoc/internal/engine/document"
)

var wikiLinkPattern = regexp.MustCompile(`\[\[([^\[\]\n]+)\]\]`)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.TaskList),
)

// Parse converts markdown source into a document. The result always holds
// at least one block.
func Parse(src string, opts ...Option) *document.Document {
	source := []byte(document.NormalizeLineEndings(src))
	root := md.Parser().Parse(text.NewReader(source))

	c := &converter{source: source, opts: buildOptions(opts), doc: document.NewDocument()}
	c.blocks(root, false)
	if c.doc.IsEmpty() {
		c.doc.AddBlock(document.NewBlock(document.ParagraphType()))
	}
	return c.doc
}

type converter struct {
	source []byte
	opts   options
	doc    *document.Document
}

func (c *converter) add(t document.BlockType, content []document.Inline) {
	content = document.NormalizeInlines(content)
	if c.opts.wikiLinks {
		content = expandWikiLinks(content)
	}
	b := document.NewBlock(t)
	if len(content) > 0 {
		b.Content = content
	}
	c.doc.AddBlock(b)
}

func (c *converter) blocks(parent ast.Node, quoted bool) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		c.block(n, quoted)
	}
}

func (c *converter) block(n ast.Node, quoted bool) {
	textType := document.ParagraphType()
	if quoted {
		textType = document.BlockQuoteType()
	}

	switch v := n.(type) {
	case *ast.Heading:
		c.add(document.HeadingType(v.Level), c.inlines(v, document.Plain()))
	case *ast.Paragraph, *ast.TextBlock:
		c.add(textType, c.inlines(v, document.Plain()))
	case *ast.FencedCodeBlock:
		c.add(document.CodeBlockType(string(v.Language(c.source))), c.codeLines(v))
	case *ast.CodeBlock:
		c.add(document.CodeBlockType(""), c.codeLines(v))
	case *ast.Blockquote:
		c.blocks(v, true)
	case *ast.List:
		c.list(v)
	case *ast.ThematicBreak:
		c.add(textType, []document.Inline{document.PlainRun("---")})
	case *ast.HTMLBlock:
		raw := strings.TrimRight(c.lines(v), "\n")
		c.add(textType, []document.Inline{document.PlainRun(raw)})
	default:
		c.blocks(n, quoted)
	}
}

// list emits one block per item. Items of nested lists follow their
// parent item as siblings.
func (c *converter) list(l *ast.List) {
	number := uint64(max(l.Start, 1))
	for n := l.FirstChild(); n != nil; n = n.NextSibling() {
		item, ok := n.(*ast.ListItem)
		if !ok {
			continue
		}

		t := document.BulletType()
		if l.IsOrdered() {
			t = document.OrderedType(number)
			number++
		}

		first := item.FirstChild()
		var content []document.Inline
		switch first.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok && !l.IsOrdered() {
				t = document.ChecklistType(box.IsChecked)
			}
			content = c.inlines(first, document.Plain())
		default:
			first = nil
		}
		c.add(t, content)

		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if child != first {
				c.block(child, false)
			}
		}
	}
}

func (c *converter) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.source))
	}
	return sb.String()
}

func (c *converter) codeLines(n ast.Node) []document.Inline {
	code := strings.TrimSuffix(c.lines(n), "\n")
	if code == "" {
		return nil
	}
	return []document.Inline{document.PlainRun(code)}
}

func appendText(out []document.Inline, s string, style document.TextStyle) []document.Inline {
	if s == "" {
		return out
	}
	return append(out, document.NewTextRun(s, style))
}

// inlines converts the inline children of parent, starting from style.
// <u> and <mark> tags switch underline and highlight on and off for the
// siblings that follow them.
func (c *converter) inlines(parent ast.Node, style document.TextStyle) []document.Inline {
	var out []document.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Text:
			out = appendText(out, string(util.UnescapePunctuations(v.Segment.Value(c.source))), style)
			switch {
			case v.HardLineBreak():
				out = append(out, document.HardBreak{})
			case v.SoftLineBreak():
				out = append(out, document.LineBreak{})
			}
		case *ast.String:
			out = appendText(out, string(v.Value), style)
		case *ast.CodeSpan:
			out = appendText(out, c.codeSpan(v), document.Code())
		case *ast.Emphasis:
			s := style
			if v.Level >= 2 {
				s.Bold = true
			} else {
				s.Italic = true
			}
			out = append(out, c.inlines(v, s)...)
		case *extast.Strikethrough:
			s := style
			s.Strikethrough = true
			out = append(out, c.inlines(v, s)...)
		case *ast.Link:
			out = append(out, document.Hyperlink{
				Link:    document.Link{Destination: string(v.Destination), Title: string(v.Title)},
				Content: c.inlines(v, style),
			})
		case *ast.AutoLink:
			out = append(out, document.Hyperlink{
				Link:    document.Link{Destination: string(v.URL(c.source))},
				Content: []document.Inline{document.NewTextRun(string(v.Label(c.source)), style)},
			})
		case *ast.RawHTML:
			raw := c.rawHTML(v)
			switch strings.ToLower(raw) {
			case "<u>":
				style.Underline = true
			case "</u>":
				style.Underline = false
			case "<mark>":
				style.Highlight = true
			case "</mark>":
				style.Highlight = false
			default:
				out = appendText(out, raw, style)
			}
		case *extast.TaskCheckBox:
		default:
			out = append(out, c.inlines(n, style)...)
		}
	}
	return out
}

func (c *converter) codeSpan(n *ast.CodeSpan) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(c.source))
			if v.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		}
	}
	return sb.String()
}

func (c *converter) rawHTML(n *ast.RawHTML) string {
	var sb strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(c.source))
	}
	return sb.String()
}

// expandWikiLinks turns [[Page]] inside plain runs into links.
func expandWikiLinks(items []document.Inline) []document.Inline {
	out := make([]document.Inline, 0, len(items))
	for _, item := range items {
		run, ok := item.(document.TextRun)
		if !ok || run.Style.Code {
			out = append(out, item)
			continue
		}
		matches := wikiLinkPattern.FindAllStringSubmatchIndex(run.Text, -1)
		if matches == nil {
			out = append(out, item)
			continue
		}
		last := 0
		for _, m := range matches {
			out = appendText(out, run.Text[last:m[0]], run.Style)
			name := run.Text[m[2]:m[3]]
			out = append(out, document.Hyperlink{
				Link:    document.Link{Destination: name},
				Content: []document.Inline{document.NewTextRun(name, run.Style)},
			})
			last = m[1]
		}
		out = appendText(out, run.Text[last:], run.Style)
	}
	return out
}
