package tui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richdoc/internal/engine/document"
)

func rowStrings(lines []line) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		var sb strings.Builder
		sb.WriteString(ln.prefix)
		for _, g := range ln.glyphs {
			sb.WriteString(g.text)
		}
		out[i] = sb.String()
	}
	return out
}

func typed(t document.BlockType, text string) document.Block {
	b := document.NewBlock(t)
	return b.WithText(text, document.Plain())
}

func TestLayoutPrefixes(t *testing.T) {
	doc := document.NewDocumentFromBlocks(
		typed(document.HeadingType(2), "Title"),
		typed(document.BulletType(), "item"),
		typed(document.OrderedType(3), "third"),
		typed(document.ChecklistType(true), "done"),
		typed(document.ChecklistType(false), "todo"),
		typed(document.BlockQuoteType(), "quoted"),
		typed(document.CodeBlockType("go"), "x := 1"),
		document.NewParagraph("plain"),
	)
	want := []string{
		"## Title",
		"• item",
		"3. third",
		"[x] done",
		"[ ] todo",
		"> quoted",
		"│ x := 1",
		"plain",
	}
	if diff := cmp.Diff(want, rowStrings(layout(doc, 40))); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutWraps(t *testing.T) {
	tests := []struct {
		name  string
		block document.Block
		width int
		want  []string
	}{
		{"paragraph", document.NewParagraph("abcdefgh"), 5, []string{"abcde", "fgh"}},
		{"bullet indents", typed(document.BulletType(), "abcdef"), 5, []string{"• abc", "  def"}},
		{"quote repeats marker", typed(document.BlockQuoteType(), "abcdef"), 5, []string{"> abc", "> def"}},
		{"wide runes", document.NewParagraph("日本語"), 5, []string{"日本", "語"}},
		{"empty", document.NewParagraph(""), 5, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rowStrings(layout(document.NewDocumentFromBlocks(tt.block), tt.width))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutBreaks(t *testing.T) {
	blk := document.NewBlock(document.ParagraphType())
	blk.Content = []document.Inline{
		document.PlainRun("ab"),
		document.HardBreak{},
		document.PlainRun("cd"),
		document.LineBreak{},
		document.PlainRun("e"),
	}
	lines := layout(document.NewDocumentFromBlocks(blk), 20)
	if diff := cmp.Diff([]string{"ab", "cd e"}, rowStrings(lines)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if lines[0].end != 2 || lines[1].start != 3 || lines[1].end != 7 {
		t.Errorf("row spans = [%d,%d] [%d,%d]", lines[0].start, lines[0].end, lines[1].start, lines[1].end)
	}
}

func TestLocate(t *testing.T) {
	doc := document.NewDocumentFromBlocks(
		document.NewParagraph("abcdefgh"),
		typed(document.BulletType(), "xy"),
	)
	lines := layout(doc, 5)
	tests := []struct {
		pos      document.Position
		row, col int
	}{
		{document.Pos(0, 0), 0, 0},
		{document.Pos(0, 4), 0, 4},
		{document.Pos(0, 5), 1, 0},
		{document.Pos(0, 8), 1, 3},
		{document.Pos(1, 0), 2, 2},
		{document.Pos(1, 2), 2, 4},
	}
	for _, tt := range tests {
		row, col, ok := locate(lines, tt.pos)
		if !ok || row != tt.row || col != tt.col {
			t.Errorf("locate(%v) = %d,%d,%v want %d,%d", tt.pos, row, col, ok, tt.row, tt.col)
		}
	}
	if _, _, ok := locate(lines, document.Pos(5, 0)); ok {
		t.Error("locate should fail for a missing block")
	}
}
