package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextRunSplitInsertDelete(t *testing.T) {
	r := NewTextRun("Hello", Bold())

	l, rr := r.SplitAt(2)
	if l.Text != "He" || rr.Text != "llo" || l.Style != Bold() || rr.Style != Bold() {
		t.Errorf("SplitAt(2) = %+v, %+v", l, rr)
	}

	if got := r.Insert(5, "!"); got.Text != "Hello!" {
		t.Errorf("Insert = %q", got.Text)
	}
	if got := r.Delete(1, 4); got.Text != "Ho" {
		t.Errorf("Delete = %q", got.Text)
	}

	multi := PlainRun("a日b")
	l, rr = multi.SplitAt(2)
	if l.Text != "a" || rr.Text != "日b" {
		t.Errorf("split inside rune should snap back, got %q | %q", l.Text, rr.Text)
	}
	if got := multi.Delete(2, 3); got.Text != "ab" {
		t.Errorf("delete touching a rune should remove it whole, got %q", got.Text)
	}
}

func TestNormalizeInlines(t *testing.T) {
	in := []Inline{
		PlainRun("a"),
		PlainRun(""),
		PlainRun("b"),
		NewTextRun("c", Bold()),
		Hyperlink{Link: Link{Destination: "x"}, Content: []Inline{PlainRun("")}},
		NewTextRun("d", Bold()),
		Hyperlink{Link: Link{Destination: "y"}, Content: []Inline{PlainRun("l"), PlainRun("k")}},
		HardBreak{},
	}
	want := []Inline{
		PlainRun("ab"),
		NewTextRun("cd", Bold()),
		Hyperlink{Link: Link{Destination: "y"}, Content: []Inline{PlainRun("lk")}},
		HardBreak{},
	}
	if diff := cmp.Diff(want, NormalizeInlines(in)); diff != "" {
		t.Errorf("NormalizeInlines mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitInlines(t *testing.T) {
	items := []Inline{
		PlainRun("ab"),
		HardBreak{},
		NewHyperlink("u", "cd"),
		PlainRun("ef"),
	}

	tests := []struct {
		name        string
		offset      int
		left, right []Inline
	}{
		{
			name:   "before break",
			offset: 2,
			left:   []Inline{PlainRun("ab")},
			right:  []Inline{HardBreak{}, NewHyperlink("u", "cd"), PlainRun("ef")},
		},
		{
			name:   "after break",
			offset: 3,
			left:   []Inline{PlainRun("ab"), HardBreak{}},
			right:  []Inline{NewHyperlink("u", "cd"), PlainRun("ef")},
		},
		{
			name:   "inside link",
			offset: 4,
			left:   []Inline{PlainRun("ab"), HardBreak{}, NewHyperlink("u", "c")},
			right:  []Inline{NewHyperlink("u", "d"), PlainRun("ef")},
		},
		{
			name:   "start",
			offset: 0,
			left:   nil,
			right:  items,
		},
		{
			name:   "end",
			offset: 7,
			left:   items,
			right:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := SplitInlines(items, tt.offset)
			if diff := cmp.Diff(tt.left, left); diff != "" {
				t.Errorf("left mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.right, right); diff != "" {
				t.Errorf("right mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlockDeleteTextRangeThroughLink(t *testing.T) {
	b := NewParagraph("ab").WithInline(NewHyperlink("u", "cd")).WithText("ef", Plain())

	partial := b.Clone()
	partial.DeleteTextRange(3, 5)
	want := []Inline{PlainRun("ab"), NewHyperlink("u", "c"), PlainRun("f")}
	if diff := cmp.Diff(want, partial.Content); diff != "" {
		t.Errorf("partial link delete mismatch (-want +got):\n%s", diff)
	}

	whole := b.Clone()
	whole.DeleteTextRange(2, 4)
	want = []Inline{PlainRun("abef")}
	if diff := cmp.Diff(want, whole.Content); diff != "" {
		t.Errorf("emptied link should be dropped and runs merged (-want +got):\n%s", diff)
	}
}

func TestBlockDeleteTextRangeDropsBreak(t *testing.T) {
	b := NewParagraph("ab").WithInline(HardBreak{}).WithText("cd", Plain())
	b.DeleteTextRange(2, 3)
	if got := b.PlainText(); got != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", got)
	}
	if len(b.Content) != 1 {
		t.Errorf("expected runs to merge, got %d items", len(b.Content))
	}
}

func TestBlockIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  bool
	}{
		{"no content", NewBlock(ParagraphType()), true},
		{"whitespace", NewParagraph("  \t"), true},
		{"text", NewParagraph(" x "), false},
		{"break only", NewBlock(ParagraphType()).WithInline(HardBreak{}), false},
		{"link only", NewBlock(ParagraphType()).WithInline(NewHyperlink("u", " ")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapStylesRecursesIntoLinks(t *testing.T) {
	items := []Inline{PlainRun("a"), NewHyperlink("u", "b"), LineBreak{}}
	got := MapStyles(items, func(s TextStyle) TextStyle {
		s.Bold = true
		return s
	})
	want := []Inline{
		NewTextRun("a", Bold()),
		Hyperlink{Link: Link{Destination: "u"}, Content: []Inline{NewTextRun("b", Bold())}},
		LineBreak{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapStyles mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockTypeString(t *testing.T) {
	tests := []struct {
		typ  BlockType
		want string
	}{
		{ParagraphType(), "Paragraph"},
		{HeadingType(9), "Heading(H6)"},
		{CodeBlockType("go"), "CodeBlock(go)"},
		{BlockQuoteType(), "BlockQuote"},
		{BulletType(), "ListItem(-)"},
		{OrderedType(0), "ListItem(1.)"},
		{OrderedType(4), "ListItem(4.)"},
		{ChecklistType(true), "ListItem([x])"},
		{ChecklistType(false), "ListItem([ ])"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
