package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richdoc/internal/engine/document"
)

// newEditor creates an editor over one paragraph per string.
func newEditor(paras ...string) *Editor {
	blocks := make([]document.Block, len(paras))
	for i, p := range paras {
		blocks[i] = document.NewParagraph(p)
	}
	return New(WithDocument(document.NewDocumentFromBlocks(blocks...)))
}

// newEditorBlocks creates an editor over the given blocks.
func newEditorBlocks(blocks ...document.Block) *Editor {
	return New(WithDocument(document.NewDocumentFromBlocks(blocks...)))
}

func texts(e *Editor) []string {
	var out []string
	for _, b := range e.Document().Blocks() {
		out = append(out, b.PlainText())
	}
	return out
}

func blockAt(t *testing.T, e *Editor, i int) *document.Block {
	t.Helper()
	b, ok := e.Document().Block(i)
	if !ok {
		t.Fatalf("no block %d", i)
	}
	return b
}

func TestHelloWorldScenario(t *testing.T) {
	e := New()
	if err := e.InsertText("Hello"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if err := e.InsertNewline(); err != nil {
		t.Fatalf("InsertNewline: %v", err)
	}
	if err := e.InsertText("World"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}

	if e.Document().BlockCount() != 2 {
		t.Fatalf("expected 2 blocks, got %d", e.Document().BlockCount())
	}
	if e.Cursor() != document.Pos(1, 5) {
		t.Errorf("cursor = %v, want (1:5)", e.Cursor())
	}
	if diff := cmp.Diff([]string{"Hello", "World"}, texts(e)); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteSelectionAcrossBlocks(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		e := newEditor("First para", "Second", "Third para")
		a, b := document.Pos(0, 3), document.Pos(2, 2)
		if reversed {
			a, b = b, a
		}
		e.SetSelection(a, b)
		if err := e.DeleteSelection(); err != nil {
			t.Fatalf("DeleteSelection: %v", err)
		}
		if diff := cmp.Diff([]string{"Firird para"}, texts(e)); diff != "" {
			t.Errorf("reversed=%v blocks mismatch (-want +got):\n%s", reversed, diff)
		}
		if e.Cursor() != document.Pos(0, 3) {
			t.Errorf("reversed=%v cursor = %v, want (0:3)", reversed, e.Cursor())
		}
		if e.HasSelection() {
			t.Error("selection should be cleared")
		}
	}
}

func TestSetCursorClampsAndClearsSelection(t *testing.T) {
	e := newEditor("abc", "de")
	e.SetSelection(document.Pos(0, 0), document.Pos(0, 2))
	e.SetCursor(document.Pos(5, 40))
	if e.Cursor() != document.Pos(1, 2) {
		t.Errorf("cursor = %v, want (1:2)", e.Cursor())
	}
	if e.HasSelection() {
		t.Error("SetCursor should clear the selection")
	}
}

func TestSetSelectionSnapsToGraphemes(t *testing.T) {
	e := newEditor("a\U0001F44D\U0001F3FDb")

	e.SetSelection(document.Pos(0, 3), document.Pos(0, 4))
	sel, _ := e.Selection()
	if sel.Anchor != document.Pos(0, 1) || sel.Head != document.Pos(0, 9) {
		t.Errorf("forward selection = %v..%v, want (0:1)..(0:9)", sel.Anchor, sel.Head)
	}

	e.SetSelection(document.Pos(0, 4), document.Pos(0, 3))
	sel, _ = e.Selection()
	if sel.Anchor != document.Pos(0, 9) || sel.Head != document.Pos(0, 1) {
		t.Errorf("backward selection = %v..%v, want (0:9)..(0:1)", sel.Anchor, sel.Head)
	}
	if got := e.SelectionText(); got != "\U0001F44D\U0001F3FD" {
		t.Errorf("SelectionText = %q", got)
	}
}

func TestExtendSelectionKeepsAnchor(t *testing.T) {
	e := newEditor("hello world")
	e.SetCursor(document.Pos(0, 2))
	e.ExtendSelectionTo(document.Pos(0, 5))
	e.ExtendSelectionTo(document.Pos(0, 0))

	sel, ok := e.Selection()
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.Anchor != document.Pos(0, 2) || sel.Head != document.Pos(0, 0) {
		t.Errorf("selection = %v..%v, want (0:2)..(0:0)", sel.Anchor, sel.Head)
	}
	if e.Cursor() != document.Pos(0, 0) {
		t.Errorf("cursor = %v, want head", e.Cursor())
	}
	if sel.IsForward() {
		t.Error("selection should be backward")
	}
}

func TestSelectAll(t *testing.T) {
	e := newEditor("one", "two")
	e.SelectAll()
	sel, ok := e.Selection()
	if !ok || sel.Start() != document.Pos(0, 0) || sel.End() != document.Pos(1, 3) {
		t.Errorf("SelectAll = %v, %v", sel, ok)
	}
	if e.Cursor() != document.Pos(1, 3) {
		t.Errorf("cursor = %v", e.Cursor())
	}

	empty := New()
	empty.SelectAll()
	if empty.HasSelection() {
		t.Error("empty document should have no selection")
	}
}

func TestSelectWordAt(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		start, end int
		selected   bool
	}{
		{"inside word", 7, 6, 11, true},
		{"word start", 0, 0, 5, true},
		{"on separator", 5, 5, 6, true},
		{"end of block", 11, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor("hello world")
			e.SelectWordAt(document.Pos(0, tt.offset))
			sel, ok := e.Selection()
			if ok != tt.selected {
				t.Fatalf("selected = %v, want %v", ok, tt.selected)
			}
			if !ok {
				return
			}
			if sel.Start().Offset != tt.start || sel.End().Offset != tt.end {
				t.Errorf("selection = %v..%v, want %d..%d", sel.Start(), sel.End(), tt.start, tt.end)
			}
			if e.Cursor().Offset != tt.end {
				t.Errorf("cursor = %v, want offset %d", e.Cursor(), tt.end)
			}
		})
	}
}

func TestSelectLineAt(t *testing.T) {
	e := newEditor("one", "second line")
	e.SelectLineAt(document.Pos(1, 4))
	if got := e.SelectionText(); got != "second line" {
		t.Errorf("SelectionText = %q", got)
	}
	if e.Cursor() != document.Pos(1, 11) {
		t.Errorf("cursor = %v", e.Cursor())
	}
}

func TestSetDocumentResetsState(t *testing.T) {
	e := newEditor("abc")
	e.SetCursor(document.Pos(0, 2))
	e.SetSelection(document.Pos(0, 0), document.Pos(0, 1))

	e.SetDocument(document.NewDocumentWithParagraph("xyz"))
	if e.Cursor() != document.Pos(0, 0) || e.HasSelection() {
		t.Errorf("state not reset: cursor %v, selection %v", e.Cursor(), e.HasSelection())
	}
	e.SetDocument(nil)
	if e.Document() == nil || !e.Document().IsEmpty() {
		t.Error("nil document should become an empty document")
	}
}

func TestBlockTypeObserver(t *testing.T) {
	var seen []document.BlockType
	e := New(
		WithDocument(document.NewDocumentFromBlocks(document.NewParagraph("a"), document.NewHeading(2, "b"))),
		WithBlockTypeObserver(func(bt document.BlockType) { seen = append(seen, bt) }),
	)
	e.SetCursor(document.Pos(1, 0))
	if err := e.ToggleQuote(); err != nil {
		t.Fatalf("ToggleQuote: %v", err)
	}

	want := []document.BlockType{
		document.ParagraphType(),
		document.HeadingType(2),
		document.BlockQuoteType(),
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("observed types mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidCursorBlock(t *testing.T) {
	e := newEditor("one", "two")
	e.SetCursor(document.Pos(1, 1))
	e.Document().RemoveBlock(1)

	if err := e.InsertText("x"); !errors.Is(err, ErrInvalidBlockIndex) {
		t.Errorf("InsertText error = %v, want ErrInvalidBlockIndex", err)
	}
	if err := e.ToggleHeading(); !errors.Is(err, ErrInvalidBlockIndex) {
		t.Errorf("ToggleHeading error = %v, want ErrInvalidBlockIndex", err)
	}
}

func TestSelectionValue(t *testing.T) {
	s := NewSelection(document.Pos(2, 1), document.Pos(0, 4))
	if s.IsEmpty() {
		t.Error("selection should not be empty")
	}
	n := s.Normalize()
	if n.Anchor != document.Pos(0, 4) || n.Head != document.Pos(2, 1) {
		t.Errorf("Normalize = %v", n)
	}
	if !s.Contains(document.Pos(1, 0)) || s.Contains(document.Pos(2, 1)) {
		t.Error("Contains should be half-open")
	}
	first, last := s.Blocks()
	if first != 0 || last != 2 {
		t.Errorf("Blocks = %d, %d", first, last)
	}
	if got := s.Extend(document.Pos(3, 0)); got.Anchor != s.Anchor || got.Head != document.Pos(3, 0) {
		t.Errorf("Extend = %v", got)
	}
}
