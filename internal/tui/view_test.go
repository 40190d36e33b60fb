package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richdoc/internal/clipboard"
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/engine/editor"
)

func newTestView(t *testing.T, doc *document.Document, opts ...Option) (*View, tcell.SimulationScreen, *editor.Editor) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(24, 5)

	ed := editor.New(editor.WithDocument(doc))
	return NewView(s, ed, opts...), s, ed
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		mainc, comb, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if mainc == 0 {
			mainc = ' '
		}
		sb.WriteRune(mainc)
		for _, r := range comb {
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestViewTyping(t *testing.T) {
	v, s, _ := newTestView(t, document.NewDocumentWithParagraph(""), WithTitle("notes.md"))
	typeText(v, "hi")
	v.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
	typeText(v, "there")
	v.Draw()

	if got := rowText(s, 0); got != "hi" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(s, 1); got != "there" {
		t.Errorf("row 1 = %q", got)
	}
	// 24 columns cannot hold the block type, but title and position fit
	if got, want := rowText(s, 4), " notes.md [+]  2:5  Para"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	if !v.Modified() {
		t.Error("view should be modified")
	}
}

func TestViewBlockKeys(t *testing.T) {
	v, s, ed := newTestView(t, document.NewDocumentWithParagraph("item"))

	v.HandleEvent(key(tcell.KeyBackspace, tcell.ModCtrl))
	v.Draw()
	if got := rowText(s, 0); got != "# item" {
		t.Errorf("after Ctrl-H row 0 = %q", got)
	}

	v.HandleEvent(key(tcell.KeyCtrlL, tcell.ModCtrl))
	v.Draw()
	if got := rowText(s, 0); got != "• item" {
		t.Errorf("after Ctrl-L row 0 = %q", got)
	}

	v.HandleEvent(key(tcell.KeyCtrlO, tcell.ModCtrl))
	v.Draw()
	if got := rowText(s, 0); got != "1. item" {
		t.Errorf("after Ctrl-O row 0 = %q", got)
	}
	blk, _ := ed.Document().Block(0)
	if !blk.Type.IsOrderedList() {
		t.Errorf("type = %s", blk.Type)
	}
}

func TestViewBackspace(t *testing.T) {
	v, s, _ := newTestView(t, document.NewDocumentWithParagraph("one two"))
	v.HandleEvent(key(tcell.KeyEnd, tcell.ModNone))
	v.HandleEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	v.HandleEvent(key(tcell.KeyBackspace, tcell.ModAlt))
	v.Draw()
	if got := rowText(s, 0); got != "one" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestViewStyleKeys(t *testing.T) {
	v, _, ed := newTestView(t, document.NewDocumentWithParagraph("bold"))
	v.HandleEvent(key(tcell.KeyCtrlA, tcell.ModCtrl))
	v.HandleEvent(key(tcell.KeyCtrlB, tcell.ModCtrl))
	v.HandleEvent(key(tcell.KeyCtrlT, tcell.ModCtrl))

	blk, _ := ed.Document().Block(0)
	want := document.NewTextRun("bold", document.TextStyle{Bold: true, Italic: true})
	if len(blk.Content) != 1 || blk.Content[0] != document.Inline(want) {
		t.Errorf("content = %#v", blk.Content)
	}
}

func TestViewDrawsStylesAndSelection(t *testing.T) {
	blk := document.NewBlock(document.ParagraphType())
	blk.Content = []document.Inline{
		document.NewTextRun("B", document.Bold()),
		document.NewTextRun("C", document.Code()),
		document.PlainRun("p"),
	}
	v, s, ed := newTestView(t, document.NewDocumentFromBlocks(blk))
	ed.SetSelection(document.Pos(0, 1), document.Pos(0, 3))
	v.Draw()

	attrsAt := func(x int) tcell.AttrMask {
		_, _, style, _ := s.GetContent(x, 0) //nolint:staticcheck // GetContent is the correct API
		_, _, attrs := style.Decompose()
		return attrs
	}
	if attrsAt(0)&tcell.AttrBold == 0 || attrsAt(0)&tcell.AttrReverse != 0 {
		t.Errorf("bold cell attrs = %v", attrsAt(0))
	}
	if attrsAt(1)&tcell.AttrReverse != 0 {
		t.Errorf("selected code cell should drop reverse, attrs = %v", attrsAt(1))
	}
	if attrsAt(2)&tcell.AttrReverse == 0 {
		t.Errorf("selected plain cell should be reversed, attrs = %v", attrsAt(2))
	}
}

func TestViewClipboard(t *testing.T) {
	cb := &clipboard.Memory{}
	v, s, _ := newTestView(t, document.NewDocumentWithParagraph("abc"), WithClipboard(cb))

	v.HandleEvent(key(tcell.KeyRight, tcell.ModShift))
	v.HandleEvent(key(tcell.KeyCtrlX, tcell.ModCtrl))
	v.HandleEvent(key(tcell.KeyEnd, tcell.ModNone))
	v.HandleEvent(key(tcell.KeyCtrlV, tcell.ModCtrl))
	v.Draw()

	if got := rowText(s, 0); got != "bca" {
		t.Errorf("row 0 = %q", got)
	}
	if got, _ := cb.ReadAll(); got != "a" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestViewSave(t *testing.T) {
	var saved *document.Document
	v, _, _ := newTestView(t, document.NewDocumentWithParagraph(""), WithSave(func(doc *document.Document) error {
		saved = doc
		return nil
	}))
	typeText(v, "x")
	v.HandleEvent(key(tcell.KeyCtrlS, tcell.ModCtrl))
	if saved == nil || saved.PlainText() != "x" {
		t.Fatalf("saved = %v", saved)
	}
	if v.Modified() || v.Status() != "saved" {
		t.Errorf("modified = %v, status = %q", v.Modified(), v.Status())
	}

	boom := errors.New("disk full")
	v.save = func(*document.Document) error { return boom }
	typeText(v, "y")
	v.HandleEvent(key(tcell.KeyCtrlS, tcell.ModCtrl))
	if !v.Modified() || !strings.Contains(v.Status(), "disk full") {
		t.Errorf("modified = %v, status = %q", v.Modified(), v.Status())
	}
}

func TestViewQuit(t *testing.T) {
	v, _, _ := newTestView(t, document.NewDocumentWithParagraph(""))
	if !v.HandleEvent(key(tcell.KeyLeft, tcell.ModNone)) {
		t.Fatal("moving should not quit")
	}
	if v.HandleEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl)) {
		t.Error("Ctrl-Q should quit")
	}
}

func TestViewFileChanged(t *testing.T) {
	reloads := 0
	next := document.NewDocumentWithParagraph("from disk")
	v, s, ed := newTestView(t, document.NewDocumentWithParagraph("old"), WithReload(func() (*document.Document, error) {
		reloads++
		return next, nil
	}))

	v.HandleEvent(tcell.NewEventInterrupt(fileChanged{exists: true}))
	v.Draw()
	if got := rowText(s, 0); got != "from disk" || reloads != 1 {
		t.Errorf("row 0 = %q after %d reloads", got, reloads)
	}

	typeText(v, "!")
	v.HandleEvent(tcell.NewEventInterrupt(fileChanged{exists: true}))
	if reloads != 1 {
		t.Error("modified buffer must not reload")
	}
	if got := ed.Document().PlainText(); got != "!from disk" {
		t.Errorf("text = %q", got)
	}

	v.HandleEvent(tcell.NewEventInterrupt(fileChanged{exists: false}))
	if v.Status() != "file removed on disk" {
		t.Errorf("status = %q", v.Status())
	}
}

func TestViewScrollsToCursor(t *testing.T) {
	doc := document.NewDocumentFromBlocks(
		document.NewParagraph("1"),
		document.NewParagraph("2"),
		document.NewParagraph("3"),
		document.NewParagraph("4"),
		document.NewParagraph("5"),
		document.NewParagraph("6"),
	)
	v, s, _ := newTestView(t, doc)
	v.HandleEvent(key(tcell.KeyEnd, tcell.ModCtrl))
	v.Draw()
	if got := rowText(s, 3); got != "6" {
		t.Errorf("last visible row = %q, want 6", got)
	}
	if got := rowText(s, 0); got != "3" {
		t.Errorf("first visible row = %q, want 3", got)
	}
}
