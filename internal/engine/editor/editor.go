package editor

import (
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/logging"
)

// Editor owns a document together with a cursor and an optional selection.
type Editor struct {
	doc      *document.Document
	cursor   document.Position
	sel      Selection
	hasSel   bool
	logger   *logging.Logger
	observer func(document.BlockType)
}

// New creates an editor. Without WithDocument it edits a fresh, empty
// document.
func New(opts ...Option) *Editor {
	e := &Editor{
		doc:    document.NewDocument(),
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.normalizeCursor()
	e.notifyBlockType()
	return e
}

// Document returns the edited document. Callers must re-fetch blocks after
// any editing call.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// SetDocument replaces the edited document wholesale. The cursor returns to
// the start and the selection is cleared.
func (e *Editor) SetDocument(doc *document.Document) {
	if doc == nil {
		doc = document.NewDocument()
	}
	e.doc = doc
	e.cursor = document.Position{}
	e.hasSel = false
	e.normalizeCursor()
	e.logger.Debug("document replaced: %d blocks", doc.BlockCount())
	e.notifyBlockType()
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() document.Position {
	return e.cursor
}

// SetCursor moves the cursor to p, clamped, and clears the selection.
func (e *Editor) SetCursor(p document.Position) {
	e.cursor = e.doc.ClampPosition(p)
	e.hasSel = false
	e.notifyBlockType()
}

// Selection returns the current selection, if any.
func (e *Editor) Selection() (Selection, bool) {
	return e.sel, e.hasSel
}

// HasSelection reports whether a selection is active.
func (e *Editor) HasSelection() bool {
	return e.hasSel
}

// SetSelection selects from anchor to head. The earlier endpoint snaps to
// the grapheme boundary at or before it and the later one to the boundary
// at or after it, so a selection always covers whole clusters. The cursor
// is left where it is.
func (e *Editor) SetSelection(anchor, head document.Position) {
	if head.Before(anchor) {
		anchor = e.doc.ClampPositionForward(anchor)
		head = e.doc.ClampPosition(head)
	} else {
		anchor = e.doc.ClampPosition(anchor)
		head = e.doc.ClampPositionForward(head)
	}
	e.sel = NewSelection(anchor, head)
	e.hasSel = true
}

// ClearSelection drops the selection without moving the cursor.
func (e *Editor) ClearSelection() {
	e.hasSel = false
}

// ExtendSelectionTo moves the active end of the selection to p. An existing
// anchor is kept; otherwise the selection is anchored at the cursor. The
// cursor follows p.
func (e *Editor) ExtendSelectionTo(p document.Position) {
	p = e.doc.ClampPosition(p)
	anchor := e.cursor
	if e.hasSel {
		anchor = e.sel.Anchor
	}
	e.sel = NewSelection(anchor, p)
	e.hasSel = true
	e.cursor = p
	e.normalizeCursor()
}

// SelectAll selects the whole document and puts the cursor at its end.
func (e *Editor) SelectAll() {
	n := e.doc.BlockCount()
	if n == 0 {
		e.hasSel = false
		return
	}
	last, _ := e.doc.Block(n - 1)
	end := document.Pos(n-1, last.TextLen())
	e.sel = NewSelection(document.Pos(0, 0), end)
	e.hasSel = true
	e.cursor = end
	e.normalizeCursor()
}

// SelectWordAt selects the word under p. On a separator the separator
// itself is selected. Nothing happens in an empty block or at its end.
func (e *Editor) SelectWordAt(p document.Position) {
	p = e.doc.ClampPosition(p)
	blk, ok := e.doc.Block(p.Block)
	if !ok {
		return
	}
	text := blk.PlainText()
	if text == "" || p.Offset >= len(text) {
		return
	}

	start, end := p.Offset, p.Offset
	if r, size := firstRune(text[start:]); isWordSeparator(r) {
		e.selectSpan(p.Block, start, start+size)
		return
	}
	for start > 0 {
		r, size := lastRune(text[:start])
		if isWordSeparator(r) {
			break
		}
		start -= size
	}
	for end < len(text) {
		r, size := firstRune(text[end:])
		if isWordSeparator(r) {
			break
		}
		end += size
	}
	e.selectSpan(p.Block, start, end)
}

// selectSpan selects [start, end) in one block and puts the cursor at the
// end.
func (e *Editor) selectSpan(block, start, end int) {
	endPos := document.Pos(block, end)
	e.SetSelection(document.Pos(block, start), endPos)
	e.cursor = e.doc.ClampPositionForward(endPos)
}

// SelectLineAt selects the whole block under p.
func (e *Editor) SelectLineAt(p document.Position) {
	p = e.doc.ClampPosition(p)
	blk, ok := e.doc.Block(p.Block)
	if !ok {
		return
	}
	e.selectSpan(p.Block, 0, blk.TextLen())
}

// normalizeCursor clamps the cursor into the document.
func (e *Editor) normalizeCursor() {
	e.cursor = e.doc.ClampPosition(e.cursor)
}

// currentBlock returns the block under the cursor.
func (e *Editor) currentBlock() (*document.Block, error) {
	blk, ok := e.doc.Block(e.cursor.Block)
	if !ok {
		return nil, blockIndexError(e.cursor.Block, e.doc.BlockCount())
	}
	return blk, nil
}

// notifyBlockType reports the type of the block under the cursor to the
// observer. An empty document reports a paragraph.
func (e *Editor) notifyBlockType() {
	if e.observer == nil {
		return
	}
	t := document.ParagraphType()
	if blk, ok := e.doc.Block(e.cursor.Block); ok {
		t = blk.Type
	}
	e.observer(t)
}
