package editor

import "github.com/dshills/richdoc/internal/engine/document"

// leftPosition is one grapheme left of p, or the end of the previous block.
func (e *Editor) leftPosition(p document.Position) document.Position {
	p = e.doc.ClampPosition(p)
	if p.Offset > 0 {
		return e.doc.PrevGraphemePosition(p)
	}
	if p.Block > 0 {
		prev, _ := e.doc.Block(p.Block - 1)
		return document.Pos(p.Block-1, prev.TextLen())
	}
	return p
}

// rightPosition is one grapheme right of p, or the start of the next block.
func (e *Editor) rightPosition(p document.Position) document.Position {
	p = e.doc.ClampPosition(p)
	blk, ok := e.doc.Block(p.Block)
	if !ok {
		return p
	}
	if p.Offset < blk.TextLen() {
		return e.doc.NextGraphemePosition(p)
	}
	if p.Block+1 < e.doc.BlockCount() {
		return document.Pos(p.Block+1, 0)
	}
	return p
}

// upPosition keeps the byte offset, bounded by the previous block's length.
func (e *Editor) upPosition(p document.Position) document.Position {
	if p.Block <= 0 {
		return e.doc.ClampPosition(p)
	}
	return e.doc.ClampPosition(document.Pos(p.Block-1, p.Offset))
}

// downPosition keeps the byte offset, bounded by the next block's length.
func (e *Editor) downPosition(p document.Position) document.Position {
	if p.Block+1 >= e.doc.BlockCount() {
		return e.doc.ClampPosition(p)
	}
	return e.doc.ClampPosition(document.Pos(p.Block+1, p.Offset))
}

func (e *Editor) lineStartPosition(p document.Position) document.Position {
	return e.doc.ClampPosition(document.Pos(p.Block, 0))
}

func (e *Editor) lineEndPosition(p document.Position) document.Position {
	p = e.doc.ClampPosition(p)
	if blk, ok := e.doc.Block(p.Block); ok {
		p.Offset = blk.TextLen()
	}
	return p
}

func (e *Editor) documentEndPosition() document.Position {
	n := e.doc.BlockCount()
	if n == 0 {
		return document.Position{}
	}
	last, _ := e.doc.Block(n - 1)
	return document.Pos(n-1, last.TextLen())
}

// moveTo places the cursor and drops the selection.
func (e *Editor) moveTo(p document.Position) {
	e.cursor = e.doc.ClampPosition(p)
	e.hasSel = false
}

// extendTo extends the selection to p unless the cursor is already there.
func (e *Editor) extendTo(p document.Position) {
	if p != e.cursor {
		e.ExtendSelectionTo(p)
	}
}

// MoveLeft moves the cursor one grapheme left, wrapping to the end of the
// previous block.
func (e *Editor) MoveLeft() { e.moveTo(e.leftPosition(e.cursor)) }

// MoveRight moves the cursor one grapheme right, wrapping to the start of
// the next block.
func (e *Editor) MoveRight() { e.moveTo(e.rightPosition(e.cursor)) }

// MoveUp moves the cursor to the previous block.
func (e *Editor) MoveUp() { e.moveTo(e.upPosition(e.cursor)) }

// MoveDown moves the cursor to the next block.
func (e *Editor) MoveDown() { e.moveTo(e.downPosition(e.cursor)) }

// MoveLineStart moves the cursor to the start of its block.
func (e *Editor) MoveLineStart() { e.moveTo(e.lineStartPosition(e.cursor)) }

// MoveLineEnd moves the cursor to the end of its block.
func (e *Editor) MoveLineEnd() { e.moveTo(e.lineEndPosition(e.cursor)) }

// MoveWordLeft moves the cursor one word left.
func (e *Editor) MoveWordLeft() { e.moveTo(e.WordLeftPosition(e.cursor)) }

// MoveWordRight moves the cursor one word right.
func (e *Editor) MoveWordRight() { e.moveTo(e.WordRightPosition(e.cursor)) }

// MoveDocumentStart moves the cursor to (0, 0).
func (e *Editor) MoveDocumentStart() { e.moveTo(document.Position{}) }

// MoveDocumentEnd moves the cursor to the end of the last block.
func (e *Editor) MoveDocumentEnd() { e.moveTo(e.documentEndPosition()) }

// MoveLeftExtend is MoveLeft extending the selection.
func (e *Editor) MoveLeftExtend() { e.extendTo(e.leftPosition(e.cursor)) }

// MoveRightExtend is MoveRight extending the selection.
func (e *Editor) MoveRightExtend() { e.extendTo(e.rightPosition(e.cursor)) }

// MoveUpExtend is MoveUp extending the selection.
func (e *Editor) MoveUpExtend() { e.extendTo(e.upPosition(e.cursor)) }

// MoveDownExtend is MoveDown extending the selection.
func (e *Editor) MoveDownExtend() { e.extendTo(e.downPosition(e.cursor)) }

// MoveLineStartExtend is MoveLineStart extending the selection.
func (e *Editor) MoveLineStartExtend() { e.extendTo(e.lineStartPosition(e.cursor)) }

// MoveLineEndExtend is MoveLineEnd extending the selection.
func (e *Editor) MoveLineEndExtend() { e.extendTo(e.lineEndPosition(e.cursor)) }

// MoveWordLeftExtend is MoveWordLeft extending the selection.
func (e *Editor) MoveWordLeftExtend() { e.extendTo(e.WordLeftPosition(e.cursor)) }

// MoveWordRightExtend is MoveWordRight extending the selection.
func (e *Editor) MoveWordRightExtend() { e.extendTo(e.WordRightPosition(e.cursor)) }

// MoveDocumentStartExtend is MoveDocumentStart extending the selection.
func (e *Editor) MoveDocumentStartExtend() { e.extendTo(document.Position{}) }

// MoveDocumentEndExtend is MoveDocumentEnd extending the selection.
func (e *Editor) MoveDocumentEndExtend() { e.extendTo(e.documentEndPosition()) }
