package editor

import "github.com/dshills/richdoc/internal/engine/document"

// DeleteSelection deletes the selected range and leaves the cursor at its
// start. It is a no-op without a selection.
func (e *Editor) DeleteSelection() error {
	if !e.hasSel {
		return nil
	}
	start, end := e.sel.Range()
	e.doc.DeleteRange(start, end)
	e.cursor = start
	e.hasSel = false
	e.normalizeCursor()
	return nil
}

// DeleteBackward deletes the grapheme before the cursor. At the start of a
// block the block is merged into the previous one and the cursor lands at
// the previous block's former end.
func (e *Editor) DeleteBackward() error {
	if e.doc.IsEmpty() {
		return ErrEmptyDocument
	}
	if e.hasSel {
		return e.DeleteSelection()
	}
	e.normalizeCursor()
	idx, offset := e.cursor.Block, e.cursor.Offset

	if offset > 0 {
		prev := e.doc.PrevGraphemePosition(e.cursor)
		blk, _ := e.doc.Block(idx)
		blk.DeleteTextRange(prev.Offset, offset)
		e.cursor = prev
		e.normalizeCursor()
		return nil
	}
	if idx == 0 {
		return nil
	}

	prevBlk, _ := e.doc.Block(idx - 1)
	prevType := prevBlk.Type
	prevLen := prevBlk.TextLen()
	cur, _ := e.doc.RemoveBlock(idx)
	e.mergeInto(idx-1, cur)
	e.cursor = document.Pos(idx-1, prevLen)
	e.renumberAfterMerge(prevType, cur.Type, idx)
	e.logger.Debug("merged block %d into %d", idx, idx-1)
	e.normalizeCursor()
	return nil
}

// DeleteForward deletes the grapheme after the cursor. At the end of a
// block the next block is merged into the current one.
func (e *Editor) DeleteForward() error {
	if e.doc.IsEmpty() {
		return ErrEmptyDocument
	}
	if e.hasSel {
		return e.DeleteSelection()
	}
	blk, err := e.currentBlock()
	if err != nil {
		return err
	}
	e.normalizeCursor()
	idx, offset := e.cursor.Block, e.cursor.Offset

	if offset < blk.TextLen() {
		next := e.doc.NextGraphemePosition(e.cursor)
		blk.DeleteTextRange(offset, next.Offset)
		e.normalizeCursor()
		return nil
	}
	if idx+1 >= e.doc.BlockCount() {
		return nil
	}

	curType := blk.Type
	next, _ := e.doc.RemoveBlock(idx + 1)
	e.mergeInto(idx, next)
	e.renumberAfterMerge(curType, next.Type, idx+1)
	e.logger.Debug("merged block %d into %d", idx+1, idx)
	e.normalizeCursor()
	return nil
}

// mergeInto appends the content of src to the block at index.
func (e *Editor) mergeInto(index int, src document.Block) {
	dst, _ := e.doc.Block(index)
	dst.Content = append(dst.Content, src.Content...)
	dst.Normalize()
}

// renumberAfterMerge repairs ordered numbering after a block of type lower
// was merged into a block of type upper. next is the index of the first
// block after the merged one.
func (e *Editor) renumberAfterMerge(upper, lower document.BlockType, next int) {
	upperOrdered := upper.IsListItem() && upper.Ordered
	lowerOrdered := lower.IsListItem() && lower.Ordered
	switch {
	case upperOrdered && (lowerOrdered || lower.IsParagraph()):
		e.renumberOrderedFrom(next, upper.ListNumber()+1)
	case upper.IsParagraph() && lowerOrdered:
		e.renumberOrderedFrom(next, 1)
	}
}

// DeleteWordBackward deletes from the cursor back to the previous word
// boundary.
func (e *Editor) DeleteWordBackward() error {
	if e.doc.IsEmpty() {
		return ErrEmptyDocument
	}
	if e.hasSel {
		return e.DeleteSelection()
	}
	from := e.cursor
	to := e.WordLeftPosition(from)
	if to == from {
		return nil
	}
	e.doc.DeleteRange(to, from)
	e.cursor = to
	e.normalizeCursor()
	return nil
}

// DeleteWordForward deletes from the cursor to the next word boundary. The
// cursor stays put.
func (e *Editor) DeleteWordForward() error {
	if e.doc.IsEmpty() {
		return ErrEmptyDocument
	}
	if e.hasSel {
		return e.DeleteSelection()
	}
	from := e.cursor
	to := e.WordRightPosition(from)
	if to == from {
		return nil
	}
	e.doc.DeleteRange(from, to)
	e.normalizeCursor()
	return nil
}

// DeleteBackwardBytes deletes whole graphemes before the cursor until at
// least n bytes are removed. Block boundaries are crossed without counting
// toward n, so the previous block is merged and its text consumed. It
// reports whether anything was removed.
func (e *Editor) DeleteBackwardBytes(n int) (bool, error) {
	if n <= 0 {
		return false, nil
	}
	if e.doc.IsEmpty() {
		return false, ErrEmptyDocument
	}
	e.normalizeCursor()
	origin := e.cursor
	start := origin

	for n > 0 {
		if start.Offset == 0 {
			if start.Block == 0 {
				break
			}
			prev, _ := e.doc.Block(start.Block - 1)
			start = document.Pos(start.Block-1, prev.TextLen())
			continue
		}
		prev := e.doc.PrevGraphemePosition(start)
		removed := start.Offset - prev.Offset
		if removed == 0 {
			break
		}
		start = prev
		n -= removed
	}

	if start == origin {
		return false, nil
	}
	e.SetSelection(start, origin)
	if err := e.DeleteSelection(); err != nil {
		return false, err
	}
	return true, nil
}
