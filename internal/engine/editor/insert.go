package editor

import (
	"fmt"
	"slices"

	"github.com/dshills/richdoc/internal/engine/document"
)

// prepare runs before every insertion into an existing block: it validates
// the cursor and deletes an active selection.
func (e *Editor) prepare() (*document.Block, error) {
	if _, err := e.currentBlock(); err != nil {
		return nil, err
	}
	if e.hasSel {
		if err := e.DeleteSelection(); err != nil {
			return nil, err
		}
	}
	return e.currentBlock()
}

// InsertText inserts text at the cursor, replacing any selection, and
// advances the cursor past it. In an empty document a paragraph holding the
// text is created.
func (e *Editor) InsertText(text string) error {
	if e.doc.IsEmpty() {
		e.doc.AddBlock(document.NewParagraph(text))
		e.cursor = document.Pos(0, len(text))
		e.hasSel = false
		return nil
	}
	blk, err := e.prepare()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	blk.Content = insertTextAt(blk.Content, e.cursor.Offset, text)
	e.cursor.Offset += len(text)
	return nil
}

// findContentAt locates the item covering a flattened offset. Ties resolve
// to the item on the left, so an offset at a run boundary addresses the end
// of the earlier run. Past the end it returns (len(content), 0).
func findContentAt(content []document.Inline, offset int) (index, local int) {
	pos := 0
	for i, item := range content {
		n := item.TextLen()
		if pos+n >= offset {
			return i, offset - pos
		}
		pos += n
	}
	return len(content), 0
}

// insertTextAt inserts text into content at offset. Text typed at the very
// start or end of a link lands outside it; text typed strictly inside a
// link joins the link's content. Next to a break, text joins the adjacent
// run where there is one.
func insertTextAt(content []document.Inline, offset int, text string) []document.Inline {
	idx, local := findContentAt(content, offset)
	if idx >= len(content) {
		return append(content, document.PlainRun(text))
	}

	switch item := content[idx].(type) {
	case document.TextRun:
		content[idx] = item.Insert(local, text)
		return content
	case document.Hyperlink:
		switch {
		case local == 0:
			return insertBefore(content, idx, text)
		case local >= item.TextLen():
			return insertAfter(content, idx, text)
		default:
			item.Content = insertIntoLink(item.Content, local, text)
			content[idx] = item
			return content
		}
	default:
		if local == 0 {
			return slices.Insert(content, idx, document.Inline(document.PlainRun(text)))
		}
		return insertAfter(content, idx, text)
	}
}

// insertBefore appends text to the run preceding idx, or inserts a new run.
func insertBefore(content []document.Inline, idx int, text string) []document.Inline {
	if idx > 0 {
		if prev, ok := content[idx-1].(document.TextRun); ok {
			content[idx-1] = prev.Insert(prev.Len(), text)
			return content
		}
	}
	return slices.Insert(content, idx, document.Inline(document.PlainRun(text)))
}

// insertAfter prepends text to the run following idx, or inserts a new run.
func insertAfter(content []document.Inline, idx int, text string) []document.Inline {
	if idx+1 < len(content) {
		if next, ok := content[idx+1].(document.TextRun); ok {
			content[idx+1] = next.Insert(0, text)
			return content
		}
	}
	return slices.Insert(content, idx+1, document.Inline(document.PlainRun(text)))
}

func insertIntoLink(content []document.Inline, offset int, text string) []document.Inline {
	idx, local := findContentAt(content, offset)
	if idx >= len(content) {
		return append(content, document.PlainRun(text))
	}
	if run, ok := content[idx].(document.TextRun); ok {
		content[idx] = run.Insert(local, text)
		return content
	}
	return slices.Insert(content, idx, document.Inline(document.PlainRun(text)))
}

// InsertNewline splits the current block at the cursor.
//
// In a list item the new block continues the list: an ordered item gets the
// next number and the rest of the run is renumbered, and a checklist item
// gets an unchecked box. An empty list item, or one split at offset 0, is
// turned into a paragraph instead, leaving the list. Any other block splits
// into a new paragraph. The cursor moves to the start of the new block.
func (e *Editor) InsertNewline() error {
	if e.doc.IsEmpty() {
		e.doc.AddBlock(document.NewBlock(document.ParagraphType()))
		e.doc.AddBlock(document.NewBlock(document.ParagraphType()))
		e.cursor = document.Pos(1, 0)
		e.hasSel = false
		e.notifyBlockType()
		return nil
	}
	blk, err := e.prepare()
	if err != nil {
		return err
	}

	idx := e.cursor.Block
	t := blk.Type
	if t.IsListItem() {
		if blk.IsEmpty() || e.cursor.Offset == 0 {
			blk.Type = document.ParagraphType()
			e.cursor.Offset = 0
			if t.Ordered {
				e.renumberOrderedFrom(idx+1, 1)
			}
			e.logger.Debug("list exit at block %d", idx)
			e.notifyBlockType()
			return nil
		}

		right := blk.SplitContentAt(e.cursor.Offset)
		next := document.BlockType{Kind: document.KindListItem, Ordered: t.Ordered}
		if t.Checkbox != document.NoCheckbox {
			next.Checkbox = document.Unchecked
		}
		var leftNumber uint64
		if t.Ordered {
			leftNumber = e.orderedNumberAt(idx)
			next.Number = leftNumber + 1
		}
		nb := document.NewBlock(next)
		nb.Content = right
		e.doc.InsertBlock(idx+1, nb)
		if t.Ordered {
			e.renumberOrderedFrom(idx+1, leftNumber+1)
		}
	} else {
		right := blk.SplitContentAt(e.cursor.Offset)
		nb := document.NewBlock(document.ParagraphType())
		nb.Content = right
		e.doc.InsertBlock(idx+1, nb)
	}

	e.cursor = document.Pos(idx+1, 0)
	e.notifyBlockType()
	return nil
}

// InsertHardBreak inserts a forced line break at the cursor, within the
// current block.
func (e *Editor) InsertHardBreak() error {
	return e.InsertInline(document.HardBreak{})
}

// InsertInline inserts item at the cursor, replacing any selection, and
// advances the cursor by its length.
func (e *Editor) InsertInline(item document.Inline) error {
	if item == nil {
		return fmt.Errorf("insert inline: %w", ErrInvalidPosition)
	}
	if e.doc.IsEmpty() {
		e.doc.AddBlock(document.NewBlock(document.ParagraphType()).WithInline(item))
		e.cursor = document.Pos(0, item.TextLen())
		e.hasSel = false
		return nil
	}
	blk, err := e.prepare()
	if err != nil {
		return err
	}
	offset := e.cursor.Offset
	blk.Content = document.InsertInlines(blk.Content, offset, item)
	e.cursor.Offset = offset + item.TextLen()
	e.hasSel = false
	return nil
}

// InsertLink inserts a link at the cursor. Empty text shows the
// destination.
func (e *Editor) InsertLink(dest, text string) error {
	if text == "" {
		text = dest
	}
	return e.InsertInline(document.NewHyperlink(dest, text))
}

// ReplaceSelectionWithLink replaces the selection with a link. With empty
// text the selected text becomes the link text.
func (e *Editor) ReplaceSelectionWithLink(dest, text string) error {
	if text == "" {
		text = e.SelectionText()
	}
	if err := e.DeleteSelection(); err != nil {
		return err
	}
	return e.InsertLink(dest, text)
}

// linkAt returns the block and validates that inline index addresses a link.
func (e *Editor) linkAt(blockIndex, inlineIndex int) (*document.Block, document.Hyperlink, error) {
	blk, ok := e.doc.Block(blockIndex)
	if !ok {
		return nil, document.Hyperlink{}, blockIndexError(blockIndex, e.doc.BlockCount())
	}
	if inlineIndex < 0 || inlineIndex >= len(blk.Content) {
		return nil, document.Hyperlink{}, fmt.Errorf("inline %d in block %d: %w", inlineIndex, blockIndex, ErrInvalidPosition)
	}
	link, ok := blk.Content[inlineIndex].(document.Hyperlink)
	if !ok {
		return nil, document.Hyperlink{}, fmt.Errorf("inline %d in block %d is not a link: %w", inlineIndex, blockIndex, ErrInvalidPosition)
	}
	return blk, link, nil
}

// EditLinkAt replaces the destination and text of the link at the given
// block and inline index.
func (e *Editor) EditLinkAt(blockIndex, inlineIndex int, dest, text string) error {
	blk, link, err := e.linkAt(blockIndex, inlineIndex)
	if err != nil {
		return err
	}
	link.Link.Destination = dest
	link.Content = []document.Inline{document.PlainRun(text)}
	blk.Content[inlineIndex] = link
	e.normalizeCursor()
	return nil
}

// RemoveLinkAt unwraps the link at the given block and inline index, keeping
// its content in place.
func (e *Editor) RemoveLinkAt(blockIndex, inlineIndex int) error {
	blk, link, err := e.linkAt(blockIndex, inlineIndex)
	if err != nil {
		return err
	}
	content := slices.Delete(blk.Content, inlineIndex, inlineIndex+1)
	blk.Content = slices.Insert(content, inlineIndex, link.Content...)
	blk.Normalize()
	return nil
}
