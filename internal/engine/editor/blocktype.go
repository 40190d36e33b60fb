package editor

import (
	"slices"

	"github.com/dshills/richdoc/internal/engine/document"
)

func isOrdered(t document.BlockType) bool { return t.IsListItem() && t.Ordered }

func isPlainBullet(t document.BlockType) bool { return t.IsBulletList() }

func isChecklist(t document.BlockType) bool {
	return t.IsListItem() && !t.Ordered && t.Checkbox != document.NoCheckbox
}

func isBulletRun(t document.BlockType) bool { return t.IsListItem() && !t.Ordered }

// runBounds returns the contiguous run of blocks around index whose types
// satisfy match.
func (e *Editor) runBounds(index int, match func(document.BlockType) bool) (start, end int) {
	blocks := e.doc.Blocks()
	start, end = index, index
	for start > 0 && match(blocks[start-1].Type) {
		start--
	}
	for end+1 < len(blocks) && match(blocks[end+1].Type) {
		end++
	}
	return start, end
}

// setTypes assigns t to blocks [start, end].
func (e *Editor) setTypes(start, end int, t document.BlockType) {
	blocks := e.doc.Blocks()
	for i := start; i <= end; i++ {
		blocks[i].Type = t
	}
}

// renumberOrderedFrom numbers the ordered run starting at index n, n+1, ...
// and stops at the first block that is not an ordered item.
func (e *Editor) renumberOrderedFrom(index int, n uint64) {
	blocks := e.doc.Blocks()
	for i := index; i >= 0 && i < len(blocks) && isOrdered(blocks[i].Type); i++ {
		blocks[i].Type = document.OrderedType(n)
		n++
	}
}

// orderedNumberAt returns the display number of the ordered item at index,
// deriving it from the start of its run when the item is unnumbered.
func (e *Editor) orderedNumberAt(index int) uint64 {
	blocks := e.doc.Blocks()
	if t := blocks[index].Type; t.Number != 0 {
		return t.Number
	}
	start, _ := e.runBounds(index, isOrdered)
	return blocks[start].Type.ListNumber() + uint64(index-start)
}

// selectionBlockIndices returns the blocks covered by a non-empty
// selection. A last block touched only at offset 0 is excluded unless it is
// empty.
func (e *Editor) selectionBlockIndices() []int {
	n := e.doc.BlockCount()
	if n == 0 || !e.hasSel || e.sel.IsEmpty() {
		return nil
	}
	start, end := e.sel.Range()
	start = e.doc.ClampPosition(start)
	end = e.doc.ClampPositionForward(end)

	indices := make([]int, 0, end.Block-start.Block+1)
	for i := start.Block; i <= end.Block; i++ {
		indices = append(indices, i)
	}
	if start.Block != end.Block && end.Offset == 0 {
		if blk, _ := e.doc.Block(end.Block); !blk.IsEmpty() {
			indices = indices[:len(indices)-1]
		}
	}
	return indices
}

// orderedStartNumber picks the first number for an ordered conversion of
// the given blocks: the first block's own number when it is already
// ordered, the continuation of an ordered run right above it, or 1.
func (e *Editor) orderedStartNumber(indices []int) uint64 {
	if len(indices) == 0 {
		return 1
	}
	blocks := e.doc.Blocks()
	first := indices[0]
	if t := blocks[first].Type; isOrdered(t) {
		return t.ListNumber()
	}
	if first == 0 || !isOrdered(blocks[first-1].Type) {
		return 1
	}
	return e.orderedNumberAt(first-1) + 1
}

func allTypes(blocks []document.Block, indices []int, match func(document.BlockType) bool) bool {
	for _, i := range indices {
		if !match(blocks[i].Type) {
			return false
		}
	}
	return true
}

// ToggleHeading cycles the current block through paragraph, H1, H2, H3 and
// back to paragraph. Lists, quotes and code blocks become H1.
func (e *Editor) ToggleHeading() error {
	blk, err := e.currentBlock()
	if err != nil {
		return err
	}
	switch t := blk.Type; {
	case t.IsParagraph():
		blk.Type = document.HeadingType(1)
	case t.IsHeading() && t.Level >= 3:
		if t.Level == 3 {
			blk.Type = document.ParagraphType()
		} else {
			blk.Type = document.HeadingType(t.Level%3 + 1)
		}
	case t.IsHeading():
		blk.Type = document.HeadingType(t.Level + 1)
	default:
		blk.Type = document.HeadingType(1)
	}
	e.notifyBlockType()
	return nil
}

// SetBlockType applies t to every block covered by the selection, or to the
// current block. An ordered type numbers the targets consecutively from
// t's number and renumbers the ordered run that follows them.
func (e *Editor) SetBlockType(t document.BlockType) error {
	n := e.doc.BlockCount()
	if n == 0 {
		return ErrEmptyDocument
	}
	targets := e.selectionBlockIndices()
	if len(targets) == 0 {
		if _, err := e.currentBlock(); err != nil {
			return err
		}
		targets = []int{e.cursor.Block}
	}

	blocks := e.doc.Blocks()
	ordered := isOrdered(t)
	next := t.ListNumber()
	for _, i := range targets {
		nt := t
		if ordered {
			nt.Number = next
			next++
		} else if t.IsListItem() {
			nt.Number = 0
		}
		blocks[i].Type = nt
	}
	if ordered {
		e.renumberOrderedFrom(targets[len(targets)-1]+1, next)
	}
	e.logger.Debug("set %s on %d blocks", t, len(targets))
	e.notifyBlockType()
	return nil
}

// ToggleList toggles bullet items. With a selection every covered block
// becomes a bullet, or a paragraph when all already are. Without one, an
// ordered or checklist run around the cursor is converted to bullets and
// any other block toggles between bullet and paragraph.
func (e *Editor) ToggleList() error {
	if e.doc.IsEmpty() {
		return ErrEmptyDocument
	}
	if targets := e.selectionBlockIndices(); len(targets) > 0 {
		if allTypes(e.doc.Blocks(), targets, isPlainBullet) {
			return e.SetBlockType(document.ParagraphType())
		}
		return e.SetBlockType(document.BulletType())
	}

	blk, err := e.currentBlock()
	if err != nil {
		return err
	}
	idx := e.cursor.Block
	switch t := blk.Type; {
	case isOrdered(t):
		start, end := e.runBounds(idx, isOrdered)
		e.setTypes(start, end, document.BulletType())
	case isChecklist(t):
		start, end := e.runBounds(idx, isChecklist)
		e.setTypes(start, end, document.BulletType())
	case t.IsListItem():
		blk.Type = document.ParagraphType()
	default:
		blk.Type = document.BulletType()
	}
	e.notifyBlockType()
	return nil
}

// ToggleChecklist toggles checklist items. With a selection every covered
// block becomes an unchecked item, or a plain bullet when all already are
// checklist items. Without one, an ordered or bullet run around the cursor
// is converted to checklist items, a checklist item returns to a paragraph
// and any other block becomes an unchecked item.
func (e *Editor) ToggleChecklist() error {
	if e.doc.IsEmpty() {
		return ErrEmptyDocument
	}
	if targets := e.selectionBlockIndices(); len(targets) > 0 {
		if allTypes(e.doc.Blocks(), targets, isChecklist) {
			return e.SetBlockType(document.BulletType())
		}
		return e.SetBlockType(document.ChecklistType(false))
	}

	blk, err := e.currentBlock()
	if err != nil {
		return err
	}
	idx := e.cursor.Block
	switch t := blk.Type; {
	case isOrdered(t):
		start, end := e.runBounds(idx, isOrdered)
		e.setTypes(start, end, document.ChecklistType(false))
	case isChecklist(t):
		blk.Type = document.ParagraphType()
	case isBulletRun(t):
		start, end := e.runBounds(idx, isPlainBullet)
		e.setTypes(start, end, document.ChecklistType(false))
	default:
		blk.Type = document.ChecklistType(false)
	}
	e.notifyBlockType()
	return nil
}

// ToggleCheckmarkAt flips the checkbox of the checklist item at index. It
// reports false, without error, when the block has no checkbox.
func (e *Editor) ToggleCheckmarkAt(index int) (bool, error) {
	blk, ok := e.doc.Block(index)
	if !ok {
		return false, blockIndexError(index, e.doc.BlockCount())
	}
	switch blk.Type.Checkbox {
	case document.Checked:
		blk.Type.Checkbox = document.Unchecked
	case document.Unchecked:
		blk.Type.Checkbox = document.Checked
	default:
		return false, nil
	}
	return true, nil
}

// ToggleCurrentCheckmark flips the checkbox of the block under the cursor.
func (e *Editor) ToggleCurrentCheckmark() (bool, error) {
	return e.ToggleCheckmarkAt(e.cursor.Block)
}

// ToggleOrderedList toggles ordered items.
//
// With a selection every covered block becomes an ordered item numbered to
// continue any ordered run above, or a paragraph when all already are
// ordered. Without one: an ordered item becomes a paragraph and the rest of
// its run restarts at 1; a bullet run is numbered from 1; any other block
// becomes an item continuing the run above it, and the run below is
// renumbered to follow.
func (e *Editor) ToggleOrderedList() error {
	n := e.doc.BlockCount()
	if n == 0 {
		return ErrEmptyDocument
	}
	if targets := e.selectionBlockIndices(); len(targets) > 0 {
		if allTypes(e.doc.Blocks(), targets, isOrdered) {
			if err := e.SetBlockType(document.ParagraphType()); err != nil {
				return err
			}
			e.renumberOrderedFrom(targets[len(targets)-1]+1, 1)
			return nil
		}
		return e.SetBlockType(document.OrderedType(e.orderedStartNumber(targets)))
	}

	blk, err := e.currentBlock()
	if err != nil {
		return err
	}
	idx := e.cursor.Block
	switch t := blk.Type; {
	case isOrdered(t):
		blk.Type = document.ParagraphType()
		e.renumberOrderedFrom(idx+1, 1)
	case t.IsListItem():
		start, end := e.runBounds(idx, isBulletRun)
		blocks := e.doc.Blocks()
		for i := start; i <= end; i++ {
			blocks[i].Type = document.OrderedType(uint64(i-start) + 1)
		}
	default:
		number := uint64(1)
		if idx > 0 && isOrdered(e.doc.Blocks()[idx-1].Type) {
			number = e.orderedNumberAt(idx-1) + 1
		}
		blk.Type = document.OrderedType(number)
		e.renumberOrderedFrom(idx+1, number+1)
	}
	e.notifyBlockType()
	return nil
}

// ToggleQuote toggles the current block between quote and paragraph.
func (e *Editor) ToggleQuote() error {
	return e.toggleKind(document.KindBlockQuote, document.BlockQuoteType())
}

// ToggleCodeBlock toggles the current block between code block and
// paragraph.
func (e *Editor) ToggleCodeBlock() error {
	return e.toggleKind(document.KindCodeBlock, document.CodeBlockType(""))
}

func (e *Editor) toggleKind(kind document.BlockKind, on document.BlockType) error {
	blk, err := e.currentBlock()
	if err != nil {
		return err
	}
	if blk.Type.Kind == kind {
		blk.Type = document.ParagraphType()
	} else {
		blk.Type = on
	}
	e.notifyBlockType()
	return nil
}

// BlockTypes returns the distinct types of the blocks covered by the
// selection, or the type of the current block.
func (e *Editor) BlockTypes() []document.BlockType {
	targets := e.selectionBlockIndices()
	if len(targets) == 0 {
		if blk, ok := e.doc.Block(e.cursor.Block); ok {
			return []document.BlockType{blk.Type}
		}
		return nil
	}
	blocks := e.doc.Blocks()
	var out []document.BlockType
	for _, i := range targets {
		if !slices.Contains(out, blocks[i].Type) {
			out = append(out, blocks[i].Type)
		}
	}
	return out
}
