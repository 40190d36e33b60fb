package document

import (
	"slices"
	"strings"
)

// ParagraphSeparator joins blocks in flattened document text and splits
// pasted text into paragraphs.
const ParagraphSeparator = "\n\n"

// Document is an ordered list of blocks with a per-document id counter.
type Document struct {
	blocks []Block
	nextID ElementID
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{nextID: 1}
}

// NewDocumentWithParagraph creates a document holding one paragraph.
func NewDocumentWithParagraph(text string) *Document {
	d := NewDocument()
	d.AddBlock(NewParagraph(text))
	return d
}

// NewDocumentFromBlocks creates a document from blocks, assigning ids to
// blocks that have none.
func NewDocumentFromBlocks(blocks ...Block) *Document {
	d := NewDocument()
	for _, b := range blocks {
		d.AddBlock(b)
	}
	return d
}

// assignID gives b a fresh id if it has none and keeps the counter ahead of
// caller supplied ids.
func (d *Document) assignID(b *Block) {
	if d.nextID == 0 {
		d.nextID = 1
	}
	if b.ID == 0 {
		b.ID = d.nextID
		d.nextID++
		return
	}
	if b.ID >= d.nextID {
		d.nextID = b.ID + 1
	}
}

// AddBlock appends b and returns its id.
func (d *Document) AddBlock(b Block) ElementID {
	d.assignID(&b)
	d.blocks = append(d.blocks, b)
	return b.ID
}

// InsertBlock inserts b at index, clamped to [0, BlockCount()], and returns
// its id.
func (d *Document) InsertBlock(index int, b Block) ElementID {
	d.assignID(&b)
	index = min(max(index, 0), len(d.blocks))
	d.blocks = slices.Insert(d.blocks, index, b)
	return b.ID
}

// RemoveBlock removes and returns the block at index.
func (d *Document) RemoveBlock(index int) (Block, bool) {
	if index < 0 || index >= len(d.blocks) {
		return Block{}, false
	}
	b := d.blocks[index]
	d.blocks = slices.Delete(d.blocks, index, index+1)
	return b, true
}

// Blocks returns the document's blocks. The slice is owned by the document;
// callers must not retain it across edits.
func (d *Document) Blocks() []Block { return d.blocks }

// Block returns a pointer to the block at index.
func (d *Document) Block(index int) (*Block, bool) {
	if index < 0 || index >= len(d.blocks) {
		return nil, false
	}
	return &d.blocks[index], true
}

// BlockCount returns the number of blocks.
func (d *Document) BlockCount() int { return len(d.blocks) }

// IsEmpty reports whether the document has no blocks.
func (d *Document) IsEmpty() bool { return len(d.blocks) == 0 }

// FindBlock returns the block with the given id.
func (d *Document) FindBlock(id ElementID) (*Block, bool) {
	i := d.FindBlockIndex(id)
	if i < 0 {
		return nil, false
	}
	return &d.blocks[i], true
}

// FindBlockIndex returns the index of the block with the given id, or -1.
func (d *Document) FindBlockIndex(id ElementID) int {
	return slices.IndexFunc(d.blocks, func(b Block) bool { return b.ID == id })
}

// PlainText returns every block's flattened text joined by a blank line.
func (d *Document) PlainText() string {
	parts := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		parts[i] = b.PlainText()
	}
	return strings.Join(parts, ParagraphSeparator)
}

// String renders the document for debugging, one block per line.
func (d *Document) String() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.String())
	}
	return sb.String()
}

// Clone returns a deep copy of d, ids included.
func (d *Document) Clone() *Document {
	c := &Document{nextID: d.nextID, blocks: make([]Block, len(d.blocks))}
	for i, b := range d.blocks {
		c.blocks[i] = b.Clone()
	}
	return c
}

// ClampPosition clamps p into the document, snapping the offset to the
// grapheme boundary at or before it. An empty document yields (0, 0).
func (d *Document) ClampPosition(p Position) Position {
	if len(d.blocks) == 0 {
		return Position{}
	}
	bi := min(max(p.Block, 0), len(d.blocks)-1)
	return Position{Block: bi, Offset: GraphemeFloor(d.blocks[bi].PlainText(), p.Offset)}
}

// ClampPositionForward is ClampPosition snapping to the boundary at or after
// the offset.
func (d *Document) ClampPositionForward(p Position) Position {
	if len(d.blocks) == 0 {
		return Position{}
	}
	bi := min(max(p.Block, 0), len(d.blocks)-1)
	return Position{Block: bi, Offset: GraphemeCeil(d.blocks[bi].PlainText(), p.Offset)}
}

// PrevGraphemePosition returns the position one grapheme before p within
// its block, or p's block start.
func (d *Document) PrevGraphemePosition(p Position) Position {
	p = d.ClampPosition(p)
	if len(d.blocks) == 0 {
		return p
	}
	p.Offset = PrevGraphemeBoundary(d.blocks[p.Block].PlainText(), p.Offset)
	return p
}

// NextGraphemePosition returns the position one grapheme after p within its
// block, or p's block end.
func (d *Document) NextGraphemePosition(p Position) Position {
	p = d.ClampPosition(p)
	if len(d.blocks) == 0 {
		return p
	}
	p.Offset = NextGraphemeBoundary(d.blocks[p.Block].PlainText(), p.Offset)
	return p
}

// DeleteRange removes the text between start and end, in either order.
// A range spanning blocks merges the tail of the end block into the start
// block and removes everything between.
func (d *Document) DeleteRange(start, end Position) {
	if len(d.blocks) == 0 {
		return
	}
	a, b := OrderPositions(d.ClampPosition(start), d.ClampPosition(end))
	if a.Block == b.Block {
		d.blocks[a.Block].DeleteTextRange(a.Offset, b.Offset)
		return
	}

	first := &d.blocks[a.Block]
	first.DeleteTextRange(a.Offset, first.TextLen())
	tail := d.blocks[b.Block].SplitContentAt(b.Offset)

	d.blocks = slices.Delete(d.blocks, a.Block+1, b.Block+1)
	first = &d.blocks[a.Block]
	first.Content = append(first.Content, tail...)
	first.Normalize()
}

// ReplaceRange deletes the text between start and end and inserts text at
// the resulting point. Line endings are normalized to "\n" and text is split
// into paragraphs on blank lines: the first joins the current block, each
// further one becomes a new paragraph. Content that followed the insertion
// point ends up after the inserted text. ReplaceRange returns the position
// just after the inserted text.
func (d *Document) ReplaceRange(start, end Position, text string) Position {
	if len(d.blocks) == 0 {
		d.AddBlock(NewBlock(ParagraphType()))
	}
	a, b := OrderPositions(d.ClampPosition(start), d.ClampPosition(end))
	d.DeleteRange(a, b)

	at := d.ClampPosition(a)
	text = NormalizeLineEndings(text)
	if text == "" {
		return at
	}

	paras := strings.Split(text, ParagraphSeparator)
	blk := &d.blocks[at.Block]
	trailing := blk.SplitContentAt(at.Offset)
	if paras[0] != "" {
		blk.Content = append(blk.Content, PlainRun(paras[0]))
	}
	last := at.Block
	endPos := Position{Block: at.Block, Offset: at.Offset + len(paras[0])}
	if len(paras) > 1 {
		blk.Normalize()
	}

	for i, p := range paras[1:] {
		nb := NewBlock(ParagraphType())
		if p != "" {
			nb.Content = []Inline{PlainRun(p)}
		}
		last = at.Block + 1 + i
		d.InsertBlock(last, nb)
		endPos = Position{Block: last, Offset: len(p)}
	}

	target := &d.blocks[last]
	target.Content = append(target.Content, trailing...)
	target.Normalize()
	return endPos
}

// NormalizeLineEndings converts CRLF and lone CR to LF.
func NormalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
