package document

import (
	"fmt"
	"strings"
)

// ElementID identifies a block within its document. Zero means unassigned.
type ElementID uint64

// BlockKind is the structural kind of a block.
type BlockKind uint8

// Block kinds.
const (
	KindParagraph BlockKind = iota
	KindHeading
	KindCodeBlock
	KindBlockQuote
	KindListItem
)

// String returns the kind name.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "Paragraph"
	case KindHeading:
		return "Heading"
	case KindCodeBlock:
		return "CodeBlock"
	case KindBlockQuote:
		return "BlockQuote"
	case KindListItem:
		return "ListItem"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint8(k))
	}
}

// CheckState is the checkbox state of a list item.
type CheckState uint8

// Checkbox states.
const (
	NoCheckbox CheckState = iota
	Unchecked
	Checked
)

// BlockType describes how a block is presented.
//
// Level is the heading level (1..6) for headings. Language is the optional
// code block language. Ordered, Number and Checkbox apply to list items:
// Number is the ordered item's display number, zero meaning unnumbered, and
// a Checkbox other than NoCheckbox makes the item a checklist item.
type BlockType struct {
	Kind     BlockKind
	Level    int
	Language string
	Ordered  bool
	Number   uint64
	Checkbox CheckState
}

// ParagraphType returns the paragraph block type.
func ParagraphType() BlockType { return BlockType{Kind: KindParagraph} }

// HeadingType returns a heading type with level clamped to 1..6.
func HeadingType(level int) BlockType {
	return BlockType{Kind: KindHeading, Level: min(max(level, 1), 6)}
}

// CodeBlockType returns a code block type.
func CodeBlockType(language string) BlockType {
	return BlockType{Kind: KindCodeBlock, Language: language}
}

// BlockQuoteType returns the block quote type.
func BlockQuoteType() BlockType { return BlockType{Kind: KindBlockQuote} }

// BulletType returns an unordered list item type.
func BulletType() BlockType { return BlockType{Kind: KindListItem} }

// OrderedType returns an ordered list item type numbered n.
func OrderedType(n uint64) BlockType {
	return BlockType{Kind: KindListItem, Ordered: true, Number: n}
}

// ChecklistType returns a checklist item type.
func ChecklistType(checked bool) BlockType {
	t := BlockType{Kind: KindListItem, Checkbox: Unchecked}
	if checked {
		t.Checkbox = Checked
	}
	return t
}

// IsParagraph reports whether t is a paragraph.
func (t BlockType) IsParagraph() bool { return t.Kind == KindParagraph }

// IsHeading reports whether t is a heading.
func (t BlockType) IsHeading() bool { return t.Kind == KindHeading }

// IsListItem reports whether t is any kind of list item.
func (t BlockType) IsListItem() bool { return t.Kind == KindListItem }

// IsChecklist reports whether t is a list item carrying a checkbox.
func (t BlockType) IsChecklist() bool {
	return t.Kind == KindListItem && t.Checkbox != NoCheckbox
}

// IsOrderedList reports whether t is an ordered list item without a
// checkbox.
func (t BlockType) IsOrderedList() bool {
	return t.Kind == KindListItem && t.Ordered && t.Checkbox == NoCheckbox
}

// IsBulletList reports whether t is a plain bullet item.
func (t BlockType) IsBulletList() bool {
	return t.Kind == KindListItem && !t.Ordered && t.Checkbox == NoCheckbox
}

// ListNumber returns the display number of an ordered item, treating an
// unnumbered item as 1.
func (t BlockType) ListNumber() uint64 {
	if t.Number == 0 {
		return 1
	}
	return t.Number
}

// String renders the type for debugging.
func (t BlockType) String() string {
	switch t.Kind {
	case KindHeading:
		return fmt.Sprintf("Heading(H%d)", t.Level)
	case KindCodeBlock:
		if t.Language != "" {
			return fmt.Sprintf("CodeBlock(%s)", t.Language)
		}
		return "CodeBlock"
	case KindListItem:
		switch {
		case t.Checkbox == Checked:
			return "ListItem([x])"
		case t.Checkbox == Unchecked:
			return "ListItem([ ])"
		case t.Ordered:
			return fmt.Sprintf("ListItem(%d.)", t.ListNumber())
		default:
			return "ListItem(-)"
		}
	default:
		return t.Kind.String()
	}
}

// Block is one structural element of a document.
type Block struct {
	ID      ElementID
	Type    BlockType
	Content []Inline
}

// NewBlock creates an empty block of type t. The id is assigned when the
// block is added to a document.
func NewBlock(t BlockType) Block {
	return Block{Type: t}
}

// NewParagraph creates a paragraph holding text as a single plain run.
func NewParagraph(text string) Block {
	return NewBlock(ParagraphType()).WithText(text, Plain())
}

// NewHeading creates a heading holding text as a single plain run.
func NewHeading(level int, text string) Block {
	return NewBlock(HeadingType(level)).WithText(text, Plain())
}

// WithText returns a copy of b with a run appended. Empty text is ignored.
func (b Block) WithText(text string, style TextStyle) Block {
	if text == "" {
		return b
	}
	content := make([]Inline, 0, len(b.Content)+1)
	content = append(content, b.Content...)
	b.Content = append(content, TextRun{Text: text, Style: style})
	return b
}

// WithInline returns a copy of b with item appended.
func (b Block) WithInline(item Inline) Block {
	content := make([]Inline, 0, len(b.Content)+1)
	content = append(content, b.Content...)
	b.Content = append(content, item)
	return b
}

// TextLen returns the flattened length of the block.
func (b Block) TextLen() int { return TextLen(b.Content) }

// PlainText returns the flattened text of the block.
func (b Block) PlainText() string { return PlainText(b.Content) }

// IsEmpty reports whether the block has no content or only whitespace runs.
// A block holding a link or a break is never empty.
func (b Block) IsEmpty() bool {
	for _, item := range b.Content {
		run, ok := item.(TextRun)
		if !ok || strings.TrimSpace(run.Text) != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	return Block{ID: b.ID, Type: b.Type, Content: CloneInlines(b.Content)}
}

// String renders the block for debugging.
func (b Block) String() string {
	return fmt.Sprintf("%s %q", b.Type, b.PlainText())
}

// DeleteTextRange removes the flattened range [start, end) and normalizes the
// content. Offsets are clamped to the block; an empty range is a no-op.
func (b *Block) DeleteTextRange(start, end int) {
	n := b.TextLen()
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	if start >= end {
		return
	}
	b.Content = NormalizeInlines(DeleteInlines(b.Content, start, end))
}

// SplitContentAt truncates the block at offset and returns the content that
// followed it.
func (b *Block) SplitContentAt(offset int) []Inline {
	offset = min(max(offset, 0), b.TextLen())
	left, right := SplitInlines(b.Content, offset)
	b.Content = left
	return right
}

// InsertPlainText inserts an unstyled run at offset.
func (b *Block) InsertPlainText(offset int, text string) {
	if text == "" {
		return
	}
	offset = min(max(offset, 0), b.TextLen())
	b.Content = NormalizeInlines(InsertInlines(b.Content, offset, PlainRun(text)))
}

// Normalize merges and prunes the block's inline content.
func (b *Block) Normalize() {
	b.Content = NormalizeInlines(b.Content)
}
