// Package document implements the block-structured rich text model.
//
// A Document is an ordered list of Blocks. Each Block has a BlockType
// (paragraph, heading, code block, quote or list item) and a sequence of
// Inline items: styled TextRuns, Hyperlinks wrapping their own inline
// content, soft LineBreaks and HardBreaks.
//
// Positions:
//
// A Position addresses a byte offset into the flattened text of one block.
// The flattened text is the concatenation of every inline item's plain text,
// where a LineBreak counts as a single space and a HardBreak as a single
// newline. Positions handed to Document methods are always clamped first:
//
//   - ClampPosition snaps at or before the requested offset
//   - ClampPositionForward snaps at or after it
//
// Both snap to grapheme cluster boundaries, so an emoji or a base letter with
// combining marks is never split by an edit.
//
// Editing primitives:
//
//	doc := document.NewDocumentWithParagraph("First para")
//	doc.AddBlock(document.NewParagraph("Third para"))
//
//	// Remove "st para" .. "Th" and merge the two blocks
//	doc.DeleteRange(document.Pos(0, 3), document.Pos(1, 2))
//	// doc.PlainText() == "Firird para"
//
// Document values are not safe for concurrent use. Callers serialize access,
// usually by owning the document from a single editor.
package document
