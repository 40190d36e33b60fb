// Package docjson dumps a document's block and inline tree as JSON and reads
// it back. The dump is an inspection format for tools, not a file format.
//
// A dump looks like:
//
//	{
//	  "blocks": [
//	    {
//	      "id": 1,
//	      "type": "list_item",
//	      "ordered": true,
//	      "number": 2,
//	      "content": [
//	        {"text": "see ", "style": {"bold": true}},
//	        {"link": {"destination": "https://go.dev"}, "content": [{"text": "Go"}]},
//	        {"break": "hard"}
//	      ]
//	    }
//	  ]
//	}
package docjson

import (
	"errors"

	"github.com/dshills/richdoc/internal/engine/document"
)

var (
	// ErrInvalidJSON is returned when the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrUnknownBlockType is returned for a block whose type is not known.
	ErrUnknownBlockType = errors.New("unknown block type")

	// ErrUnknownInline is returned for an inline item that is neither text,
	// a link nor a break.
	ErrUnknownInline = errors.New("unknown inline item")
)

// Block type names used in dumps.
const (
	TypeParagraph  = "paragraph"
	TypeHeading    = "heading"
	TypeCodeBlock  = "code_block"
	TypeBlockQuote = "block_quote"
	TypeListItem   = "list_item"
)

var kindNames = map[document.BlockKind]string{
	document.KindParagraph:  TypeParagraph,
	document.KindHeading:    TypeHeading,
	document.KindCodeBlock:  TypeCodeBlock,
	document.KindBlockQuote: TypeBlockQuote,
	document.KindListItem:   TypeListItem,
}

// styleFlags lists the style keys in output order.
var styleFlags = []struct {
	name string
	get  func(document.TextStyle) bool
	set  func(*document.TextStyle)
}{
	{"bold", func(s document.TextStyle) bool { return s.Bold }, func(s *document.TextStyle) { s.Bold = true }},
	{"italic", func(s document.TextStyle) bool { return s.Italic }, func(s *document.TextStyle) { s.Italic = true }},
	{"code", func(s document.TextStyle) bool { return s.Code }, func(s *document.TextStyle) { s.Code = true }},
	{"strikethrough", func(s document.TextStyle) bool { return s.Strikethrough }, func(s *document.TextStyle) { s.Strikethrough = true }},
	{"underline", func(s document.TextStyle) bool { return s.Underline }, func(s *document.TextStyle) { s.Underline = true }},
	{"highlight", func(s document.TextStyle) bool { return s.Highlight }, func(s *document.TextStyle) { s.Highlight = true }},
}
