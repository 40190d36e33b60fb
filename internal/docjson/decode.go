package docjson

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/richdoc/internal/engine/document"
)

// Decode rebuilds a document from a dump produced by Encode. Block ids in
// the dump are kept.
func Decode(data string) (*document.Document, error) {
	if !gjson.Valid(data) {
		return nil, ErrInvalidJSON
	}
	doc := document.NewDocument()

	var err error
	gjson.Get(data, "blocks").ForEach(func(key, value gjson.Result) bool {
		var b document.Block
		if b, err = decodeBlock(value); err != nil {
			err = fmt.Errorf("block %d: %w", key.Int(), err)
			return false
		}
		doc.AddBlock(b)
		return true
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeBlock(v gjson.Result) (document.Block, error) {
	var t document.BlockType
	switch name := v.Get("type").String(); name {
	case TypeParagraph:
		t = document.ParagraphType()
	case TypeHeading:
		t = document.HeadingType(int(v.Get("level").Int()))
	case TypeCodeBlock:
		t = document.CodeBlockType(v.Get("language").String())
	case TypeBlockQuote:
		t = document.BlockQuoteType()
	case TypeListItem:
		t = document.BulletType()
		if v.Get("ordered").Bool() {
			t = document.OrderedType(v.Get("number").Uint())
		} else if cb := v.Get("checkbox"); cb.Exists() {
			t = document.ChecklistType(cb.String() == "checked")
		}
	default:
		return document.Block{}, fmt.Errorf("%q: %w", name, ErrUnknownBlockType)
	}

	content, err := decodeInlines(v.Get("content"))
	if err != nil {
		return document.Block{}, err
	}
	b := document.NewBlock(t)
	b.ID = document.ElementID(v.Get("id").Uint())
	b.Content = content
	return b, nil
}

func decodeInlines(v gjson.Result) ([]document.Inline, error) {
	var (
		out []document.Inline
		err error
	)
	v.ForEach(func(_, item gjson.Result) bool {
		var in document.Inline
		if in, err = decodeInline(item); err != nil {
			return false
		}
		out = append(out, in)
		return true
	})
	return out, err
}

func decodeInline(v gjson.Result) (document.Inline, error) {
	switch {
	case v.Get("text").Exists():
		var style document.TextStyle
		st := v.Get("style")
		for _, f := range styleFlags {
			if st.Get(f.name).Bool() {
				f.set(&style)
			}
		}
		return document.NewTextRun(v.Get("text").String(), style), nil
	case v.Get("link").Exists():
		content, err := decodeInlines(v.Get("content"))
		if err != nil {
			return nil, err
		}
		return document.Hyperlink{
			Link: document.Link{
				Destination: v.Get("link.destination").String(),
				Title:       v.Get("link.title").String(),
			},
			Content: content,
		}, nil
	case v.Get("break").String() == "line":
		return document.LineBreak{}, nil
	case v.Get("break").String() == "hard":
		return document.HardBreak{}, nil
	default:
		return nil, fmt.Errorf("%s: %w", v.Raw, ErrUnknownInline)
	}
}
