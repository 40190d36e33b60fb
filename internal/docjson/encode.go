package docjson

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/richdoc/internal/engine/document"
)

// Encode returns an indented JSON dump of doc.
func Encode(doc *document.Document) (string, error) {
	out, err := EncodeCompact(doc)
	if err != nil {
		return "", err
	}
	return string(pretty.Pretty([]byte(out))), nil
}

// EncodeCompact returns the dump without insignificant whitespace.
func EncodeCompact(doc *document.Document) (string, error) {
	out := `{"blocks":[]}`
	for i, b := range doc.Blocks() {
		raw, err := encodeBlock(b)
		if err != nil {
			return "", fmt.Errorf("block %d: %w", i, err)
		}
		if out, err = sjson.SetRaw(out, "blocks.-1", raw); err != nil {
			return "", fmt.Errorf("block %d: %w", i, err)
		}
	}
	return out, nil
}

func encodeBlock(b document.Block) (string, error) {
	t := b.Type
	fields := []struct {
		path  string
		value any
		ok    bool
	}{
		{"id", uint64(b.ID), true},
		{"type", kindNames[t.Kind], true},
		{"level", t.Level, t.Kind == document.KindHeading},
		{"language", t.Language, t.Kind == document.KindCodeBlock && t.Language != ""},
		{"ordered", t.Ordered, t.Ordered},
		{"number", t.Number, t.Ordered && t.Number != 0},
		{"checkbox", checkboxName(t.Checkbox), t.Checkbox != document.NoCheckbox},
	}

	out := "{}"
	var err error
	for _, f := range fields {
		if !f.ok {
			continue
		}
		if out, err = sjson.Set(out, f.path, f.value); err != nil {
			return "", err
		}
	}
	content, err := encodeInlines(b.Content)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(out, "content", content)
}

func checkboxName(c document.CheckState) string {
	if c == document.Checked {
		return "checked"
	}
	return "unchecked"
}

func encodeInlines(items []document.Inline) (string, error) {
	raws := make([]string, 0, len(items))
	for _, item := range items {
		raw, err := encodeInline(item)
		if err != nil {
			return "", err
		}
		raws = append(raws, raw)
	}
	return "[" + strings.Join(raws, ",") + "]", nil
}

func encodeInline(item document.Inline) (string, error) {
	switch v := item.(type) {
	case document.TextRun:
		out, err := sjson.Set("{}", "text", v.Text)
		if err != nil {
			return "", err
		}
		for _, f := range styleFlags {
			if f.get(v.Style) {
				if out, err = sjson.Set(out, "style."+f.name, true); err != nil {
					return "", err
				}
			}
		}
		return out, nil
	case document.Hyperlink:
		out, err := sjson.Set("{}", "link.destination", v.Link.Destination)
		if err != nil {
			return "", err
		}
		if v.Link.Title != "" {
			if out, err = sjson.Set(out, "link.title", v.Link.Title); err != nil {
				return "", err
			}
		}
		content, err := encodeInlines(v.Content)
		if err != nil {
			return "", err
		}
		return sjson.SetRaw(out, "content", content)
	case document.LineBreak:
		return `{"break":"line"}`, nil
	case document.HardBreak:
		return `{"break":"hard"}`, nil
	default:
		return "", fmt.Errorf("%T: %w", item, ErrUnknownInline)
	}
}
