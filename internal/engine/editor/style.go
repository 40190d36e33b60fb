package editor

import "github.com/dshills/richdoc/internal/engine/document"

// SplitContentForStyle splits content into the items before, inside and
// after the flattened window [start, end). Runs straddling a window edge are
// sliced; links and breaks straddling an edge are assigned whole by where
// they start.
func SplitContentForStyle(content []document.Inline, start, end int) (before, selected, after []document.Inline) {
	pos := 0
	for _, item := range content {
		n := item.TextLen()
		itemStart, itemEnd := pos, pos+n
		pos = itemEnd

		switch {
		case itemEnd <= start:
			before = append(before, item.Clone())
		case itemStart >= end:
			after = append(after, item.Clone())
		case itemStart >= start && itemEnd <= end:
			selected = append(selected, item.Clone())
		default:
			run, ok := item.(document.TextRun)
			if !ok {
				switch {
				case itemStart < start:
					before = append(before, item.Clone())
				case itemStart < end:
					selected = append(selected, item.Clone())
				default:
					after = append(after, item.Clone())
				}
				continue
			}
			head, rest := run.SplitAt(max(start-itemStart, 0))
			mid, tail := rest.SplitAt(min(end-itemStart, n) - head.Len())
			if !head.IsEmpty() {
				before = append(before, head)
			}
			if !mid.IsEmpty() {
				selected = append(selected, mid)
			}
			if !tail.IsEmpty() {
				after = append(after, tail)
			}
		}
	}
	return before, selected, after
}

// restyle applies fn to the runs of blk inside [start, end).
func restyle(blk *document.Block, start, end int, fn func(document.TextStyle) document.TextStyle) {
	before, selected, after := SplitContentForStyle(blk.Content, start, end)
	content := make([]document.Inline, 0, len(before)+len(selected)+len(after))
	content = append(content, before...)
	content = append(content, document.MapStyles(selected, fn)...)
	content = append(content, after...)
	blk.Content = content
	blk.Normalize()
}

// applyStyle maps fn over every run covered by the selection: the tail of
// the first block, every block in between and the head of the last block.
// Without a selection it does nothing.
func (e *Editor) applyStyle(fn func(document.TextStyle) document.TextStyle) error {
	if !e.hasSel {
		return nil
	}
	start, end := e.sel.Range()
	n := e.doc.BlockCount()
	if start.Block < 0 || start.Block >= n {
		return blockIndexError(start.Block, n)
	}
	if end.Block < 0 || end.Block >= n {
		return blockIndexError(end.Block, n)
	}
	start = e.doc.ClampPosition(start)
	end = e.doc.ClampPositionForward(end)

	if start.Block == end.Block {
		blk, _ := e.doc.Block(start.Block)
		restyle(blk, start.Offset, end.Offset, fn)
		return nil
	}

	first, _ := e.doc.Block(start.Block)
	restyle(first, start.Offset, first.TextLen(), fn)
	for i := start.Block + 1; i < end.Block; i++ {
		blk, _ := e.doc.Block(i)
		blk.Content = document.MapStyles(blk.Content, fn)
		blk.Normalize()
	}
	last, _ := e.doc.Block(end.Block)
	restyle(last, 0, end.Offset, fn)
	return nil
}

// ToggleBold flips bold on every run in the selection.
func (e *Editor) ToggleBold() error {
	return e.applyStyle(func(s document.TextStyle) document.TextStyle {
		s.Bold = !s.Bold
		return s
	})
}

// ToggleItalic flips italic on every run in the selection.
func (e *Editor) ToggleItalic() error {
	return e.applyStyle(func(s document.TextStyle) document.TextStyle {
		s.Italic = !s.Italic
		return s
	})
}

// ToggleCode flips inline code on every run in the selection.
func (e *Editor) ToggleCode() error {
	return e.applyStyle(func(s document.TextStyle) document.TextStyle {
		s.Code = !s.Code
		return s
	})
}

// ToggleStrikethrough flips strikethrough on every run in the selection.
func (e *Editor) ToggleStrikethrough() error {
	return e.applyStyle(func(s document.TextStyle) document.TextStyle {
		s.Strikethrough = !s.Strikethrough
		return s
	})
}

// ToggleUnderline flips underline on every run in the selection.
func (e *Editor) ToggleUnderline() error {
	return e.applyStyle(func(s document.TextStyle) document.TextStyle {
		s.Underline = !s.Underline
		return s
	})
}

// ToggleHighlight flips highlight on every run in the selection.
func (e *Editor) ToggleHighlight() error {
	return e.applyStyle(func(s document.TextStyle) document.TextStyle {
		s.Highlight = !s.Highlight
		return s
	})
}

// ClearFormatting removes every style flag from the selection.
func (e *Editor) ClearFormatting() error {
	return e.applyStyle(func(document.TextStyle) document.TextStyle {
		return document.Plain()
	})
}
