package editor

import (
	"strings"

	"github.com/dshills/richdoc/internal/engine/document"
)

// TextInRange returns the flattened text between a and b, in either order,
// with blocks joined by a blank line. It is the inverse of the paragraph
// splitting done by Document.ReplaceRange.
func (e *Editor) TextInRange(a, b document.Position) string {
	if e.doc.IsEmpty() {
		return ""
	}
	start, end := document.OrderPositions(a, b)
	return e.joinRange(e.doc.ClampPosition(start), e.doc.ClampPositionForward(end), document.ParagraphSeparator)
}

// SelectionText returns the selected text with blocks joined by a single
// newline, or "" without a selection.
func (e *Editor) SelectionText() string {
	if !e.hasSel || e.doc.IsEmpty() {
		return ""
	}
	start, end := e.sel.Range()
	return e.joinRange(e.doc.ClampPosition(start), e.doc.ClampPositionForward(end), "\n")
}

func (e *Editor) joinRange(start, end document.Position, sep string) string {
	var sb strings.Builder
	for i := start.Block; i <= end.Block; i++ {
		blk, _ := e.doc.Block(i)
		text := blk.PlainText()
		from, to := 0, len(text)
		if i == start.Block {
			from = min(start.Offset, len(text))
		}
		if i == end.Block {
			to = min(end.Offset, len(text))
		}
		if i > start.Block {
			sb.WriteString(sep)
		}
		if from < to {
			sb.WriteString(text[from:to])
		}
	}
	return sb.String()
}

// Copy returns the selected text.
func (e *Editor) Copy() string {
	return e.SelectionText()
}

// Cut returns the selected text and deletes it. Nothing is deleted when the
// selection holds no text.
func (e *Editor) Cut() (string, error) {
	text := e.SelectionText()
	if text == "" {
		return "", nil
	}
	if err := e.DeleteSelection(); err != nil {
		return "", err
	}
	return text, nil
}

// Paste inserts text at the cursor, replacing any selection. Blank lines in
// text start new paragraphs. The cursor ends up right after the pasted
// text.
func (e *Editor) Paste(text string) error {
	if e.hasSel {
		start, end := e.sel.Range()
		e.cursor = e.doc.ReplaceRange(start, end, text)
		e.hasSel = false
		e.normalizeCursor()
		return nil
	}

	text = document.NormalizeLineEndings(text)
	if !strings.Contains(text, document.ParagraphSeparator) {
		return e.InsertText(text)
	}
	if !e.doc.IsEmpty() {
		if _, err := e.currentBlock(); err != nil {
			return err
		}
	}
	e.cursor = e.doc.ReplaceRange(e.cursor, e.cursor, text)
	e.normalizeCursor()
	return nil
}
