package clipboard

import (
	"fmt"

	"github.com/dshills/richdoc/internal/engine/editor"
	"github.com/dshills/richdoc/internal/logging"
	"github.com/dshills/richdoc/internal/markdown"
)

// Bridge runs the editor's copy, cut and paste verbs against a clipboard.
type Bridge struct {
	ed     *editor.Editor
	cb     Clipboard
	logger *logging.Logger
}

// NewBridge creates a bridge. A nil logger discards output.
func NewBridge(ed *editor.Editor, cb Clipboard, logger *logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Bridge{ed: ed, cb: cb, logger: logger.WithComponent("clipboard")}
}

// Copy writes the selected text to the clipboard. Without a selection it
// does nothing.
func (b *Bridge) Copy() error {
	text := b.ed.SelectionText()
	if text == "" {
		return nil
	}
	if err := b.cb.WriteAll(text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	b.logger.Debug("copied %d bytes", len(text))
	return nil
}

// Cut writes the selected text to the clipboard and then deletes it. The
// selection is left alone if the clipboard write fails.
func (b *Bridge) Cut() error {
	text := b.ed.SelectionText()
	if text == "" {
		return nil
	}
	if err := b.cb.WriteAll(text); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	if err := b.ed.DeleteSelection(); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	b.logger.Debug("cut %d bytes", len(text))
	return nil
}

// Paste inserts the clipboard text at the cursor, replacing any selection.
func (b *Bridge) Paste() error {
	text, err := b.cb.ReadAll()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	if text == "" {
		return nil
	}
	if err := b.ed.Paste(text); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	b.logger.Debug("pasted %d bytes", len(text))
	return nil
}

// PasteMarkdown parses the clipboard as markdown and replaces the whole
// document with the result. An empty clipboard changes nothing.
func PasteMarkdown(ed *editor.Editor, cb Clipboard, opts ...markdown.Option) error {
	text, err := cb.ReadAll()
	if err != nil {
		return fmt.Errorf("paste markdown: %w", err)
	}
	if text == "" {
		return nil
	}
	ed.SetDocument(markdown.Parse(text, opts...))
	return nil
}
