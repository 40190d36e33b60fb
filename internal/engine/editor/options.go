package editor

import (
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/logging"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithDocument sets the document to edit. A nil document is ignored.
func WithDocument(doc *document.Document) Option {
	return func(e *Editor) {
		if doc != nil {
			e.doc = doc
		}
	}
}

// WithLogger sets the logger used for editing traces.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBlockTypeObserver registers fn to be called with the type of the block
// under the cursor whenever the cursor is placed or a block type changes.
func WithBlockTypeObserver(fn func(document.BlockType)) Option {
	return func(e *Editor) {
		e.observer = fn
	}
}
