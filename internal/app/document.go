package app

import (
	"os"
	"path/filepath"

	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/markdown"
)

// loadDocument parses the markdown file at path. A missing file yields a
// document with one empty paragraph so it can be created on save.
func (a *Application) loadDocument() (*document.Document, error) {
	if a.path == "" {
		return document.NewDocumentWithParagraph(""), nil
	}
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			a.logger.Info("new file")
			return document.NewDocumentWithParagraph(""), nil
		}
		return nil, &OperationError{Op: "load", Target: a.path, Err: err}
	}
	a.lastWritten = string(data)
	return markdown.Parse(string(data), a.mdOpts...), nil
}

// reloadDocument re-reads the file, returning nil when its content is what
// was last loaded or written.
func (a *Application) reloadDocument() (*document.Document, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &OperationError{Op: "reload", Target: a.path, Err: err}
	}
	if string(data) == a.lastWritten {
		return nil, nil
	}
	a.lastWritten = string(data)
	return markdown.Parse(string(data), a.mdOpts...), nil
}

// saveDocument writes doc as markdown. The file is replaced atomically by
// writing a temporary file beside it and renaming it over the original.
func (a *Application) saveDocument(doc *document.Document) error {
	if a.path == "" {
		return &OperationError{Op: "save", Err: ErrNoFile}
	}
	text := markdown.Serialize(doc, a.mdOpts...) + "\n"

	mode := os.FileMode(0o644)
	if info, err := os.Stat(a.path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(a.path), "."+filepath.Base(a.path)+".*")
	if err != nil {
		return &OperationError{Op: "save", Target: a.path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return &OperationError{Op: "save", Target: a.path, Err: err}
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return &OperationError{Op: "save", Target: a.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &OperationError{Op: "save", Target: a.path, Err: err}
	}
	// Record before the rename so the watcher sees a matching file.
	a.lastWritten = text
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		return &OperationError{Op: "save", Target: a.path, Err: err}
	}
	a.logger.Info("saved %d bytes", len(text))
	return nil
}
