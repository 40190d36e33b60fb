// Package app wires richdoc's packages into the command line editor: it
// resolves configuration, sets up logging, loads the document and runs
// either a headless batch (script, dump, write back) or the interactive
// terminal editor with optional file watching.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/richdoc/internal/clipboard"
	"github.com/dshills/richdoc/internal/config"
	"github.com/dshills/richdoc/internal/docjson"
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/engine/editor"
	"github.com/dshills/richdoc/internal/logging"
	"github.com/dshills/richdoc/internal/markdown"
	"github.com/dshills/richdoc/internal/script"
	"github.com/dshills/richdoc/internal/tui"
	"github.com/dshills/richdoc/internal/watch"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultPath.
	ConfigPath string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// File is the markdown file to edit. Empty edits an unnamed buffer.
	File string

	// Watch reloads the file when it changes on disk, in addition to the
	// configured viewer.watch setting.
	Watch bool

	// Script is a Lua file run against the document in batch mode.
	Script string

	// Write saves the document back to File after a batch run.
	Write bool

	// Dump prints the document structure as JSON after a batch run.
	Dump bool

	// LogOutput receives log lines when no log file is configured. Nil
	// discards them.
	LogOutput io.Writer
}

// Batch reports whether the options ask for a headless run.
func (o Options) Batch() bool {
	return o.Script != "" || o.Dump || o.Write
}

// Application holds the state of one richdoc run.
type Application struct {
	opts    Options
	cfg     *config.Config
	logger  *logging.Logger
	session string
	logFile *os.File

	path        string
	mdOpts      []markdown.Option
	ed          *editor.Editor
	cb          clipboard.Clipboard
	lastWritten string
}

// New resolves configuration and loads the document.
func New(opts Options) (*Application, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	a := &Application{
		opts:    opts,
		cfg:     cfg,
		session: uuid.NewString(),
		mdOpts:  []markdown.Option{markdown.WithWikiLinks(cfg.Markdown.WikiLinks)},
		cb:      clipboard.New(cfg.Clipboard.System),
	}
	if err := a.setupLogging(); err != nil {
		return nil, err
	}
	if opts.File != "" {
		a.path, err = filepath.Abs(opts.File)
		if err != nil {
			a.Shutdown()
			return nil, &OperationError{Op: "load", Target: opts.File, Err: err}
		}
		a.logger = a.logger.WithField("file", a.path)
	}

	doc, err := a.loadDocument()
	if err != nil {
		a.Shutdown()
		return nil, err
	}
	a.ed = editor.New(editor.WithDocument(doc), editor.WithLogger(a.logger))
	a.logger.Debug("loaded %d blocks", doc.BlockCount())
	return a, nil
}

func (a *Application) setupLogging() error {
	out := a.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	if a.cfg.Logging.File != "" {
		f, err := os.OpenFile(a.cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &OperationError{Op: "open log", Target: a.cfg.Logging.File, Err: err}
		}
		a.logFile = f
		out = f
	}
	cfg := logging.DefaultConfig()
	cfg.Level = a.cfg.LogLevel()
	cfg.Output = out
	a.logger = logging.New(cfg).WithField("session", a.session)
	logging.SetDefault(a.logger)
	return nil
}

// Session returns the id attached to every log line of this run.
func (a *Application) Session() string {
	return a.session
}

// Document returns the document being edited.
func (a *Application) Document() *document.Document {
	return a.ed.Document()
}

// Shutdown releases the log file.
func (a *Application) Shutdown() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// RunBatch runs the script, then writes the file back and prints the
// document. Output goes to w: the JSON structure with Dump, otherwise the
// markdown unless it was written back to the file.
func (a *Application) RunBatch(ctx context.Context, w io.Writer) error {
	if a.opts.Script != "" {
		runner := script.NewRunner(a.ed,
			script.WithTimeout(a.cfg.ScriptTimeout()),
			script.WithClipboard(a.cb),
			script.WithOutput(os.Stderr),
			script.WithMarkdownOptions(a.mdOpts...),
			script.WithLogger(a.logger),
		)
		if err := runner.RunFile(ctx, a.opts.Script); err != nil {
			return err
		}
	}

	doc := a.ed.Document()
	if a.opts.Write {
		if err := a.saveDocument(doc); err != nil {
			return err
		}
	}
	switch {
	case a.opts.Dump:
		out, err := docjson.Encode(doc)
		if err != nil {
			return &OperationError{Op: "dump", Err: err}
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case !a.opts.Write:
		_, err := fmt.Fprintln(w, markdown.Serialize(doc, a.mdOpts...))
		return err
	}
	return nil
}

// RunInteractive runs the terminal editor on screen until the user quits or
// ctx is cancelled. The screen must be initialized; the caller finalizes it.
func (a *Application) RunInteractive(ctx context.Context, screen tcell.Screen) error {
	if screen == nil {
		return ErrNotTerminal
	}
	title := "[untitled]"
	opts := []tui.Option{
		tui.WithLogger(a.logger),
		tui.WithStatusLine(a.cfg.Viewer.StatusLine),
		tui.WithClipboard(a.cb),
		tui.WithSave(a.saveDocument),
	}
	if a.path != "" {
		title = filepath.Base(a.path)
		opts = append(opts, tui.WithReload(a.reloadDocument))
	}
	view := tui.NewView(screen, a.ed, append(opts, tui.WithTitle(title))...)

	if a.path != "" && (a.opts.Watch || a.cfg.Viewer.Watch) {
		w, err := watch.New(a.path, watch.WithDelay(a.cfg.WatchDebounce()), watch.WithLogger(a.logger))
		if err != nil {
			view.SetStatus(fmt.Sprintf("watch failed: %v", err))
			a.logger.Warn("watch failed: %v", err)
		} else {
			defer w.Close()
			go forwardChanges(w, view)
		}
	}

	a.logger.Info("editor started")
	return view.Run(ctx)
}

// forwardChanges posts file events to the view until the watcher closes.
func forwardChanges(w *watch.FileWatcher, view *tui.View) {
	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			view.NotifyFileChanged(ev.Exists())
		case _, ok := <-w.Errors():
			if !ok {
				return
			}
		}
	}
}
