package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/richdoc/internal/clipboard"
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/engine/editor"
	"github.com/dshills/richdoc/internal/logging"
)

// SaveFunc writes the document. It is called on Ctrl-S.
type SaveFunc func(doc *document.Document) error

// ReloadFunc reads the document back from disk. It returns a nil document
// when the file already matches what the view holds.
type ReloadFunc func() (*document.Document, error)

// fileChanged is the payload of the interrupt posted by NotifyFileChanged.
type fileChanged struct {
	exists bool
}

// View is an interactive editor bound to a tcell screen.
type View struct {
	screen tcell.Screen
	ed     *editor.Editor
	cb     clipboard.Clipboard
	clip   *clipboard.Bridge
	logger *logging.Logger

	title      string
	statusLine bool
	save       SaveFunc
	reload     ReloadFunc

	status   string
	modified bool
	top      int
	quit     bool
}

// Option configures a View.
type Option func(*View)

// WithTitle sets the name shown in the status line.
func WithTitle(title string) Option {
	return func(v *View) {
		v.title = title
	}
}

// WithStatusLine shows or hides the status line.
func WithStatusLine(show bool) Option {
	return func(v *View) {
		v.statusLine = show
	}
}

// WithClipboard sets the clipboard used by cut, copy and paste.
func WithClipboard(cb clipboard.Clipboard) Option {
	return func(v *View) {
		v.cb = cb
	}
}

// WithSave sets the save callback.
func WithSave(fn SaveFunc) Option {
	return func(v *View) {
		v.save = fn
	}
}

// WithReload sets the reload callback used when the file changes on disk.
func WithReload(fn ReloadFunc) Option {
	return func(v *View) {
		v.reload = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(v *View) {
		if l != nil {
			v.logger = l
		}
	}
}

// NewView creates a view of ed on screen. The screen must already be
// initialized.
func NewView(screen tcell.Screen, ed *editor.Editor, opts ...Option) *View {
	v := &View{
		screen:     screen,
		ed:         ed,
		logger:     logging.Nop(),
		title:      "[untitled]",
		statusLine: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.cb == nil {
		v.cb = &clipboard.Memory{}
	}
	v.logger = v.logger.WithComponent("tui")
	v.clip = clipboard.NewBridge(ed, v.cb, v.logger)
	return v
}

// Modified reports whether the buffer has edits that were not saved.
func (v *View) Modified() bool {
	return v.modified
}

// Status returns the current status message.
func (v *View) Status() string {
	return v.status
}

// SetStatus replaces the status message.
func (v *View) SetStatus(msg string) {
	v.status = msg
}

// NotifyFileChanged tells the view that the file changed on disk. It is
// safe to call from any goroutine.
func (v *View) NotifyFileChanged(exists bool) {
	if err := v.screen.PostEvent(tcell.NewEventInterrupt(fileChanged{exists: exists})); err != nil {
		v.logger.Warn("dropping file change event: %v", err)
	}
}

// Run draws the view and handles events until the user quits or ctx is
// cancelled.
func (v *View) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		if !v.HandleEvent(ev) {
			return nil
		}
		v.Draw()
	}
}

// HandleEvent applies one event. It returns false once the user has asked
// to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventInterrupt:
		if fc, ok := ev.Data().(fileChanged); ok {
			v.handleFileChanged(fc)
		}
	}
	return !v.quit
}

func (v *View) handleFileChanged(fc fileChanged) {
	switch {
	case !fc.exists:
		v.status = "file removed on disk"
	case v.modified:
		v.status = "file changed on disk; unsaved edits kept"
	case v.reload == nil:
	default:
		doc, err := v.reload()
		if err != nil {
			v.status = fmt.Sprintf("reload failed: %v", err)
			return
		}
		if doc == nil {
			return
		}
		cursor := v.ed.Cursor()
		v.ed.SetDocument(doc)
		v.ed.SetCursor(cursor)
		v.status = "reloaded"
		v.logger.Info("reloaded after change on disk")
	}
}

// edit runs a verb that changes the document.
func (v *View) edit(fn func() error) {
	if err := fn(); err != nil {
		v.status = err.Error()
		v.logger.Debug("edit failed: %v", err)
		return
	}
	v.modified = true
	v.status = ""
}

func (v *View) saveDocument() {
	if v.save == nil {
		v.status = "no file to save to"
		return
	}
	if err := v.save(v.ed.Document()); err != nil {
		v.status = fmt.Sprintf("save failed: %v", err)
		v.logger.Error("save failed: %v", err)
		return
	}
	v.modified = false
	v.status = "saved"
}

// Draw renders the document, cursor and status line, then shows the
// screen.
func (v *View) Draw() {
	s := v.screen
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	viewHeight := h
	if v.statusLine && h > 1 {
		viewHeight = h - 1
	}

	s.SetStyle(styleText)
	s.Clear()

	lines := layout(v.ed.Document(), w)
	row, col, cursorOK := locate(lines, v.ed.Cursor())
	v.scrollTo(row, viewHeight, len(lines))

	sel, hasSel := v.ed.Selection()
	var selStart, selEnd document.Position
	if hasSel {
		selStart, selEnd = sel.Range()
	}
	for y := 0; y < viewHeight; y++ {
		i := v.top + y
		if i >= len(lines) {
			break
		}
		ln := lines[i]
		x := drawString(s, 0, y, w, ln.prefix, stylePrefix)
		for _, g := range ln.glyphs {
			if x+g.width > w {
				break
			}
			style := g.style
			p := document.Pos(ln.block, g.offset)
			if hasSel && !p.Before(selStart) && p.Before(selEnd) {
				_, _, attrs := style.Decompose()
				style = style.Reverse(attrs&tcell.AttrReverse == 0)
			}
			runes := []rune(g.text)
			s.SetContent(x, y, runes[0], runes[1:], style)
			x += g.width
		}
	}

	if v.statusLine && h > 1 {
		v.drawStatus(w, h-1)
	}

	if cursorOK && row >= v.top && row < v.top+viewHeight && col < w {
		s.ShowCursor(col, row-v.top)
	} else {
		s.HideCursor()
	}
	s.Show()
}

// scrollTo keeps row inside the visible window.
func (v *View) scrollTo(row, height, total int) {
	if row < v.top {
		v.top = row
	}
	if row >= v.top+height {
		v.top = row - height + 1
	}
	v.top = max(0, min(v.top, total-1))
}

func (v *View) drawStatus(w, y int) {
	p := v.ed.Cursor()
	blockType := "-"
	if blk, ok := v.ed.Document().Block(p.Block); ok {
		blockType = blk.Type.String()
	}
	name := v.title
	if v.modified {
		name += " [+]"
	}
	// position before the block type so narrow terminals keep it
	left := fmt.Sprintf(" %s  %d:%d  %s", name, p.Block+1, p.Offset, blockType)
	if v.status != "" {
		left += "  " + v.status
	}
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	drawString(v.screen, 0, y, w, left, styleStatus)
}

// drawString draws text from x, clipped at maxX, and returns the column
// after it.
func drawString(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	state := -1
	for text != "" {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		if x+width > maxX {
			break
		}
		runes := []rune(cluster)
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
	return x
}
