package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/engine/editor"
	"github.com/dshills/richdoc/internal/markdown"
)

type motion struct {
	move, extend func()
}

// install registers print and the doc table on L.
func (r *Runner) install(L *lua.LState) {
	r.installPrint(L)

	ed := r.ed
	verbs := map[string]lua.LGFunction{
		"insert":           r.verb(func(L *lua.LState) error { return ed.InsertText(L.CheckString(1)) }),
		"newline":          r.verb(func(*lua.LState) error { return ed.InsertNewline() }),
		"hard_break":       r.verb(func(*lua.LState) error { return ed.InsertHardBreak() }),
		"backspace":        r.verb(func(*lua.LState) error { return ed.DeleteBackward() }),
		"delete":           r.verb(func(*lua.LState) error { return ed.DeleteForward() }),
		"delete_word_back": r.verb(func(*lua.LState) error { return ed.DeleteWordBackward() }),
		"delete_word":      r.verb(func(*lua.LState) error { return ed.DeleteWordForward() }),
		"clear_formatting": r.verb(func(*lua.LState) error { return ed.ClearFormatting() }),
		"heading":          r.verb(func(*lua.LState) error { return ed.ToggleHeading() }),
		"list":             r.verb(func(*lua.LState) error { return ed.ToggleList() }),
		"ordered_list":     r.verb(func(*lua.LState) error { return ed.ToggleOrderedList() }),
		"checklist":        r.verb(func(*lua.LState) error { return ed.ToggleChecklist() }),
		"quote":            r.verb(func(*lua.LState) error { return ed.ToggleQuote() }),
		"code_block":       r.verb(func(*lua.LState) error { return ed.ToggleCodeBlock() }),
		"toggle":           r.verb(r.toggle),
		"block_type":       r.verb(r.blockType),
		"move":             r.verb(r.move),
		"set_cursor":       r.verb(r.setCursor),
		"select":           r.verb(r.selectRange),
		"link":             r.verb(r.link),
		"paste":            r.verb(r.paste),
		"select_all":       r.selectAll,
		"select_word":      r.selectWord,
		"cursor":           r.cursor,
		"selection_text":   r.selectionText,
		"check":            r.check,
		"copy":             r.copy,
		"cut":              r.cut,
		"text":             r.text,
		"markdown":         r.markdown,
		"block_count":      r.blockCount,
		"block_text":       r.blockText,
	}
	L.SetGlobal("doc", L.SetFuncs(L.NewTable(), verbs))
}

// verb adapts an editing call that returns only an error.
func (r *Runner) verb(fn func(L *lua.LState) error) lua.LGFunction {
	return func(L *lua.LState) int {
		r.raise(L, fn(L))
		return 0
	}
}

// raise turns err into a Lua error, remembering it so Run can return the
// Go error itself.
func (r *Runner) raise(L *lua.LState, err error) {
	if err == nil {
		return
	}
	r.verbErr = err
	L.RaiseError("%s", err.Error())
}

// blockArg reads a 1-based block number at stack index n as a 0-based
// index.
func (r *Runner) blockArg(L *lua.LState, n int) int {
	b := L.CheckInt(n)
	count := r.ed.Document().BlockCount()
	if b < 1 || b > count {
		r.raise(L, fmt.Errorf("block %d of %d: %w", b, count, editor.ErrInvalidBlockIndex))
	}
	return b - 1
}

func (r *Runner) unknown(L *lua.LState, what, name string) {
	r.raise(L, fmt.Errorf("%s %q: %w", what, name, ErrUnknownName))
}

func (r *Runner) toggle(L *lua.LState) error {
	name := L.CheckString(1)
	toggles := map[string]func() error{
		"bold":      r.ed.ToggleBold,
		"italic":    r.ed.ToggleItalic,
		"code":      r.ed.ToggleCode,
		"strike":    r.ed.ToggleStrikethrough,
		"underline": r.ed.ToggleUnderline,
		"highlight": r.ed.ToggleHighlight,
	}
	fn, ok := toggles[name]
	if !ok {
		r.unknown(L, "style", name)
	}
	return fn()
}

func (r *Runner) blockType(L *lua.LState) error {
	name := L.CheckString(1)
	var t document.BlockType
	switch name {
	case "paragraph":
		t = document.ParagraphType()
	case "heading":
		t = document.HeadingType(L.OptInt(2, 1))
	case "code", "code_block":
		t = document.CodeBlockType(L.OptString(2, ""))
	case "quote", "block_quote":
		t = document.BlockQuoteType()
	case "bullet":
		t = document.BulletType()
	case "ordered":
		t = document.OrderedType(uint64(max(L.OptInt(2, 1), 1)))
	case "checklist":
		t = document.ChecklistType(L.OptBool(2, false))
	default:
		r.unknown(L, "block type", name)
	}
	return r.ed.SetBlockType(t)
}

func (r *Runner) move(L *lua.LState) error {
	ed := r.ed
	motions := map[string]motion{
		"left":       {ed.MoveLeft, ed.MoveLeftExtend},
		"right":      {ed.MoveRight, ed.MoveRightExtend},
		"up":         {ed.MoveUp, ed.MoveUpExtend},
		"down":       {ed.MoveDown, ed.MoveDownExtend},
		"home":       {ed.MoveLineStart, ed.MoveLineStartExtend},
		"end":        {ed.MoveLineEnd, ed.MoveLineEndExtend},
		"word_left":  {ed.MoveWordLeft, ed.MoveWordLeftExtend},
		"word_right": {ed.MoveWordRight, ed.MoveWordRightExtend},
		"doc_start":  {ed.MoveDocumentStart, ed.MoveDocumentStartExtend},
		"doc_end":    {ed.MoveDocumentEnd, ed.MoveDocumentEndExtend},
	}
	dir := L.CheckString(1)
	m, ok := motions[dir]
	if !ok {
		r.unknown(L, "direction", dir)
	}
	if L.OptBool(2, false) {
		m.extend()
	} else {
		m.move()
	}
	return nil
}

func (r *Runner) setCursor(L *lua.LState) error {
	b := r.blockArg(L, 1)
	r.ed.SetCursor(document.Pos(b, L.OptInt(2, 0)))
	return nil
}

func (r *Runner) selectRange(L *lua.LState) error {
	anchor := document.Pos(r.blockArg(L, 1), L.CheckInt(2))
	head := document.Pos(r.blockArg(L, 3), L.CheckInt(4))
	r.ed.SetSelection(anchor, head)
	return nil
}

func (r *Runner) link(L *lua.LState) error {
	dest := L.CheckString(1)
	text := L.OptString(2, "")
	if r.ed.HasSelection() {
		return r.ed.ReplaceSelectionWithLink(dest, text)
	}
	return r.ed.InsertLink(dest, text)
}

// paste inserts its argument, or the clipboard contents when called with
// none.
func (r *Runner) paste(L *lua.LState) error {
	if L.GetTop() >= 1 {
		return r.ed.Paste(L.CheckString(1))
	}
	if r.cb == nil {
		return nil
	}
	text, err := r.cb.ReadAll()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return r.ed.Paste(text)
}

func (r *Runner) check(L *lua.LState) int {
	ok, err := r.ed.ToggleCurrentCheckmark()
	r.raise(L, err)
	L.Push(lua.LBool(ok))
	return 1
}

func (r *Runner) copy(L *lua.LState) int {
	text := r.ed.Copy()
	if text != "" && r.cb != nil {
		r.raise(L, r.cb.WriteAll(text))
	}
	L.Push(lua.LString(text))
	return 1
}

func (r *Runner) cut(L *lua.LState) int {
	text := r.ed.SelectionText()
	if text != "" && r.cb != nil {
		r.raise(L, r.cb.WriteAll(text))
	}
	text, err := r.ed.Cut()
	r.raise(L, err)
	L.Push(lua.LString(text))
	return 1
}

func (r *Runner) text(L *lua.LState) int {
	L.Push(lua.LString(r.ed.Document().PlainText()))
	return 1
}

func (r *Runner) blockText(L *lua.LState) int {
	blk, _ := r.ed.Document().Block(r.blockArg(L, 1))
	L.Push(lua.LString(blk.PlainText()))
	return 1
}

func (r *Runner) selectAll(*lua.LState) int {
	r.ed.SelectAll()
	return 0
}

func (r *Runner) selectWord(*lua.LState) int {
	r.ed.SelectWordAt(r.ed.Cursor())
	return 0
}

// cursor returns the 1-based block and 0-based offset of the cursor.
func (r *Runner) cursor(L *lua.LState) int {
	p := r.ed.Cursor()
	L.Push(lua.LNumber(p.Block + 1))
	L.Push(lua.LNumber(p.Offset))
	return 2
}

func (r *Runner) selectionText(L *lua.LState) int {
	L.Push(lua.LString(r.ed.SelectionText()))
	return 1
}

func (r *Runner) markdown(L *lua.LState) int {
	L.Push(lua.LString(markdown.Serialize(r.ed.Document(), r.mdOpts...)))
	return 1
}

func (r *Runner) blockCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.ed.Document().BlockCount()))
	return 1
}
