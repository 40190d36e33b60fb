package tui

import (
	"github.com/gdamore/tcell/v2"
)

// motion pairs a plain movement with its selection-extending form.
type motion struct {
	move, extend func()
}

func (v *View) handleKey(ev *tcell.EventKey) {
	ed := v.ed
	mod := ev.Modifiers()
	shift := mod&tcell.ModShift != 0
	word := mod&(tcell.ModCtrl|tcell.ModAlt) != 0
	alt := mod&tcell.ModAlt != 0

	run := func(m motion) {
		if shift {
			m.extend()
		} else {
			m.move()
		}
		v.status = ""
	}

	switch ev.Key() {
	case tcell.KeyRune:
		if alt {
			return
		}
		v.edit(func() error { return ed.InsertText(string(ev.Rune())) })
	case tcell.KeyEnter:
		v.edit(ed.InsertNewline)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		// Ctrl-H and backspace can share a key code; only a Ctrl-modified
		// one cycles headings.
		if ev.Key() == tcell.KeyBackspace && mod&tcell.ModCtrl != 0 {
			v.edit(ed.ToggleHeading)
		} else if alt {
			v.edit(ed.DeleteWordBackward)
		} else {
			v.edit(ed.DeleteBackward)
		}
	case tcell.KeyDelete:
		if alt {
			v.edit(ed.DeleteWordForward)
		} else {
			v.edit(ed.DeleteForward)
		}

	case tcell.KeyLeft:
		if word {
			run(motion{ed.MoveWordLeft, ed.MoveWordLeftExtend})
		} else {
			run(motion{ed.MoveLeft, ed.MoveLeftExtend})
		}
	case tcell.KeyRight:
		if word {
			run(motion{ed.MoveWordRight, ed.MoveWordRightExtend})
		} else {
			run(motion{ed.MoveRight, ed.MoveRightExtend})
		}
	case tcell.KeyUp:
		run(motion{ed.MoveUp, ed.MoveUpExtend})
	case tcell.KeyDown:
		run(motion{ed.MoveDown, ed.MoveDownExtend})
	case tcell.KeyHome:
		if mod&tcell.ModCtrl != 0 {
			run(motion{ed.MoveDocumentStart, ed.MoveDocumentStartExtend})
		} else {
			run(motion{ed.MoveLineStart, ed.MoveLineStartExtend})
		}
	case tcell.KeyEnd:
		if mod&tcell.ModCtrl != 0 {
			run(motion{ed.MoveDocumentEnd, ed.MoveDocumentEndExtend})
		} else {
			run(motion{ed.MoveLineEnd, ed.MoveLineEndExtend})
		}

	case tcell.KeyCtrlA:
		ed.SelectAll()
	case tcell.KeyCtrlB:
		v.edit(ed.ToggleBold)
	case tcell.KeyCtrlT:
		v.edit(ed.ToggleItalic)
	case tcell.KeyCtrlU:
		v.edit(ed.ToggleUnderline)
	case tcell.KeyCtrlK:
		v.edit(ed.ToggleCode)
	case tcell.KeyCtrlL:
		v.edit(ed.ToggleList)
	case tcell.KeyCtrlO:
		v.edit(ed.ToggleOrderedList)
	case tcell.KeyCtrlD:
		v.edit(func() error {
			_, err := ed.ToggleCurrentCheckmark()
			return err
		})

	case tcell.KeyCtrlX:
		if ed.HasSelection() {
			v.edit(v.clip.Cut)
		}
	case tcell.KeyCtrlC:
		if err := v.clip.Copy(); err != nil {
			v.status = err.Error()
		}
	case tcell.KeyCtrlV:
		v.edit(v.clip.Paste)
	case tcell.KeyCtrlS:
		v.saveDocument()
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		v.quit = true
	}
}
