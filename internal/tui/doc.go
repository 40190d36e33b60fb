// Package tui is a terminal editor for rich documents built on tcell.
//
// A View draws an editor's document one block after another. Each block
// starts with a marker for its type:
//
//	# Heading          heading, one # per level
//	> quoted           block quote
//	• item             bullet item
//	3. item            ordered item
//	[ ] task           checklist item, [x] when checked
//	│ code             code block gutter
//
// Rows wrap at grapheme boundaries using each cluster's display width.
// Inline styles map onto terminal attributes: bold, italic, underline and
// strikethrough directly, code as reverse video and highlight as a yellow
// background. The selection is drawn by flipping reverse video.
//
// Keys:
//
//	printable          insert
//	Enter              new block
//	Backspace/Delete   delete a grapheme, a word with Alt
//	arrows Home End    move; Shift extends, Ctrl or Alt moves by word
//	Ctrl-Home/End      document start and end
//	Ctrl-A             select all
//	Ctrl-B Ctrl-T      bold, italic
//	Ctrl-U Ctrl-K      underline, inline code
//	Ctrl-H             cycle heading level
//	Ctrl-L Ctrl-O      bullet list, ordered list
//	Ctrl-D             toggle the checkbox under the cursor
//	Ctrl-X/C/V         cut, copy, paste
//	Ctrl-S             save
//	Ctrl-Q Esc         quit
//
// NotifyFileChanged posts an interrupt event from any goroutine. When it
// arrives the document is reloaded, unless the buffer has unsaved edits.
package tui
