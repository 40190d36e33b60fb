// Package editor implements cursor and selection driven editing on top of a
// document.Document.
//
// An Editor owns a document, a cursor and an optional selection. Every
// user-facing verb lives here: text insertion, block splitting and merging,
// grapheme and word deletion, movement, style toggling, block type changes,
// links and clipboard text.
//
// Selection protocol:
//
//   - Plain movement (MoveLeft, MoveWordRight, ...) clears the selection
//   - Extend variants (MoveLeftExtend, ...) route through ExtendSelectionTo,
//     which keeps an existing anchor or anchors at the cursor
//   - SelectAll, SelectWordAt and SelectLineAt set an explicit range and
//     put the cursor at its end
//   - Inserting or deleting with an active selection deletes it first
//
// Positions passed in are clamped to the document rather than rejected.
// Errors are reserved for mutation preconditions: an empty document where a
// block is required, or a cursor that no longer addresses a block because the
// document was changed underneath the editor.
//
// Basic usage:
//
//	ed := editor.New()
//	ed.InsertText("Hello")
//	ed.InsertNewline()
//	ed.InsertText("World")
//	// ed.Cursor() == document.Pos(1, 5)
//
// An Editor is not safe for concurrent use.
package editor
