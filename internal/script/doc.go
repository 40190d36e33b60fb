// Package script runs Lua scripts against an editor.
//
// Each run gets a fresh sandboxed gopher-lua state with only the base,
// table, string and math libraries. File loading, dynamic code loading and
// require are removed, and print writes to the runner's output instead of
// stdout. A run is bounded by a timeout through LState.SetContext.
//
// Scripts drive the editor through the global doc table:
//
//	doc.insert("Title")
//	doc.block_type("heading", 1)
//	doc.newline()
//	doc.insert("some ")
//	doc.toggle("bold")            -- no-op without a selection
//	doc.select(2, 0, 2, 4)
//	doc.toggle("bold")
//	print(doc.markdown())
//
// Block numbers are 1-based, following Lua convention. Offsets are 0-based
// byte offsets into the block's flattened text, snapped to grapheme
// boundaries by the editor.
//
// An editing verb that fails raises a Lua error. Run reports any failure as
// an *Error that names the script and wraps the cause, so errors.Is still
// matches editor sentinels such as editor.ErrEmptyDocument.
package script
