package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/richdoc/internal/clipboard"
	"github.com/dshills/richdoc/internal/engine/document"
	"github.com/dshills/richdoc/internal/engine/editor"
)

func newRunner(text string, opts ...Option) (*Runner, *editor.Editor, *bytes.Buffer) {
	ed := editor.New(editor.WithDocument(document.NewDocumentWithParagraph(text)))
	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out)}, opts...)
	return NewRunner(ed, opts...), ed, &out
}

func TestRunBuildsDocument(t *testing.T) {
	r, _, out := newRunner("")
	code := `
doc.insert("Title")
doc.block_type("heading", 1)
doc.newline()
doc.insert("hello world")
doc.select(2, 6, 2, 11)
doc.toggle("bold")
print(doc.markdown())
`
	if err := r.Run(context.Background(), "", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "# Title\n\nhello **world**\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunCursorAndQueries(t *testing.T) {
	r, _, out := newRunner("one two")
	code := `
doc.move("doc_end")
local b, o = doc.cursor()
print(b, o)
doc.move("word_left", true)
print(doc.selection_text())
doc.set_cursor(1, 3)
doc.newline()
print(doc.block_count(), doc.block_text(2))
print(doc.text())
`
	if err := r.Run(context.Background(), "test", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "1\t7\ntwo\n2\t two\none\n\n two\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunChecklist(t *testing.T) {
	r, ed, out := newRunner("task")
	code := `
doc.block_type("checklist")
print(doc.check())
`
	if err := r.Run(context.Background(), "", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "true\n" {
		t.Errorf("output = %q", got)
	}
	blk, _ := ed.Document().Block(0)
	if blk.Type != document.ChecklistType(true) {
		t.Errorf("type = %s, want checked item", blk.Type)
	}
}

func TestRunLink(t *testing.T) {
	r, _, out := newRunner("see docs")
	code := `
doc.select(1, 4, 1, 8)
doc.link("https://example.com")
print(doc.markdown())
`
	if err := r.Run(context.Background(), "", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "see [docs](https://example.com)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunClipboard(t *testing.T) {
	cb := &clipboard.Memory{}
	r, ed, _ := newRunner("abc", WithClipboard(cb))
	code := `
doc.select(1, 0, 1, 1)
doc.cut()
doc.move("doc_end")
doc.paste()
doc.paste("!")
`
	if err := r.Run(context.Background(), "", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, _ := cb.ReadAll(); got != "a" {
		t.Errorf("clipboard = %q, want %q", got, "a")
	}
	if got := ed.Document().PlainText(); got != "bca!" {
		t.Errorf("text = %q, want %q", got, "bca!")
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
		want error
	}{
		{"unknown block type", "x", `doc.block_type("table")`, ErrUnknownName},
		{"unknown style", "x", `doc.toggle("blink")`, ErrUnknownName},
		{"unknown direction", "x", `doc.move("sideways")`, ErrUnknownName},
		{"block out of range", "x", `doc.block_text(5)`, editor.ErrInvalidBlockIndex},
		{"select out of range", "x", `doc.select(1, 0, 0, 0)`, editor.ErrInvalidBlockIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newRunner(tt.text)
			err := r.Run(context.Background(), "bad.lua", tt.code)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run error = %v, want %v", err, tt.want)
			}
			var serr *Error
			if !errors.As(err, &serr) || serr.Source != "bad.lua" {
				t.Errorf("error %v is not a script error for bad.lua", err)
			}
		})
	}
}

func TestRunEditorErrorOnEmptyDocument(t *testing.T) {
	ed := editor.New(editor.WithDocument(document.NewDocument()))
	r := NewRunner(ed)
	err := r.Run(context.Background(), "", `doc.backspace()`)
	if !errors.Is(err, editor.ErrEmptyDocument) {
		t.Fatalf("Run error = %v, want ErrEmptyDocument", err)
	}
	if !strings.HasPrefix(err.Error(), "<string>: ") {
		t.Errorf("error = %q, want source prefix", err)
	}
}

func TestRunCaughtVerbErrorDoesNotLeak(t *testing.T) {
	r, _, _ := newRunner("x")
	code := `
pcall(doc.toggle, "blink")
error("later failure")
`
	err := r.Run(context.Background(), "", code)
	if err == nil {
		t.Fatal("Run should fail")
	}
	if errors.Is(err, ErrUnknownName) {
		t.Errorf("error %v reports the caught failure", err)
	}
}

func TestRunSyntaxError(t *testing.T) {
	r, _, _ := newRunner("x")
	err := r.Run(context.Background(), "", `doc.insert(`)
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("Run error = %v, want *Error", err)
	}
}

func TestRunTimeout(t *testing.T) {
	r, _, _ := newRunner("x", WithTimeout(50*time.Millisecond))
	start := time.Now()
	err := r.Run(context.Background(), "", `while true do end`)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Run error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

func TestRunCancelledContext(t *testing.T) {
	r, _, _ := newRunner("x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx, "", `for i = 1, 100 do end`)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestSandbox(t *testing.T) {
	r, _, out := newRunner("")
	code := `
print(io == nil, os == nil, require == nil, load == nil, dofile == nil, loadstring == nil)
print(string.upper("ok"), math.max(1, 3), table.concat({"a", "b"}, ","))
`
	if err := r.Run(context.Background(), "", code); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "true\ttrue\ttrue\ttrue\ttrue\ttrue\nOK\t3\ta,b\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.lua")
	if err := os.WriteFile(path, []byte(`doc.insert("hi ")`), 0o644); err != nil {
		t.Fatal(err)
	}
	r, ed, _ := newRunner("there")
	if err := r.RunFile(context.Background(), path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got := ed.Document().PlainText(); got != "hi there" {
		t.Errorf("text = %q", got)
	}

	err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("RunFile missing error = %v", err)
	}
}
