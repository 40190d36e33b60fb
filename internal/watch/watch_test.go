package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite | OpRemove, "WRITE|REMOVE"},
		{0, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestEventExists(t *testing.T) {
	tests := []struct {
		op   Op
		want bool
	}{
		{OpWrite, true},
		{OpRemove, false},
		{OpRename, false},
		{OpRename | OpCreate, true},
		{OpRemove | OpCreate | OpWrite, true},
	}
	for _, tt := range tests {
		if got := (Event{Op: tt.op}).Exists(); got != tt.want {
			t.Errorf("Event{%s}.Exists() = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func newWatcher(t *testing.T, path string) *FileWatcher {
	t.Helper()
	w, err := New(path, WithDelay(30*time.Millisecond))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func waitEvent(t *testing.T, w *FileWatcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case err := <-w.Errors():
		t.Fatalf("watch error = %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestFileWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := newWatcher(t, path)

	for _, s := range []string{"b", "c", "d"} {
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ev := waitEvent(t, w)
	if ev.Path != w.Path() {
		t.Errorf("Path = %q, want %q", ev.Path, w.Path())
	}
	if !ev.Op.Has(OpWrite) {
		t.Errorf("Op = %s, want WRITE", ev.Op)
	}
	select {
	case extra := <-w.Events():
		t.Errorf("unexpected second event %s", extra.Op)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	w := newWatcher(t, path)

	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for sibling: %+v", ev)
	case <-time.After(150 * time.Millisecond):
	}

	// The watched file does not need to exist when watching starts.
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	ev := waitEvent(t, w)
	if !ev.Op.Has(OpCreate) || !ev.Exists() {
		t.Errorf("Op = %s, want CREATE", ev.Op)
	}
}

func TestFileWatcherRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := newWatcher(t, path)

	tmp := filepath.Join(dir, "doc.md.tmp")
	if err := os.WriteFile(tmp, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	ev := waitEvent(t, w)
	if !ev.Exists() {
		t.Errorf("Op = %s, file should exist after rename over", ev.Op)
	}
}

func TestFileWatcherRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := newWatcher(t, path)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	ev := waitEvent(t, w)
	if !ev.Op.Has(OpRemove) || ev.Exists() {
		t.Errorf("Op = %s, want REMOVE", ev.Op)
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "doc.md"))
	if !errors.Is(err, ErrPathNotExist) {
		t.Errorf("New error = %v, want ErrPathNotExist", err)
	}
}

func TestFileWatcherClose(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "doc.md"))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("Events should be closed")
	}
	if _, ok := <-w.Errors(); ok {
		t.Error("Errors should be closed")
	}
}
