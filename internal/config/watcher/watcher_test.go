package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
		return Event{}
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkwell.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ch := make(chan Event, 4)
	w, err := New(path, func(ev Event) { ch <- ev }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ev := waitEvent(t, ch)
	if ev.Path != w.Path() {
		t.Errorf("Path = %q, want %q", ev.Path, w.Path())
	}
	if ev.Op&OpWrite == 0 && ev.Op&OpCreate == 0 {
		t.Errorf("Op = %s, want write or create", ev.Op)
	}

	select {
	case extra := <-ch:
		t.Errorf("burst reported more than once: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkwell.toml")
	ch := make(chan Event, 1)
	w, err := New(path, func(ev Event) { ch <- ev }, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case ev := <-ch:
		t.Errorf("sibling change reported: %+v", ev)
	case <-time.After(150 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitEvent(t, ch)
}

func TestWatcherClose(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "inkwell.yaml"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close() = %v, want ErrWatcherClosed", err)
	}
}

func TestOpString(t *testing.T) {
	tests := map[Op]string{
		0:                   "none",
		OpWrite:             "write",
		OpCreate | OpWrite:  "create|write",
		OpRemove | OpRename: "remove|rename",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}
