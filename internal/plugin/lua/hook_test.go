package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/inkwell/internal/dispatcher"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input/key"
)

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) add(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(msg, args...))
}

func (l *recordLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args...) }
func (l *recordLogger) Info(msg string, args ...any)  { l.add("INFO", msg, args...) }
func (l *recordLogger) Warn(msg string, args ...any)  { l.add("WARN", msg, args...) }
func (l *recordLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args...) }

func (l *recordLogger) contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

func systemWith(t *testing.T, source string, opts ...HookOption) (*dispatcher.System, *KeyHook) {
	t.Helper()
	h, err := NewKeyHook("test", source, opts...)
	if err != nil {
		t.Fatalf("NewKeyHook() error = %v", err)
	}
	t.Cleanup(func() { h.Close() })

	sys := dispatcher.NewSystemWithDefaults()
	if !sys.RegisterHook(h) {
		t.Fatal("RegisterHook() = false")
	}
	return sys, h
}

func TestKeyHookIdentity(t *testing.T) {
	_, h := systemWith(t, `function on_key() end`)
	if h.Name() != "lua:test" {
		t.Errorf("Name() = %q, want lua:test", h.Name())
	}
	if h.Priority() != hook.PriorityPlugin {
		t.Errorf("Priority() = %d, want %d", h.Priority(), hook.PriorityPlugin)
	}

	h2, err := NewKeyHook("p", `function on_key() end`, WithPriority(5))
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()
	if h2.Priority() != 5 {
		t.Errorf("Priority() = %d, want 5", h2.Priority())
	}
}

func TestKeyHookCancels(t *testing.T) {
	sys, _ := systemWith(t, `
function on_key(keys, text, start, finish, action)
    if action == "pair.open" and keys == "(" then
        return false
    end
    if action == "format.bold" then
        return {cancel = true}
    end
end
`)

	r := sys.Dispatch(key.NewRuneEvent('(', key.ModNone), buffer.CaretState("ab", 1))
	if r.Status != handler.StatusCancelled || r.Handled {
		t.Errorf("'(' = %s handled=%v, want cancelled and unhandled", r.Status, r.Handled)
	}
	if r.Text != "ab" || r.Selection != buffer.Caret(1) {
		t.Errorf("'(' changed state to %q %v", r.Text, r.Selection)
	}

	r = sys.Dispatch(key.NewRuneEvent('b', key.ModMeta), buffer.CaretState("ab", 1))
	if r.Status != handler.StatusCancelled {
		t.Errorf("D-b status = %s, want cancelled", r.Status)
	}

	r = sys.Dispatch(key.NewRuneEvent('[', key.ModNone), buffer.CaretState("ab", 1))
	if !r.Handled || r.Text != "a[]b" {
		t.Errorf("'[' = %q handled=%v, want a[]b handled", r.Text, r.Handled)
	}
}

func TestKeyHookSeesState(t *testing.T) {
	logger := &recordLogger{}
	sys, _ := systemWith(t, `
function on_key(keys, text, start, finish, action)
    local f = inkwell.features()
    inkwell.log(string.format("%s|%s|%d|%d|%s|%s|%s", keys, text, start, finish, action, tostring(f.wikiLinks), inkwell.selected()))
end
`, WithLogger(logger))

	sys.Dispatch(key.NewSpecialEvent(key.KeyBackspace, key.ModNone), buffer.NewState("x(yz)", 2, 4))

	want := "<BS>|x(yz)|2|4|pair.deleteBackward|true|yz"
	if !logger.contains(want) {
		t.Errorf("log = %v, want a line containing %q", logger.lines, want)
	}
}

func TestKeyHookOnEdit(t *testing.T) {
	logger := &recordLogger{}
	sys, _ := systemWith(t, `
edits = 0
function on_edit(action, text, start, finish)
    edits = edits + 1
    inkwell.log(action .. " " .. text .. " " .. start .. " " .. finish)
end
`, WithLogger(logger))

	sys.Dispatch(key.NewRuneEvent('(', key.ModNone), buffer.CaretState("", 0))
	sys.Dispatch(key.NewRuneEvent('x', key.ModNone), buffer.CaretState("", 0))

	if !logger.contains("pair.open () 1 1") {
		t.Errorf("log = %v, want the pair.open edit", logger.lines)
	}
	if logger.contains("x ") {
		t.Errorf("on_edit ran for a declined key: %v", logger.lines)
	}
}

func TestKeyHookErrorsFailOpen(t *testing.T) {
	logger := &recordLogger{}
	sys, _ := systemWith(t, `function on_key() error("broken hook") end`, WithLogger(logger))

	r := sys.Dispatch(key.NewRuneEvent('(', key.ModNone), buffer.CaretState("", 0))
	if !r.Handled || r.Text != "()" {
		t.Errorf("'(' = %q handled=%v, want () handled", r.Text, r.Handled)
	}
	if !logger.contains("broken hook") {
		t.Errorf("log = %v, want the script error", logger.lines)
	}
}

func TestKeyHookLimitFailsOpen(t *testing.T) {
	logger := &recordLogger{}
	sys, _ := systemWith(t, `
function on_key(keys, text)
    for i = 1, 10 do inkwell.rune_len(text) end
    return false
end
`, WithLogger(logger), WithStateOptions(WithInstructionLimit(4)))

	r := sys.Dispatch(key.NewRuneEvent('(', key.ModNone), buffer.CaretState("", 0))
	if !r.Handled {
		t.Errorf("'(' status = %s, want handled after the hook ran out of budget", r.Status)
	}
	if !logger.contains(ErrInstructionLimit.Error()) {
		t.Errorf("log = %v, want the instruction limit error", logger.lines)
	}
}

func TestLoadKeyHook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guard.lua")
	if err := os.WriteFile(path, []byte(`function on_key(keys) return keys ~= "<BS>" end`), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := LoadKeyHook(path)
	if err != nil {
		t.Fatalf("LoadKeyHook() error = %v", err)
	}
	defer h.Close()
	if h.Name() != "lua:guard" {
		t.Errorf("Name() = %q, want lua:guard", h.Name())
	}

	sys := dispatcher.NewSystemWithDefaults()
	sys.RegisterHook(h)
	r := sys.Dispatch(key.NewSpecialEvent(key.KeyBackspace, key.ModNone), buffer.CaretState("()", 1))
	if r.Status != handler.StatusCancelled {
		t.Errorf("BS status = %s, want cancelled", r.Status)
	}
}

func TestLoadKeyHookErrors(t *testing.T) {
	if _, err := LoadKeyHook(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("LoadKeyHook() on a missing file should fail")
	}

	_, err := NewKeyHook("bad", `function on_key(`)
	var serr *ScriptError
	if err == nil || !errors.As(err, &serr) || serr.Script != "lua:bad" {
		t.Errorf("NewKeyHook() error = %v, want a ScriptError for lua:bad", err)
	}
}
