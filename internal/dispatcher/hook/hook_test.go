package hook_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input"
	"github.com/dshills/inkwell/internal/input/key"
)

func newCtx() *execctx.ExecutionContext {
	return execctx.New(buffer.CaretState("ab", 1), key.NewRuneEvent('(', key.ModNone))
}

type recordLogger struct {
	lines []string
}

func (l *recordLogger) log(level, msg string, args ...any) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(msg, args...))
}
func (l *recordLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }

func TestFuncAdapters(t *testing.T) {
	pre := hook.NewPreFunc("pre", 7, func(a *input.Action, _ *execctx.ExecutionContext) bool {
		return a.Name != "blocked"
	})
	if pre.Name() != "pre" || pre.Priority() != 7 {
		t.Errorf("got %q/%d", pre.Name(), pre.Priority())
	}
	if !pre.PreDispatch(&input.Action{Name: "ok"}, newCtx()) {
		t.Error("PreDispatch(ok) = false")
	}
	if pre.PreDispatch(&input.Action{Name: "blocked"}, newCtx()) {
		t.Error("PreDispatch(blocked) = true")
	}
	if !hook.NewPreFunc("nil", 0, nil).PreDispatch(&input.Action{}, newCtx()) {
		t.Error("nil pre func cancelled")
	}

	var seen string
	post := hook.NewPostFunc("post", 3, func(a *input.Action, _ *execctx.ExecutionContext, r *handler.Result) {
		seen = a.Name + ":" + r.Status.String()
	})
	r := handler.Decline()
	post.PostDispatch(&input.Action{Name: "x"}, newCtx(), &r)
	if seen != "x:declined" {
		t.Errorf("seen = %q", seen)
	}
}

func TestManagerOrdering(t *testing.T) {
	m := hook.NewManager()
	var order []string
	add := func(name string, priority int) {
		m.RegisterPre(hook.NewPreFunc(name, priority, func(*input.Action, *execctx.ExecutionContext) bool {
			order = append(order, "pre:"+name)
			return true
		}))
		m.RegisterPost(hook.NewPostFunc(name, priority, func(*input.Action, *execctx.ExecutionContext, *handler.Result) {
			order = append(order, "post:"+name)
		}))
	}
	add("low", 0)
	add("high", 100)
	add("mid-a", 50)
	add("mid-b", 50)

	if got := m.PreHookNames(); !reflect.DeepEqual(got, []string{"high", "mid-a", "mid-b", "low"}) {
		t.Errorf("PreHookNames() = %v", got)
	}
	if got := m.PostHookNames(); !reflect.DeepEqual(got, []string{"low", "mid-a", "mid-b", "high"}) {
		t.Errorf("PostHookNames() = %v", got)
	}

	action := &input.Action{Name: "pair.open"}
	ctx := newCtx()
	ok, _ := m.RunPreDispatch(action, ctx)
	r := handler.Decline()
	m.RunPostDispatch(action, ctx, &r)
	if !ok {
		t.Fatal("RunPreDispatch cancelled")
	}
	want := []string{"pre:high", "pre:mid-a", "pre:mid-b", "pre:low", "post:low", "post:mid-a", "post:mid-b", "post:high"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v\nwant    %v", order, want)
	}
}

func TestManagerReplaceAndUnregister(t *testing.T) {
	m := hook.NewManager()
	m.RegisterPre(hook.NewPreFunc("a", 10, nil))
	m.RegisterPre(hook.NewPreFunc("b", 5, nil))
	m.RegisterPre(hook.NewPreFunc("a", 1, nil))

	if got := m.PreHookNames(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("after replace PreHookNames() = %v", got)
	}
	if !m.Unregister("a") {
		t.Error("Unregister(a) = false")
	}
	if m.Unregister("missing") {
		t.Error("Unregister(missing) = true")
	}
	if pre, post := m.Len(); pre != 1 || post != 0 {
		t.Errorf("Len() = %d, %d", pre, post)
	}
	m.Clear()
	if pre, _ := m.Len(); pre != 0 {
		t.Error("Clear() left hooks")
	}
}

func TestManagerCancel(t *testing.T) {
	m := hook.NewManager()
	ran := false
	m.RegisterPre(hook.NewPreFunc("stop", 10, func(*input.Action, *execctx.ExecutionContext) bool { return false }))
	m.RegisterPre(hook.NewPreFunc("later", 0, func(*input.Action, *execctx.ExecutionContext) bool {
		ran = true
		return true
	}))
	ok, by := m.RunPreDispatch(&input.Action{Name: "x"}, newCtx())
	if ok || by != "stop" {
		t.Errorf("RunPreDispatch() = %v, %q", ok, by)
	}
	if ran {
		t.Error("hook after cancel ran")
	}
}

func TestRegisterBothKinds(t *testing.T) {
	m := hook.NewManager()
	if !m.Register(hook.NewAuditHook(nil)) {
		t.Fatal("Register(audit) = false")
	}
	if pre, post := m.Len(); pre != 1 || post != 1 {
		t.Errorf("Len() = %d, %d, want 1, 1", pre, post)
	}
}

func TestAuditHook(t *testing.T) {
	l := &recordLogger{}
	h := hook.NewAuditHook(l)
	action := &input.Action{Name: "pair.open"}
	ctx := newCtx()
	h.PreDispatch(action, ctx)
	r := handler.Edit("a()b", buffer.Caret(2))
	h.PostDispatch(action, ctx, &r)
	r = handler.Errorf("boom")
	h.PostDispatch(action, ctx, &r)

	if len(l.lines) != 3 {
		t.Fatalf("lines = %v", l.lines)
	}
	if !strings.Contains(l.lines[0], "dispatch pair.open") {
		t.Errorf("pre line = %q", l.lines[0])
	}
	if !strings.Contains(l.lines[1], "handled=true") {
		t.Errorf("post line = %q", l.lines[1])
	}
	if !strings.HasPrefix(l.lines[2], "ERROR") || !strings.Contains(l.lines[2], "boom") {
		t.Errorf("error line = %q", l.lines[2])
	}
}

func TestReadOnlyHook(t *testing.T) {
	h := hook.NewReadOnlyHook()
	ctx := newCtx()
	if !h.PreDispatch(&input.Action{Name: "pair.open"}, ctx) {
		t.Error("writable context cancelled")
	}
	ctx.ReadOnly = true
	if h.PreDispatch(&input.Action{Name: "pair.open"}, ctx) {
		t.Error("edit on read-only context passed")
	}
	if !h.PreDispatch(&input.Action{Name: "cursor.left"}, ctx) {
		t.Error("movement on read-only context cancelled")
	}
}

func TestTimingHook(t *testing.T) {
	var got string
	var elapsed time.Duration = -1
	h := hook.NewTimingHook(func(action string, d time.Duration) {
		got = action
		elapsed = d
	})
	action := &input.Action{Name: "format.bold"}
	ctx := newCtx()
	r := handler.Decline()

	h.PostDispatch(action, ctx, &r)
	if got != "" {
		t.Error("callback ran without a start time")
	}

	h.PreDispatch(action, ctx)
	h.PostDispatch(action, ctx, &r)
	if got != "format.bold" || elapsed < 0 {
		t.Errorf("callback got %q %v", got, elapsed)
	}
}

func TestDisabledActions(t *testing.T) {
	h := hook.DisabledActions([]string{"format.bold"})
	if h.Name() != "disabled-actions" || h.Priority() != hook.PriorityValidation {
		t.Errorf("got %q/%d", h.Name(), h.Priority())
	}
	if h.PreDispatch(&input.Action{Name: "format.bold"}, newCtx()) {
		t.Error("disabled action passed")
	}
	if !h.PreDispatch(&input.Action{Name: "pair.open"}, newCtx()) {
		t.Error("enabled action cancelled")
	}
}
