package dispatcher

import (
	"errors"
	"testing"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input"
	"github.com/dshills/inkwell/internal/input/key"
)

func typed(r rune) key.Event { return key.NewRuneEvent(r, key.ModNone) }

func ctrl(r rune) key.Event { return key.NewRuneEvent(r, key.ModCtrl) }

func special(k key.Key) key.Event { return key.NewSpecialEvent(k, key.ModNone) }

func TestResolve(t *testing.T) {
	all := execctx.DefaultFeatures()

	tests := []struct {
		name      string
		features  execctx.Features
		ev        key.Event
		st        buffer.State
		want      string
		wantToken string
		wantOK    bool
	}{
		{"open paren", all, typed('('), buffer.CaretState("ab", 1), "pair.open", "(", true},
		{"open quote", all, typed('"'), buffer.CaretState("", 0), "pair.open", "\"", true},
		{"close paren", all, typed(')'), buffer.CaretState("()", 1), "pair.close", ")", true},
		{"wiki open", all, typed('['), buffer.CaretState("x[]", 2), "pair.open", "[[", true},
		{"wiki off", execctx.Features{AutoPair: true}, typed('['), buffer.CaretState("x[]", 2), "pair.open", "[", true},
		{"plain rune", all, typed('a'), buffer.CaretState("", 0), "", "", false},
		{"auto pair off", execctx.Features{UnixKeys: true}, typed('('), buffer.CaretState("", 0), "", "", false},
		{"backspace", all, special(key.KeyBackspace), buffer.CaretState("()", 1), "pair.deleteBackward", "", true},
		{"delete", all, special(key.KeyDelete), buffer.CaretState("()", 1), "pair.deleteForward", "", true},
		{"backspace without auto pair", execctx.Features{UnixKeys: true}, special(key.KeyBackspace), buffer.CaretState("()", 1), "", "", false},
		{"ctrl-h", all, ctrl('h'), buffer.CaretState("()", 1), "pair.deleteBackward", "", true},
		{"ctrl-h without auto pair", execctx.Features{UnixKeys: true}, ctrl('h'), buffer.CaretState("()", 1), "pair.deleteBackward", "", true},
		{"ctrl-d", all, ctrl('d'), buffer.CaretState("()", 1), "pair.deleteForward", "", true},
		{"ctrl-b", all, ctrl('b'), buffer.CaretState("ab", 1), "cursor.left", "", true},
		{"ctrl-f", all, ctrl('f'), buffer.CaretState("ab", 1), "cursor.right", "", true},
		{"ctrl-b without unix keys", execctx.Features{AutoPair: true}, ctrl('b'), buffer.CaretState("ab", 1), "", "", false},
		{"meta-b", all, key.NewRuneEvent('b', key.ModMeta), buffer.NewState("ab", 0, 2), "format.bold", "", true},
		{"alt-b", all, key.NewRuneEvent('b', key.ModAlt), buffer.NewState("ab", 0, 2), "format.bold", "", true},
		{"meta-b without bold", execctx.Features{AutoPair: true}, key.NewRuneEvent('b', key.ModMeta), buffer.CaretState("ab", 1), "", "", false},
		{"invalid selection", all, typed('('), buffer.CaretState("ab", 9), "", "", false},
		{"unbound special", all, special(key.KeyEscape), buffer.CaretState("", 0), "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewWithDefaults()
			d.SetFeatures(tt.features)

			action, ok := d.Resolve(tt.ev, tt.st)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if action.Name != tt.want {
				t.Errorf("Resolve() action = %q, want %q", action.Name, tt.want)
			}
			if tt.wantToken != "" && action.Args.Token != tt.wantToken {
				t.Errorf("Resolve() token = %q, want %q", action.Args.Token, tt.wantToken)
			}
		})
	}
}

func TestDispatchFillsStateWhenUnhandled(t *testing.T) {
	d := NewWithDefaults()
	st := buffer.CaretState("hello", 2)

	r := d.Dispatch(typed('x'), st)
	if r.Handled {
		t.Fatal("typed letter should not be handled")
	}
	if r.Text != st.Text || r.Selection != st.Selection {
		t.Errorf("Dispatch() state = %q %s, want input state", r.Text, r.Selection)
	}
}

func TestDispatchRoutesToHandler(t *testing.T) {
	d := NewWithDefaults()
	var seen input.Action
	d.RegisterHandlerFunc("pair.open", func(a input.Action, ctx *execctx.ExecutionContext) handler.Result {
		seen = a
		return handler.Edit(ctx.State.Text+"!", buffer.Caret(0))
	})

	r := d.Dispatch(typed('('), buffer.CaretState("ab", 1))
	if !r.Handled || r.Text != "ab!" {
		t.Fatalf("Dispatch() = %+v", r)
	}
	if seen.Args.Rune != '(' || seen.Source != input.SourceKeyboard {
		t.Errorf("handler saw %+v", seen)
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := NewWithDefaults()
	st := buffer.CaretState("()", 1)

	r := d.Dispatch(special(key.KeyBackspace), st)
	if r.Handled {
		t.Fatal("expected unhandled result")
	}
	if !errors.Is(r.Error, ErrNoHandler) {
		t.Errorf("Error = %v, want ErrNoHandler", r.Error)
	}
	if r.Text != "()" || r.Selection != buffer.Caret(1) {
		t.Errorf("state changed: %q %s", r.Text, r.Selection)
	}
}

func TestDispatchEmptyAction(t *testing.T) {
	d := NewWithDefaults()
	r := d.DispatchAction(input.Action{}, key.Event{}, buffer.CaretState("", 0))
	if !errors.Is(r.Error, ErrInvalidAction) {
		t.Errorf("Error = %v, want ErrInvalidAction", r.Error)
	}
}

func TestDispatchPanicRecovery(t *testing.T) {
	d := New(DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("pair.open", func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	r := d.Dispatch(typed('('), buffer.CaretState("", 0))
	if r.Handled || !errors.Is(r.Error, ErrPanic) {
		t.Fatalf("Dispatch() = %+v, want recovered panic", r)
	}
	if got := d.Metrics().Totals().Panics; got != 1 {
		t.Errorf("Panics = %d, want 1", got)
	}
}

func TestDispatchRejectsInvalidResult(t *testing.T) {
	d := NewWithDefaults()
	d.RegisterHandlerFunc("pair.open", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Edit("ab", buffer.Caret(5))
	})

	st := buffer.CaretState("xy", 1)
	r := d.Dispatch(typed('('), st)
	if r.Handled || !errors.Is(r.Error, ErrInvalidResult) {
		t.Fatalf("Dispatch() = %+v, want ErrInvalidResult", r)
	}
	if r.Text != "xy" || r.Selection != buffer.Caret(1) {
		t.Errorf("state = %q %s, want input state", r.Text, r.Selection)
	}
}

func TestDispatchPreHookCancels(t *testing.T) {
	d := NewWithDefaults()
	called := false
	d.RegisterHandlerFunc("pair.open", func(input.Action, *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Decline()
	})
	d.RegisterPreHook(hook.NewPreFunc("veto", hook.PriorityUser, func(*input.Action, *execctx.ExecutionContext) bool {
		return false
	}))

	r := d.Dispatch(typed('('), buffer.CaretState("", 0))
	if called {
		t.Error("handler ran after cancellation")
	}
	if r.Handled || r.Status != handler.StatusCancelled {
		t.Errorf("Dispatch() = %+v, want cancelled", r)
	}
	if r.Message != "cancelled by veto" {
		t.Errorf("Message = %q", r.Message)
	}
}

func TestDispatchPostHookSeesResult(t *testing.T) {
	d := NewWithDefaults()
	d.RegisterHandlerFunc("pair.open", func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Edit("()", buffer.Caret(1))
	})
	var got string
	d.RegisterPostHook(hook.NewPostFunc("spy", hook.PriorityUser, func(a *input.Action, _ *execctx.ExecutionContext, r *handler.Result) {
		got = a.Name + ":" + r.Text
	}))

	d.Dispatch(typed('('), buffer.CaretState("", 0))
	if got != "pair.open:()" {
		t.Errorf("post hook saw %q", got)
	}
}

func TestDispatchReadOnlyContext(t *testing.T) {
	d := NewWithDefaults()
	d.SetReadOnly(true)
	var ro bool
	d.RegisterHandlerFunc("pair.open", func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		ro = ctx.ReadOnly
		return handler.Decline()
	})
	d.Dispatch(typed('('), buffer.CaretState("", 0))
	if !ro {
		t.Error("context was not marked read-only")
	}
}

func TestDispatchMetrics(t *testing.T) {
	d := New(DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("pair.open", func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Edit("()", buffer.Caret(1))
	})

	d.Dispatch(typed('('), buffer.CaretState("", 0))
	d.Dispatch(typed('('), buffer.CaretState("", 0))
	d.Dispatch(typed('x'), buffer.CaretState("", 0))

	totals := d.Metrics().Totals()
	if totals.Dispatches != 2 || totals.Handled != 2 || totals.Unbound != 1 {
		t.Errorf("Totals() = %+v", totals)
	}
	stats := d.Metrics().ActionStats("pair.open")
	if stats == nil || stats.Dispatches != 2 || stats.LastHandled.IsZero() {
		t.Errorf("ActionStats() = %+v", stats)
	}
}

func TestMetricsDisabledByDefault(t *testing.T) {
	if NewWithDefaults().Metrics() != nil {
		t.Error("metrics should be nil unless enabled")
	}
}

func TestDispatchTagsAction(t *testing.T) {
	d := NewWithDefaults()
	d.RegisterHandlerFunc("pair.open", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Edit("()", buffer.Caret(1))
	})
	r := d.Dispatch(typed('('), buffer.CaretState("", 0))
	if got := r.GetDataString("action"); got != "pair.open" {
		t.Errorf("action data = %q, want pair.open", got)
	}
}
