package dispatcher

import (
	"reflect"
	"testing"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/input"
)

func named(msg string, priority int) handler.Handler {
	return handler.NewHandlerFuncWithPriority(func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.DeclineWithMessage(msg)
	}, priority)
}

func messageOf(h handler.Handler) string {
	if h == nil {
		return "<nil>"
	}
	return h.Handle(input.Action{Name: "x"}, nil).Message
}

type stubNamespace struct {
	name    string
	actions map[string]bool
}

func (s *stubNamespace) Namespace() string            { return s.name }
func (s *stubNamespace) CanHandle(action string) bool { return s.actions[action] }
func (s *stubNamespace) HandleAction(action input.Action, _ *execctx.ExecutionContext) handler.Result {
	return handler.DeclineWithMessage("ns:" + action.Name)
}

func TestRouterPrecedence(t *testing.T) {
	r := NewRouter()
	r.RegisterNamespace("pair", &stubNamespace{name: "pair", actions: map[string]bool{"pair.open": true, "pair.close": true}})
	r.Register("pair.close", named("exact", 0))
	r.SetFallback(named("fallback", 0))

	if got := r.Route("pair.close"); messageOf(got) != "exact" {
		t.Errorf("Route(pair.close) = %s, want exact", messageOf(got))
	}
	if got := r.Route("pair.open"); got == nil || got.Handle(input.Action{Name: "pair.open"}, nil).Message != "ns:pair.open" {
		t.Error("Route(pair.open) did not reach the namespace handler")
	}
	if got := r.Route("pair.unknown"); messageOf(got) != "fallback" {
		t.Errorf("Route(pair.unknown) = %s, want fallback", messageOf(got))
	}
	if got := r.Route("nodot"); messageOf(got) != "fallback" {
		t.Errorf("Route(nodot) = %s, want fallback", messageOf(got))
	}

	r.SetFallback(nil)
	if r.CanRoute("format.bold") {
		t.Error("CanRoute(format.bold) = true without a handler")
	}
}

func TestRouterExactPriority(t *testing.T) {
	r := NewRouter()
	r.Register("a.b", named("low", 1))
	r.Register("a.b", named("high", 5))
	r.Register("a.b", named("high-later", 5))

	if got := messageOf(r.Route("a.b")); got != "high" {
		t.Errorf("Route(a.b) = %s, want high", got)
	}
	r.Unregister("a.b")
	if r.Route("a.b") != nil {
		t.Error("Unregister left a handler")
	}
}

func TestRouterListing(t *testing.T) {
	r := NewRouter()
	r.RegisterNamespace("pair", &stubNamespace{name: "pair"})
	r.RegisterNamespace("cursor", &stubNamespace{name: "cursor"})
	r.Register("z.last", named("", 0))
	r.Register("a.first", named("", 0))

	if got := r.Namespaces(); !reflect.DeepEqual(got, []string{"cursor", "pair"}) {
		t.Errorf("Namespaces() = %v", got)
	}
	if got := r.Actions(); !reflect.DeepEqual(got, []string{"a.first", "z.last"}) {
		t.Errorf("Actions() = %v", got)
	}
	if r.Namespace("pair") == nil || r.Namespace("nope") != nil {
		t.Error("Namespace() lookup wrong")
	}
	r.UnregisterNamespace("pair")
	if r.Namespace("pair") != nil {
		t.Error("UnregisterNamespace left the handler")
	}
}

func TestNamespaceOf(t *testing.T) {
	for in, want := range map[string]string{
		"pair.open":        "pair",
		"pair.open.nested": "pair",
		"plain":            "",
		".x":               "",
	} {
		if got := namespaceOf(in); got != want {
			t.Errorf("namespaceOf(%q) = %q, want %q", in, got, want)
		}
	}
}
