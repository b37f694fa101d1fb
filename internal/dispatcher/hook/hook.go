package hook

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/input"
)

// Hook is the base interface for all dispatch hooks.
type Hook interface {
	// Name identifies the hook. Names are unique within a Manager.
	Name() string

	// Priority orders the hook relative to others.
	Priority() int
}

// PreDispatchHook runs before the handler.
type PreDispatchHook interface {
	Hook

	// PreDispatch may modify the action or context.
	// Returning false cancels the dispatch.
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook runs after the handler.
type PostDispatchHook interface {
	Hook

	// PostDispatch may inspect or replace the result.
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreFunc adapts a function to PreDispatchHook.
type PreFunc struct {
	name     string
	priority int
	fn       func(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// NewPreFunc creates a pre-dispatch hook from fn. A nil fn never cancels.
func NewPreFunc(name string, priority int, fn func(action *input.Action, ctx *execctx.ExecutionContext) bool) *PreFunc {
	return &PreFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PreFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PreFunc) Priority() int { return f.priority }

// PreDispatch implements PreDispatchHook.
func (f *PreFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f.fn == nil || f.fn(action, ctx)
}

// PostFunc adapts a function to PostDispatchHook.
type PostFunc struct {
	name     string
	priority int
	fn       func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// NewPostFunc creates a post-dispatch hook from fn.
func NewPostFunc(name string, priority int, fn func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)) *PostFunc {
	return &PostFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PostFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PostFunc) Priority() int { return f.priority }

// PostDispatch implements PostDispatchHook.
func (f *PostFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if f.fn != nil {
		f.fn(action, ctx, result)
	}
}
