// Package handler defines what the dispatcher calls once a key has been
// resolved to an action, and the Result it gets back.
package handler

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/input"
)

// Handler runs one resolved action against the state in ctx.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle reports whether Handle accepts actionName.
	CanHandle(actionName string) bool

	// Priority orders handlers registered for the same name, highest first.
	Priority() int
}

// Func is the signature shared by handler functions.
type Func func(action input.Action, ctx *execctx.ExecutionContext) Result

// HandlerFunc adapts a Func to Handler. It accepts every action name, so
// it is only reached through the name it was registered under.
type HandlerFunc struct {
	fn   Func
	prio int
}

// NewHandlerFunc wraps fn with priority 0.
func NewHandlerFunc(fn Func) *HandlerFunc {
	return NewHandlerFuncWithPriority(fn, 0)
}

// NewHandlerFuncWithPriority wraps fn.
func NewHandlerFuncWithPriority(fn Func, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler. A nil function yields an error result.
func (f *HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(action, ctx)
}

// CanHandle implements Handler.
func (f *HandlerFunc) CanHandle(string) bool { return true }

// Priority implements Handler.
func (f *HandlerFunc) Priority() int { return f.prio }

// NamespaceHandler serves every action under one prefix, e.g. "pair" for
// "pair.open" and "pair.deleteBackward".
type NamespaceHandler interface {
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
	CanHandle(actionName string) bool
	Namespace() string
}

// NewNamespaceAdapter presents h as a Handler with priority 0.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return namespaceAdapter{h}
}

type namespaceAdapter struct{ NamespaceHandler }

func (a namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.HandleAction(action, ctx)
}

func (namespaceAdapter) Priority() int { return 0 }
