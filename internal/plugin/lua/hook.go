package lua

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/input"
)

// Script function names.
const (
	FuncOnKey  = "on_key"
	FuncOnEdit = "on_edit"
)

// ModuleName is the host module exposed to scripts.
const ModuleName = "inkwell"

// KeyHook runs a script's on_key before dispatch and on_edit after a
// handled edit. A script error never cancels a dispatch; it is logged.
type KeyHook struct {
	name     string
	priority int
	state    *State
	logger   execctx.Logger

	onKey  bool
	onEdit bool

	mu      sync.Mutex
	current *execctx.ExecutionContext
}

// HookOption configures a KeyHook.
type HookOption func(*hookConfig)

type hookConfig struct {
	logger   execctx.Logger
	priority int
	state    []StateOption
}

// WithLogger sets the logger for script errors and inkwell.log.
func WithLogger(l execctx.Logger) HookOption {
	return func(c *hookConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPriority overrides hook.PriorityPlugin.
func WithPriority(p int) HookOption {
	return func(c *hookConfig) { c.priority = p }
}

// WithStateOptions configures the script's State.
func WithStateOptions(opts ...StateOption) HookOption {
	return func(c *hookConfig) { c.state = append(c.state, opts...) }
}

// LoadKeyHook loads the script at path into a new State.
func LoadKeyHook(path string, opts ...HookOption) (*KeyHook, error) {
	name := "lua:" + strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return newKeyHook(name, opts, func(s *State) error { return s.DoFile(path) })
}

// NewKeyHook loads a script from source. name identifies the hook.
func NewKeyHook(name, source string, opts ...HookOption) (*KeyHook, error) {
	return newKeyHook("lua:"+name, opts, func(s *State) error { return s.DoString(source) })
}

func newKeyHook(name string, opts []HookOption, load func(*State) error) (*KeyHook, error) {
	cfg := hookConfig{logger: execctx.NopLogger, priority: hook.PriorityPlugin}
	for _, opt := range opts {
		opt(&cfg)
	}

	state, err := NewState(cfg.state...)
	if err != nil {
		return nil, &ScriptError{Script: name, Err: err}
	}
	h := &KeyHook{
		name:     name,
		priority: cfg.priority,
		state:    state,
		logger:   cfg.logger,
	}
	state.RegisterModule(ModuleName, h.module())

	if err := load(state); err != nil {
		state.Close()
		return nil, &ScriptError{Script: name, Err: err}
	}
	h.onKey = state.HasFunction(FuncOnKey)
	h.onEdit = state.HasFunction(FuncOnEdit)
	if !h.onKey && !h.onEdit {
		h.logger.Warn("%s defines neither %s nor %s", name, FuncOnKey, FuncOnEdit)
	}
	return h, nil
}

// Name implements hook.Hook.
func (h *KeyHook) Name() string { return h.name }

// Priority implements hook.Hook.
func (h *KeyHook) Priority() int { return h.priority }

// PreDispatch calls on_key(keys, text, start, finish, action). Returning
// false, or a table with cancel = true, cancels the dispatch.
func (h *KeyHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if !h.onKey {
		return true
	}
	sel := ctx.Selection()
	ret, err := h.call(ctx, FuncOnKey,
		lua.LString(ctx.Event.String()),
		lua.LString(ctx.State.Text),
		lua.LNumber(sel.Start),
		lua.LNumber(sel.End),
		lua.LString(action.Name),
	)
	if err != nil {
		h.logger.Warn("%v", err)
		return true
	}
	if len(ret) == 0 {
		return true
	}

	switch v := ToGo(ret[0]).(type) {
	case bool:
		return v
	case map[string]any:
		cancel, _ := v["cancel"].(bool)
		return !cancel
	}
	return true
}

// PostDispatch calls on_edit(action, text, start, finish) with the new
// state of a handled result.
func (h *KeyHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if !h.onEdit || !result.Handled || !result.IsOK() {
		return
	}
	if _, err := h.call(ctx, FuncOnEdit,
		lua.LString(action.Name),
		lua.LString(result.Text),
		lua.LNumber(result.Selection.Start),
		lua.LNumber(result.Selection.End),
	); err != nil {
		h.logger.Warn("%v", err)
	}
}

// Close releases the script's state.
func (h *KeyHook) Close() error {
	return h.state.Close()
}

func (h *KeyHook) call(ctx *execctx.ExecutionContext, fn string, args ...lua.LValue) ([]lua.LValue, error) {
	h.mu.Lock()
	h.current = ctx
	defer func() {
		h.current = nil
		h.mu.Unlock()
	}()

	ret, err := h.state.Call(context.Background(), fn, args...)
	if err != nil {
		return nil, &ScriptError{Script: h.name, Func: fn, Err: err}
	}
	return ret, nil
}

// module returns the inkwell functions. They run inside call, so current
// is set.
func (h *KeyHook) module() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"log": func(L *lua.LState) int {
			h.logger.Info("%s: %s", h.name, L.CheckString(1))
			return 0
		},
		"rune_len": func(L *lua.LState) int {
			L.Push(lua.LNumber(utf8.RuneCountInString(L.CheckString(1))))
			return 1
		},
		"features": func(L *lua.LState) int {
			if h.current == nil {
				L.Push(L.NewTable())
				return 1
			}
			L.Push(ToLua(L, h.current.Features.Conditions()))
			return 1
		},
		"selected": func(L *lua.LState) int {
			if h.current == nil {
				L.Push(lua.LString(""))
				return 1
			}
			L.Push(lua.LString(h.current.State.Selected()))
			return 1
		},
	}
}
