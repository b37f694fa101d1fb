package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Per-call limits applied when no option overrides them.
const (
	DefaultExecutionTimeout = 50 * time.Millisecond
	DefaultInstructionLimit = 100_000
)

// State is a sandboxed gopher-lua interpreter. An LState must not be used
// from two goroutines at once, so every entry point holds mu.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	budget  int64
	sandbox *Sandbox
	closed  bool
}

// StateOption configures NewState.
type StateOption func(*State)

// WithExecutionTimeout bounds the wall time of each call. Zero means none.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) { s.timeout = d }
}

// WithInstructionLimit bounds the host calls a single call may make.
// Zero means none.
func WithInstructionLimit(limit int64) StateOption {
	return func(s *State) { s.budget = limit }
}

// NewState opens base, table, string and math, then installs the sandbox.
func NewState(opts ...StateOption) (*State, error) {
	s := &State{timeout: DefaultExecutionTimeout, budget: DefaultInstructionLimit}
	for _, opt := range opts {
		opt(s)
	}
	if s.budget < 0 {
		return nil, fmt.Errorf("instruction limit %d is negative", s.budget)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(s.L)
	}
	// Each opener leaves its module table on the stack.
	s.L.SetTop(0)
	s.sandbox = NewSandbox(s.L, s.budget)
	s.sandbox.Install()
	return s, nil
}

// DoFile runs the script at path.
func (s *State) DoFile(path string) error {
	return s.exec(context.Background(), func(L *lua.LState) error { return L.DoFile(path) })
}

// DoString runs a chunk of source.
func (s *State) DoString(code string) error {
	return s.exec(context.Background(), func(L *lua.LState) error { return L.DoString(code) })
}

// Call invokes the global function fn and returns everything it returned.
func (s *State) Call(ctx context.Context, fn string, args ...lua.LValue) ([]lua.LValue, error) {
	var out []lua.LValue
	err := s.exec(ctx, func(L *lua.LState) error {
		f := L.GetGlobal(fn)
		if f.Type() != lua.LTFunction {
			return fmt.Errorf("%w: %q is %s", ErrNotFunction, fn, f.Type())
		}
		base := L.GetTop()
		defer L.SetTop(base)

		L.Push(f)
		for _, a := range args {
			L.Push(a)
		}
		if err := L.PCall(len(args), lua.MultRet, nil); err != nil {
			return err
		}
		for i := base + 1; i <= L.GetTop(); i++ {
			out = append(out, L.Get(i))
		}
		return nil
	})
	return out, err
}

// exec runs fn with the lock held, a fresh budget and the deadline set on
// the LState, and maps interpreter failures onto the package errors.
func (s *State) exec(ctx context.Context, fn func(*lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	defer cancel()
	s.L.SetContext(runCtx)
	defer s.L.RemoveContext()
	s.sandbox.ResetInstructionCount()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err = fn(s.L); err == nil {
		return nil
	}
	if s.sandbox.Exceeded() {
		return ErrInstructionLimit
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return ErrExecutionTimeout
	}
	return err
}

// global reads a global without running any script. Closed states have
// only nil globals.
func (s *State) global(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// HasFunction reports whether the global name is a function.
func (s *State) HasFunction(name string) bool {
	return s.global(name).Type() == lua.LTFunction
}

// GetGlobal returns the global name.
func (s *State) GetGlobal(name string) lua.LValue {
	return s.global(name)
}

// RegisterModule publishes funcs as the table name, both as a global and
// through require. Every call into funcs is charged against the budget.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) *lua.LTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	mod := s.L.NewTable()
	for fname, fn := range funcs {
		mod.RawSetString(fname, s.L.NewFunction(s.sandbox.Metered(fn)))
	}
	s.L.SetGlobal(name, mod)
	s.sandbox.Provide(name, mod)
	return mod
}

// Sandbox returns the sandbox guarding the state.
func (s *State) Sandbox() *Sandbox { return s.sandbox }

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close frees the interpreter. Later calls fail with ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.Close()
		s.closed = true
	}
	return nil
}
