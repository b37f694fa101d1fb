package lua

import (
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// builtinModules are the opened libraries require may return.
var builtinModules = []string{"string", "table", "math"}

// Sandbox restricts what a script can reach and meters host calls.
type Sandbox struct {
	L *lua.LState

	instructionLimit int64
	instructionCount int64
	exceeded         atomic.Bool

	modules map[string]lua.LValue
}

// NewSandbox creates a sandbox for L. A zero limit disables metering.
func NewSandbox(L *lua.LState, instructionLimit int64) *Sandbox {
	return &Sandbox{
		L:                L,
		instructionLimit: instructionLimit,
		modules:          make(map[string]lua.LValue),
	}
}

// Install removes the chunk loaders and replaces require.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	for _, name := range builtinModules {
		if mod := s.L.GetGlobal(name); mod != lua.LNil {
			s.modules[name] = mod
		}
	}
	s.L.SetGlobal("require", s.L.NewFunction(s.require))
}

func (s *Sandbox) require(L *lua.LState) int {
	name := L.CheckString(1)
	mod, ok := s.modules[name]
	if !ok {
		L.RaiseError("module %q is not available", name)
		return 0
	}
	L.Push(mod)
	return 1
}

// Provide makes mod available to require(name).
func (s *Sandbox) Provide(name string, mod lua.LValue) {
	s.modules[name] = mod
}

// ResetInstructionCount starts a new budget.
func (s *Sandbox) ResetInstructionCount() {
	atomic.StoreInt64(&s.instructionCount, 0)
	s.exceeded.Store(false)
}

// InstructionCount returns the instructions charged since the last reset.
func (s *Sandbox) InstructionCount() int64 {
	return atomic.LoadInt64(&s.instructionCount)
}

// IncrementInstructions charges n instructions and reports whether the
// budget is now exceeded.
func (s *Sandbox) IncrementInstructions(n int64) bool {
	if s.instructionLimit <= 0 {
		return false
	}
	if atomic.AddInt64(&s.instructionCount, n) > s.instructionLimit {
		s.exceeded.Store(true)
		return true
	}
	return false
}

// Exceeded reports whether the current budget ran out.
func (s *Sandbox) Exceeded() bool {
	return s.exceeded.Load()
}

// Metered wraps fn so each call is charged one instruction. Over budget,
// the call raises a Lua error instead of running fn.
func (s *Sandbox) Metered(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		if s.IncrementInstructions(1) {
			L.RaiseError("%s", ErrInstructionLimit.Error())
			return 0
		}
		return fn(L)
	}
}
