package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call outlives its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInstructionLimit is returned when a call exceeds its host call budget.
	ErrInstructionLimit = errors.New("lua instruction limit exceeded")

	// ErrNotFunction is returned when calling a global that is not a function.
	ErrNotFunction = errors.New("lua global is not a function")
)

// ScriptError wraps a failure raised while running a script.
type ScriptError struct {
	Script string
	Func   string
	Err    error
}

func (e *ScriptError) Error() string {
	if e.Func == "" {
		return fmt.Sprintf("lua %s: %v", e.Script, e.Err)
	}
	return fmt.Sprintf("lua %s: %s: %v", e.Script, e.Func, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
