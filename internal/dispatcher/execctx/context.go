// Package execctx provides the execution context for action handlers.
package execctx

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input/key"
)

// Logger is the logging surface handlers and hooks write to.
// Messages are printf-style.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards all output.
var NopLogger Logger = nopLogger{}

// Features switches the editing behaviors on and off.
type Features struct {
	// AutoPair enables bracket insertion, skip-over and pair-aware deletion.
	AutoPair bool
	// WikiLinks enables the "[[" / "]]" token.
	WikiLinks bool
	// UnixKeys enables Ctrl-B/F/H/D.
	UnixKeys bool
	// BoldToggle enables the bold chord.
	BoldToggle bool
}

// DefaultFeatures returns a Features with everything enabled.
func DefaultFeatures() Features {
	return Features{AutoPair: true, WikiLinks: true, UnixKeys: true, BoldToggle: true}
}

// Conditions returns the features as keymap condition values.
func (f Features) Conditions() map[string]bool {
	return map[string]bool{
		"autoPair":   f.AutoPair,
		"wikiLinks":  f.WikiLinks,
		"unixKeys":   f.UnixKeys,
		"boldToggle": f.BoldToggle,
	}
}

// ExecutionContext provides context for action execution: the snapshot
// the event applies to, the event itself and the active features.
type ExecutionContext struct {
	// State is the text and selection the action applies to.
	State buffer.State

	// Event is the key press that produced the action.
	Event key.Event

	// Features are the enabled editing behaviors.
	Features Features

	// Logger receives handler diagnostics. Never nil after New.
	Logger Logger

	// ReadOnly rejects edits.
	ReadOnly bool

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]interface{}

	runes []rune
}

// New creates a new execution context for st.
func New(st buffer.State, ev key.Event) *ExecutionContext {
	return &ExecutionContext{
		State:    st,
		Event:    ev,
		Features: DefaultFeatures(),
		Logger:   NopLogger,
		Count:    1,
		Data:     make(map[string]interface{}),
	}
}

// WithFeatures returns the context with features set.
func (ctx *ExecutionContext) WithFeatures(f Features) *ExecutionContext {
	ctx.Features = f
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(l Logger) *ExecutionContext {
	if l == nil {
		l = NopLogger
	}
	ctx.Logger = l
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Runes returns the text as runes. The slice is shared between calls on
// the same context and must not be modified.
func (ctx *ExecutionContext) Runes() []rune {
	if ctx.runes == nil {
		ctx.runes = ctx.State.Runes()
	}
	return ctx.runes
}

// Selection returns the current selection.
func (ctx *ExecutionContext) Selection() buffer.Selection {
	return ctx.State.Selection
}

// HasSelection returns true if there is a non-empty selection.
func (ctx *ExecutionContext) HasSelection() bool {
	return !ctx.State.Selection.IsEmpty()
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the selection fits the text.
func (ctx *ExecutionContext) Validate() error {
	if err := ctx.State.Selection.Validate(len(ctx.Runes())); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.ReadOnly {
		return ErrReadOnly
	}
	return nil
}
