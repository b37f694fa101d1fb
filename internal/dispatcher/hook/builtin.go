package hook

import (
	"strings"
	"time"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/input"
)

// Standard hook priorities.
const (
	PriorityAudit      = 1000
	PriorityValidation = 800
	PriorityPlugin     = 300
	PriorityUser       = 0
)

// AuditHook debug-logs every dispatched action and its outcome.
type AuditHook struct {
	logger execctx.Logger
}

// NewAuditHook creates an audit hook. A nil logger discards output.
func NewAuditHook(logger execctx.Logger) *AuditHook {
	if logger == nil {
		logger = execctx.NopLogger
	}
	return &AuditHook{logger: logger}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the action being dispatched.
func (h *AuditHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	h.logger.Debug("dispatch %s key=%s sel=%s", action.Name, ctx.Event, ctx.Selection())
	return true
}

// PostDispatch logs the result.
func (h *AuditHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if result.IsError() {
		h.logger.Error("dispatch %s failed: %v", action.Name, result.Error)
		return
	}
	h.logger.Debug("dispatch %s -> %s handled=%v sel=%s",
		action.Name, result.Status, result.Handled, result.Selection)
}

// ReadOnlyHook cancels buffer-changing actions on a read-only context.
// Cursor movement passes.
type ReadOnlyHook struct{}

// NewReadOnlyHook creates a read-only enforcement hook.
func NewReadOnlyHook() *ReadOnlyHook {
	return &ReadOnlyHook{}
}

// Name implements Hook.
func (h *ReadOnlyHook) Name() string { return "read-only" }

// Priority implements Hook.
func (h *ReadOnlyHook) Priority() int { return PriorityValidation }

// PreDispatch cancels edits when ctx is read-only.
func (h *ReadOnlyHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return !ctx.ReadOnly || strings.HasPrefix(action.Name, "cursor.")
}

// TimingHook measures the time between its pre and post calls.
// The start time travels on the context, so concurrent dispatches on
// separate contexts do not interfere.
type TimingHook struct {
	callback func(action string, d time.Duration)
}

const timingStartKey = "_timing_start"

// NewTimingHook creates a timing hook.
func NewTimingHook(callback func(action string, d time.Duration)) *TimingHook {
	return &TimingHook{callback: callback}
}

// Name implements Hook.
func (h *TimingHook) Name() string { return "timing" }

// Priority implements Hook.
func (h *TimingHook) Priority() int { return PriorityAudit }

// PreDispatch records the start time.
func (h *TimingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	ctx.SetData(timingStartKey, time.Now())
	return true
}

// PostDispatch reports the elapsed time.
func (h *TimingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	v, ok := ctx.GetData(timingStartKey)
	if !ok || h.callback == nil {
		return
	}
	if start, ok := v.(time.Time); ok {
		h.callback(action.Name, time.Since(start))
	}
}

// ActionFilterHook cancels actions for which allow returns false.
type ActionFilterHook struct {
	name     string
	priority int
	allow    func(*input.Action, *execctx.ExecutionContext) bool
}

// NewActionFilterHook creates a filter hook.
func NewActionFilterHook(name string, priority int, allow func(*input.Action, *execctx.ExecutionContext) bool) *ActionFilterHook {
	return &ActionFilterHook{name: name, priority: priority, allow: allow}
}

// DisabledActions returns a filter that cancels the named actions.
func DisabledActions(names []string) *ActionFilterHook {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return NewActionFilterHook("disabled-actions", PriorityValidation, func(a *input.Action, _ *execctx.ExecutionContext) bool {
		return !set[a.Name]
	})
}

// Name implements Hook.
func (h *ActionFilterHook) Name() string { return h.name }

// Priority implements Hook.
func (h *ActionFilterHook) Priority() int { return h.priority }

// PreDispatch applies the filter.
func (h *ActionFilterHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return h.allow == nil || h.allow(action, ctx)
}
