package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/engine/brackets"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input"
	"github.com/dshills/inkwell/internal/input/key"
	"github.com/dshills/inkwell/internal/input/keymap"
)

// Action names produced by bracket classification of typed runes.
const (
	actionPairOpen  = "pair.open"
	actionPairClose = "pair.close"
)

// Dispatcher turns one key event and the current buffer state into one
// result. It holds no per-buffer state; callers serialize events.
type Dispatcher struct {
	mu sync.RWMutex

	router  *Router
	keymaps *keymap.Registry
	hooks   *hook.Manager

	features execctx.Features
	readOnly bool
	logger   execctx.Logger

	config  Config
	metrics *Metrics
}

// New creates a dispatcher with the default keymap loaded and no handlers.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		router:   NewRouter(),
		keymaps:  keymap.NewRegistry(),
		hooks:    hook.NewManager(),
		features: config.Features,
		logger:   execctx.NopLogger,
		config:   config,
	}
	_ = keymap.LoadDefaults(d.keymaps)

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the logger handed to handlers. nil discards output.
func (d *Dispatcher) SetLogger(l execctx.Logger) {
	if l == nil {
		l = execctx.NopLogger
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// SetFeatures replaces the enabled editing behaviors.
func (d *Dispatcher) SetFeatures(f execctx.Features) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.features = f
}

// Features returns the enabled editing behaviors.
func (d *Dispatcher) Features() execctx.Features {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.features
}

// SetReadOnly marks every following dispatch read-only.
func (d *Dispatcher) SetReadOnly(ro bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readOnly = ro
}

// SetKeymaps replaces the keymap registry.
func (d *Dispatcher) SetKeymaps(r *keymap.Registry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keymaps = r
}

// Keymaps returns the keymap registry.
func (d *Dispatcher) Keymaps() *keymap.Registry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.keymaps
}

// Resolve picks the action for ev. Bound keys come from the keymap, whose
// bindings are gated on the enabled features. An unbound typed rune is
// classified against the bracket table when auto-pairing is on. ok is
// false when the key should go to the host untouched.
func (d *Dispatcher) Resolve(ev key.Event, st buffer.State) (input.Action, bool) {
	d.mu.RLock()
	keymaps, features := d.keymaps, d.features
	d.mu.RUnlock()

	lookup := &keymap.LookupContext{Conditions: features.Conditions()}
	if keymaps != nil {
		if b := keymaps.Lookup(ev, lookup); b != nil {
			action := input.Action{Name: b.Action, Source: input.SourceKeyboard}
			if len(b.Args) > 0 {
				action.Args.Extra = b.Args
			}
			if ev.IsTyped() {
				action = action.WithRune(ev.Rune, string(ev.Rune))
			}
			return action, true
		}
	}

	if !ev.IsTyped() || !features.AutoPair {
		return input.Action{}, false
	}
	if st.Selection.Validate(st.RuneLen()) != nil {
		return input.Action{}, false
	}

	m := brackets.Matcher{WikiLinks: features.WikiLinks}
	tok := m.Classify(st.Runes(), st.Selection, ev.Rune)
	switch tok.Kind {
	case brackets.KindOpen:
		return input.Action{Name: actionPairOpen, Source: input.SourceKeyboard}.WithRune(ev.Rune, tok.Text), true
	case brackets.KindClose:
		return input.Action{Name: actionPairClose, Source: input.SourceKeyboard}.WithRune(ev.Rune, tok.Text), true
	}
	return input.Action{}, false
}

// Dispatch handles one key event against st. The result always carries a
// full text and selection: the edited state when Handled is true, st
// unchanged otherwise.
func (d *Dispatcher) Dispatch(ev key.Event, st buffer.State) handler.Result {
	action, ok := d.Resolve(ev, st)
	if !ok {
		if d.metrics != nil {
			d.metrics.RecordUnbound()
		}
		r := handler.Decline()
		r.Text, r.Selection = st.Text, st.Selection
		return r
	}
	return d.DispatchAction(action, ev, st)
}

// DispatchAction runs action against st, bypassing key resolution.
func (d *Dispatcher) DispatchAction(action input.Action, ev key.Event, st buffer.State) handler.Result {
	start := time.Now()

	d.mu.RLock()
	features, readOnly, logger := d.features, d.readOnly, d.logger
	d.mu.RUnlock()

	if action.IsEmpty() {
		return d.finish(action, st, handler.Error(ErrInvalidAction), logger, start)
	}

	ctx := execctx.New(st, ev).
		WithFeatures(features).
		WithLogger(logger).
		WithCount(action.Count)
	ctx.ReadOnly = readOnly

	if ok, by := d.hooks.RunPreDispatch(&action, ctx); !ok {
		logger.Debug("dispatcher: %s cancelled by %s", action.Name, by)
		return d.finish(action, st, handler.CancelledWithMessage("cancelled by "+by), logger, start)
	}

	h := d.router.Route(action.Name)
	if h == nil {
		return d.finish(action, st, handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name)), logger, start)
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.hooks.RunPostDispatch(&action, ctx, &result)
	return d.finish(action, st, result, logger, start)
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			ctx.Logger.Error("dispatcher: handler panic for %s: %v\n%s", action.Name, r, stack[:n])

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// finish fills in the state for unhandled results, rejects results whose
// selection falls outside their text, tags the result with the action name
// under "action" and records metrics.
func (d *Dispatcher) finish(action input.Action, st buffer.State, result handler.Result, logger execctx.Logger, start time.Time) handler.Result {
	if result.Handled {
		if err := result.Selection.Validate(buffer.RuneLen(result.Text)); err != nil {
			logger.Error("dispatcher: %s returned %v", action.Name, err)
			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrInvalidResult, action.Name, err))
		}
	}
	if !result.Handled {
		result.Text, result.Selection = st.Text, st.Selection
	}
	if action.Name != "" {
		result = result.WithData("action", action.Name)
	}
	if result.IsError() {
		logger.Warn("dispatcher: %s: %v", action.Name, result.Error)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result)
	}
	return result
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.router.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.router.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// UnregisterHandler removes the handlers for an action name.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.router.Unregister(actionName)
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (nil when disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
