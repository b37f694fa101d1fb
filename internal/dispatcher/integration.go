package dispatcher

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/cursor"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/format"
	"github.com/dshills/inkwell/internal/dispatcher/handlers/pair"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input/key"
	"github.com/dshills/inkwell/internal/input/keymap"
)

// System wires the dispatcher to the editing handlers and built-in hooks.
// It is the engine as the host sees it: one key event and one buffer
// state in, one result out.
type System struct {
	dispatcher *Dispatcher

	pairHandler   *pair.Handler
	cursorHandler *cursor.Handler
	formatHandler *format.Handler

	config SystemConfig
}

// SystemConfig holds configuration for the dispatcher system.
type SystemConfig struct {
	// DispatcherConfig is the underlying dispatcher configuration.
	DispatcherConfig Config

	// Logger receives dispatcher and handler diagnostics.
	Logger execctx.Logger

	// EnableAudit debug-logs every dispatched action.
	EnableAudit bool

	// EnforceReadOnly cancels edits while the system is read-only.
	EnforceReadOnly bool

	// DisabledActions are cancelled before they reach a handler.
	DisabledActions []string
}

// DefaultSystemConfig returns a configuration with metrics, panic recovery
// and read-only enforcement on.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		DispatcherConfig: DefaultConfig().WithMetrics(),
		EnforceReadOnly:  true,
	}
}

// NewSystem creates a system with the pair, cursor and format handlers
// registered.
func NewSystem(config SystemConfig) *System {
	s := &System{
		config:        config,
		dispatcher:    New(config.DispatcherConfig),
		pairHandler:   pair.NewHandler(),
		cursorHandler: cursor.NewHandler(),
		formatHandler: format.NewHandler(),
	}
	s.dispatcher.SetLogger(config.Logger)

	s.dispatcher.RegisterNamespace(s.pairHandler.Namespace(), s.pairHandler)
	s.dispatcher.RegisterNamespace(s.cursorHandler.Namespace(), s.cursorHandler)
	s.dispatcher.RegisterNamespace(s.formatHandler.Namespace(), s.formatHandler)

	if config.EnableAudit {
		s.dispatcher.RegisterHook(hook.NewAuditHook(config.Logger))
	}
	if config.EnforceReadOnly {
		s.dispatcher.RegisterPreHook(hook.NewReadOnlyHook())
	}
	if len(config.DisabledActions) > 0 {
		s.dispatcher.RegisterPreHook(hook.DisabledActions(config.DisabledActions))
	}
	return s
}

// NewSystemWithDefaults creates a system with default configuration.
func NewSystemWithDefaults() *System {
	return NewSystem(DefaultSystemConfig())
}

// Dispatch handles one key event against st.
func (s *System) Dispatch(ev key.Event, st buffer.State) handler.Result {
	return s.dispatcher.Dispatch(ev, st)
}

// DispatchHost handles a key described the way a host surface reports it.
func (s *System) DispatchHost(name string, ctrl, meta, alt bool, st buffer.State) handler.Result {
	return s.dispatcher.Dispatch(key.FromHost(name, ctrl, meta, alt), st)
}

// Dispatcher returns the underlying dispatcher.
func (s *System) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// SetFeatures replaces the enabled editing behaviors.
func (s *System) SetFeatures(f execctx.Features) {
	s.dispatcher.SetFeatures(f)
}

// Features returns the enabled editing behaviors.
func (s *System) Features() execctx.Features {
	return s.dispatcher.Features()
}

// SetReadOnly marks the buffer read-only.
func (s *System) SetReadOnly(ro bool) {
	s.dispatcher.SetReadOnly(ro)
}

// SetKeymaps replaces the keymap registry.
func (s *System) SetKeymaps(r *keymap.Registry) {
	s.dispatcher.SetKeymaps(r)
}

// RegisterHook adds a hook.
func (s *System) RegisterHook(h hook.Hook) bool {
	return s.dispatcher.RegisterHook(h)
}

// UnregisterHook removes a hook by name.
func (s *System) UnregisterHook(name string) bool {
	return s.dispatcher.UnregisterHook(name)
}

// Metrics returns the metrics collector (nil when disabled).
func (s *System) Metrics() *Metrics {
	return s.dispatcher.Metrics()
}

// SystemStats summarizes the system's wiring and counters.
type SystemStats struct {
	Namespaces []string
	PreHooks   []string
	PostHooks  []string
	Totals     Totals
}

// Stats returns the current wiring and counters.
func (s *System) Stats() SystemStats {
	stats := SystemStats{
		Namespaces: s.dispatcher.Router().Namespaces(),
		PreHooks:   s.dispatcher.HookManager().PreHookNames(),
		PostHooks:  s.dispatcher.HookManager().PostHookNames(),
	}
	if m := s.dispatcher.Metrics(); m != nil {
		stats.Totals = m.Totals()
	}
	return stats
}
