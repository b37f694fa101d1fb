package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/plugin/lua"
)

// HookRegistry is where loaded hooks are installed.
type HookRegistry interface {
	RegisterHook(h hook.Hook) bool
	UnregisterHook(name string) bool
}

// EventHandler handles plugin manager events. Handlers run synchronously
// and must not call back into the Manager.
type EventHandler func(event ManagerEvent)

// ManagerEvent represents a plugin manager event.
type ManagerEvent struct {
	Type   ManagerEventType
	Script string
	Hook   string
	Error  error
}

// ManagerEventType is the type of manager event.
type ManagerEventType int

const (
	// EventScriptLoaded is emitted when a script's hook is registered.
	EventScriptLoaded ManagerEventType = iota
	// EventScriptUnloaded is emitted when a script's hook is removed.
	EventScriptUnloaded
	// EventScriptError is emitted when a script fails to load.
	EventScriptError
)

// String returns a string representation of the event type.
func (t ManagerEventType) String() string {
	switch t {
	case EventScriptLoaded:
		return "loaded"
	case EventScriptUnloaded:
		return "unloaded"
	case EventScriptError:
		return "error"
	default:
		return "unknown"
	}
}

type loaded struct {
	script string
	hook   *lua.KeyHook
}

// Manager owns the loaded script hooks.
type Manager struct {
	mu sync.Mutex

	registry HookRegistry
	logger   execctx.Logger

	hooks    []loaded
	errs     map[string]error
	handlers map[int]EventHandler
	nextID   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for load errors and script output.
func WithLogger(l execctx.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager installing hooks into registry.
func NewManager(registry HookRegistry, opts ...Option) *Manager {
	m := &Manager{
		registry: registry,
		logger:   execctx.NopLogger,
		errs:     make(map[string]error),
		handlers: make(map[int]EventHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load replaces the current hooks with the given scripts, in order.
// limit is the per-call instruction limit (0 for unlimited). The returned
// error joins every script that failed; the rest are registered.
func (m *Manager) Load(scripts []string, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unloadLocked()

	var errs []error
	for _, path := range scripts {
		h, err := lua.LoadKeyHook(path,
			lua.WithLogger(m.logger),
			lua.WithStateOptions(lua.WithInstructionLimit(int64(limit))),
		)
		if err != nil {
			m.errs[path] = err
			errs = append(errs, err)
			m.logger.Error("plugin: %v", err)
			m.emit(ManagerEvent{Type: EventScriptError, Script: path, Error: err})
			continue
		}
		if m.hasHookLocked(h.Name()) || !m.registry.RegisterHook(h) {
			h.Close()
			err := fmt.Errorf("plugin %s: hook %s already registered", path, h.Name())
			m.errs[path] = err
			errs = append(errs, err)
			m.emit(ManagerEvent{Type: EventScriptError, Script: path, Hook: h.Name(), Error: err})
			continue
		}
		m.hooks = append(m.hooks, loaded{script: path, hook: h})
		m.logger.Info("plugin: loaded %s as %s", path, h.Name())
		m.emit(ManagerEvent{Type: EventScriptLoaded, Script: path, Hook: h.Name()})
	}
	return errors.Join(errs...)
}

func (m *Manager) hasHookLocked(name string) bool {
	for _, l := range m.hooks {
		if l.hook.Name() == name {
			return true
		}
	}
	return false
}

// Unload removes every hook.
func (m *Manager) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unloadLocked()
}

func (m *Manager) unloadLocked() {
	for i := len(m.hooks) - 1; i >= 0; i-- {
		l := m.hooks[i]
		m.registry.UnregisterHook(l.hook.Name())
		if err := l.hook.Close(); err != nil {
			m.logger.Warn("plugin: closing %s: %v", l.script, err)
		}
		m.emit(ManagerEvent{Type: EventScriptUnloaded, Script: l.script, Hook: l.hook.Name()})
	}
	m.hooks = nil
	m.errs = make(map[string]error)
}

// Hooks returns the registered hook names in load order.
func (m *Manager) Hooks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.hooks))
	for i, l := range m.hooks {
		names[i] = l.hook.Name()
	}
	return names
}

// Errors returns the load errors of the last Load by script path.
func (m *Manager) Errors() map[string]error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]error, len(m.errs))
	for k, v := range m.errs {
		out[k] = v
	}
	return out
}

// Subscribe registers an event handler and returns its removal func.
func (m *Manager) Subscribe(handler EventHandler) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.handlers[id] = handler
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.handlers, id)
	}
}

// emit runs with m.mu held.
func (m *Manager) emit(event ManagerEvent) {
	for _, h := range m.handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("plugin: event handler panic: %v", r)
				}
			}()
			h(event)
		}()
	}
}
