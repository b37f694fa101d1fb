package config

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/inkwell/internal/config/watcher"
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/event"
)

// Manager owns the current configuration and reloads it when the file
// changes.
type Manager struct {
	mu sync.RWMutex

	opts   Options
	cfg    *Config
	bus    *event.Bus
	logger execctx.Logger

	listeners []func(*Config)
	watcher   *watcher.Watcher
	debounce  time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithBus publishes config.reloaded on bus after each reload attempt.
func WithBus(bus *event.Bus) ManagerOption {
	return func(m *Manager) { m.bus = bus }
}

// WithLogger sets the manager logger.
func WithLogger(l execctx.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDebounce sets the watcher quiet period.
func WithDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) { m.debounce = d }
}

// NewManager creates a manager holding the defaults until Load is called.
func NewManager(opts Options, mopts ...ManagerOption) *Manager {
	m := &Manager{
		opts:     opts,
		cfg:      Default(),
		logger:   execctx.NopLogger,
		debounce: watcher.DefaultDebounce,
	}
	for _, opt := range mopts {
		opt(m)
	}
	return m
}

// Load reads the configuration and makes it current.
func (m *Manager) Load() (*Config, error) {
	cfg, err := Load(m.opts)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return cfg, nil
}

// Current returns the configuration in effect.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.opts.Path
}

// OnChange registers fn to run after every successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Reload re-reads the configuration. On failure the current configuration
// stays in effect. Either way config.reloaded is published.
func (m *Manager) Reload(ctx context.Context) error {
	cfg, err := m.Load()
	if err != nil {
		m.logger.Warn("config: reload %s failed: %v", m.opts.Path, err)
	} else {
		m.logger.Info("config: reloaded %s", m.opts.Path)
		m.mu.RLock()
		listeners := append([]func(*Config){}, m.listeners...)
		m.mu.RUnlock()
		for _, fn := range listeners {
			fn(cfg)
		}
	}

	if m.bus != nil {
		payload := event.ConfigReloaded{Path: m.opts.Path, Err: err}
		if perr := event.Emit(ctx, m.bus, event.TopicConfigReloaded, payload, "config"); perr != nil {
			m.logger.Warn("config: publish reload: %v", perr)
		}
	}
	return err
}

// Watch reloads whenever the file changes until ctx is done or Close is
// called.
func (m *Manager) Watch(ctx context.Context) error {
	if m.opts.Path == "" {
		return ErrNoPath
	}
	w, err := watcher.New(m.opts.Path, func(ev watcher.Event) {
		m.logger.Debug("config: %s %s", ev.Path, ev.Op)
		_ = m.Reload(ctx)
	},
		watcher.WithDebounce(m.debounce),
		watcher.WithErrorHandler(func(err error) {
			m.logger.Warn("config: watch: %v", err)
		}),
	)
	if err != nil {
		return err
	}

	m.mu.Lock()
	old := m.watcher
	m.watcher = w
	m.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	go func() {
		<-ctx.Done()
		m.stopWatcher(w)
	}()
	return nil
}

func (m *Manager) stopWatcher(w *watcher.Watcher) {
	m.mu.Lock()
	if m.watcher == w {
		m.watcher = nil
	}
	m.mu.Unlock()
	_ = w.Close()
}

// Close stops watching.
func (m *Manager) Close() error {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
