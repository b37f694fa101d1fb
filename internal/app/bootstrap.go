package app

import (
	"io"
	"os"
	"time"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/dispatcher"
	"github.com/dshills/inkwell/internal/dispatcher/hook"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/plugin"
	"github.com/dshills/inkwell/internal/session"
)

// bootstrapper handles component initialization with cleanup on failure.
type bootstrapper struct {
	app       *Application
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components in dependency order.
func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"logger", b.initLogger},
		{"bus", b.initEventBus},
		{"config", b.initConfig},
		{"dispatcher", b.initDispatcher},
		{"plugins", b.initPlugins},
		{"document", b.initDocument},
		{"session", b.initSession},
		{"subscriptions", b.initSubscriptions},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return err
		}
		b.initOrder = append(b.initOrder, step.name)
	}

	b.app.applyConfig(b.app.configs.Current())
	b.app.configs.OnChange(b.app.applyConfig)
	return nil
}

func (b *bootstrapper) initLogger() error {
	out := b.app.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	b.app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(b.app.opts.LogLevel),
		Output: out,
		Prefix: "inkwell",
	})
	return nil
}

func (b *bootstrapper) initEventBus() error {
	b.app.bus = event.NewBus()
	return nil
}

// initConfig loads the configuration. A broken file leaves the defaults
// in effect and is reported on the status line.
func (b *bootstrapper) initConfig() error {
	app := b.app
	app.configs = config.NewManager(
		config.Options{Path: app.opts.ConfigPath, SkipEnv: app.opts.SkipEnv},
		config.WithBus(app.bus),
		config.WithLogger(app.logger.WithComponent("config")),
	)
	cfg, err := app.configs.Load()
	if err != nil {
		app.logger.Warn("loading %s: %v", app.opts.ConfigPath, err)
		app.setStatus("config: %v", err)
		cfg = app.configs.Current()
	}

	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}
	if app.opts.LogOutput == nil && cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &InitError{Component: "logger", Err: err}
		}
		app.logFile = f
		app.logger.SetOutput(f)
	}
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	app := b.app
	cfg := app.configs.Current()
	logger := app.logger.WithComponent("dispatcher")

	app.system = dispatcher.NewSystem(dispatcher.SystemConfig{
		DispatcherConfig: dispatcher.DefaultConfig().WithMetrics(),
		Logger:           logger,
		EnableAudit:      app.opts.Debug,
		EnforceReadOnly:  true,
		DisabledActions:  cfg.Editor.DisabledActions,
	})
	if app.opts.Debug {
		app.system.RegisterHook(hook.NewTimingHook(func(action string, d time.Duration) {
			logger.Debug("%s took %s", action, d)
		}))
	}
	return nil
}

func (b *bootstrapper) initPlugins() error {
	b.app.plugins = plugin.NewManager(b.app.system,
		plugin.WithLogger(b.app.logger.WithComponent("plugin")))
	b.app.plugins.Subscribe(func(ev plugin.ManagerEvent) {
		if ev.Type == plugin.EventScriptError {
			b.app.setStatus("%s: %v", ev.Script, ev.Error)
		}
	})
	return nil
}

func (b *bootstrapper) initDocument() error {
	if b.app.opts.File == "" {
		b.app.doc = NewDocument(b.app.opts.Text)
		return nil
	}
	doc, err := OpenDocument(b.app.opts.File)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	b.app.doc = doc
	return nil
}

func (b *bootstrapper) initSession() error {
	b.app.session = session.New(b.app.system, b.app.bus,
		session.WithLogger(b.app.logger.WithComponent("session")))
	return nil
}

func (b *bootstrapper) initSubscriptions() error {
	if err := b.app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}
	return nil
}

// cleanup releases what bootstrap created, in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
	if b.app.logFile != nil {
		_ = b.app.logFile.Close()
		b.app.logFile = nil
	}
}

func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "subscriptions":
		for _, sub := range b.app.subs {
			sub.Cancel()
		}
		b.app.subs = nil
	case "plugins":
		b.app.plugins.Unload()
	case "config":
		_ = b.app.configs.Close()
	case "bus":
		_ = b.app.bus.Close()
	}
}

// applyConfig pushes cfg into the running components. It runs once at
// startup and again after every successful reload.
func (app *Application) applyConfig(cfg *config.Config) {
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}

	app.system.SetFeatures(cfg.Features())
	ro := app.opts.ReadOnly || cfg.Editor.ReadOnly
	app.readOnly.Store(ro)
	app.system.SetReadOnly(ro)

	km, err := cfg.Keymaps()
	if err != nil {
		app.logger.Warn("keymap: %v", err)
		app.setStatus("keymap: %v", err)
	}
	if km != nil {
		app.system.SetKeymaps(km)
	}

	if len(cfg.Editor.DisabledActions) > 0 {
		app.system.RegisterHook(hook.DisabledActions(cfg.Editor.DisabledActions))
	} else {
		app.system.UnregisterHook(hook.DisabledActions(nil).Name())
	}

	app.plugins.Unload()
	if cfg.Plugins.Enabled && len(cfg.Plugins.Scripts) > 0 {
		if err := app.plugins.Load(cfg.Plugins.Scripts, cfg.Plugins.InstructionLimit); err != nil {
			app.logger.Warn("plugins: %v", err)
		}
		app.logger.Info("plugins: %v", app.plugins.Hooks())
	}
}
