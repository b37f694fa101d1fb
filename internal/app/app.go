// Package app wires the bracket-pair engine into a terminal editor. It owns
// the component lifecycles and the main event loop.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/dispatcher"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/plugin"
	"github.com/dshills/inkwell/internal/renderer/backend"
	"github.com/dshills/inkwell/internal/session"
)

// Application is the central coordinator for the editor components.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	logger  *Logger
	logFile io.Closer
	bus     *event.Bus
	configs *config.Manager

	// Editing
	system  *dispatcher.System
	session *session.Session
	doc     *Document
	plugins *plugin.Manager
	backend backend.Backend

	subs     []*event.Subscription
	status   string
	readOnly atomic.Bool

	// State
	running  atomic.Bool
	done     chan struct{}
	quitOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// File is opened on startup. Empty starts a scratch buffer.
	File string

	// Text seeds the scratch buffer when File is empty.
	Text string

	// Debug enables dispatch auditing and timing logs.
	Debug bool

	// LogLevel overrides the configured logging level.
	LogLevel string

	// LogOutput overrides the configured log file. Without either, logs
	// are discarded so they do not draw over the terminal.
	LogOutput io.Writer

	// ReadOnly refuses edits regardless of the configuration.
	ReadOnly bool

	// SkipEnv ignores INKWELL_ environment overrides.
	SkipEnv bool
}

// New creates an Application and initializes its components.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	b := newBootstrapper(app)
	if err := b.bootstrap(); err != nil {
		b.cleanup()
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// Attach mounts the session on the document, with sched deciding when
// handled results are written. Run attaches with the backend; headless
// hosts may attach with session.Immediate or a session.Queue.
func (app *Application) Attach(sched session.Scheduler) error {
	return app.session.Mount(app.doc, sched)
}

// Run starts the backend and processes events until quit, Shutdown or
// ctx is done.
func (app *Application) Run(ctx context.Context) error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	if err := app.Attach(b); err != nil {
		return &InitError{Component: "session", Err: err}
	}
	defer func() {
		app.session.Flush(context.WithoutCancel(ctx))
		_ = app.session.Unmount()
	}()

	if app.configs.Path() != "" {
		if err := app.configs.Watch(ctx); err != nil {
			app.logger.Warn("watch %s: %v", app.configs.Path(), err)
		}
	}

	app.logger.Info("editing %s", app.docName())
	return app.eventLoop(ctx, b)
}

// Shutdown asks a running event loop to return.
func (app *Application) Shutdown() {
	app.quitOnce.Do(func() { close(app.done) })
}

// Close releases the plugins, watchers, bus and log file.
func (app *Application) Close() error {
	app.Shutdown()

	app.mu.Lock()
	subs := app.subs
	app.subs = nil
	app.mu.Unlock()
	for _, sub := range subs {
		sub.Cancel()
	}

	if app.plugins != nil {
		app.plugins.Unload()
	}
	var firstErr error
	if err := app.configs.Close(); err != nil {
		firstErr = err
	}
	if err := app.bus.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Document returns the edited document.
func (app *Application) Document() *Document {
	return app.doc
}

// System returns the dispatch engine.
func (app *Application) System() *dispatcher.System {
	return app.system
}

// Session returns the key session bound to the document.
func (app *Application) Session() *session.Session {
	return app.session
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.configs.Current()
}

// Plugins returns the script manager.
func (app *Application) Plugins() *plugin.Manager {
	return app.plugins
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Status returns the last status message.
func (app *Application) Status() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.status
}

func (app *Application) setStatus(format string, args ...any) {
	app.mu.Lock()
	app.status = fmt.Sprintf(format, args...)
	app.mu.Unlock()
}

// statusLine is the text of the bottom row.
func (app *Application) statusLine() string {
	name := app.docName()
	if app.doc.Modified() {
		name += " [+]"
	}
	if app.readOnly.Load() {
		name += " [RO]"
	}
	if s := app.Status(); s != "" {
		return name + "  " + s
	}
	return name
}

func (app *Application) docName() string {
	if p := app.doc.Path(); p != "" {
		return p
	}
	return "[scratch]"
}
