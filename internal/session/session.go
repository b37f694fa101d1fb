package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/event/topic"
	"github.com/dshills/inkwell/internal/input/key"
)

// Errors returned by Session.
var (
	ErrAlreadyMounted = errors.New("session: already mounted")
	ErrNotMounted     = errors.New("session: not mounted")
	ErrNilSurface     = errors.New("session: surface and scheduler are required")
)

// Engine turns one key event and one state into a result.
// *dispatcher.System satisfies it.
type Engine interface {
	Dispatch(ev key.Event, st buffer.State) handler.Result
}

// Surface is the host's visible editing widget.
type Surface interface {
	// State returns the text and selection currently shown.
	State() buffer.State

	// Apply replaces the shown text and selection.
	Apply(st buffer.State)
}

// Scheduler runs fn once the host has finished rendering the current event.
type Scheduler interface {
	AfterRender(fn func())
}

// Commit is a handled result waiting to be written to the surface.
type Commit struct {
	Revision  uint64
	Action    string
	Text      string
	Selection buffer.Selection
}

// State returns the commit as a buffer state.
func (c Commit) State() buffer.State {
	return buffer.State{Text: c.Text, Selection: c.Selection}
}

// Session serializes key events for one surface.
type Session struct {
	mu sync.Mutex

	id     string
	engine Engine
	bus    *event.Bus
	logger execctx.Logger

	surface Surface
	sched   Scheduler
	sub     *event.Subscription

	revision uint64
	applied  uint64
	pending  *Commit
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l execctx.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates an unmounted session. bus may be nil, in which case the
// session neither listens for nor publishes events.
func New(engine Engine, bus *event.Bus, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		engine: engine,
		bus:    bus,
		logger: execctx.NopLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session ID used to address KeyPressed events.
func (s *Session) ID() string {
	return s.id
}

// Mount attaches the session to surface and subscribes to key events
// addressed to it.
func (s *Session) Mount(surface Surface, sched Scheduler) error {
	if surface == nil || sched == nil {
		return ErrNilSurface
	}

	s.mu.Lock()
	if s.surface != nil {
		s.mu.Unlock()
		return ErrAlreadyMounted
	}
	s.surface, s.sched = surface, sched
	s.pending = nil
	s.mu.Unlock()

	if s.bus == nil {
		return nil
	}

	sub, err := s.bus.SubscribeFunc(event.TopicKeyPressed, s.onKey,
		event.WithPriority(event.PriorityCritical),
		event.WithFilter(func(ev any) bool {
			kp, ok := event.Payload[event.KeyPressed](ev)
			return ok && kp.SessionID == s.id
		}))
	if err != nil {
		s.mu.Lock()
		s.surface, s.sched = nil, nil
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	publish(context.Background(), s, event.TopicSessionMounted, event.SessionLifecycle{SessionID: s.id})
	s.logger.Debug("session %s mounted", s.id)
	return nil
}

// Unmount releases the key subscription and drops any pending commit.
func (s *Session) Unmount() error {
	s.mu.Lock()
	if s.surface == nil {
		s.mu.Unlock()
		return ErrNotMounted
	}
	sub := s.sub
	if s.pending != nil {
		s.logger.Debug("session %s: dropping pending revision %d", s.id, s.pending.Revision)
	}
	s.surface, s.sched, s.sub, s.pending = nil, nil, nil, nil
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	publish(context.Background(), s, event.TopicSessionUnmounted, event.SessionLifecycle{SessionID: s.id})
	s.logger.Debug("session %s unmounted", s.id)
	return nil
}

// Mounted reports whether the session is attached to a surface.
func (s *Session) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface != nil
}

// Pending returns the commit waiting for the next render, if any.
func (s *Session) Pending() (Commit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Commit{}, false
	}
	return *s.pending, true
}

// Revision returns the last issued and the last applied revisions.
func (s *Session) Revision() (issued, applied uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision, s.applied
}

// HandleKey dispatches ev against the current state. When the result is
// handled a commit is scheduled and the returned result carries the new
// state; the surface changes only when the scheduler runs the commit.
func (s *Session) HandleKey(ctx context.Context, ev key.Event) (handler.Result, error) {
	s.mu.Lock()
	if s.surface == nil {
		s.mu.Unlock()
		return handler.Decline(), ErrNotMounted
	}
	base := s.baseLocked()
	s.mu.Unlock()

	result := s.engine.Dispatch(ev, base)
	if !result.Handled {
		reason := result.Message
		if result.Error != nil {
			reason = result.Error.Error()
		}
		publish(ctx, s, event.TopicBufferDeclined, event.Declined{
			SessionID: s.id,
			Key:       ev,
			Action:    result.GetDataString("action"),
			Reason:    reason,
		})
		return result, nil
	}

	s.mu.Lock()
	if s.surface == nil {
		s.mu.Unlock()
		return result, ErrNotMounted
	}
	s.revision++
	c := &Commit{
		Revision:  s.revision,
		Action:    result.GetDataString("action"),
		Text:      result.Text,
		Selection: result.Selection,
	}
	s.pending = c
	sched := s.sched
	s.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	sched.AfterRender(func() { s.apply(detached, c.Revision) })
	return result, nil
}

// Flush applies the pending commit immediately.
func (s *Session) Flush(ctx context.Context) bool {
	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		return false
	}
	rev := s.pending.Revision
	s.mu.Unlock()
	return s.apply(ctx, rev)
}

// apply writes revision rev to the surface if it is still the newest
// pending commit.
func (s *Session) apply(ctx context.Context, rev uint64) bool {
	s.mu.Lock()
	c, surface := s.pending, s.surface
	if c == nil || surface == nil || c.Revision != rev {
		s.mu.Unlock()
		s.logger.Debug("session %s: stale revision %d dropped", s.id, rev)
		return false
	}
	s.pending = nil
	s.applied = rev
	s.mu.Unlock()

	surface.Apply(c.State())
	publish(ctx, s, event.TopicBufferCommitted, event.Committed{
		SessionID: s.id,
		Action:    c.Action,
		Revision:  c.Revision,
		Text:      c.Text,
		Selection: c.Selection,
	})
	return true
}

func (s *Session) baseLocked() buffer.State {
	if s.pending != nil {
		return s.pending.State()
	}
	return s.surface.State()
}

func (s *Session) onKey(ctx context.Context, ev any) error {
	kp, _ := event.Payload[event.KeyPressed](ev)
	result, err := s.HandleKey(ctx, kp.Key)
	if kp.Reply != nil {
		kp.Reply(result.Handled)
	}
	return err
}

func publish[T any](ctx context.Context, s *Session, t topic.Topic, payload T) {
	if s.bus == nil {
		return
	}
	if err := event.Emit(ctx, s.bus, t, payload, "session"); err != nil {
		s.logger.Warn("session %s: publish %s: %v", s.id, t, err)
	}
}
