package event

import (
	"context"
	"sync/atomic"

	"github.com/dshills/inkwell/internal/event/topic"
)

// Handler receives events.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// Priority orders delivery; lower values run first.
type Priority int

// Standard priorities.
const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 100
	PriorityNormal   Priority = 200
	PriorityLow      Priority = 300
)

// Subscription is a registered handler. It is returned by Subscribe and
// passed back to Unsubscribe.
type Subscription struct {
	id       string
	pattern  topic.Topic
	handler  Handler
	priority Priority
	once     bool
	filter   func(event any) bool
	seq      uint64
	bus      *Bus

	active    atomic.Bool
	delivered atomic.Uint64
}

// ID returns the subscription's UUID.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() topic.Topic { return s.pattern }

// Priority returns the delivery priority.
func (s *Subscription) Priority() Priority { return s.priority }

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool { return s.active.Load() }

// Delivered returns how many events reached the handler.
func (s *Subscription) Delivered() uint64 { return s.delivered.Load() }

// Cancel removes the subscription from its bus. Calling it again is a no-op.
func (s *Subscription) Cancel() {
	if s.bus != nil {
		_ = s.bus.Unsubscribe(s)
	}
}

func (s *Subscription) accepts(event any) bool {
	return s.active.Load() && (s.filter == nil || s.filter(event))
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// WithPriority sets the delivery priority. The default is PriorityNormal.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *Subscription) { s.priority = p }
}

// WithFilter drops events for which fn returns false.
func WithFilter(fn func(event any) bool) SubscriptionOption {
	return func(s *Subscription) { s.filter = fn }
}

// Once removes the subscription after its first successful delivery.
func Once() SubscriptionOption {
	return func(s *Subscription) { s.once = true }
}
