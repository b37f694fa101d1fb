package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/event/topic"
)

// Bus delivers events to subscribers synchronously.
type Bus struct {
	mu     sync.RWMutex
	index  *topic.Index
	subs   map[string]*Subscription
	seq    uint64
	closed bool

	published atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
}

// Stats are the bus counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	Failed        uint64
	Panicked      uint64
	Subscriptions int
}

// NewBus creates an open bus.
func NewBus() *Bus {
	return &Bus{
		index: topic.NewIndex(),
		subs:  make(map[string]*Subscription),
	}
}

// Subscribe registers h for every topic matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, h Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	sub := &Subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		handler:  h,
		priority: PriorityNormal,
		bus:      b,
	}
	for _, opt := range opts {
		opt(sub)
	}
	sub.active.Store(true)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}
	b.seq++
	sub.seq = b.seq
	b.subs[sub.id] = sub
	b.index.Insert(pattern, sub.id)
	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn func(ctx context.Context, event any) error, opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, HandlerFunc(fn), opts...)
}

// Unsubscribe removes sub. Delivery already in progress may still reach it.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	sub.active.Store(false)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub.id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(b.subs, sub.id)
	b.index.Delete(sub.pattern, sub.id)
	return nil
}

// Publish delivers event to every matching subscriber before returning.
// Handler errors and panics are collected and returned joined; they do not
// stop delivery to the remaining subscribers.
func (b *Bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok || !tp.EventTopic().IsValid() {
		return ErrInvalidEvent
	}
	t := tp.EventTopic()

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	ids := b.index.Match(t)
	subs := make([]*Subscription, 0, len(ids))
	for _, id := range ids {
		if s := b.subs[id]; s != nil {
			subs = append(subs, s)
		}
	}
	b.mu.RUnlock()

	sort.Slice(subs, func(i, j int) bool {
		if subs[i].priority != subs[j].priority {
			return subs[i].priority < subs[j].priority
		}
		return subs[i].seq < subs[j].seq
	})

	b.published.Add(1)
	var errs []error
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !sub.accepts(event) {
			continue
		}
		if err := b.deliver(ctx, sub, t, event); err != nil {
			errs = append(errs, err)
			continue
		}
		if sub.once {
			_ = b.Unsubscribe(sub)
		}
	}
	return errors.Join(errs...)
}

// Emit wraps payload in an event from source and publishes it on t.
func Emit[T any](ctx context.Context, b *Bus, t topic.Topic, payload T, source string) error {
	return b.Publish(ctx, NewEvent(t, payload, source))
}

func (b *Bus) deliver(ctx context.Context, sub *Subscription, t topic.Topic, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panicked.Add(1)
			err = &PanicError{SubscriptionID: sub.id, Topic: t.String(), Value: r, Stack: string(debug.Stack())}
		}
	}()

	if herr := sub.handler.Handle(ctx, event); herr != nil {
		b.failed.Add(1)
		return &HandlerError{SubscriptionID: sub.id, Topic: t.String(), Err: herr}
	}
	sub.delivered.Add(1)
	b.delivered.Add(1)
	return nil
}

// Close drops every subscription. Later calls fail with ErrBusClosed.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBusClosed
	}
	b.closed = true
	for _, s := range b.subs {
		s.active.Store(false)
	}
	b.subs = make(map[string]*Subscription)
	b.index.Clear()
	return nil
}

// Stats returns the current counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		Failed:        b.failed.Load(),
		Panicked:      b.panicked.Load(),
		Subscriptions: n,
	}
}
