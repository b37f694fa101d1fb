package app

import (
	"context"

	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/event/topic"
)

// subscribe keeps the status line in step with the bus.
func (app *Application) subscribe() error {
	handlers := []struct {
		topic topic.Topic
		fn    func(ctx context.Context, ev any) error
	}{
		{event.TopicBufferCommitted, app.onCommitted},
		{event.TopicBufferDeclined, app.onDeclined},
		{event.TopicConfigReloaded, app.onConfigReloaded},
	}
	for _, h := range handlers {
		sub, err := app.bus.SubscribeFunc(h.topic, h.fn, event.WithPriority(event.PriorityLow))
		if err != nil {
			return err
		}
		app.subs = append(app.subs, sub)
	}
	return nil
}

func (app *Application) onCommitted(_ context.Context, ev any) error {
	c, ok := event.Payload[event.Committed](ev)
	if !ok || c.SessionID != app.session.ID() {
		return nil
	}
	app.setStatus("%s", c.Action)
	return nil
}

func (app *Application) onDeclined(_ context.Context, ev any) error {
	d, ok := event.Payload[event.Declined](ev)
	if !ok || d.SessionID != app.session.ID() {
		return nil
	}
	if d.Action != "" && d.Reason != "" {
		app.setStatus("%s: %s", d.Action, d.Reason)
		return nil
	}
	app.setStatus("")
	return nil
}

func (app *Application) onConfigReloaded(_ context.Context, ev any) error {
	r, ok := event.Payload[event.ConfigReloaded](ev)
	if !ok {
		return nil
	}
	if r.Err != nil {
		app.setStatus("config: %v", r.Err)
		return nil
	}
	app.setStatus("reloaded %s", r.Path)
	return nil
}
