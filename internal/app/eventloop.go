package app

import (
	"context"
	"errors"

	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/input/key"
	"github.com/dshills/inkwell/internal/renderer/backend"
)

// quitKey ends the event loop.
var quitKey = key.NewRuneEvent('q', key.ModCtrl)

// eventLoop draws, then handles backend events until quit.
func (app *Application) eventLoop(ctx context.Context, b backend.Backend) error {
	stop := make(chan struct{})
	defer close(stop)
	events := app.startInputPolling(b, stop)

	app.draw(b)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case ev := <-events:
			err := app.handleBackendEvent(ctx, ev)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
			app.draw(b)
		}
	}
}

// handleBackendEvent routes one backend event. ErrQuit ends the loop.
func (app *Application) handleBackendEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventClosed:
		return ErrQuit
	case backend.EventKey:
		_, err := app.HandleKey(ctx, ev.Key)
		return err
	case backend.EventInterrupt:
		if ev.Func != nil {
			ev.Func()
		}
	}
	return nil
}

// HandleKey offers ev to the engine through the session. A declined key
// gets the terminal's default behavior against the document, after any
// pending commit has been flushed. It reports whether anything consumed
// the key. Ctrl-Q returns ErrQuit.
func (app *Application) HandleKey(ctx context.Context, ev key.Event) (bool, error) {
	if ev.Equals(quitKey) {
		return false, ErrQuit
	}

	handled := false
	kp := event.KeyPressed{
		SessionID: app.session.ID(),
		Key:       ev,
		Reply:     func(h bool) { handled = h },
	}
	if err := event.Emit(ctx, app.bus, event.TopicKeyPressed, kp, "app"); err != nil {
		app.logger.Warn("key %s: %v", ev, err)
	}
	if handled {
		return true, nil
	}

	app.session.Flush(ctx)
	st, ok := hostDefault(ev, app.doc.State(), app.readOnly.Load())
	if ok {
		app.doc.Apply(st)
	}
	return ok, nil
}

func (app *Application) draw(b backend.Backend) {
	st := app.doc.State()
	b.Draw(backend.View{
		Text:      st.Text,
		Selection: st.Selection,
		Status:    app.statusLine(),
	})
}

// startInputPolling moves PollEvent onto its own goroutine. It returns
// after the backend is shut down or stop is closed.
func (app *Application) startInputPolling(b backend.Backend, stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event)
	go func() {
		for {
			ev := b.PollEvent()
			select {
			case events <- ev:
			case <-stop:
				return
			}
			if ev.Type == backend.EventClosed {
				return
			}
		}
	}()
	return events
}
