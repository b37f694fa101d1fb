// Package event is the in-process message bus that connects the editing
// engine to its host, plugins and configuration.
//
// Publishers send typed events on dot-separated topics; subscribers
// register a handler on a topic pattern (see package topic for wildcard
// rules). Delivery is synchronous, in the publisher's goroutine, ordered by
// subscription priority and then by subscription order. A handler that
// returns an error or panics does not stop delivery to the others; the
// failures are joined into the error returned by Publish.
//
// # Topics
//
// The engine publishes:
//
//	input.key          a key event reached the engine (KeyPressed)
//	buffer.committed   a handled result was applied to the surface (Committed)
//	buffer.declined    a key was left to the host (Declined)
//	session.mounted    an editing surface acquired its key subscription
//	session.unmounted  the subscription was released
//	config.reloaded    the configuration file changed on disk (ConfigReloaded)
//
// # Usage
//
//	bus := event.NewBus()
//	sub, _ := bus.SubscribeFunc("buffer.*", func(ctx context.Context, ev any) error {
//	    c := ev.(event.Event[event.Committed])
//	    log.Printf("now %q", c.Payload.Text)
//	    return nil
//	})
//	defer bus.Unsubscribe(sub)
package event
