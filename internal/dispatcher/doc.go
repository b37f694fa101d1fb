// Package dispatcher routes key events to handlers and coordinates execution.
//
// Each call handles one key event against one snapshot of the buffer:
//
//	event + (text, selection) -> Resolve -> handler -> (text', selection', handled)
//
// # Resolution
//
// Resolve picks at most one action for an event:
//
//  1. The keymap registry is consulted first. Default bindings carry
//     "when" conditions on the enabled features, so BS routes to
//     pair.deleteBackward only while auto-pairing is on, C-b to
//     cursor.left only while Unix keys are on, and so on.
//  2. An unbound typed rune is classified against the bracket table:
//     an open rune (or "[" completing "[[") becomes pair.open, a close
//     rune becomes pair.close.
//  3. Anything else is declined and left to the host.
//
// # Routing
//
// The Router maps an action name to a handler. Exact registrations win
// over namespace handlers ("pair" serves "pair.*"), which win over an
// optional fallback.
//
// # Execution
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built from the state, event and features
//  2. Pre-dispatch hooks run and may cancel the action
//  3. The handler runs, with panic recovery when configured
//  4. Post-dispatch hooks run and may replace the result
//  5. Results that are not handled get the input state back; a handled
//     result whose selection falls outside its text is rejected
//  6. Metrics are recorded, when enabled
//
// Errors, panics and cancellations never reach the host as failures: the
// result is simply not handled and carries the unchanged state. The Error
// field and the logger say what went wrong.
//
// # System
//
// System is the ready-made wiring of the dispatcher with the pair, cursor
// and format handlers and the built-in hooks:
//
//	sys := dispatcher.NewSystemWithDefaults()
//	r := sys.Dispatch(key.NewRuneEvent('(', key.ModNone), buffer.CaretState("ab", 1))
//	// r.Text == "a()b", r.Selection == buffer.Caret(2), r.Handled
package dispatcher
