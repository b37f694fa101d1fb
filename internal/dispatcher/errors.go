package dispatcher

import "errors"

// Dispatcher errors. They are reported on the Error field of a result;
// the host only ever sees a declined key.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidAction indicates the action has no name.
	ErrInvalidAction = errors.New("dispatcher: invalid action")

	// ErrInvalidResult indicates a handler returned a selection outside its text.
	ErrInvalidResult = errors.New("dispatcher: invalid handler result")
)
