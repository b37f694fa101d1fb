package execctx

import "errors"

// Context validation errors.
var (
	// ErrInvalidState indicates the selection does not fit the text.
	ErrInvalidState = errors.New("execution context: invalid state")

	// ErrReadOnly indicates the buffer is read-only.
	ErrReadOnly = errors.New("execution context: buffer is read-only")
)
