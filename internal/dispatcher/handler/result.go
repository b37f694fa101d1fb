package handler

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/buffer"
)

// ResultStatus is how an action ended.
type ResultStatus uint8

const (
	// StatusOK means the handler produced a replacement state.
	StatusOK ResultStatus = iota
	// StatusDeclined means the handler left the key to the host.
	StatusDeclined
	// StatusError means the handler failed.
	StatusError
	// StatusCancelled means a pre-hook stopped the action.
	StatusCancelled
)

var statusNames = [...]string{"ok", "declined", "error", "cancelled"}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is the outcome of one action. Text and Selection replace the
// buffer when Handled is set; otherwise the dispatcher fills them with the
// state it was given.
type Result struct {
	Status    ResultStatus
	Text      string
	Selection buffer.Selection

	// Handled tells the host to suppress its own reaction to the key.
	Handled bool

	Error   error
	Message string

	// Data carries handler-specific extras, e.g. the matched token.
	Data map[string]any
}

// State is the replacement text and selection.
func (r Result) State() buffer.State {
	return buffer.State{Text: r.Text, Selection: r.Selection}
}

func (r Result) IsOK() bool       { return r.Status == StatusOK }
func (r Result) IsDeclined() bool { return r.Status == StatusDeclined }
func (r Result) IsError() bool    { return r.Status == StatusError }

// Edit is a handled result replacing the buffer with text and sel.
func Edit(text string, sel buffer.Selection) Result {
	return Result{Status: StatusOK, Text: text, Selection: sel, Handled: true}
}

// EditState is Edit for a whole state.
func EditState(st buffer.State) Result { return Edit(st.Text, st.Selection) }

// Decline leaves the key to the host.
func Decline() Result { return Result{Status: StatusDeclined} }

// DeclineWithMessage declines and says why.
func DeclineWithMessage(msg string) Result {
	return Result{Status: StatusDeclined, Message: msg}
}

// Error reports a handler failure.
func Error(err error) Result { return Result{Status: StatusError, Error: err} }

// Errorf reports a handler failure built from a format.
func Errorf(format string, args ...any) Result { return Error(fmt.Errorf(format, args...)) }

// Cancelled reports a vetoed action.
func Cancelled() Result { return Result{Status: StatusCancelled} }

// CancelledWithMessage reports a vetoed action and who vetoed it.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// WithMessage returns r with Message set.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithData returns r with Data[key] set. The map is copied so results
// built from a common base do not share it.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData returns Data[key].
func (r Result) GetData(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString returns Data[key] if it is a string.
func (r Result) GetDataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}
