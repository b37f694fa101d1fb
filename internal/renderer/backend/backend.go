// Package backend is the terminal surface the editor draws to and reads
// keys from.
package backend

import (
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
	EventClosed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventInterrupt:
		return "interrupt"
	case EventClosed:
		return "closed"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Func is set for EventInterrupt; the event loop runs it.
	Func func()
}

// View is what one frame shows.
type View struct {
	Text      string
	Selection buffer.Selection
	Status    string
}

// Backend is a key source and drawing surface.
type Backend interface {
	Init() error
	Shutdown()
	Size() (width, height int)

	// PollEvent blocks for the next event. It returns EventClosed after
	// Shutdown.
	PollEvent() Event

	// Draw renders v and shows it.
	Draw(v View)

	// AfterRender queues fn to run from the event loop once the next frame
	// is on screen.
	AfterRender(fn func())

	Beep()
}
