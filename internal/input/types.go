package input

import "strings"

// Direction is the way a directional command moves.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	// DirForward is toward the end of the buffer.
	DirForward
	// DirBackward is toward the start of the buffer.
	DirBackward
)

var directionNames = [...]string{"none", "left", "right", "forward", "backward"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "none"
}

// ActionSource records what produced an action.
type ActionSource uint8

const (
	SourceKeyboard ActionSource = iota
	SourceHost
	SourcePlugin
	SourceAPI
)

var sourceNames = [...]string{"keyboard", "host", "plugin", "api"}

func (s ActionSource) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "unknown"
}

// ActionArgs are the arguments an action carries.
type ActionArgs struct {
	// Rune is the typed character for pair.open and pair.close.
	Rune rune

	// Token is the classified delimiter, e.g. "(", "[[" or "`".
	Token string

	Direction Direction

	// Extra holds arguments from keymap files and plugins.
	Extra map[string]any
}

// Get returns Extra[key].
func (a ActionArgs) Get(key string) (any, bool) {
	v, ok := a.Extra[key]
	return v, ok
}

// GetString returns Extra[key] if it is a string.
func (a ActionArgs) GetString(key string) string { return extra[string](a, key) }

// GetBool returns Extra[key] if it is a bool.
func (a ActionArgs) GetBool(key string) bool { return extra[bool](a, key) }

func extra[T any](a ActionArgs, key string) T {
	v, _ := a.Extra[key].(T)
	return v
}

// Action is a named command for the dispatcher, e.g. "pair.open".
type Action struct {
	Name   string
	Args   ActionArgs
	Source ActionSource

	// Count repeats the action. Zero means once.
	Count int
}

// IsEmpty reports whether the action names nothing.
func (a Action) IsEmpty() bool { return a.Name == "" }

// Namespace is the part of Name before the first dot, or "".
func (a Action) Namespace() string {
	ns, _, found := strings.Cut(a.Name, ".")
	if !found {
		return ""
	}
	return ns
}

// WithCount returns a with Count set.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// WithRune returns a carrying the typed rune and its token.
func (a Action) WithRune(r rune, token string) Action {
	a.Args.Rune, a.Args.Token = r, token
	return a
}

// WithDirection returns a with Args.Direction set.
func (a Action) WithDirection(dir Direction) Action {
	a.Args.Direction = dir
	return a
}
