package cursor

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input"
)

// Action names for cursor movements.
const (
	ActionLeft      = "cursor.left"
	ActionRight     = "cursor.right"
	ActionLineStart = "cursor.lineStart"
	ActionLineEnd   = "cursor.lineEnd"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionLeft, ActionRight, ActionLineStart, ActionLineEnd:
		return true
	}
	return false
}

// HandleAction processes a cursor action. Movement is allowed on
// read-only buffers.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()
	if action.Count > 1 {
		count = action.Count
	}

	switch action.Name {
	case ActionLeft:
		return Move(ctx.State, -count)
	case ActionRight:
		return Move(ctx.State, count)
	case ActionLineStart:
		return LineStart(ctx.State)
	case ActionLineEnd:
		return LineEnd(ctx.State)
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}
}

// Move returns a caret delta runes away, clamped to the buffer. It moves
// the caret and never extends a selection: a range collapses, leftward
// from its start and rightward from its end, the way an unshifted arrow
// key does.
func Move(st buffer.State, delta int) handler.Result {
	n := st.RuneLen()
	if err := st.Selection.Validate(n); err != nil {
		return handler.Error(err)
	}
	from := st.Selection.End
	if delta < 0 {
		from = st.Selection.Start
	}
	return handler.Edit(st.Text, buffer.Caret(from+delta).Clamp(n))
}

// LineStart moves the caret to the start of the line holding the selection start.
func LineStart(st buffer.State) handler.Result {
	runes := st.Runes()
	if err := st.Selection.Validate(len(runes)); err != nil {
		return handler.Error(err)
	}
	pos := st.Selection.Start
	for pos > 0 && runes[pos-1] != '\n' {
		pos--
	}
	return handler.Edit(st.Text, buffer.Caret(pos))
}

// LineEnd moves the caret to the end of the line holding the selection end,
// before its newline.
func LineEnd(st buffer.State) handler.Result {
	runes := st.Runes()
	if err := st.Selection.Validate(len(runes)); err != nil {
		return handler.Error(err)
	}
	pos := st.Selection.End
	for pos < len(runes) && runes[pos] != '\n' {
		pos++
	}
	return handler.Edit(st.Text, buffer.Caret(pos))
}
