package format

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/input"
)

// Action names for format operations.
const (
	ActionBold = "format.bold"
)

// BoldMarker is the markdown strong-emphasis delimiter.
const BoldMarker = "**"

// Handler handles inline formatting toggles.
type Handler struct{}

// NewHandler creates a new format handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the format namespace.
func (h *Handler) Namespace() string {
	return "format"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionBold
}

// HandleAction processes a format action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionBold:
		if !ctx.Features.BoldToggle {
			return handler.Decline()
		}
		return ToggleBold(ctx.State)
	default:
		return handler.Errorf("unknown format action: %s", action.Name)
	}
}

// ToggleBold toggles "**" around the selection.
func ToggleBold(st buffer.State) handler.Result {
	return ToggleMarker(st, BoldMarker)
}

// ToggleMarker removes marker from both sides of the selection when it
// sits directly outside it, and adds it otherwise. The selection keeps
// covering the same text. An empty selection is declined.
func ToggleMarker(st buffer.State, marker string) handler.Result {
	runes := st.Runes()
	sel := st.Selection
	if err := sel.Validate(len(runes)); err != nil {
		return handler.Error(err)
	}
	if sel.IsEmpty() || marker == "" {
		return handler.Decline()
	}
	n := buffer.RuneLen(marker)

	if buffer.HasAt(runes, sel.Start-n, marker) && buffer.HasAt(runes, sel.End, marker) {
		out := buffer.Splice(runes, sel.End, sel.End+n, nil)
		out = buffer.Splice(out, sel.Start-n, sel.Start, nil)
		return handler.Edit(string(out), sel.Shift(-n)).WithData("unwrapped", true)
	}

	m := []rune(marker)
	out := buffer.Splice(runes, sel.End, sel.End, m)
	out = buffer.Splice(out, sel.Start, sel.Start, m)
	return handler.Edit(string(out), sel.Shift(n)).WithData("unwrapped", false)
}
