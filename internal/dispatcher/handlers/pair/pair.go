package pair

import (
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/engine/brackets"
	"github.com/dshills/inkwell/internal/input"
)

// Action names for pair operations.
const (
	ActionOpen           = "pair.open"
	ActionClose          = "pair.close"
	ActionDeleteBackward = "pair.deleteBackward"
	ActionDeleteForward  = "pair.deleteForward"
)

// Handler handles bracket insertion, skip-over and pair deletion.
type Handler struct{}

// NewHandler creates a new pair handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the pair namespace.
func (h *Handler) Namespace() string {
	return "pair"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionOpen, ActionClose, ActionDeleteBackward, ActionDeleteForward:
		return true
	}
	return false
}

// HandleAction processes a pair action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionOpen:
		return h.open(ctx, action.Args)
	case ActionClose:
		return h.close(ctx, action.Args)
	case ActionDeleteBackward:
		return h.delete(ctx, brackets.Backward)
	case ActionDeleteForward:
		return h.delete(ctx, brackets.Forward)
	default:
		return handler.Errorf("unknown pair action: %s", action.Name)
	}
}

// open inserts the pair for the typed rune. A wiki token is downgraded to
// a plain "[" pair when wiki links are off.
func (h *Handler) open(ctx *execctx.ExecutionContext, args input.ActionArgs) handler.Result {
	if !ctx.Features.AutoPair {
		return handler.Decline()
	}
	token := args.Token
	if token == "" {
		if args.Rune == 0 {
			return handler.DeclineWithMessage("pair.open without a rune")
		}
		token = string(args.Rune)
	}
	if token == brackets.WikiOpen && !ctx.Features.WikiLinks {
		token = "["
	}

	result := InsertPair(ctx.State, token)
	if result.Handled {
		ctx.Logger.Debug("pair: inserted %q at %s", token, ctx.Selection())
		result = result.WithData("token", token)
	}
	return result
}

// close steps over the typed close rune when it is already there.
func (h *Handler) close(ctx *execctx.ExecutionContext, args input.ActionArgs) handler.Result {
	if !ctx.Features.AutoPair {
		return handler.Decline()
	}
	r := args.Rune
	if r == 0 {
		rs := []rune(args.Token)
		if len(rs) != 1 {
			return handler.DeclineWithMessage("pair.close without a rune")
		}
		r = rs[0]
	}
	return SkipOver(ctx.State, r)
}

// delete removes text in dir. Without auto-pairing it deletes a single rune.
func (h *Handler) delete(ctx *execctx.ExecutionContext, dir brackets.Direction) handler.Result {
	if !ctx.Features.AutoPair {
		return DeleteRune(ctx.State, dir)
	}
	m := brackets.Matcher{WikiLinks: ctx.Features.WikiLinks}
	result := Delete(ctx.State, dir, m)
	if _, ok := result.GetData("pair"); ok {
		ctx.Logger.Debug("pair: removed pair %s of %s", dir, ctx.Selection())
	}
	return result
}
