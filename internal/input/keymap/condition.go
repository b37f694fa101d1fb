package keymap

import "strings"

// ConditionEvaluator decides whether a binding's "when" clause holds.
type ConditionEvaluator interface {
	Evaluate(condition string, ctx *LookupContext) bool
}

// LookupContext is the state "when" clauses are evaluated against.
type LookupContext struct {
	// Conditions are the boolean switches, e.g. "autoPair" or "unixKeys".
	Conditions map[string]bool

	// Variables back "name == value" comparisons.
	Variables map[string]string
}

// NewLookupContext returns a context with every condition false.
func NewLookupContext() *LookupContext {
	return &LookupContext{
		Conditions: make(map[string]bool),
		Variables:  make(map[string]string),
	}
}

// DefaultConditionEvaluator understands names, "!", "&&", "||" and
// "name == value". "||" binds loosest; there are no parentheses.
type DefaultConditionEvaluator struct{}

// Evaluate reports whether condition holds in ctx. The empty condition
// always holds.
func (DefaultConditionEvaluator) Evaluate(condition string, ctx *LookupContext) bool {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return true
	}
	return evalOr(condition, ctx)
}

func evalOr(expr string, ctx *LookupContext) bool {
	for _, term := range strings.Split(expr, "||") {
		if evalAnd(term, ctx) {
			return true
		}
	}
	return false
}

func evalAnd(expr string, ctx *LookupContext) bool {
	for _, factor := range strings.Split(expr, "&&") {
		if !evalFactor(strings.TrimSpace(factor), ctx) {
			return false
		}
	}
	return true
}

func evalFactor(expr string, ctx *LookupContext) bool {
	if rest, ok := strings.CutPrefix(expr, "!"); ok {
		return !evalFactor(strings.TrimSpace(rest), ctx)
	}
	if name, want, ok := strings.Cut(expr, "=="); ok {
		got, set := ctx.Variables[strings.TrimSpace(name)]
		return set && got == strings.TrimSpace(want)
	}
	return ctx.Conditions[expr]
}
