// Package hook provides pre- and post-dispatch hooks for the dispatcher.
//
// A pre-dispatch hook sees the resolved action and the execution context
// before the handler runs and may cancel it. A cancelled key is declined to
// the host, which then applies its own default behavior. A post-dispatch
// hook sees the handler's result and may inspect or replace it.
//
// # Ordering
//
// Pre-hooks run from highest to lowest priority; post-hooks run from lowest
// to highest, so the hook that saw an action first also sees its final
// result. Hooks of equal priority run in registration order. Registering a
// hook under an existing name replaces it in place.
//
//	PriorityAudit      = 1000  logging and timing
//	PriorityValidation = 800   read-only and filter checks
//	PriorityPlugin     = 300   script hooks
//	PriorityUser       = 0     ad hoc hooks
//
// # Built-in Hooks
//
//   - AuditHook: debug-logs every action and its outcome
//   - ReadOnlyHook: cancels edits when the context is read-only
//   - TimingHook: reports handler time through a callback
//   - ActionFilterHook: cancels actions rejected by a predicate
package hook
