package dispatcher

import "github.com/dshills/inkwell/internal/dispatcher/hook"

// RegisterHook adds h as a pre-hook, a post-hook, or both.
func (d *Dispatcher) RegisterHook(h hook.Hook) bool {
	return d.hooks.Register(h)
}

// RegisterPreHook adds a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(h hook.PreDispatchHook) {
	d.hooks.RegisterPre(h)
}

// RegisterPostHook adds a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(h hook.PostDispatchHook) {
	d.hooks.RegisterPost(h)
}

// UnregisterHook removes the named hook.
func (d *Dispatcher) UnregisterHook(name string) bool {
	return d.hooks.Unregister(name)
}

// HookManager returns the hook manager.
func (d *Dispatcher) HookManager() *hook.Manager {
	return d.hooks
}
