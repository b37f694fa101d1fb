package hook

import (
	"sort"
	"sync"

	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/dispatcher/handler"
	"github.com/dshills/inkwell/internal/input"
)

// Manager holds the registered hooks in run order.
type Manager struct {
	mu   sync.RWMutex
	pre  []entry[PreDispatchHook]
	post []entry[PostDispatchHook]
	seq  int
}

type entry[H Hook] struct {
	hook  H
	order int
}

// NewManager creates an empty hook manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds h to the pre list, the post list, or both, depending on
// which interfaces it implements. It reports whether h was added anywhere.
func (m *Manager) Register(h Hook) bool {
	added := false
	if pre, ok := h.(PreDispatchHook); ok {
		m.RegisterPre(pre)
		added = true
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.RegisterPost(post)
		added = true
	}
	return added
}

// RegisterPre adds a pre-dispatch hook, replacing one of the same name.
func (m *Manager) RegisterPre(h PreDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre = upsert(m.pre, h, &m.seq)
	sort.SliceStable(m.pre, func(i, j int) bool {
		return before(m.pre[i], m.pre[j], true)
	})
}

// RegisterPost adds a post-dispatch hook, replacing one of the same name.
func (m *Manager) RegisterPost(h PostDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.post = upsert(m.post, h, &m.seq)
	sort.SliceStable(m.post, func(i, j int) bool {
		return before(m.post[i], m.post[j], false)
	})
}

func upsert[H Hook](list []entry[H], h H, seq *int) []entry[H] {
	for i := range list {
		if list[i].hook.Name() == h.Name() {
			list[i].hook = h
			return list
		}
	}
	*seq++
	return append(list, entry[H]{hook: h, order: *seq})
}

// before orders by priority, descending when desc is set, then by
// registration.
func before[H Hook](a, b entry[H], desc bool) bool {
	pa, pb := a.hook.Priority(), b.hook.Priority()
	if pa != pb {
		if desc {
			return pa > pb
		}
		return pa < pb
	}
	return a.order < b.order
}

// Unregister removes the named hook from both lists.
// It reports whether anything was removed.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	var a, b bool
	m.pre, a = remove(m.pre, name)
	m.post, b = remove(m.post, name)
	return a || b
}

func remove[H Hook](list []entry[H], name string) ([]entry[H], bool) {
	for i := range list {
		if list[i].hook.Name() == name {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}

// RunPreDispatch runs the pre-hooks in order. It stops at the first hook
// that cancels and returns false with that hook's name.
func (m *Manager) RunPreDispatch(action *input.Action, ctx *execctx.ExecutionContext) (bool, string) {
	m.mu.RLock()
	hooks := make([]PreDispatchHook, len(m.pre))
	for i, e := range m.pre {
		hooks[i] = e.hook
	}
	m.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false, h.Name()
		}
	}
	return true, ""
}

// RunPostDispatch runs the post-hooks in order.
func (m *Manager) RunPostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	m.mu.RLock()
	hooks := make([]PostDispatchHook, len(m.post))
	for i, e := range m.post {
		hooks[i] = e.hook
	}
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// PreHookNames returns the pre-hook names in run order.
func (m *Manager) PreHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.pre))
	for i, e := range m.pre {
		names[i] = e.hook.Name()
	}
	return names
}

// PostHookNames returns the post-hook names in run order.
func (m *Manager) PostHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.post))
	for i, e := range m.post {
		names[i] = e.hook.Name()
	}
	return names
}

// Len returns the number of pre- and post-hooks.
func (m *Manager) Len() (pre, post int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pre), len(m.post)
}

// Clear removes all hooks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre = nil
	m.post = nil
}
