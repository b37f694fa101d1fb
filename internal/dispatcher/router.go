package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Router finds the handler for an action name. Handlers registered for an
// exact name win over namespace handlers, which win over the fallback.
type Router struct {
	mu sync.RWMutex

	// exact maps an action name to its handlers, highest priority first.
	exact map[string][]handler.Handler

	// namespaces maps "pair" to the handler for "pair.*".
	namespaces map[string]handler.NamespaceHandler

	fallback handler.Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		exact:      make(map[string][]handler.Handler),
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// Register adds a handler for one action name. Handlers for the same name
// are ordered by priority; equal priorities keep registration order.
func (r *Router) Register(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.exact[actionName], h)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority() > list[j].Priority()
	})
	r.exact[actionName] = list
}

// Unregister removes every handler registered for actionName.
func (r *Router) Unregister(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exact, actionName)
}

// RegisterNamespace routes every action "namespace.*" that h can handle to h.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the handler for actions nothing else accepts.
func (r *Router) SetFallback(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route returns the handler for actionName, or nil.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if list := r.exact[actionName]; len(list) > 0 {
		return list[0]
	}
	if ns := namespaceOf(actionName); ns != "" {
		if h, ok := r.namespaces[ns]; ok && h.CanHandle(actionName) {
			return handler.NewNamespaceAdapter(h)
		}
	}
	return r.fallback
}

// CanRoute reports whether Route would return a handler.
func (r *Router) CanRoute(actionName string) bool {
	return r.Route(actionName) != nil
}

// Namespace returns the handler registered for namespace, or nil.
func (r *Router) Namespace(namespace string) handler.NamespaceHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[namespace]
}

// Namespaces returns the registered namespaces in sorted order.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.namespaces)
}

// Actions returns the exact action names in sorted order.
func (r *Router) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.exact)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// namespaceOf returns "pair" for "pair.open" and "" for names without a dot.
func namespaceOf(actionName string) string {
	ns, _, ok := strings.Cut(actionName, ".")
	if !ok {
		return ""
	}
	return ns
}
