package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/inkwell/internal/input/key"
)

// Registry holds the active keymaps and answers binding lookups.
// Registering a keymap under an existing name replaces it.
type Registry struct {
	mu    sync.RWMutex
	maps  []*entry
	index map[string][]*slot
	seq   int
	cond  ConditionEvaluator
}

// entry is one registered keymap with its registration stamp.
type entry struct {
	parsed *ParsedKeymap
	order  int
}

// slot is one binding filed under its lookup key.
type slot struct {
	binding *ParsedBinding
	owner   *entry
}

// NewRegistry returns an empty registry using DefaultConditionEvaluator.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string][]*slot),
		cond:  &DefaultConditionEvaluator{},
	}
}

// LookupKey is the index key for ev. Shift is folded into rune events.
func LookupKey(ev key.Event) string {
	if ev.IsRune() {
		ev.Modifiers = ev.Modifiers.Without(key.ModShift)
	}
	return ev.String()
}

// SetConditionEvaluator replaces the evaluator for "when" clauses.
func (r *Registry) SetConditionEvaluator(eval ConditionEvaluator) {
	r.mu.Lock()
	r.cond = eval
	r.mu.Unlock()
}

// Register parses km and files its bindings.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return errors.New("keymap: nil keymap")
	}
	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(km.Name)

	r.seq++
	e := &entry{parsed: parsed, order: r.seq}
	r.maps = append(r.maps, e)
	for i := range parsed.ParsedBindings {
		pb := &parsed.ParsedBindings[i]
		k := LookupKey(pb.Event)
		r.index[k] = append(r.index[k], &slot{binding: pb, owner: e})
	}
	return nil
}

// Unregister drops the keymap called name, if present.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	r.removeLocked(name)
	r.mu.Unlock()
}

func (r *Registry) removeLocked(name string) {
	i := slices.IndexFunc(r.maps, func(e *entry) bool { return e.parsed.Name == name })
	if i < 0 {
		return
	}
	gone := r.maps[i]
	r.maps = slices.Delete(r.maps, i, i+1)

	for k, slots := range r.index {
		slots = slices.DeleteFunc(slots, func(s *slot) bool { return s.owner == gone })
		if len(slots) == 0 {
			delete(r.index, k)
			continue
		}
		r.index[k] = slots
	}
}

// Get returns the keymap called name, or nil.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.maps {
		if e.parsed.Name == name {
			return e.parsed
		}
	}
	return nil
}

// Keymaps lists the registered keymaps, oldest first.
func (r *Registry) Keymaps() []*ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ParsedKeymap, len(r.maps))
	for i, e := range r.maps {
		out[i] = e.parsed
	}
	return out
}

// Lookup returns the best binding for ev whose condition holds in ctx,
// or nil. A nil ctx has every condition false.
func (r *Registry) Lookup(ev key.Event, ctx *LookupContext) *Binding {
	if m := r.LookupAll(ev, ctx); len(m) > 0 {
		return &m[0].Binding
	}
	return nil
}

// LookupAll returns every binding for ev whose condition holds, best first.
func (r *Registry) LookupAll(ev key.Event, ctx *LookupContext) []BindingMatch {
	if ctx == nil {
		ctx = NewLookupContext()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []BindingMatch
	for _, s := range r.index[LookupKey(ev)] {
		if w := s.binding.When; w != "" && !r.cond.Evaluate(w, ctx) {
			continue
		}
		m := BindingMatch{ParsedBinding: s.binding, Keymap: s.owner.parsed.Keymap, order: s.owner.order}
		m.CalculateScore()
		out = append(out, m)
	}
	slices.SortStableFunc(out, func(a, b BindingMatch) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out
}
