package topic

import (
	"sort"
	"sync"
)

// Index maps subscription patterns to the IDs registered under them. It is
// safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	root *node
	size int
}

type node struct {
	children map[string]*node
	ids      map[string]struct{}
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) empty() bool {
	return len(n.children) == 0 && len(n.ids) == 0
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{root: newNode()}
}

// Insert registers id under pattern. It returns false for an invalid
// pattern or an id already present there.
func (x *Index) Insert(pattern Topic, id string) bool {
	if !pattern.IsValid() {
		return false
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	n := x.root
	for _, seg := range pattern.Segments() {
		child := n.children[seg]
		if child == nil {
			child = newNode()
			n.children[seg] = child
		}
		n = child
	}
	if n.ids == nil {
		n.ids = make(map[string]struct{})
	}
	if _, ok := n.ids[id]; ok {
		return false
	}
	n.ids[id] = struct{}{}
	x.size++
	return true
}

// Delete removes id from pattern and prunes nodes left empty.
func (x *Index) Delete(pattern Topic, id string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	segs := pattern.Segments()
	path := make([]*node, 0, len(segs)+1)
	n := x.root
	path = append(path, n)
	for _, seg := range segs {
		n = n.children[seg]
		if n == nil {
			return false
		}
		path = append(path, n)
	}
	if _, ok := n.ids[id]; !ok {
		return false
	}
	delete(n.ids, id)
	x.size--

	for i := len(path) - 1; i > 0 && path[i].empty(); i-- {
		delete(path[i-1].children, segs[i-1])
	}
	return true
}

// Match returns the sorted, de-duplicated IDs whose pattern matches topic.
func (x *Index) Match(t Topic) []string {
	if !t.IsValid() {
		return nil
	}
	x.mu.RLock()
	defer x.mu.RUnlock()

	seen := make(map[string]struct{})
	type visit struct {
		n     *node
		depth int
	}
	visited := make(map[visit]struct{})
	segs := t.Segments()

	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		v := visit{n, depth}
		if _, ok := visited[v]; ok {
			return
		}
		visited[v] = struct{}{}

		if multi := n.children[WildcardMulti]; multi != nil {
			for i := depth; i <= len(segs); i++ {
				walk(multi, i)
			}
		}
		if depth == len(segs) {
			for id := range n.ids {
				seen[id] = struct{}{}
			}
			return
		}
		if child := n.children[segs[depth]]; child != nil {
			walk(child, depth+1)
		}
		if single := n.children[WildcardSingle]; single != nil {
			walk(single, depth+1)
		}
	}
	walk(x.root, 0)

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered (pattern, id) pairs.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.size
}

// Clear removes every registration.
func (x *Index) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.root = newNode()
	x.size = 0
}
