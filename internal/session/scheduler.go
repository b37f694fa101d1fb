package session

import "sync"

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// AfterRender implements Scheduler.
func (f SchedulerFunc) AfterRender(fn func()) { f(fn) }

// Immediate runs callbacks at once. It suits hosts that have no render
// pass of their own.
var Immediate Scheduler = SchedulerFunc(func(fn func()) { fn() })

// Queue holds callbacks until the host calls Run after it has rendered.
type Queue struct {
	mu  sync.Mutex
	fns []func()
}

// AfterRender implements Scheduler.
func (q *Queue) AfterRender(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, fn)
}

// Run calls the queued callbacks in order and returns how many ran.
// Callbacks queued while running wait for the next Run.
func (q *Queue) Run() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Len returns the number of queued callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns)
}
