package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/inkwell/internal/dispatcher/handler"
)

// Metrics counts dispatch outcomes. Keys that resolve to no action are
// counted as unbound; everything else is counted per action.
type Metrics struct {
	mu sync.Mutex

	actions map[string]*ActionMetrics
	totals  Totals
}

// Totals are the counters summed over every key event.
type Totals struct {
	Dispatches uint64
	Handled    uint64
	Declined   uint64
	Cancelled  uint64
	Errors     uint64
	Panics     uint64
	Unbound    uint64
	Duration   time.Duration
}

// ActionMetrics holds the counters for one action name.
type ActionMetrics struct {
	Name        string
	Dispatches  uint64
	Handled     uint64
	Declined    uint64
	Errors      uint64
	Total       time.Duration
	Max         time.Duration
	LastStatus  handler.ResultStatus
	LastHandled time.Time
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionMetrics)}
}

// RecordDispatch records the outcome of one dispatched action.
func (m *Metrics) RecordDispatch(actionName string, d time.Duration, result handler.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	am := m.actions[actionName]
	if am == nil {
		am = &ActionMetrics{Name: actionName}
		m.actions[actionName] = am
	}
	am.Dispatches++
	am.Total += d
	am.LastStatus = result.Status
	if d > am.Max {
		am.Max = d
	}

	m.totals.Dispatches++
	m.totals.Duration += d
	switch {
	case result.Handled:
		am.Handled++
		am.LastHandled = time.Now()
		m.totals.Handled++
	case result.Status == handler.StatusCancelled:
		am.Declined++
		m.totals.Cancelled++
	case result.Status == handler.StatusError:
		am.Errors++
		m.totals.Errors++
	default:
		am.Declined++
		m.totals.Declined++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals.Panics++
}

// RecordUnbound records a key that resolved to no action.
func (m *Metrics) RecordUnbound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals.Unbound++
}

// Totals returns the global counters.
func (m *Metrics) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

// ActionStats returns a copy of the counters for actionName, or nil.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	am := m.actions[actionName]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// TopActions returns up to n actions, most dispatched first.
func (m *Metrics) TopActions(n int) []ActionMetrics {
	m.mu.Lock()
	list := make([]ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		list = append(list, *am)
	}
	m.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Dispatches != list[j].Dispatches {
			return list[i].Dispatches > list[j].Dispatches
		}
		return list[i].Name < list[j].Name
	})
	if n < len(list) {
		list = list[:n]
	}
	return list
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = make(map[string]*ActionMetrics)
	m.totals = Totals{}
}

// Average returns the mean time spent per dispatch of the action.
func (am ActionMetrics) Average() time.Duration {
	if am.Dispatches == 0 {
		return 0
	}
	return am.Total / time.Duration(am.Dispatches)
}

// HandledRate returns the fraction of dispatches that were handled.
func (am ActionMetrics) HandledRate() float64 {
	if am.Dispatches == 0 {
		return 0
	}
	return float64(am.Handled) / float64(am.Dispatches)
}
