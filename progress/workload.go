package progress

import (
	"fmt"
	"sync/atomic"

	"github.com/gcastellov/go-progress/progress/component"
)

// DefaultWorkloadID identifies the single workload of a ConsoleReporter.
const DefaultWorkloadID = "Default"

// Workload is a named unit of work with an expected item count and live
// success/failure counters. The counters may be incremented from any number
// of goroutines; the component is advanced only by the render loop.
type Workload struct {
	id            string
	description   string
	expectedItems uint64
	component     component.Component

	success atomic.Uint64
	failure atomic.Uint64
}

// NewWorkload validates and returns a workload owning c.
func NewWorkload(id, description string, expectedItems uint64, c component.Component) (*Workload, error) {
	if expectedItems == 0 {
		return nil, fmt.Errorf("workload %q: %w", id, ErrNoExpectedItems)
	}
	if c == nil {
		return nil, fmt.Errorf("workload %q: %w", id, ErrNilComponent)
	}
	return &Workload{
		id:            id,
		description:   description,
		expectedItems: expectedItems,
		component:     c,
	}, nil
}

// ID returns the identifier the workload is reported under.
func (w *Workload) ID() string { return w.id }

// Description is the label printed above the workload's component.
func (w *Workload) Description() string { return w.description }

// ExpectedItems is the number of items that finishes the workload.
func (w *Workload) ExpectedItems() uint64 { return w.expectedItems }

// SuccessCount returns the number of successful items so far.
func (w *Workload) SuccessCount() uint64 { return w.success.Load() }

// FailureCount returns the number of unsuccessful items so far.
func (w *Workload) FailureCount() uint64 { return w.failure.Load() }

// CurrentCount is the number of processed items, successful or not.
func (w *Workload) CurrentCount() uint64 {
	return w.success.Load() + w.failure.Load()
}

// IsFinished reports whether every expected item has been processed.
func (w *Workload) IsFinished() bool {
	return w.CurrentCount() == w.expectedItems
}

// Percent is computed from the counters, never from the component, so it is
// safe to call while the render loop is advancing.
func (w *Workload) Percent() component.Percent {
	return component.NewPercent(w.expectedItems, w.CurrentCount())
}

// Success records one successful item. It is safe for concurrent use.
func (w *Workload) Success() { w.success.Add(1) }

// Failure records one unsuccessful item. It is safe for concurrent use.
func (w *Workload) Failure() { w.failure.Add(1) }

// Reset zeroes both counters.
func (w *Workload) Reset() {
	w.success.Store(0)
	w.failure.Store(0)
}

// Next advances the component one tick. Only the render loop calls it.
func (w *Workload) Next() component.Percent {
	return w.component.Next(w.expectedItems, w.CurrentCount())
}

// Render returns the current component frame.
func (w *Workload) Render() string {
	return w.component.String()
}

// Workloads is an ordered set of workloads keyed by id.
type Workloads struct {
	ordered []*Workload
	byID    map[string]*Workload
}

// NewWorkloads returns an empty collection.
func NewWorkloads() *Workloads {
	return &Workloads{byID: map[string]*Workload{}}
}

// Add registers w after the already registered workloads.
func (ws *Workloads) Add(w *Workload) error {
	if _, ok := ws.byID[w.id]; ok {
		return fmt.Errorf("workload %q: %w", w.id, ErrDuplicateWorkload)
	}
	ws.byID[w.id] = w
	ws.ordered = append(ws.ordered, w)
	return nil
}

// All returns the workloads in registration order.
func (ws *Workloads) All() []*Workload {
	return ws.ordered
}

// Len returns the number of workloads.
func (ws *Workloads) Len() int { return len(ws.ordered) }

// Get looks a workload up by id.
func (ws *Workloads) Get(id string) (*Workload, bool) {
	w, ok := ws.byID[id]
	return w, ok
}

// Success records a successful item for id. Unknown ids are ignored and
// reported through the returned flag.
func (ws *Workloads) Success(id string) bool {
	w, ok := ws.byID[id]
	if ok {
		w.Success()
	}
	return ok
}

// Failure records a failed item for id. Unknown ids are ignored and reported
// through the returned flag.
func (ws *Workloads) Failure(id string) bool {
	w, ok := ws.byID[id]
	if ok {
		w.Failure()
	}
	return ok
}

// ExpectedItems sums the expected items of every workload.
func (ws *Workloads) ExpectedItems() uint64 {
	var sum uint64
	for _, w := range ws.ordered {
		sum += w.expectedItems
	}
	return sum
}

// CurrentCount sums the processed items of every workload.
func (ws *Workloads) CurrentCount() uint64 {
	var sum uint64
	for _, w := range ws.ordered {
		sum += w.CurrentCount()
	}
	return sum
}

// SuccessCount sums the successful items of every workload.
func (ws *Workloads) SuccessCount() uint64 {
	var sum uint64
	for _, w := range ws.ordered {
		sum += w.SuccessCount()
	}
	return sum
}

// FailureCount sums the unsuccessful items of every workload.
func (ws *Workloads) FailureCount() uint64 {
	var sum uint64
	for _, w := range ws.ordered {
		sum += w.FailureCount()
	}
	return sum
}

// Percent is the average of the member percents. Every workload weighs the
// same regardless of its size.
func (ws *Workloads) Percent() float64 {
	if len(ws.ordered) == 0 {
		return 0
	}
	var sum float64
	for _, w := range ws.ordered {
		sum += w.Percent().Value()
	}
	return sum / float64(len(ws.ordered))
}

// AreFinished reports whether every member is finished.
func (ws *Workloads) AreFinished() bool {
	for _, w := range ws.ordered {
		if !w.IsFinished() {
			return false
		}
	}
	return true
}

// Overview maps each workload id to its finished state.
func (ws *Workloads) Overview() map[string]bool {
	overview := make(map[string]bool, len(ws.ordered))
	for _, w := range ws.ordered {
		overview[w.id] = w.IsFinished()
	}
	return overview
}

// NextAll advances every component once, in registration order.
func (ws *Workloads) NextAll() {
	for _, w := range ws.ordered {
		w.Next()
	}
}

// Reset zeroes the counters of every member.
func (ws *Workloads) Reset() {
	for _, w := range ws.ordered {
		w.Reset()
	}
}
