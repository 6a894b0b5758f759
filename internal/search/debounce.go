// Package search provides the typeahead debouncing used by course filtering.
package search

import (
	"sync"
	"time"
)

// DebounceInterval is how long after the last filter change a fetch fires.
const DebounceInterval = 500 * time.Millisecond

// Debouncer schedules a task on a trailing-edge timer: each Trigger cancels
// any pending task and starts the delay over, so only the last task within a
// burst runs.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given delay. A non-positive
// interval falls back to DebounceInterval.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DebounceInterval
	}
	return &Debouncer{interval: interval}
}

// Trigger schedules fn to run after the delay, replacing any pending task.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending task.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
