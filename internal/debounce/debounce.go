// Package debounce provides a cancellable scheduled task: each trigger
// cancels any pending run and reschedules it, so under a burst of triggers
// only the most recent one ever fires.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay matches the index page's input debounce interval.
const DefaultDelay = 300 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single deferred run of fn.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Debouncer that runs fn delay after the most recent Trigger.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn after the configured delay, cancelling any pending
// run first.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending run. It does not wait for a run already started.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
