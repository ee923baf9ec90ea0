// Package debounce provides a cancel-and-reschedule timer wrapper.
//
// A Debouncer collapses rapid repeated triggers into a single delayed
// run of the most recent one. It is used to coalesce disk writes of the
// suggestion cache. The combobox blur delay does not use this package:
// blur resync must run on the UI event loop, so it is modeled as a
// tea.Tick carrying a generation counter instead.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a function to run after a delay, superseding any
// previously scheduled run. One outstanding timer per instance; the
// deferred call is fire-and-forget. Safe for concurrent use.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Debouncer that runs fn once the delay has elapsed
// after the most recent Trigger.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger cancels any pending run and schedules a new one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels a pending run without firing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush runs the pending call immediately, if one is scheduled.
// Used on shutdown so a coalesced write is not lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if pending {
		d.fn()
	}
}
