// Package watch detects changes to a listing page and coalesces bursts of
// changes into a single re-extraction.
package watch

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period a burst of changes must settle for.
const DefaultWindow = 300 * time.Millisecond

// Debouncer runs Func once a burst of Trigger calls has been quiet for
// Window. Runs of Func never overlap.
type Debouncer struct {
	Window time.Duration
	Func   func()

	mu    sync.Mutex
	timer *time.Timer
	run   sync.Mutex
}

// NewDebouncer creates a Debouncer. A non-positive window uses DefaultWindow.
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{Window: window, Func: fn}
}

// Trigger starts the quiet period again.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.Window, d.fire)
}

// Stop cancels a pending run. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

func (d *Debouncer) fire() {
	d.run.Lock()
	defer d.run.Unlock()
	d.Func()
}
