package client

import (
	"sync"
	"time"
)

// DefaultNavigateDelay is the window within which rapid page/filter changes
// collapse to a single navigation.
const DefaultNavigateDelay = 100 * time.Millisecond

// Debouncer runs only the last function handed to Do within each delay
// window. Earlier pending functions are discarded, never executed late.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultNavigateDelay
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn after the delay, replacing any not-yet-fired predecessor.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
