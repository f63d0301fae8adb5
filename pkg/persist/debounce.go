package persist

import (
	"sync"
	"time"
)

// DefaultDebounce is the default autosave debounce window. It is short
// enough that a layout is on disk well before the user's next gesture, and
// long enough to coalesce the burst of mutations a drag commit produces.
const DefaultDebounce = 250 * time.Millisecond

// debouncer coalesces rapid triggers into a single callback invocation.
// When Trigger is called multiple times within the window, only the last
// callback runs, after the window elapses.
type debouncer struct {
	window time.Duration
	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

// Trigger schedules callback after the debounce window, cancelling any
// previously scheduled callback. With a zero window the callback still runs
// asynchronously, preserving "never call back under the caller's locks".
func (d *debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// Only the most recently scheduled callback may run; Stop above can
		// miss a timer that already fired.
		stale := seq != d.seq
		if !stale {
			d.timer = nil
		}
		d.mu.Unlock()
		if stale {
			return
		}
		callback()
	})
}

// Cancel drops any pending callback.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
