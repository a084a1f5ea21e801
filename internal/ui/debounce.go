package ui

import (
	"sync"
	"time"
)

// Debouncer calls fn with the last value pushed once no new value has
// arrived for delay. Values equal to the previous emission are skipped.
type Debouncer[T comparable] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	last    T
	emitted bool
	stopped bool
}

func NewDebouncer[T comparable](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, v) })
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || (d.emitted && v == d.last) {
		d.mu.Unlock()
		return
	}
	d.last = v
	d.emitted = true
	d.mu.Unlock()

	d.fn(v)
}

// Stop drops any pending value. Push after Stop is ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
