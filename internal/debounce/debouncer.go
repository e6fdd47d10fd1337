// Package debounce delays rapidly changing values until they settle.
package debounce

import (
	"sync"
	"time"
)

// Debouncer emits the latest value once no newer value has arrived for
// the configured delay.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	emit    func(T)
	timer   *time.Timer
	value   T
	pending bool
	seq     uint64
	stopped bool
}

// New creates a Debouncer that calls emit with settled values.
func New[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		emit:  emit,
	}
}

// Set records v as the latest value and restarts the delay. It is ignored
// after Stop.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.value = v
	d.pending = true
	d.seq++

	// Reset the timer if it exists, or create a new one.
	if d.timer != nil {
		d.timer.Stop()
	}
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq)
	})
}

// Pending reports whether a value is waiting to be emitted.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush emits the pending value immediately, if any. It blocks until emit
// returns.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.value
	d.pending = false
	d.seq++
	d.mu.Unlock()

	if d.emit != nil {
		d.emit(v)
	}
}

// Stop cancels any pending emission. No emission starts after Stop
// returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs when the delay for the value numbered seq expires.
func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()

	// A newer Set, Flush or Stop superseded this timer.
	if d.stopped || !d.pending || seq != d.seq {
		d.mu.Unlock()
		return
	}

	v := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	if d.emit != nil {
		d.emit(v)
	}
}
