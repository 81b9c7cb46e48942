package storefront

import (
	"sync"
	"time"
)

// DefaultDebounce is the storefront's search-as-you-type delay.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays delivery of submitted values until no newer value has
// arrived for the wait period. Only the last value submitted within a burst
// reaches fn; earlier ones are dropped. fn runs on its own goroutine.
type Debouncer[T any] struct {
	mu      sync.Mutex
	wait    time.Duration
	fn      func(T)
	timer   *time.Timer
	seq     uint64
	value   T
	pending bool
}

// NewDebouncer creates a Debouncer. wait <= 0 means DefaultDebounce.
func NewDebouncer[T any](wait time.Duration, fn func(T)) *Debouncer[T] {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer[T]{wait: wait, fn: fn}
}

// Submit records v and restarts the wait.
func (d *Debouncer[T]) Submit(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.value = v
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	seq := d.seq
	d.timer = time.AfterFunc(d.wait, func() { d.fire(seq) })
}

// Flush delivers the pending value now, on the caller's goroutine.
// Reports whether a value was delivered.
func (d *Debouncer[T]) Flush() bool {
	v, ok := d.take(0, false)
	if ok {
		d.fn(v)
	}
	return ok
}

// Stop discards the pending value.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs from a timer. A timer superseded by a later Submit, Flush or
// Stop finds a different seq and does nothing.
func (d *Debouncer[T]) fire(seq uint64) {
	if v, ok := d.take(seq, true); ok {
		d.fn(v)
	}
}

func (d *Debouncer[T]) take(seq uint64, checkSeq bool) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if !d.pending || (checkSeq && seq != d.seq) {
		return zero, false
	}
	v := d.value
	d.value = zero
	d.pending = false
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return v, true
}
