// Package ratelimit provides the time-delay coalescing (debounce) and
// minimum-interval (throttle) helpers handlers can opt into when events fire
// at high frequency.
package ratelimit

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into a single invocation that runs once
// the calls have been quiet for the configured wait. The latest argument wins.
type Debouncer[T any] struct {
	mu      sync.Mutex
	clock   Clock
	wait    time.Duration
	fn      func(T)
	timer   Timer
	pending T
	armed   bool
	gen     uint64
}

// Debounce wraps fn. A nil clock uses the system clock.
func Debounce[T any](fn func(T), wait time.Duration, clock Clock) *Debouncer[T] {
	if clock == nil {
		clock = SystemClock()
	}
	return &Debouncer[T]{clock: clock, wait: wait, fn: fn}
}

// Call records arg and restarts the quiet period.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = arg
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	// A timer whose callback already started cannot be stopped; the
	// generation check in fire turns it into a no-op.
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Flush runs a pending invocation immediately.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	gen := d.gen
	d.mu.Unlock()
	d.fire(gen)
}

// Stop drops any pending invocation.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.armed = false
	d.gen++
	var zero T
	d.pending = zero
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	arg := d.pending
	d.armed = false
	d.timer = nil
	var zero T
	d.pending = zero
	d.mu.Unlock()

	d.fn(arg)
}

// Throttler runs fn at most once per interval. The first call runs
// immediately; calls inside the interval are dropped.
type Throttler[T any] struct {
	mu    sync.Mutex
	clock Clock
	limit time.Duration
	fn    func(T)
	last  time.Time
	ran   bool
}

// Throttle wraps fn. A nil clock uses the system clock.
func Throttle[T any](fn func(T), limit time.Duration, clock Clock) *Throttler[T] {
	if clock == nil {
		clock = SystemClock()
	}
	return &Throttler[T]{clock: clock, limit: limit, fn: fn}
}

// Call invokes fn unless the previous invocation is younger than the limit.
// It reports whether fn ran.
func (t *Throttler[T]) Call(arg T) bool {
	t.mu.Lock()
	now := t.clock.Now()
	if t.ran && now.Sub(t.last) < t.limit {
		t.mu.Unlock()
		return false
	}
	t.ran = true
	t.last = now
	t.mu.Unlock()

	t.fn(arg)
	return true
}

// KeyedThrottle keeps one throttle window per key, e.g. per repeated message.
type KeyedThrottle struct {
	mu    sync.Mutex
	clock Clock
	limit time.Duration
	last  map[string]time.Time
}

// NewKeyedThrottle builds a KeyedThrottle. A nil clock uses the system clock.
func NewKeyedThrottle(limit time.Duration, clock Clock) *KeyedThrottle {
	if clock == nil {
		clock = SystemClock()
	}
	return &KeyedThrottle{clock: clock, limit: limit, last: make(map[string]time.Time)}
}

// Allow reports whether key may pass now and, if so, starts its window.
func (k *KeyedThrottle) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.clock.Now()
	if last, ok := k.last[key]; ok && now.Sub(last) < k.limit {
		return false
	}
	for candidate, seen := range k.last {
		if now.Sub(seen) >= k.limit {
			delete(k.last, candidate)
		}
	}
	k.last[key] = now
	return true
}
