package ratelimit

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestDebounce_RunsOnceWithLatestArgument(t *testing.T) {
	clock := NewManualClock(epoch)
	var calls []int
	d := Debounce(func(v int) { calls = append(calls, v) }, 100*time.Millisecond, clock)

	d.Call(1)
	clock.Advance(50 * time.Millisecond)
	d.Call(2)
	clock.Advance(50 * time.Millisecond)
	d.Call(3)

	if len(calls) != 0 {
		t.Fatalf("expected no calls during the burst, got %v", calls)
	}

	clock.Advance(100 * time.Millisecond)
	if len(calls) != 1 || calls[0] != 3 {
		t.Fatalf("expected a single call with the latest argument, got %v", calls)
	}

	clock.Advance(time.Second)
	if len(calls) != 1 {
		t.Fatalf("expected no further calls, got %v", calls)
	}
}

func TestDebounce_StopAndFlush(t *testing.T) {
	clock := NewManualClock(epoch)
	var calls []string
	d := Debounce(func(v string) { calls = append(calls, v) }, time.Second, clock)

	d.Call("dropped")
	d.Stop()
	clock.Advance(2 * time.Second)
	if len(calls) != 0 {
		t.Fatalf("stopped debouncer must not run, got %v", calls)
	}

	d.Call("flushed")
	d.Flush()
	if len(calls) != 1 || calls[0] != "flushed" {
		t.Fatalf("expected flush to run immediately, got %v", calls)
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected flush to cancel the timer, %d pending", clock.Pending())
	}

	d.Flush()
	if len(calls) != 1 {
		t.Fatalf("flush without a pending call must be a no-op, got %v", calls)
	}
}

// latchedClock hands out timers that can no longer be stopped, as happens
// once a timer's callback has started.
type latchedClock struct {
	now       time.Time
	callbacks []func()
}

func (c *latchedClock) Now() time.Time { return c.now }

func (c *latchedClock) AfterFunc(_ time.Duration, fn func()) Timer {
	c.callbacks = append(c.callbacks, fn)
	return latchedTimer{}
}

type latchedTimer struct{}

func (latchedTimer) Stop() bool { return false }

func TestDebounce_IgnoresSupersededTimer(t *testing.T) {
	clock := &latchedClock{now: epoch}
	var calls []string
	d := Debounce(func(v string) { calls = append(calls, v) }, time.Second, clock)

	d.Call("a")
	d.Call("b")
	if len(clock.callbacks) != 2 {
		t.Fatalf("expected two scheduled timers, got %d", len(clock.callbacks))
	}

	clock.callbacks[0]()
	if len(calls) != 0 {
		t.Fatalf("superseded timer must not run before the quiet period ends, got %v", calls)
	}

	clock.callbacks[1]()
	if len(calls) != 1 || calls[0] != "b" {
		t.Fatalf("expected the current timer to run once with b, got %v", calls)
	}

	d.Call("c")
	d.Stop()
	clock.callbacks[2]()
	if len(calls) != 1 {
		t.Fatalf("stopped debouncer must ignore its timer, got %v", calls)
	}
}

func TestDebounce_SystemClock(t *testing.T) {
	defer goleak.VerifyNone(t)

	done := make(chan int, 1)
	d := Debounce(func(v int) { done <- v }, 10*time.Millisecond, nil)
	d.Call(1)
	d.Call(2)

	select {
	case got := <-done:
		if got != 2 {
			t.Fatalf("expected latest argument 2, got %d", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced call never ran")
	}
}

func TestThrottle_DropsCallsInsideInterval(t *testing.T) {
	clock := NewManualClock(epoch)
	var calls []int
	th := Throttle(func(v int) { calls = append(calls, v) }, 100*time.Millisecond, clock)

	if !th.Call(1) {
		t.Fatalf("first call must run")
	}
	clock.Advance(40 * time.Millisecond)
	if th.Call(2) {
		t.Fatalf("call inside the interval must be dropped")
	}
	clock.Advance(60 * time.Millisecond)
	if !th.Call(3) {
		t.Fatalf("call after the interval must run")
	}

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 3 {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestKeyedThrottle(t *testing.T) {
	clock := NewManualClock(epoch)
	k := NewKeyedThrottle(time.Minute, clock)

	if !k.Allow("a") || !k.Allow("b") {
		t.Fatalf("first sighting of each key must pass")
	}
	if k.Allow("a") {
		t.Fatalf("repeat inside the window must be dropped")
	}
	clock.Advance(time.Minute)
	if !k.Allow("a") {
		t.Fatalf("key must pass again once the window elapsed")
	}
}

func TestManualClock_FiresInDueOrder(t *testing.T) {
	clock := NewManualClock(epoch)
	var order []string
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "late") })
	clock.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "early")
		clock.AfterFunc(5*time.Millisecond, func() { order = append(order, "chained") })
	})
	stopped := clock.AfterFunc(20*time.Millisecond, func() { order = append(order, "stopped") })
	if !stopped.Stop() {
		t.Fatalf("expected stop to report a pending timer")
	}

	clock.Advance(30 * time.Millisecond)

	want := []string{"early", "chained", "late"}
	if len(order) != len(want) {
		t.Fatalf("unexpected order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v", order)
		}
	}
	if got := clock.Now(); !got.Equal(epoch.Add(30 * time.Millisecond)) {
		t.Fatalf("unexpected clock position %v", got)
	}
}
