package search

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTriggerRunsAfterDelay(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs int32
	d.Trigger(func() { atomic.AddInt32(&runs, 1) })

	if n := atomic.LoadInt32(&runs); n != 0 {
		t.Fatalf("task ran before delay elapsed")
	}
	time.Sleep(60 * time.Millisecond)
	if n := atomic.LoadInt32(&runs); n != 1 {
		t.Fatalf("expected 1 run, got %d", n)
	}
}

func TestBurstRunsOnlyLastTask(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var got int32
	// Simulates keystrokes: each one resets the timer.
	for i := 1; i <= 5; i++ {
		i := i
		d.Trigger(func() { atomic.StoreInt32(&got, int32(i)) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(80 * time.Millisecond)
	if n := atomic.LoadInt32(&got); n != 5 {
		t.Fatalf("expected only last task (5) to run, got %d", n)
	}
}

func TestStopCancelsPendingTask(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs int32
	d.Trigger(func() { atomic.AddInt32(&runs, 1) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	if n := atomic.LoadInt32(&runs); n != 0 {
		t.Fatalf("stopped task still ran %d times", n)
	}
}

func TestNonPositiveIntervalUsesDefault(t *testing.T) {
	d := NewDebouncer(0)
	if d.interval != DebounceInterval {
		t.Fatalf("expected default interval, got %v", d.interval)
	}
}
