package query

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerDropsSupersededCalls(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Do(func() {
			fired.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Fatalf("expected exactly one invocation, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Fatalf("expected the final call to win, got call %d", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Do(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Fatalf("pending call fired after Stop, count %d", got)
	}

	d.Do(func() { fired.Add(1) })
	time.Sleep(60 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Fatalf("Do scheduled work after Stop, count %d", got)
	}
}
