package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTimer struct {
	c       chan time.Time
	stopped bool
}

func (f *fakeTimer) C() <-chan time.Time { return f.c }

func (f *fakeTimer) Stop() bool {
	f.stopped = true
	return true
}

func stubTimer(t *testing.T, fired bool) (*fakeTimer, *time.Duration) {
	t.Helper()

	original := newTimer
	t.Cleanup(func() { newTimer = original })

	fake := &fakeTimer{c: make(chan time.Time, 1)}
	if fired {
		fake.c <- time.Time{}
	}
	var requested time.Duration
	newTimer = func(d time.Duration) timer {
		requested = d
		return fake
	}
	return fake, &requested
}

func TestWaitFor(t *testing.T) {
	fake, requested := stubTimer(t, true)

	if err := WaitFor(context.Background(), 3*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *requested != 3*time.Second {
		t.Fatalf("expected a 3s timer, got %s", *requested)
	}
	if !fake.stopped {
		t.Fatalf("expected the timer to be stopped")
	}

	*requested = 0
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *requested != 0 {
		t.Fatalf("expected no timer for zero duration")
	}
}

func TestWaitForCancelledStopsTimer(t *testing.T) {
	fake, _ := stubTimer(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !fake.stopped {
		t.Fatalf("expected the timer to be stopped on cancellation")
	}
}

func TestWaitForRealTimer(t *testing.T) {
	start := time.Now()
	if err := WaitFor(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("returned before the timer fired")
	}
}
