// Package utils holds small helpers shared by the AI and export code.
package utils

import (
	"context"
	"time"
)

// timer is the part of *time.Timer WaitFor needs.
type timer interface {
	C() <-chan time.Time
	Stop() bool
}

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool { return r.t.Stop() }

var newTimer = func(d time.Duration) timer {
	return realTimer{t: time.NewTimer(d)}
}

// WaitFor blocks for d or until ctx is done, whichever comes first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := newTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C():
		return nil
	}
}
