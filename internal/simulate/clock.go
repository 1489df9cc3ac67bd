// Package simulate provides the clock used by mocked network and processing delays.
package simulate

import (
	"context"
	"time"
)

// Clock schedules one-shot timers
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Real returns a wall-clock timer source
func Real() Clock {
	return realClock{}
}

type instantClock struct{}

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// Instant returns a clock whose timers fire immediately. Used by tests and --no-delay.
func Instant() Clock {
	return instantClock{}
}

// Wait blocks for d on clock or until ctx is done
func Wait(ctx context.Context, clock Clock, d time.Duration) error {
	if clock == nil {
		clock = Real()
	}
	if d <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clock.After(d):
		return nil
	}
}
