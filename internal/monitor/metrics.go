// Package monitor times the workflow operations of a session.
package monitor

import (
	"sync/atomic"
	"time"
)

const unsetMin = int64(^uint64(0) >> 1)

// Counter is a thread-safe counter metric
type Counter struct {
	value atomic.Int64
}

// Inc increments the counter by 1
func (c *Counter) Inc() { c.value.Add(1) }

// Get returns the current counter value
func (c *Counter) Get() int64 { return c.value.Load() }

// Timer accumulates durations of one operation. Safe for concurrent use.
type Timer struct {
	count atomic.Int64
	total atomic.Int64
	min   atomic.Int64
	max   atomic.Int64
	last  atomic.Int64
}

// NewTimer creates an empty timer
func NewTimer() *Timer {
	t := &Timer{}
	t.min.Store(unsetMin)
	return t
}

// Record adds one measurement
func (t *Timer) Record(d time.Duration) {
	nanos := d.Nanoseconds()
	t.count.Add(1)
	t.total.Add(nanos)
	t.last.Store(nanos)

	for {
		current := t.min.Load()
		if nanos >= current || t.min.CompareAndSwap(current, nanos) {
			break
		}
	}
	for {
		current := t.max.Load()
		if nanos <= current || t.max.CompareAndSwap(current, nanos) {
			break
		}
	}
}

// Count returns the number of recorded measurements
func (t *Timer) Count() int64 { return t.count.Load() }

// MinTime returns the shortest measurement, zero before the first one
func (t *Timer) MinTime() time.Duration {
	if v := t.min.Load(); v != unsetMin {
		return time.Duration(v)
	}
	return 0
}

// MaxTime returns the longest measurement
func (t *Timer) MaxTime() time.Duration { return time.Duration(t.max.Load()) }

// LastTime returns the latest measurement
func (t *Timer) LastTime() time.Duration { return time.Duration(t.last.Load()) }

// AvgTime returns the mean of all measurements
func (t *Timer) AvgTime() time.Duration {
	n := t.count.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(t.total.Load() / n)
}
