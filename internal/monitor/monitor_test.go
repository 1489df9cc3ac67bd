package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer(t *testing.T) {
	timer := NewTimer()
	assert.Zero(t, timer.MinTime())
	assert.Zero(t, timer.AvgTime())

	timer.Record(30 * time.Millisecond)
	timer.Record(10 * time.Millisecond)
	timer.Record(20 * time.Millisecond)

	assert.Equal(t, int64(3), timer.Count())
	assert.Equal(t, 10*time.Millisecond, timer.MinTime())
	assert.Equal(t, 30*time.Millisecond, timer.MaxTime())
	assert.Equal(t, 20*time.Millisecond, timer.AvgTime())
	assert.Equal(t, 20*time.Millisecond, timer.LastTime())
}

func TestTimerConcurrent(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(ms int) {
			defer wg.Done()
			timer.Record(time.Duration(ms) * time.Millisecond)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(50), timer.Count())
	assert.Equal(t, time.Millisecond, timer.MinTime())
	assert.Equal(t, 50*time.Millisecond, timer.MaxTime())
}

func TestCollectorTrack(t *testing.T) {
	c := New()
	clock := time.Unix(0, 0)
	c.now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}

	require.NoError(t, c.Track(OperationAnalysis, func() error { return nil }))
	boom := errors.New("boom")
	err := c.Track(OperationGeneration, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	stats := c.Snapshot()
	require.Len(t, stats, 2)

	assert.Equal(t, OperationAnalysis, stats[0].Operation)
	assert.Equal(t, int64(1), stats[0].SuccessCount)
	assert.Equal(t, 250*time.Millisecond, stats[0].LastTime)

	assert.Equal(t, OperationGeneration, stats[1].Operation)
	assert.Equal(t, int64(1), stats[1].ErrorCount)
	assert.Zero(t, stats[1].SuccessCount)
}

func TestCollectorIgnoresUnknownOperation(t *testing.T) {
	c := New()
	c.Record(OperationType("parse"), time.Second, nil)
	assert.Empty(t, c.Snapshot())
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	called := false
	require.NoError(t, c.Track(OperationLogin, func() error { called = true; return nil }))
	assert.True(t, called)
	assert.Nil(t, c.Snapshot())
}

func TestFormatText(t *testing.T) {
	assert.Contains(t, FormatText(nil, false), "no operations recorded")

	c := New()
	c.Record(OperationPackage, 1500*time.Millisecond, nil)
	out := FormatText(c.Snapshot(), false)

	assert.Contains(t, out, "Operation Timings")
	assert.Contains(t, out, "Package")
	assert.Contains(t, out, "1 (1 ok, 0 failed)")
	assert.Contains(t, out, "1.5s")
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.Record(OperationAnalysis, 2500*time.Millisecond, nil)
	c.Record(OperationLogin, time.Second, errors.New("bad credentials"))

	path := filepath.Join(t.TempDir(), "tcgen.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `tcgen_operations_total{operation="analysis",status="success"} 1`)
	assert.Contains(t, out, `tcgen_operations_total{operation="login",status="error"} 1`)
	assert.Contains(t, out, `tcgen_operation_duration_seconds_sum{operation="analysis",status="success"} 2.5`)

	var disabled *Collector
	assert.Error(t, disabled.WriteTextfile(path))
}
