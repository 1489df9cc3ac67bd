package monitor

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OperationType names a timed workflow operation
type OperationType string

const (
	OperationLogin      OperationType = "login"
	OperationSignup     OperationType = "signup"
	OperationAnalysis   OperationType = "analysis"
	OperationGeneration OperationType = "generation"
	OperationDownload   OperationType = "download"
	OperationPackage    OperationType = "package"
)

// Operations lists every operation in workflow order
var Operations = []OperationType{
	OperationLogin,
	OperationSignup,
	OperationAnalysis,
	OperationGeneration,
	OperationDownload,
	OperationPackage,
}

// OperationStats is a snapshot of one operation
type OperationStats struct {
	Operation    OperationType `json:"operation"`
	Count        int64         `json:"count"`
	SuccessCount int64         `json:"success_count"`
	ErrorCount   int64         `json:"error_count"`
	MinTime      time.Duration `json:"min_time_ns"`
	MaxTime      time.Duration `json:"max_time_ns"`
	AvgTime      time.Duration `json:"avg_time_ns"`
	LastTime     time.Duration `json:"last_time_ns"`
}

type operation struct {
	timer     *Timer
	successes Counter
	errors    Counter
}

// Collector times operations. The operation set is fixed at construction,
// so Track needs no locking.
type Collector struct {
	ops map[OperationType]*operation
	now func() time.Time

	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// New creates a collector for Operations
func New() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	c := &Collector{
		ops:      make(map[OperationType]*operation, len(Operations)),
		now:      time.Now,
		registry: registry,
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tcgen_operation_duration_seconds",
			Help:    "Duration of simulated workflow operations.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 3, 5, 10},
		}, []string{"operation", "status"}),
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tcgen_operations_total",
			Help: "Total number of workflow operations.",
		}, []string{"operation", "status"}),
	}
	for _, op := range Operations {
		c.ops[op] = &operation{timer: NewTimer()}
	}
	return c
}

// Track runs fn and records its duration and outcome under op.
// A nil collector just runs fn.
func (c *Collector) Track(op OperationType, fn func() error) error {
	if c == nil {
		return fn()
	}
	start := c.now()
	err := fn()
	c.Record(op, c.now().Sub(start), err)
	return err
}

// Record adds an externally measured run of op
func (c *Collector) Record(op OperationType, d time.Duration, err error) {
	if c == nil {
		return
	}
	o, ok := c.ops[op]
	if !ok {
		return
	}
	o.timer.Record(d)
	status := "success"
	if err != nil {
		status = "error"
		o.errors.Inc()
	} else {
		o.successes.Inc()
	}
	c.duration.WithLabelValues(string(op), status).Observe(d.Seconds())
	c.total.WithLabelValues(string(op), status).Inc()
}

// WriteTextfile writes the metrics in the Prometheus text format, for the
// node_exporter textfile collector
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return fmt.Errorf("metrics are disabled")
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Snapshot returns the operations that ran at least once, in workflow order
func (c *Collector) Snapshot() []OperationStats {
	if c == nil {
		return nil
	}
	var stats []OperationStats
	for _, op := range Operations {
		o := c.ops[op]
		if o.timer.Count() == 0 {
			continue
		}
		stats = append(stats, OperationStats{
			Operation:    op,
			Count:        o.timer.Count(),
			SuccessCount: o.successes.Get(),
			ErrorCount:   o.errors.Get(),
			MinTime:      o.timer.MinTime(),
			MaxTime:      o.timer.MaxTime(),
			AvgTime:      o.timer.AvgTime(),
			LastTime:     o.timer.LastTime(),
		})
	}
	return stats
}
