package hashbench

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by hashbench APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricHashOps is an exported constant or variable used by the benchmark engine.
	MetricHashOps MetricID = iota
	// MetricVerifyOps is an exported constant or variable used by the benchmark engine.
	MetricVerifyOps
	// MetricVerifyMismatch is an exported constant or variable used by the benchmark engine.
	MetricVerifyMismatch
	// MetricRunCompleted is an exported constant or variable used by the benchmark engine.
	MetricRunCompleted
	// MetricUserRegistered is an exported constant or variable used by the benchmark engine.
	MetricUserRegistered
	// MetricLoginSuccess is an exported constant or variable used by the benchmark engine.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the benchmark engine.
	MetricLoginFailure
	// MetricTokenIssued is an exported constant or variable used by the benchmark engine.
	MetricTokenIssued
	// MetricBatchPause is an exported constant or variable used by the benchmark engine.
	MetricBatchPause
	// MetricProbeFallback is an exported constant or variable used by the benchmark engine.
	MetricProbeFallback
	// MetricHashLatency is an exported constant or variable used by the benchmark engine.
	MetricHashLatency
	// MetricVerifyLatency is an exported constant or variable used by the benchmark engine.
	MetricVerifyLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

// HistogramBucketBoundsMs holds the upper bounds (milliseconds) of the first
// seven latency histogram buckets; the eighth bucket is the overflow.
var HistogramBucketBoundsMs = [histBucketCount - 1]float64{1, 5, 10, 25, 50, 100, 250}

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by hashbench APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by hashbench APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.EnableLatency,
	}
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

// Add describes the add operation and its observable behavior.
//
// Add does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Add(id MetricID, delta uint64) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, delta)
}

// ObserveLatency describes the observelatency operation and its observable behavior.
//
// ObserveLatency does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) ObserveLatency(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}

	ms := float64(d) / float64(time.Millisecond)
	bucket := histBucketCount - 1
	for i, bound := range HistogramBucketBoundsMs {
		if ms <= bound {
			bucket = i
			break
		}
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucket], 1)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, metricIDCount),
		Histograms: make(map[MetricID][]uint64),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if v := atomic.LoadUint64(&m.counters[id].value); v > 0 {
			s.Counters[id] = v
		}

		if !m.enableLatency {
			continue
		}
		var any bool
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[id].buckets[i])
			any = any || buckets[i] > 0
		}
		if any {
			s.Histograms[id] = buckets
		}
	}

	return s
}
