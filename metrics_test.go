package hashbench

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricHashOps)
	m.Add(MetricHashOps, 4)
	m.Inc(MetricLoginSuccess)

	snap := m.Snapshot()
	if snap.Counters[MetricHashOps] != 5 {
		t.Fatalf("expected 5 hash ops, got %d", snap.Counters[MetricHashOps])
	}
	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("expected 1 login success, got %d", snap.Counters[MetricLoginSuccess])
	}
	if _, ok := snap.Counters[MetricLoginFailure]; ok {
		t.Fatal("zero counters must not appear in snapshots")
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{})
	m.Inc(MetricHashOps)

	snap := m.Snapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("disabled metrics recorded counters: %v", snap.Counters)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.Inc(MetricHashOps)
	m.Add(MetricVerifyOps, 3)
	m.ObserveLatency(MetricHashLatency, time.Millisecond)

	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatal("nil metrics must produce an empty snapshot")
	}
}

func TestMetricsLatencyBuckets(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatency: true})

	m.ObserveLatency(MetricHashLatency, 500*time.Microsecond) // bucket 0 (<=1ms)
	m.ObserveLatency(MetricHashLatency, 3*time.Millisecond)   // bucket 1 (<=5ms)
	m.ObserveLatency(MetricHashLatency, 60*time.Millisecond)  // bucket 5 (<=100ms)
	m.ObserveLatency(MetricHashLatency, time.Second)          // overflow bucket

	snap := m.Snapshot()
	buckets, ok := snap.Histograms[MetricHashLatency]
	if !ok {
		t.Fatal("expected a hash latency histogram in the snapshot")
	}
	if len(buckets) != histBucketCount {
		t.Fatalf("expected %d buckets, got %d", histBucketCount, len(buckets))
	}

	want := []uint64{1, 1, 0, 0, 0, 1, 0, 1}
	for i, w := range want {
		if buckets[i] != w {
			t.Fatalf("bucket %d: expected %d, got %d (all: %v)", i, w, buckets[i], buckets)
		}
	}
}

func TestMetricsLatencyRequiresOptIn(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.ObserveLatency(MetricHashLatency, time.Millisecond)

	snap := m.Snapshot()
	if len(snap.Histograms) != 0 {
		t.Fatal("latency histograms must require explicit opt-in")
	}
}

func TestMetricsConcurrentAdds(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricVerifyOps)
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	if got := snap.Counters[MetricVerifyOps]; got != workers*perWorker {
		t.Fatalf("expected %d verify ops, got %d", workers*perWorker, got)
	}
}
