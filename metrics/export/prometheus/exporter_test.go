package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	hashbench "github.com/MrEthical07/hashbench"
)

type fakeSource struct {
	snapshot hashbench.MetricsSnapshot
}

func (f fakeSource) Snapshot() hashbench.MetricsSnapshot { return f.snapshot }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: hashbench.MetricsSnapshot{
			Counters:   map[hashbench.MetricID]uint64{},
			Histograms: map[hashbench.MetricID][]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderDeterministicIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: hashbench.MetricsSnapshot{
			Counters: map[hashbench.MetricID]uint64{
				hashbench.MetricLoginSuccess: 7,
			},
			Histograms: map[hashbench.MetricID][]uint64{
				hashbench.MetricHashLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
	})

	out := exp.Render()
	if !strings.Contains(out, "hashbench_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "hashbench_hash_latency_ms_bucket{le=\"1\"} 1") {
		t.Fatalf("expected first histogram bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "hashbench_hash_latency_ms_bucket{le=\"+Inf\"} 36") {
		t.Fatalf("expected +Inf cumulative bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "hashbench_hash_latency_ms_count 36") {
		t.Fatalf("expected histogram count in output, got:\n%s", out)
	}
}

func TestRenderFromLiveMetrics(t *testing.T) {
	m := hashbench.NewMetrics(hashbench.MetricsConfig{Enabled: true})
	m.Add(hashbench.MetricHashOps, 12)
	m.Inc(hashbench.MetricRunCompleted)

	out := NewPrometheusExporter(m).Render()
	if !strings.Contains(out, "hashbench_hash_ops_total 12") {
		t.Fatalf("expected hash_ops counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "hashbench_run_completed_total 1") {
		t.Fatalf("expected run_completed counter in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: hashbench.MetricsSnapshot{
			Counters:   map[hashbench.MetricID]uint64{hashbench.MetricLoginSuccess: 1},
			Histograms: map[hashbench.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: hashbench.MetricsSnapshot{
			Counters: map[hashbench.MetricID]uint64{
				hashbench.MetricHashOps:      1000,
				hashbench.MetricVerifyOps:    1000,
				hashbench.MetricLoginSuccess: 800,
				hashbench.MetricLoginFailure: 200,
				hashbench.MetricTokenIssued:  800,
			},
			Histograms: map[hashbench.MetricID][]uint64{
				hashbench.MetricHashLatency:   {10, 20, 30, 40, 50, 60, 70, 80},
				hashbench.MetricVerifyLatency: {80, 70, 60, 50, 40, 30, 20, 10},
			},
		},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
