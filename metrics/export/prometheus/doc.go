// Package prometheus provides Prometheus collectors for hashbench metrics.
//
// [NewPrometheusExporter] accepts a [hashbench.Metrics] and exposes an [http.Handler]
// that renders all hashbench counters and histograms in Prometheus text exposition
// format. Counter names are prefixed hashbench_*_total; the histograms are
// hashbench_hash_latency_ms and hashbench_verify_latency_ms.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate metrics state.
package prometheus
