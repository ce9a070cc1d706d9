// Package otel provides OpenTelemetry metric exporter bindings for hashbench counters
// and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each hashbench
// metric and Int64ObservableGauge per histogram bucket. A single callback reads
// [hashbench.Metrics.Snapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate metrics state.
package otel
