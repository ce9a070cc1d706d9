// Package sysinfo provides point-in-time resource snapshots (CPU, process
// memory, load average) and the reconciliation policy that turns two snapshots
// into one normalized CPU-utilization percentage.
//
// # Design
//
// Each platform gets its own Provider implementation, selected at compile time
// through build tags: Linux reads procfs, darwin combines rusage with
// tool-based probes, windows uses process times from the win32 API. A probe
// that fails (missing pseudo-file, denied permission, absent tool) simply
// leaves its field unset on the snapshot; Reconcile then degrades to the next
// policy tier. Probe failures never reach the benchmark engine as errors.
//
// # Architecture boundaries
//
// This package owns platform telemetry and its normalization. It does NOT
// time hashing operations, aggregate statistics, or decide when to sample —
// those responsibilities belong to the engine.
//
// # What this package must NOT do
//
//   - Import any sibling hashbench package.
//   - Block on external processes without a bounded timeout.
//   - Panic on unsupported platforms; the fallback provider reports memory
//     from the Go runtime and nothing else.
package sysinfo
