// Package hashbench provides a measurement engine for password-hashing
// benchmarks: it drives repeated hash/verify cycles against configurable
// algorithm parameter sets, samples process and system resource usage around
// the timed phases, and aggregates the observations into exportable result
// records.
//
// The package is designed for benchmark workloads: Engine, Simulator, and
// Monitor serialize hasher reconfiguration internally so that independent runs
// never observe each other's parameter state.
//
// # Architecture boundaries
//
// hashbench is the public surface. It exposes [Engine], [Simulator], [Monitor],
// [Config], and value types (RunResult, Summary, LoginAttemptOutcome, etc.).
// Platform resource probing lives under internal/sysinfo, corpus generation
// under internal/corpus, and credential persistence under internal/stores;
// none of it is exported directly.
//
// # What this package must NOT do
//
//   - Implement hashing algorithms — those live in the hasher package and are
//     consumed through the [hasher.Hasher] capability.
//   - Perform file or console I/O. Serialization of computed rows belongs to
//     the export package; sinks are owned by the caller.
//   - Mask hasher failures. A hashing backend that fails under adversarial
//     parameters is itself a benchmark result and propagates verbatim.
//
// # Measurement contract
//
// Timed phases are bracketed by resource snapshots and reconciled into a
// normalized CPU percentage. Aggregation uses the simple mean/min/max and
// population standard deviation model; there is no warm-up control and no
// outlier rejection.
package hashbench
