package internaldefs

import (
	hashbench "github.com/MrEthical07/hashbench"
)

// CounterDef defines a public type used by hashbench APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   hashbench.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by hashbench APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   hashbench.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the benchmark engine.
var CounterDefs = []CounterDef{
	{ID: hashbench.MetricHashOps, Name: "hashbench_hash_ops_total", Help: "Completed hash operations."},
	{ID: hashbench.MetricVerifyOps, Name: "hashbench_verify_ops_total", Help: "Completed verify operations."},
	{ID: hashbench.MetricVerifyMismatch, Name: "hashbench_verify_mismatch_total", Help: "Verify operations that did not match."},
	{ID: hashbench.MetricRunCompleted, Name: "hashbench_run_completed_total", Help: "Completed benchmark runs."},
	{ID: hashbench.MetricUserRegistered, Name: "hashbench_user_registered_total", Help: "Synthetic users registered for load simulation."},
	{ID: hashbench.MetricLoginSuccess, Name: "hashbench_login_success_total", Help: "Successful simulated login attempts."},
	{ID: hashbench.MetricLoginFailure, Name: "hashbench_login_failure_total", Help: "Failed simulated login attempts."},
	{ID: hashbench.MetricTokenIssued, Name: "hashbench_token_issued_total", Help: "Access tokens issued after successful logins."},
	{ID: hashbench.MetricBatchPause, Name: "hashbench_batch_pause_total", Help: "Pacing pauses between attempt batches."},
	{ID: hashbench.MetricProbeFallback, Name: "hashbench_probe_fallback_total", Help: "Resource probe failures that fell back to a lower telemetry tier."},
}

// HistogramDefs is an exported constant or variable used by the benchmark engine.
var HistogramDefs = []HistogramDef{
	{ID: hashbench.MetricHashLatency, Name: "hashbench_hash_latency_ms", Help: "Hash latency histogram (milliseconds)."},
	{ID: hashbench.MetricVerifyLatency, Name: "hashbench_verify_latency_ms", Help: "Verify latency histogram (milliseconds)."},
}

// HistogramBounds is an exported constant or variable used by the benchmark engine.
var HistogramBounds = []string{
	"1",
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the benchmark engine.
var HistogramBoundSuffix = []string{
	"1",
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
