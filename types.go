package hashbench

import (
	"context"

	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/internal/stores"
	"github.com/MrEthical07/hashbench/internal/sysinfo"
)

// ParameterSet defines a public type used by hashbench APIs.
//
// ParameterSet instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ParameterSet = hasher.ParameterSet

// UserRecord defines a public type used by hashbench APIs.
//
// UserRecord instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UserRecord = stores.Record

// ResourceSnapshot defines a public type used by hashbench APIs.
//
// ResourceSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ResourceSnapshot = sysinfo.Snapshot

// UserStore defines a public type used by hashbench APIs.
//
// UserStore is the credential-store collaborator the load simulation engine
// persists its synthetic user population through. The Redis-backed
// implementation lives in internal/stores and is wired via [NewRedisUserStore].
type UserStore interface {
	Insert(ctx context.Context, record *UserRecord) error
	Find(ctx context.Context, email string) (*UserRecord, error)
	Clear(ctx context.Context) error
}

// RunResult defines a public type used by hashbench APIs.
//
// RunResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RunResult struct {
	Algorithm              string  `json:"algorithm"`
	Configuration          string  `json:"configuration"`
	Parameters             string  `json:"parameters"`
	AvgHashTimeMs          float64 `json:"avg_hash_time_ms"`
	AvgVerifyTimeMs        float64 `json:"avg_verify_time_ms"`
	AvgCPUPercent          float64 `json:"avg_cpu_usage_percent"`
	AvgMemoryKB            float64 `json:"avg_memory_usage_kb"`
	AvgHashLength          float64 `json:"avg_hash_length"`
	ThroughputHashPerSec   float64 `json:"throughput_hash_per_sec"`
	ThroughputVerifyPerSec float64 `json:"throughput_verify_per_sec"`
}

// LoginAttemptOutcome defines a public type used by hashbench APIs.
//
// LoginAttemptOutcome instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginAttemptOutcome struct {
	Succeeded bool    `json:"succeeded"`
	ElapsedMs float64 `json:"time_ms"`
}

// ResourceSample defines a public type used by hashbench APIs.
//
// ResourceSample instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ResourceSample struct {
	Timestamp    float64 `json:"timestamp"`
	MemoryMB     float64 `json:"memory_mb"`
	PeakMemoryMB float64 `json:"peak_memory_mb"`
	MemoryDiffMB float64 `json:"memory_diff_mb"`
	CPULoad      float64 `json:"cpu_load"`
}
