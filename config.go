package hashbench

import (
	"errors"
	"time"
)

// Config defines a public type used by hashbench APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Benchmark BenchmarkConfig
	Load      LoadConfig
	Monitor   MonitorConfig
	Store     StoreConfig
	Token     TokenConfig
	Metrics   MetricsConfig
}

/*
====================================
BENCHMARK CONFIG
====================================
*/

// BenchmarkConfig defines a public type used by hashbench APIs.
//
// BenchmarkConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BenchmarkConfig struct {
	Iterations int
	CorpusSize int
}

/*
====================================
LOAD CONFIG
====================================
*/

// LoadConfig defines a public type used by hashbench APIs.
//
// LoadConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// Concurrency is a pacing knob, not a parallelism request: the simulator
// processes min(Concurrency, remaining) attempts sequentially, then sleeps
// BatchPause before the next batch.
type LoadConfig struct {
	Users        int
	Attempts     int
	Concurrency  int
	BatchPause   time.Duration
	SuccessRatio float64
	Seed         uint64 // 0 selects a time-based seed
}

/*
====================================
MONITOR CONFIG
====================================
*/

// MonitorConfig defines a public type used by hashbench APIs.
//
// MonitorConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MonitorConfig struct {
	Duration       time.Duration
	SampleInterval time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig defines a public type used by hashbench APIs.
//
// StoreConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StoreConfig struct {
	RedisPrefix string
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by hashbench APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// When Enabled, the simulator signs an HS256 access token after each
// successful verification so a simulated login carries the full cost of the
// real flow.
type TokenConfig struct {
	Enabled    bool
	SigningKey []byte
	TTL        time.Duration
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by hashbench APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled       bool
	EnableLatency bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		Benchmark: BenchmarkConfig{
			Iterations: 10,
			CorpusSize: 5,
		},
		Load: LoadConfig{
			Users:        10,
			Attempts:     100,
			Concurrency:  10,
			BatchPause:   10 * time.Millisecond,
			SuccessRatio: 0.8,
		},
		Monitor: MonitorConfig{
			Duration:       30 * time.Second,
			SampleInterval: time.Second,
		},
		Store: StoreConfig{
			RedisPrefix: "hbu",
		},
		Token: TokenConfig{
			TTL: 15 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate normalizes zero values to their defaults before checking bounds.
func (c *Config) Validate() error {
	defaults := DefaultConfig()

	if c.Benchmark.Iterations == 0 {
		c.Benchmark.Iterations = defaults.Benchmark.Iterations
	}
	if c.Benchmark.CorpusSize == 0 {
		c.Benchmark.CorpusSize = defaults.Benchmark.CorpusSize
	}
	if c.Load.Users == 0 {
		c.Load.Users = defaults.Load.Users
	}
	if c.Load.Attempts == 0 {
		c.Load.Attempts = defaults.Load.Attempts
	}
	if c.Load.Concurrency == 0 {
		c.Load.Concurrency = defaults.Load.Concurrency
	}
	if c.Load.BatchPause == 0 {
		c.Load.BatchPause = defaults.Load.BatchPause
	}
	if c.Load.SuccessRatio == 0 {
		c.Load.SuccessRatio = defaults.Load.SuccessRatio
	}
	if c.Monitor.Duration == 0 {
		c.Monitor.Duration = defaults.Monitor.Duration
	}
	if c.Monitor.SampleInterval == 0 {
		c.Monitor.SampleInterval = defaults.Monitor.SampleInterval
	}
	if c.Store.RedisPrefix == "" {
		c.Store.RedisPrefix = defaults.Store.RedisPrefix
	}
	if c.Token.TTL == 0 {
		c.Token.TTL = defaults.Token.TTL
	}

	if c.Benchmark.Iterations < 1 {
		return errors.New("benchmark iterations must be >= 1")
	}
	if c.Benchmark.CorpusSize < 1 {
		return errors.New("benchmark corpus size must be >= 1")
	}
	if c.Load.Users < 1 {
		return errors.New("load users must be >= 1")
	}
	if c.Load.Attempts < 1 {
		return errors.New("load attempts must be >= 1")
	}
	if c.Load.Concurrency < 1 {
		return errors.New("load concurrency must be >= 1")
	}
	if c.Load.BatchPause < 0 {
		return errors.New("load batch pause must be >= 0")
	}
	if c.Load.SuccessRatio < 0 || c.Load.SuccessRatio > 1 {
		return errors.New("load success ratio must be in [0, 1]")
	}
	if c.Monitor.Duration < 100*time.Millisecond {
		return errors.New("monitor duration must be >= 100ms")
	}
	if c.Monitor.SampleInterval < 10*time.Millisecond {
		return errors.New("monitor sample interval must be >= 10ms")
	}
	if c.Token.Enabled && len(c.Token.SigningKey) < 32 {
		return errors.New("token signing key must be >= 32 bytes when token issuance is enabled")
	}

	return nil
}
