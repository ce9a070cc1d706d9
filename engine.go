package hashbench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/internal/sysinfo"
)

// Engine defines a public type used by hashbench APIs.
//
// Engine drives repeated hash/verify cycles for one parameter set over a
// password corpus and reduces the observations into a [RunResult]. Run calls
// against the same Engine are serialized so that hasher reconfiguration never
// interleaves between runs.
type Engine struct {
	mu       sync.Mutex
	provider sysinfo.Provider
	metrics  *Metrics

	// OnProgress, when set before the first Run, is invoked after each
	// password completes with (done, total). It is called on the Run
	// goroutine and must not block for long.
	OnProgress func(done, total int)
}

// NewEngine describes the newengine operation and its observable behavior.
//
// NewEngine does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewEngine(provider sysinfo.Provider, metrics *Metrics) *Engine {
	if provider == nil {
		provider = sysinfo.New()
	}
	return &Engine{
		provider: provider,
		metrics:  metrics,
	}
}

// Run describes the run operation and its observable behavior.
//
// Run may return an error when input validation, dependency calls, or security checks fail.
//
// Run applies params to h for the duration of the run and restores the prior
// parameter set before returning, on success and on error alike. The hash
// phase of each password is bracketed by resource snapshots that reconcile
// into a normalized CPU percentage; hasher failures propagate verbatim with
// the offending configuration identified.
func (e *Engine) Run(
	ctx context.Context,
	h hasher.Hasher,
	params ParameterSet,
	passwords []string,
	iterations int,
) (RunResult, error) {
	if h == nil {
		return RunResult{}, ErrNilHasher
	}
	if len(passwords) == 0 {
		return RunResult{}, ErrEmptyCorpus
	}
	if iterations < 1 {
		return RunResult{}, ErrInvalidIterations
	}
	if err := params.Validate(); err != nil {
		return RunResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prior := h.Params()
	if err := h.Configure(params); err != nil {
		return RunResult{}, fmt.Errorf("configure %s/%s: %w", params.Algorithm, params.Label, err)
	}
	// Restore regardless of how the run ends; a hasher constructed without
	// parameters has nothing to restore.
	defer func() {
		if prior.Algorithm != "" {
			_ = h.Configure(prior)
		}
	}()

	var (
		sumHashMs   float64
		sumVerifyMs float64
		sumCPU      float64
		sumMemKB    float64
		sumHashLen  float64
	)
	cores := e.provider.CoreCount()

	for pi, password := range passwords {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}

		before, err := e.provider.Snapshot()
		if err != nil {
			e.metrics.Inc(MetricProbeFallback)
		}

		digests := make([]string, 0, iterations)
		hashStart := time.Now()
		for i := 0; i < iterations; i++ {
			digest, err := h.Hash(password)
			if err != nil {
				return RunResult{}, fmt.Errorf("hash %s/%s: %w", params.Algorithm, params.Label, err)
			}
			digests = append(digests, digest)
		}
		hashElapsed := time.Since(hashStart)

		after, err := e.provider.Snapshot()
		if err != nil {
			e.metrics.Inc(MetricProbeFallback)
		}

		e.metrics.Add(MetricHashOps, uint64(iterations))
		e.metrics.ObserveLatency(MetricHashLatency, hashElapsed/time.Duration(iterations))

		verifyStart := time.Now()
		for i := 0; i < iterations; i++ {
			ok, err := h.Verify(password, digests[i%len(digests)])
			if err != nil {
				return RunResult{}, fmt.Errorf("verify %s/%s: %w", params.Algorithm, params.Label, err)
			}
			if !ok {
				e.metrics.Inc(MetricVerifyMismatch)
			}
		}
		verifyElapsed := time.Since(verifyStart)

		e.metrics.Add(MetricVerifyOps, uint64(iterations))
		e.metrics.ObserveLatency(MetricVerifyLatency, verifyElapsed/time.Duration(iterations))

		sumHashMs += float64(hashElapsed) / float64(time.Millisecond) / float64(iterations)
		sumVerifyMs += float64(verifyElapsed) / float64(time.Millisecond) / float64(iterations)
		sumCPU += sysinfo.Reconcile(before, after, hashElapsed.Seconds(), cores)
		sumMemKB += float64(before.MemoryBytes+after.MemoryBytes) / 2 / 1024

		var lengths int
		for _, digest := range digests {
			lengths += len(digest)
		}
		sumHashLen += float64(lengths) / float64(len(digests))

		if e.OnProgress != nil {
			e.OnProgress(pi+1, len(passwords))
		}
	}

	n := float64(len(passwords))
	result := RunResult{
		Algorithm:       params.Algorithm,
		Configuration:   params.Label,
		Parameters:      params.String(),
		AvgHashTimeMs:   sumHashMs / n,
		AvgVerifyTimeMs: sumVerifyMs / n,
		AvgCPUPercent:   sumCPU / n,
		AvgMemoryKB:     sumMemKB / n,
		AvgHashLength:   sumHashLen / n,
	}
	if result.AvgHashTimeMs > 0 {
		result.ThroughputHashPerSec = 1000 / result.AvgHashTimeMs
	}
	if result.AvgVerifyTimeMs > 0 {
		result.ThroughputVerifyPerSec = 1000 / result.AvgVerifyTimeMs
	}

	e.metrics.Inc(MetricRunCompleted)
	return result, nil
}
