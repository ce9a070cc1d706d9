package sysinfo

import (
	"errors"
	"math"
	"runtime"
	"sync"
	"time"
)

// ErrProbeUnavailable marks a platform query that could not be served. It is
// internal to the sampling layer: Reconcile degrades across tiers instead of
// surfacing it.
var ErrProbeUnavailable = errors.New("resource probe unavailable")

// CPUCounters holds cumulative CPU-time counters in clock ticks, Linux
// /proc/stat style.
type CPUCounters struct {
	User   uint64
	Nice   uint64
	System uint64
	Idle   uint64
	IOWait uint64
}

func (c CPUCounters) total() float64 {
	return float64(c.User) + float64(c.Nice) + float64(c.System) + float64(c.Idle) + float64(c.IOWait)
}

// Snapshot is a point-in-time resource observation. The CPU reading is a
// union: a direct percentage, cumulative system counters, or a process
// CPU-time total, whichever the platform could supply. Unset members keep
// their Has flag false and Reconcile falls through to the next tier.
type Snapshot struct {
	Timestamp       float64 // unix seconds
	MemoryBytes     uint64
	PeakMemoryBytes uint64

	HasPercent bool
	Percent    float64

	HasCounters bool
	Counters    CPUCounters

	HasProcessTime bool
	ProcessSeconds float64

	HasLoadAvg bool
	LoadAvg1   float64
}

// Provider abstracts the platform system-information queries consumed by the
// benchmark engine.
type Provider interface {
	Snapshot() (Snapshot, error)
	CoreCount() int
	LoadAverage() (float64, error)
}

var (
	coreOnce    sync.Once
	cachedCores int
)

// Cores resolves the logical core count once per process lifetime and caches
// it, clamped to a minimum of 1.
func Cores() int {
	coreOnce.Do(func() {
		cachedCores = runtime.NumCPU()
		if cachedCores < 1 {
			cachedCores = 1
		}
	})
	return cachedCores
}

// Reconcile combines two snapshots bracketing a timed phase into a normalized
// CPU-utilization percentage. Policy tiers, first applicable wins:
//
//  1. Both carry a direct OS percentage: arithmetic mean.
//  2. Both carry cumulative counters: 100 * (1 - diffIdle/diffTotal);
//     falls through when diffTotal <= 0.
//  3. Both carry process CPU time: per-core-normalized estimate clamped
//     to [0, 100].
//  4. A load average is obtainable: loadavg1 * 100 / cores.
//  5. Zero.
func Reconcile(a, b Snapshot, elapsedSeconds float64, cores int) float64 {
	if cores < 1 {
		cores = 1
	}

	if a.HasPercent && b.HasPercent {
		return (a.Percent + b.Percent) / 2
	}

	if a.HasCounters && b.HasCounters {
		diffIdle := float64(b.Counters.Idle) - float64(a.Counters.Idle)
		diffTotal := b.Counters.total() - a.Counters.total()
		if diffTotal > 0 {
			return 100 * (1 - diffIdle/diffTotal)
		}
		// Identical or regressed counters carry no usable signal.
	}

	if a.HasProcessTime && b.HasProcessTime && elapsedSeconds > 0 {
		cpuTime := b.ProcessSeconds - a.ProcessSeconds
		pct := (cpuTime / elapsedSeconds) * 100 / float64(cores)
		return math.Min(100, math.Max(0, pct))
	}

	if b.HasLoadAvg {
		return b.LoadAvg1 * 100 / float64(cores)
	}
	if a.HasLoadAvg {
		return a.LoadAvg1 * 100 / float64(cores)
	}

	return 0
}

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// runtimeMemory reports the Go runtime's own view of process memory, the
// probe of last resort on every platform.
func runtimeMemory() (current, peak uint64) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys, ms.Sys
}
