package hashbench

import (
	"context"
	"sync"
	"time"

	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/internal/sysinfo"
)

// MonitorReport defines a public type used by hashbench APIs.
//
// MonitorReport instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MonitorReport struct {
	Outcomes    []LoginAttemptOutcome
	Samples     []ResourceSample
	Attempts    int
	Successes   int
	SuccessRate float64
	Latency     Summary
	Duration    time.Duration
}

// Monitor defines a public type used by hashbench APIs.
//
// Monitor is the duration-bounded load-simulation variant: it drives login
// attempts until a wall-clock deadline while a background ticker samples
// resources at a fixed interval, producing a resource time series independent
// of the outcome series. The deadline is checked between attempts only, so a
// run may overshoot by up to one verification's latency.
type Monitor struct {
	sim      *Simulator
	provider sysinfo.Provider
	config   Config
}

// NewMonitor describes the newmonitor operation and its observable behavior.
//
// NewMonitor may return an error when input validation, dependency calls, or security checks fail.
// NewMonitor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMonitor(config Config, h hasher.Hasher, store UserStore, provider sysinfo.Provider, metrics *Metrics) (*Monitor, error) {
	sim, err := NewSimulator(config, h, store, metrics)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		provider = sysinfo.New()
	}

	return &Monitor{
		sim:      sim,
		provider: provider,
		config:   sim.config,
	}, nil
}

// State describes the state operation and its observable behavior.
//
// State does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Monitor) State() SimulationState {
	return m.sim.State()
}

// Run describes the run operation and its observable behavior.
//
// Run may return an error when input validation, dependency calls, or security checks fail.
//
// The sampler runs on its own goroutine and pushes snapshots through a
// buffered channel into a collector; it is never blocked by an in-flight
// hash/verify call, and its shutdown on run completion is explicit and
// guaranteed.
func (m *Monitor) Run(ctx context.Context) (*MonitorReport, error) {
	if !m.sim.running.CompareAndSwap(false, true) {
		return nil, ErrSimulatorBusy
	}
	defer m.sim.running.Store(false)
	defer m.sim.setState(StateDone)

	start := time.Now()

	if err := m.sim.register(ctx); err != nil {
		return nil, err
	}

	snapCh := make(chan sysinfo.Snapshot, 64)
	stop := make(chan struct{})
	var samplerWG sync.WaitGroup
	samplerWG.Add(1)
	go func() {
		defer samplerWG.Done()
		defer close(snapCh)

		ticker := time.NewTicker(m.config.Monitor.SampleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				snap, err := m.provider.Snapshot()
				if err != nil {
					m.sim.metrics.Inc(MetricProbeFallback)
				}
				select {
				case snapCh <- snap:
				default:
					// Collector is behind; dropping a sample beats blocking
					// the ticker.
				}
			}
		}
	}()

	var snaps []sysinfo.Snapshot
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for snap := range snapCh {
			snaps = append(snaps, snap)
		}
	}()

	stopSampling := func() {
		close(stop)
		samplerWG.Wait()
		<-collectorDone
	}

	m.sim.setState(StateSimulating)
	var outcomes []LoginAttemptOutcome
	deadline := start.Add(m.config.Monitor.Duration)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			break
		}

		outcome, err := m.sim.attemptLogin(ctx)
		if err != nil {
			stopSampling()
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	stopSampling()

	m.sim.setState(StateReporting)
	return m.buildReport(outcomes, snaps, time.Since(start))
}

func (m *Monitor) buildReport(
	outcomes []LoginAttemptOutcome,
	snaps []sysinfo.Snapshot,
	duration time.Duration,
) (*MonitorReport, error) {
	series := make([]float64, len(outcomes))
	successes := 0
	for i, outcome := range outcomes {
		series[i] = outcome.ElapsedMs
		if outcome.Succeeded {
			successes++
		}
	}

	latency, err := Summarize(series)
	if err != nil {
		return nil, err
	}

	report := &MonitorReport{
		Outcomes:    outcomes,
		Samples:     resourceSamples(snaps, m.provider.CoreCount()),
		Attempts:    len(outcomes),
		Successes:   successes,
		SuccessRate: float64(successes) / float64(len(outcomes)),
		Latency:     latency,
		Duration:    duration,
	}
	return report, nil
}

// resourceSamples reduces raw snapshots into the exported resource time
// series. Memory diffs are relative to the first snapshot; CPU load for each
// point reconciles it against its predecessor.
func resourceSamples(snaps []sysinfo.Snapshot, cores int) []ResourceSample {
	if len(snaps) == 0 {
		return nil
	}

	const mb = 1024 * 1024
	baseline := float64(snaps[0].MemoryBytes) / mb

	samples := make([]ResourceSample, len(snaps))
	for i, snap := range snaps {
		sample := ResourceSample{
			Timestamp:    snap.Timestamp,
			MemoryMB:     float64(snap.MemoryBytes) / mb,
			PeakMemoryMB: float64(snap.PeakMemoryBytes) / mb,
		}
		sample.MemoryDiffMB = sample.MemoryMB - baseline

		if i > 0 {
			elapsed := snap.Timestamp - snaps[i-1].Timestamp
			sample.CPULoad = sysinfo.Reconcile(snaps[i-1], snap, elapsed, cores)
		} else if snap.HasLoadAvg {
			sample.CPULoad = snap.LoadAvg1 * 100 / float64(cores)
		}

		samples[i] = sample
	}
	return samples
}
