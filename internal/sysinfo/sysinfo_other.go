//go:build !linux && !darwin && !windows

package sysinfo

import "fmt"

// New returns the portable fallback provider: runtime memory only, no CPU
// source, so Reconcile resolves every phase to zero.
func New() Provider {
	return &fallbackProvider{}
}

type fallbackProvider struct{}

func (p *fallbackProvider) CoreCount() int {
	return Cores()
}

func (p *fallbackProvider) Snapshot() (Snapshot, error) {
	snap := Snapshot{Timestamp: nowSeconds()}
	snap.MemoryBytes, snap.PeakMemoryBytes = runtimeMemory()
	return snap, fmt.Errorf("%w: no cpu source on this platform", ErrProbeUnavailable)
}

func (p *fallbackProvider) LoadAverage() (float64, error) {
	return 0, fmt.Errorf("%w: load average not available on this platform", ErrProbeUnavailable)
}
