//go:build windows

package sysinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// New returns the windows provider, backed by GetProcessTimes.
func New() Provider {
	return &windowsProvider{}
}

type windowsProvider struct{}

func (p *windowsProvider) CoreCount() int {
	return Cores()
}

func (p *windowsProvider) Snapshot() (Snapshot, error) {
	snap := Snapshot{Timestamp: nowSeconds()}

	current, peak := runtimeMemory()
	snap.MemoryBytes = current
	snap.PeakMemoryBytes = peak

	var creation, exit, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(windows.CurrentProcess(), &creation, &exit, &kernel, &user); err != nil {
		return snap, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}

	snap.ProcessSeconds = (float64(kernel.Nanoseconds()) + float64(user.Nanoseconds())) / 1e9
	snap.HasProcessTime = true
	return snap, nil
}

// LoadAverage has no windows equivalent; callers degrade to the next tier.
func (p *windowsProvider) LoadAverage() (float64, error) {
	return 0, fmt.Errorf("%w: load average not available on windows", ErrProbeUnavailable)
}
