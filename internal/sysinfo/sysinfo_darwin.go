//go:build darwin

package sysinfo

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const sysctlTimeout = 2 * time.Second

// New returns the darwin provider: rusage for process CPU time and peak
// memory, sysctl for the load average.
func New() Provider {
	return &darwinProvider{}
}

type darwinProvider struct{}

func (p *darwinProvider) CoreCount() int {
	return Cores()
}

func (p *darwinProvider) Snapshot() (Snapshot, error) {
	snap := Snapshot{Timestamp: nowSeconds()}

	current, peak := runtimeMemory()

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
		snap.ProcessSeconds = timevalSeconds(ru.Utime) + timevalSeconds(ru.Stime)
		snap.HasProcessTime = true
		// Maxrss is reported in bytes on darwin.
		if uint64(ru.Maxrss) > peak {
			peak = uint64(ru.Maxrss)
		}
	}

	snap.MemoryBytes = current
	snap.PeakMemoryBytes = peak

	if load, err := p.LoadAverage(); err == nil {
		snap.LoadAvg1 = load
		snap.HasLoadAvg = true
	}

	if !snap.HasProcessTime && !snap.HasLoadAvg {
		return snap, fmt.Errorf("%w: no cpu source on this system", ErrProbeUnavailable)
	}
	return snap, nil
}

// LoadAverage shells out to sysctl; output looks like "{ 1.84 1.90 2.06 }".
func (p *darwinProvider) LoadAverage() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sysctlTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "sysctl", "-n", "vm.loadavg").Output()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}

	fields := strings.Fields(strings.Trim(strings.TrimSpace(string(out)), "{}"))
	if len(fields) < 1 {
		return 0, fmt.Errorf("%w: malformed vm.loadavg output", ErrProbeUnavailable)
	}

	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}
	return load, nil
}

func timevalSeconds(tv unix.Timeval) float64 {
	return float64(tv.Sec) + float64(tv.Usec)/1e6
}
