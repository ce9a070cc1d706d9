//go:build linux

package sysinfo

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// New returns the procfs-backed provider.
func New() Provider {
	return &linuxProvider{}
}

type linuxProvider struct{}

func (p *linuxProvider) CoreCount() int {
	return Cores()
}

func (p *linuxProvider) Snapshot() (Snapshot, error) {
	snap := Snapshot{Timestamp: nowSeconds()}

	if counters, err := readProcStat(); err == nil {
		snap.Counters = counters
		snap.HasCounters = true
	}

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
		snap.ProcessSeconds = timevalSeconds(ru.Utime) + timevalSeconds(ru.Stime)
		snap.HasProcessTime = true
	}

	if load, err := p.LoadAverage(); err == nil {
		snap.LoadAvg1 = load
		snap.HasLoadAvg = true
	}

	current, peak, err := readProcStatus()
	if err != nil {
		current, peak = runtimeMemory()
	}
	snap.MemoryBytes = current
	snap.PeakMemoryBytes = peak

	if !snap.HasCounters && !snap.HasProcessTime && !snap.HasLoadAvg {
		return snap, fmt.Errorf("%w: no cpu source on this system", ErrProbeUnavailable)
	}
	return snap, nil
}

func (p *linuxProvider) LoadAverage() (float64, error) {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return 0, fmt.Errorf("%w: malformed /proc/loadavg", ErrProbeUnavailable)
	}

	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}
	return load, nil
}

// readProcStat parses the aggregate "cpu" line of /proc/stat into cumulative
// counters (user, nice, system, idle, iowait).
func readProcStat() (CPUCounters, error) {
	var counters CPUCounters

	f, err := os.Open("/proc/stat")
	if err != nil {
		return counters, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 6 {
			return counters, fmt.Errorf("%w: malformed cpu line", ErrProbeUnavailable)
		}

		vals := make([]uint64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseUint(fields[i+1], 10, 64)
			if err != nil {
				return counters, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
			}
			vals[i] = v
		}

		counters.User = vals[0]
		counters.Nice = vals[1]
		counters.System = vals[2]
		counters.Idle = vals[3]
		counters.IOWait = vals[4]
		return counters, nil
	}

	return counters, fmt.Errorf("%w: no cpu line in /proc/stat", ErrProbeUnavailable)
}

// readProcStatus reads VmRSS and VmHWM (both reported in kB) from
// /proc/self/status.
func readProcStatus() (current, peak uint64, err error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "VmRSS:"):
			current = parseStatusKB(line)
		case strings.HasPrefix(line, "VmHWM:"):
			peak = parseStatusKB(line)
		}
	}

	if current == 0 {
		return 0, 0, fmt.Errorf("%w: VmRSS not found", ErrProbeUnavailable)
	}
	if peak < current {
		peak = current
	}
	return current, peak, nil
}

func parseStatusKB(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	kb, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return kb * 1024
}

func timevalSeconds(tv unix.Timeval) float64 {
	return float64(tv.Sec) + float64(tv.Usec)/1e6
}
