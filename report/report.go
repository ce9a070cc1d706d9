// Package report formats benchmark results into comparison tables and
// serializes result rows for CSV/JSON export.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	hashbench "github.com/MrEthical07/hashbench"
)

// RunFields holds the column order for benchmark run rows. The names are
// stable across releases; downstream tooling keys on them.
var RunFields = []string{
	"algorithm",
	"configuration",
	"parameters",
	"avg_hash_time_ms",
	"avg_verify_time_ms",
	"avg_cpu_usage_percent",
	"avg_memory_usage_kb",
	"avg_hash_length",
	"throughput_hash_per_sec",
	"throughput_verify_per_sec",
}

// AttemptFields holds the column order for per-attempt login timing rows.
var AttemptFields = []string{"attempt", "time_ms"}

// ResourceFields holds the column order for resource time-series rows.
var ResourceFields = []string{
	"timestamp",
	"memory_mb",
	"peak_memory_mb",
	"memory_diff_mb",
	"cpu_load",
}

// WriteRunsCSV writes benchmark run rows as CSV, header included.
func WriteRunsCSV(w io.Writer, results []hashbench.RunResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RunFields); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Algorithm,
			r.Configuration,
			r.Parameters,
			formatFloat(r.AvgHashTimeMs),
			formatFloat(r.AvgVerifyTimeMs),
			formatFloat(r.AvgCPUPercent),
			formatFloat(r.AvgMemoryKB),
			formatFloat(r.AvgHashLength),
			formatFloat(r.ThroughputHashPerSec),
			formatFloat(r.ThroughputVerifyPerSec),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAttemptsCSV writes the per-attempt login timing series as CSV. The
// attempt column is the 1-based position in the series.
func WriteAttemptsCSV(w io.Writer, outcomes []hashbench.LoginAttemptOutcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AttemptFields); err != nil {
		return err
	}

	for i, outcome := range outcomes {
		row := []string{
			strconv.Itoa(i + 1),
			formatFloat(outcome.ElapsedMs),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteResourcesCSV writes the resource time series as CSV.
func WriteResourcesCSV(w io.Writer, samples []hashbench.ResourceSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResourceFields); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			formatFloat(s.Timestamp),
			formatFloat(s.MemoryMB),
			formatFloat(s.PeakMemoryMB),
			formatFloat(s.MemoryDiffMB),
			formatFloat(s.CPULoad),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// GenerateJSON writes v as indented JSON to w.
func GenerateJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// Generate writes a markdown comparison table for the given run results.
func Generate(w io.Writer, results []hashbench.RunResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fastest := findFastestHash(results)

	// Header.
	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	// Table header.
	fmt.Fprintln(w, "| Configuration | Parameters | Hash | Verify "+
		"| CPU | Memory | Hash/s | Verify/s | Slowdown |")
	fmt.Fprintln(w, "|---------------|------------|------|--------"+
		"|-----|--------|--------|----------|----------|")

	for _, r := range results {
		slowdown := 1.0
		if fastest > 0 && r.AvgHashTimeMs > 0 {
			slowdown = r.AvgHashTimeMs / fastest
		}

		fmt.Fprintf(w, "| %s | %s | %.3fms | %.3fms | %.1f%% | %.0fKB | %.1f | %.1f | %.2fx |\n",
			r.Configuration,
			r.Parameters,
			r.AvgHashTimeMs,
			r.AvgVerifyTimeMs,
			r.AvgCPUPercent,
			r.AvgMemoryKB,
			r.ThroughputHashPerSec,
			r.ThroughputVerifyPerSec,
			slowdown,
		)
	}

	return nil
}

func findFastestHash(results []hashbench.RunResult) float64 {
	fastest := math.MaxFloat64
	for _, r := range results {
		if r.AvgHashTimeMs > 0 && r.AvgHashTimeMs < fastest {
			fastest = r.AvgHashTimeMs
		}
	}

	if fastest == math.MaxFloat64 {
		return 0
	}

	return fastest
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
