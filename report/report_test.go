package report

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	hashbench "github.com/MrEthical07/hashbench"
)

func sampleResults() []hashbench.RunResult {
	return []hashbench.RunResult{
		{
			Algorithm:              "bcrypt",
			Configuration:          "bcrypt-cost10",
			Parameters:             "cost=10",
			AvgHashTimeMs:          52.5,
			AvgVerifyTimeMs:        51.75,
			AvgCPUPercent:          87.2,
			AvgMemoryKB:            4096,
			AvgHashLength:          60,
			ThroughputHashPerSec:   19.05,
			ThroughputVerifyPerSec: 19.32,
		},
		{
			Algorithm:              "argon2id",
			Configuration:          "argon2-m65536-t3",
			Parameters:             "m=65536,t=3,p=2",
			AvgHashTimeMs:          105,
			AvgVerifyTimeMs:        104,
			AvgCPUPercent:          93.1,
			AvgMemoryKB:            81920,
			AvgHashLength:          97,
			ThroughputHashPerSec:   9.52,
			ThroughputVerifyPerSec: 9.62,
		},
	}
}

func TestWriteRunsCSV(t *testing.T) {
	var buf strings.Builder
	if err := WriteRunsCSV(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteRunsCSV error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	for i, field := range RunFields {
		if rows[0][i] != field {
			t.Fatalf("header column %d: expected %q, got %q", i, field, rows[0][i])
		}
	}
	if rows[1][0] != "bcrypt" || rows[1][1] != "bcrypt-cost10" || rows[1][2] != "cost=10" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][3] != "52.5" {
		t.Fatalf("expected avg_hash_time_ms 52.5, got %q", rows[1][3])
	}
	if rows[2][0] != "argon2id" {
		t.Fatalf("expected argon2id row second, got %v", rows[2])
	}
}

func TestWriteAttemptsCSV(t *testing.T) {
	outcomes := []hashbench.LoginAttemptOutcome{
		{Succeeded: true, ElapsedMs: 12.5},
		{Succeeded: false, ElapsedMs: 11.25},
	}

	var buf strings.Builder
	if err := WriteAttemptsCSV(&buf, outcomes); err != nil {
		t.Fatalf("WriteAttemptsCSV error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "attempt" || rows[0][1] != "time_ms" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "12.5" {
		t.Fatalf("unexpected first attempt row: %v", rows[1])
	}
	if rows[2][0] != "2" || rows[2][1] != "11.25" {
		t.Fatalf("unexpected second attempt row: %v", rows[2])
	}
}

func TestWriteResourcesCSV(t *testing.T) {
	samples := []hashbench.ResourceSample{
		{Timestamp: 1700000000.5, MemoryMB: 64, PeakMemoryMB: 96, MemoryDiffMB: 0, CPULoad: 30},
		{Timestamp: 1700000001.5, MemoryMB: 66, PeakMemoryMB: 96, MemoryDiffMB: 2, CPULoad: 45},
	}

	var buf strings.Builder
	if err := WriteResourcesCSV(&buf, samples); err != nil {
		t.Fatalf("WriteResourcesCSV error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	for i, field := range ResourceFields {
		if rows[0][i] != field {
			t.Fatalf("header column %d: expected %q, got %q", i, field, rows[0][i])
		}
	}
	if rows[2][1] != "66" || rows[2][3] != "2" || rows[2][4] != "45" {
		t.Fatalf("unexpected second resource row: %v", rows[2])
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf strings.Builder
	if err := GenerateJSON(&buf, sampleResults()); err != nil {
		t.Fatalf("GenerateJSON error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 results, got %d", len(decoded))
	}

	first := decoded[0]
	if first["algorithm"] != "bcrypt" {
		t.Fatalf("expected algorithm bcrypt, got %v", first["algorithm"])
	}
	for _, key := range RunFields {
		if _, ok := first[key]; !ok {
			t.Fatalf("missing JSON key %q: %v", key, first)
		}
	}
}

func TestGenerate(t *testing.T) {
	var buf strings.Builder
	if err := Generate(&buf, sampleResults()); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Benchmark Results") {
		t.Fatal("missing report header")
	}
	if !strings.Contains(out, "bcrypt-cost10") || !strings.Contains(out, "argon2-m65536-t3") {
		t.Fatalf("missing configuration rows:\n%s", out)
	}
	// bcrypt is fastest, argon2 twice as slow.
	if !strings.Contains(out, "1.00x") || !strings.Contains(out, "2.00x") {
		t.Fatalf("missing slowdown columns:\n%s", out)
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf strings.Builder
	if err := Generate(&buf, nil); err == nil {
		t.Fatal("expected error for empty results")
	}
}
