package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	hashbench "github.com/MrEthical07/hashbench"
	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/internal/corpus"
	"github.com/MrEthical07/hashbench/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type benchConfig struct {
	iterations    int
	corpusSize    int
	bcryptCosts   []int
	argon2Memory  []int
	argon2Times   []int
	argon2Threads int
	outputJSON    bool
	csvPath       string
}

func newBenchCmd(logger *slog.Logger) *cobra.Command {
	var cfg benchConfig

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark hashing configurations over a synthetic password corpus",
		Long: `Run a fixed-iteration hash/verify benchmark for each configuration in
the parameter matrix and report per-configuration latency, throughput, CPU,
and memory statistics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.Context(), logger, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.iterations, "iterations", 10,
		"Hash/verify iterations per password")
	flags.IntVar(&cfg.corpusSize, "corpus-size", 5,
		"Number of passwords in the synthetic corpus")
	flags.IntSliceVar(&cfg.bcryptCosts, "bcrypt-costs", []int{10, 12},
		"Bcrypt cost factors to benchmark")
	flags.IntSliceVar(&cfg.argon2Memory, "argon2-memory-kb", []int{65536},
		"Argon2id memory sizes in KB to benchmark")
	flags.IntSliceVar(&cfg.argon2Times, "argon2-times", []int{1, 3},
		"Argon2id time costs to benchmark")
	flags.IntVar(&cfg.argon2Threads, "argon2-threads", 2,
		"Argon2id parallelism degree")
	flags.BoolVar(&cfg.outputJSON, "json", false,
		"Output results as JSON instead of a table")
	flags.StringVar(&cfg.csvPath, "csv", "",
		"Write results as CSV to the given path")

	return cmd
}

func buildMatrix(cfg benchConfig) ([]hashbench.ParameterSet, error) {
	var matrix []hashbench.ParameterSet

	for _, cost := range cfg.bcryptCosts {
		params, err := hasher.NewBcryptParams(fmt.Sprintf("bcrypt-cost%d", cost), cost)
		if err != nil {
			return nil, err
		}
		matrix = append(matrix, params)
	}

	for _, memKB := range cfg.argon2Memory {
		for _, timeCost := range cfg.argon2Times {
			label := fmt.Sprintf("argon2-m%d-t%d", memKB, timeCost)
			params, err := hasher.NewArgon2Params(label, uint32(memKB), uint32(timeCost), uint8(cfg.argon2Threads))
			if err != nil {
				return nil, err
			}
			matrix = append(matrix, params)
		}
	}

	return matrix, nil
}

func runBench(ctx context.Context, logger *slog.Logger, cfg benchConfig) error {
	matrix, err := buildMatrix(cfg)
	if err != nil {
		return err
	}
	if len(matrix) == 0 {
		return fmt.Errorf("empty parameter matrix")
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("iterations", cfg.iterations),
		slog.Int("corpus_size", cfg.corpusSize),
		slog.Int("configurations", len(matrix)),
	)

	passwords := corpus.Generate(cfg.corpusSize)
	metrics := hashbench.NewMetrics(hashbench.MetricsConfig{Enabled: true})
	engine := hashbench.NewEngine(nil, metrics)

	results := make([]hashbench.RunResult, 0, len(matrix))
	// Each configuration gets a fresh hasher; a failing configuration aborts
	// its own run only, and prior results are still exported.
	for _, params := range matrix {
		h, err := hasher.New(params)
		if err != nil {
			logger.ErrorContext(ctx, "skipping configuration",
				slog.String("configuration", params.Label),
				slog.Any("error", err),
			)
			continue
		}

		start := time.Now()
		line := fmt.Sprintf("Benchmarking %s ", color.CyanString(params.Label))
		engine.OnProgress = func(done, total int) {
			perUnit := time.Since(start) / time.Duration(done)
			clearCurrentTerminalLine(color.Output)
			printProgressLine(line, float64(done)/float64(total), perUnit*time.Duration(total-done))
		}

		result, err := engine.Run(ctx, h, params, passwords, cfg.iterations)
		clearCurrentTerminalLine(color.Output)
		if err != nil {
			logger.ErrorContext(ctx, "configuration failed",
				slog.String("configuration", params.Label),
				slog.Any("error", err),
			)
			continue
		}

		results = append(results, result)
	}

	if len(results) == 0 {
		return fmt.Errorf("all configurations failed")
	}

	if cfg.csvPath != "" {
		f, err := os.Create(cfg.csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteRunsCSV(f, results); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	if cfg.outputJSON {
		if err := report.GenerateJSON(os.Stdout, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Generate(os.Stdout, results); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Int("completed", len(results)),
		slog.Int("failed", len(matrix)-len(results)),
	)

	return nil
}
