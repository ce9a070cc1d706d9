package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	hashbench "github.com/MrEthical07/hashbench"
	"github.com/MrEthical07/hashbench/metrics/export/prometheus"
	"github.com/MrEthical07/hashbench/report"
	"github.com/spf13/cobra"
)

func newMonitorCmd(logger *slog.Logger) *cobra.Command {
	var (
		lf             loadFlags
		duration       time.Duration
		sampleInterval time.Duration
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Drive login load for a fixed duration while sampling resource usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonitor(cmd.Context(), logger, lf, duration, sampleInterval, metricsAddr)
		},
	}

	registerLoadFlags(cmd, &lf)
	cmd.Flags().DurationVar(&duration, "duration", 30*time.Second,
		"How long to drive load")
	cmd.Flags().DurationVar(&sampleInterval, "sample-interval", time.Second,
		"Resource sampling interval")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address while the run is active")

	return cmd
}

func runMonitor(
	ctx context.Context,
	logger *slog.Logger,
	lf loadFlags,
	duration, sampleInterval time.Duration,
	metricsAddr string,
) error {
	h, err := buildHasher(lf)
	if err != nil {
		return err
	}

	client, cleanup, err := openRedis(logger, lf.redisAddr)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := loadConfig(lf)
	cfg.Monitor.Duration = duration
	cfg.Monitor.SampleInterval = sampleInterval

	store := hashbench.NewRedisUserStore(client, cfg.Store.RedisPrefix)
	metrics := hashbench.NewMetrics(cfg.Metrics)

	monitor, err := hashbench.NewMonitor(cfg, h, store, nil, metrics)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		exporter := prometheus.NewPrometheusExporter(metrics)
		mux := http.NewServeMux()
		mux.Handle("/metrics", exporter.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			logger.Info("serving metrics", slog.String("addr", metricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	logger.InfoContext(ctx, "starting monitored run",
		slog.Duration("duration", cfg.Monitor.Duration),
		slog.Duration("sample_interval", cfg.Monitor.SampleInterval),
		slog.String("algorithm", lf.algorithm),
	)

	rep, err := monitor.Run(ctx)
	if err != nil {
		return err
	}

	if lf.csvPath != "" {
		f, err := os.Create(lf.csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteResourcesCSV(f, rep.Samples); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	if lf.outputJSON {
		return report.GenerateJSON(os.Stdout, rep)
	}

	fmt.Println("---- results ----")
	fmt.Printf("attempts:     %d\n", rep.Attempts)
	fmt.Printf("successes:    %d (%.1f%%)\n", rep.Successes, rep.SuccessRate*100)
	fmt.Printf("latency mean: %.3fms\n", rep.Latency.Mean)
	fmt.Printf("samples:      %d\n", len(rep.Samples))
	if n := len(rep.Samples); n > 0 {
		last := rep.Samples[n-1]
		fmt.Printf("memory:       %.1fMB (peak %.1fMB, diff %+.1fMB)\n",
			last.MemoryMB, last.PeakMemoryMB, last.MemoryDiffMB)
		fmt.Printf("cpu load:     %.1f%%\n", last.CPULoad)
	}
	fmt.Printf("duration:     %s\n", rep.Duration.Round(time.Millisecond))

	return nil
}
