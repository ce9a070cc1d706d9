package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	hashbench "github.com/MrEthical07/hashbench"
	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/report"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type loadFlags struct {
	users        int
	attempts     int
	concurrency  int
	batchPause   time.Duration
	successRatio float64
	seed         uint64
	redisAddr    string
	prefix       string
	algorithm    string
	bcryptCost   int
	argon2Memory int
	argon2Time   int
	tokenKey     string
	outputJSON   bool
	csvPath      string
}

func registerLoadFlags(cmd *cobra.Command, lf *loadFlags) {
	flags := cmd.Flags()
	flags.IntVar(&lf.users, "users", 10,
		"Number of synthetic users to register")
	flags.IntVar(&lf.concurrency, "concurrency", 10,
		"Attempts per pacing batch")
	flags.DurationVar(&lf.batchPause, "batch-pause", 10*time.Millisecond,
		"Pause between pacing batches")
	flags.Float64Var(&lf.successRatio, "success-ratio", 0.8,
		"Fraction of attempts made with the correct password")
	flags.Uint64Var(&lf.seed, "seed", 0,
		"Random seed (0 = use current time)")
	flags.StringVar(&lf.redisAddr, "redis-addr", "",
		"Redis address; if empty, REDIS_ADDR env or miniredis is used")
	flags.StringVar(&lf.prefix, "prefix", "hbu",
		"User record key prefix")
	flags.StringVar(&lf.algorithm, "algorithm", hasher.AlgorithmBcrypt,
		"Hashing algorithm: bcrypt or argon2id")
	flags.IntVar(&lf.bcryptCost, "bcrypt-cost", 10,
		"Bcrypt cost factor")
	flags.IntVar(&lf.argon2Memory, "argon2-memory-kb", 65536,
		"Argon2id memory size in KB")
	flags.IntVar(&lf.argon2Time, "argon2-time", 3,
		"Argon2id time cost")
	flags.StringVar(&lf.tokenKey, "token-key", "",
		"HS256 signing key; enables token issuance on successful logins (>= 32 bytes)")
	flags.BoolVar(&lf.outputJSON, "json", false,
		"Output the report as JSON instead of a summary")
	flags.StringVar(&lf.csvPath, "csv", "",
		"Write the run's time series as CSV to the given path")
}

func newLoadtestCmd(logger *slog.Logger) *cobra.Command {
	var lf loadFlags

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Simulate a fixed number of login attempts against a user store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoadtest(cmd.Context(), logger, lf)
		},
	}

	registerLoadFlags(cmd, &lf)
	cmd.Flags().IntVar(&lf.attempts, "attempts", 100,
		"Total login attempts")

	return cmd
}

// openRedis connects to the given address, falling back to the REDIS_ADDR
// environment variable and finally to an in-process miniredis.
func openRedis(logger *slog.Logger, addr string) (redis.UniversalClient, func(), error) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("start miniredis: %w", err)
		}
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{mr.Addr()},
		})
		logger.Info("using miniredis", slog.String("addr", mr.Addr()))
		return client, func() {
			_ = client.Close()
			mr.Close()
		}, nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{addr},
	})
	logger.Info("using redis", slog.String("addr", addr))
	return client, func() { _ = client.Close() }, nil
}

func loadConfig(lf loadFlags) hashbench.Config {
	cfg := hashbench.DefaultConfig()
	cfg.Load.Users = lf.users
	cfg.Load.Attempts = lf.attempts
	cfg.Load.Concurrency = lf.concurrency
	cfg.Load.BatchPause = lf.batchPause
	cfg.Load.SuccessRatio = lf.successRatio
	cfg.Load.Seed = lf.seed
	cfg.Store.RedisPrefix = lf.prefix
	if lf.tokenKey != "" {
		cfg.Token.Enabled = true
		cfg.Token.SigningKey = []byte(lf.tokenKey)
	}
	return cfg
}

func buildHasher(lf loadFlags) (hasher.Hasher, error) {
	var (
		params hashbench.ParameterSet
		err    error
	)
	switch lf.algorithm {
	case hasher.AlgorithmBcrypt:
		params, err = hasher.NewBcryptParams(fmt.Sprintf("bcrypt-cost%d", lf.bcryptCost), lf.bcryptCost)
	case hasher.AlgorithmArgon2id:
		label := fmt.Sprintf("argon2-m%d-t%d", lf.argon2Memory, lf.argon2Time)
		params, err = hasher.NewArgon2Params(label, uint32(lf.argon2Memory), uint32(lf.argon2Time), 2)
	default:
		return nil, fmt.Errorf("%w: %s", hasher.ErrUnsupportedAlgorithm, lf.algorithm)
	}
	if err != nil {
		return nil, err
	}
	return hasher.New(params)
}

func runLoadtest(ctx context.Context, logger *slog.Logger, lf loadFlags) error {
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
	store := hashbench.NewRedisUserStore(client, cfg.Store.RedisPrefix)
	metrics := hashbench.NewMetrics(cfg.Metrics)

	sim, err := hashbench.NewSimulator(cfg, h, store, metrics)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting load test",
		slog.Int("users", cfg.Load.Users),
		slog.Int("attempts", cfg.Load.Attempts),
		slog.String("algorithm", lf.algorithm),
	)

	rep, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	if lf.csvPath != "" {
		f, err := os.Create(lf.csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := report.WriteAttemptsCSV(f, rep.Outcomes); err != nil {
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
	fmt.Printf("latency min:  %.3fms\n", rep.Latency.Min)
	fmt.Printf("latency max:  %.3fms\n", rep.Latency.Max)
	fmt.Printf("latency σ:    %.3fms\n", rep.Latency.StdDev)
	fmt.Printf("duration:     %s\n", rep.Duration.Round(time.Millisecond))

	return nil
}
