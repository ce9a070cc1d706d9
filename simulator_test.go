package hashbench

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func fastLoadConfig(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Load.Users = 5
	cfg.Load.Attempts = 1000
	cfg.Load.Concurrency = 200
	cfg.Load.BatchPause = time.Millisecond
	cfg.Load.Seed = seed
	return cfg
}

func TestSimulatorSuccessRateConvergence(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		cfg := fastLoadConfig(seed)
		h := &fakeHasher{params: testArgon2Params(t, "sim")}

		sim, err := NewSimulator(cfg, h, newMemStore(), nil)
		if err != nil {
			t.Fatalf("NewSimulator error: %v", err)
		}

		report, err := sim.Run(context.Background())
		if err != nil {
			t.Fatalf("Run error (seed %d): %v", seed, err)
		}

		if report.Attempts != 1000 {
			t.Fatalf("expected 1000 attempts, got %d", report.Attempts)
		}
		if math.Abs(report.SuccessRate-0.8) > 0.05 {
			t.Fatalf("seed %d: success rate %v not within ±5%% of 0.8", seed, report.SuccessRate)
		}
	}
}

func TestSimulatorStateMachine(t *testing.T) {
	cfg := fastLoadConfig(1)
	cfg.Load.Attempts = 20
	h := &fakeHasher{params: testArgon2Params(t, "sim")}

	sim, err := NewSimulator(cfg, h, newMemStore(), nil)
	if err != nil {
		t.Fatalf("NewSimulator error: %v", err)
	}

	if sim.State() != StateIdle {
		t.Fatalf("expected idle before run, got %s", sim.State())
	}

	if _, err := sim.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if sim.State() != StateDone {
		t.Fatalf("expected done after run, got %s", sim.State())
	}
}

func TestSimulatorDoneReachedOnFailure(t *testing.T) {
	cfg := fastLoadConfig(1)
	h := &fakeHasher{params: testArgon2Params(t, "sim"), hashErr: errors.New("backend broken")}

	sim, err := NewSimulator(cfg, h, newMemStore(), nil)
	if err != nil {
		t.Fatalf("NewSimulator error: %v", err)
	}

	if _, err := sim.Run(context.Background()); err == nil {
		t.Fatal("expected registration failure")
	}
	if sim.State() != StateDone {
		t.Fatalf("expected done after failure, got %s", sim.State())
	}
}

func TestSimulatorRegistersThroughStore(t *testing.T) {
	cfg := fastLoadConfig(1)
	cfg.Load.Users = 7
	cfg.Load.Attempts = 10
	h := &fakeHasher{params: testArgon2Params(t, "sim")}
	store := newMemStore()

	sim, err := NewSimulator(cfg, h, store, nil)
	if err != nil {
		t.Fatalf("NewSimulator error: %v", err)
	}

	report, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if report.Registered != 7 {
		t.Fatalf("expected 7 registered users, got %d", report.Registered)
	}
	if len(store.records) != 7 {
		t.Fatalf("expected 7 store records, got %d", len(store.records))
	}

	record, err := store.Find(context.Background(), "user-0000@loadtest.local")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if record.ID == "" || record.PasswordHash == "" {
		t.Fatalf("incomplete record: %+v", record)
	}
}

func TestSimulatorTokenIssuance(t *testing.T) {
	cfg := fastLoadConfig(1)
	cfg.Load.Attempts = 50
	cfg.Token.Enabled = true
	cfg.Token.SigningKey = []byte("0123456789abcdef0123456789abcdef")

	metrics := NewMetrics(MetricsConfig{Enabled: true})
	h := &fakeHasher{params: testArgon2Params(t, "sim")}

	sim, err := NewSimulator(cfg, h, newMemStore(), metrics)
	if err != nil {
		t.Fatalf("NewSimulator error: %v", err)
	}

	report, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	snap := metrics.Snapshot()
	if snap.Counters[MetricTokenIssued] != uint64(report.Successes) {
		t.Fatalf("expected %d issued tokens, got %d", report.Successes, snap.Counters[MetricTokenIssued])
	}
}

func TestSimulatorAgainstRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	t.Cleanup(func() { _ = client.Close() })

	cfg := fastLoadConfig(2)
	cfg.Load.Users = 3
	cfg.Load.Attempts = 40
	h := &fakeHasher{params: testArgon2Params(t, "sim")}

	sim, err := NewSimulator(cfg, h, NewRedisUserStore(client, cfg.Store.RedisPrefix), nil)
	if err != nil {
		t.Fatalf("NewSimulator error: %v", err)
	}

	report, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if report.Attempts != 40 {
		t.Fatalf("expected 40 attempts, got %d", report.Attempts)
	}
	if report.Latency.Min > report.Latency.Mean || report.Latency.Mean > report.Latency.Max {
		t.Fatalf("latency summary ordering violated: %+v", report.Latency)
	}
}

func TestSimulatorValidation(t *testing.T) {
	cfg := fastLoadConfig(1)
	h := &fakeHasher{params: testArgon2Params(t, "sim")}

	if _, err := NewSimulator(cfg, nil, newMemStore(), nil); !errors.Is(err, ErrNilHasher) {
		t.Fatalf("expected ErrNilHasher, got: %v", err)
	}
	if _, err := NewSimulator(cfg, h, nil, nil); !errors.Is(err, ErrNilStore) {
		t.Fatalf("expected ErrNilStore, got: %v", err)
	}

	cfg.Load.SuccessRatio = 1.5
	if _, err := NewSimulator(cfg, h, newMemStore(), nil); err == nil {
		t.Fatal("expected invalid success ratio to be rejected")
	}
}

func TestSimulatorBusy(t *testing.T) {
	cfg := fastLoadConfig(1)
	h := &fakeHasher{params: testArgon2Params(t, "sim")}

	sim, err := NewSimulator(cfg, h, newMemStore(), nil)
	if err != nil {
		t.Fatalf("NewSimulator error: %v", err)
	}

	sim.running.Store(true)
	if _, err := sim.Run(context.Background()); !errors.Is(err, ErrSimulatorBusy) {
		t.Fatalf("expected ErrSimulatorBusy, got: %v", err)
	}
}
