package hashbench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/internal/corpus"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SimulationState defines a public type used by hashbench APIs.
//
// SimulationState instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SimulationState uint32

const (
	// StateIdle is an exported constant or variable used by the benchmark engine.
	StateIdle SimulationState = iota
	// StateRegistering is an exported constant or variable used by the benchmark engine.
	StateRegistering
	// StateSimulating is an exported constant or variable used by the benchmark engine.
	StateSimulating
	// StateReporting is an exported constant or variable used by the benchmark engine.
	StateReporting
	// StateDone is an exported constant or variable used by the benchmark engine.
	StateDone
)

// String describes the string operation and its observable behavior.
//
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s SimulationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRegistering:
		return "registering"
	case StateSimulating:
		return "simulating"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// SimulationReport defines a public type used by hashbench APIs.
//
// SimulationReport instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SimulationReport struct {
	Outcomes    []LoginAttemptOutcome
	Registered  int
	Attempts    int
	Successes   int
	SuccessRate float64
	Latency     Summary
	Duration    time.Duration
}

type registeredUser struct {
	email    string
	password string
}

// Simulator defines a public type used by hashbench APIs.
//
// Simulator drives the synthetic login workload: register a fixed-shape user
// population through the credential store, then replay paced batches of login
// attempts with an 80/20 correct/incorrect password split (configurable via
// LoadConfig.SuccessRatio). State transitions are
// Idle -> Registering -> Simulating -> Reporting -> Done; Done is always
// reached, on failure included.
type Simulator struct {
	config  Config
	hasher  hasher.Hasher
	store   UserStore
	metrics *Metrics

	state   atomic.Uint32
	running atomic.Bool
	users   []registeredUser
	rng     *rand.Rand
}

// NewSimulator describes the newsimulator operation and its observable behavior.
//
// NewSimulator may return an error when input validation, dependency calls, or security checks fail.
// NewSimulator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewSimulator(config Config, h hasher.Hasher, store UserStore, metrics *Metrics) (*Simulator, error) {
	if h == nil {
		return nil, ErrNilHasher
	}
	if store == nil {
		return nil, ErrNilStore
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Load.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Simulator{
		config:  config,
		hasher:  h,
		store:   store,
		metrics: metrics,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}, nil
}

// State describes the state operation and its observable behavior.
//
// State does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Simulator) State() SimulationState {
	return SimulationState(s.state.Load())
}

func (s *Simulator) setState(state SimulationState) {
	s.state.Store(uint32(state))
}

// Run describes the run operation and its observable behavior.
//
// Run may return an error when input validation, dependency calls, or security checks fail.
//
// Run executes the attempt-bounded variant: exactly Attempts logins in paced
// batches of at most Concurrency, with a BatchPause sleep between batches.
// The pause caps attempted throughput against a shared store; batches are
// processed sequentially, not in parallel.
func (s *Simulator) Run(ctx context.Context) (*SimulationReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSimulatorBusy
	}
	defer s.running.Store(false)
	defer s.setState(StateDone)

	start := time.Now()

	if err := s.register(ctx); err != nil {
		return nil, err
	}

	s.setState(StateSimulating)
	outcomes := make([]LoginAttemptOutcome, 0, s.config.Load.Attempts)
	remaining := s.config.Load.Attempts
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := s.config.Load.Concurrency
		if batch > remaining {
			batch = remaining
		}
		for i := 0; i < batch; i++ {
			outcome, err := s.attemptLogin(ctx)
			if err != nil {
				return nil, err
			}
			outcomes = append(outcomes, outcome)
		}
		remaining -= batch

		if remaining > 0 {
			s.metrics.Inc(MetricBatchPause)
			time.Sleep(s.config.Load.BatchPause)
		}
	}

	s.setState(StateReporting)
	return s.buildReport(outcomes, time.Since(start))
}

// register creates the user population: corpus passwords hashed with the
// hasher's active configuration and persisted through the credential store.
func (s *Simulator) register(ctx context.Context) error {
	s.setState(StateRegistering)

	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	passwords := corpus.Generate(s.config.Load.Users)
	s.users = s.users[:0]
	for i, password := range passwords {
		if err := ctx.Err(); err != nil {
			return err
		}

		email := fmt.Sprintf("user-%04d@loadtest.local", i)
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("register %s: %w", email, err)
		}
		s.metrics.Inc(MetricHashOps)

		record := &UserRecord{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
		}
		if err := s.store.Insert(ctx, record); err != nil {
			return err
		}

		s.users = append(s.users, registeredUser{email: email, password: password})
		s.metrics.Inc(MetricUserRegistered)
	}

	if len(s.users) == 0 {
		return ErrNoUsersRegistered
	}
	return nil
}

// attemptLogin simulates one login: fetch the stored record, verify either
// the correct password (SuccessRatio of the time) or a synthetically wrong
// one, and on success optionally issue an access token.
func (s *Simulator) attemptLogin(ctx context.Context) (LoginAttemptOutcome, error) {
	user := s.users[s.rng.IntN(len(s.users))]

	password := user.password
	if s.rng.Float64() >= s.config.Load.SuccessRatio {
		password = user.password + "-nope"
	}

	start := time.Now()

	record, err := s.store.Find(ctx, user.email)
	if err != nil {
		return LoginAttemptOutcome{}, err
	}

	ok, err := s.hasher.Verify(password, record.PasswordHash)
	if err != nil {
		return LoginAttemptOutcome{}, fmt.Errorf("verify %s: %w", user.email, err)
	}
	s.metrics.Inc(MetricVerifyOps)

	if ok && s.config.Token.Enabled {
		if _, err := s.issueToken(record); err != nil {
			return LoginAttemptOutcome{}, fmt.Errorf("issue token %s: %w", user.email, err)
		}
		s.metrics.Inc(MetricTokenIssued)
	}

	elapsed := time.Since(start)
	s.metrics.ObserveLatency(MetricVerifyLatency, elapsed)
	if ok {
		s.metrics.Inc(MetricLoginSuccess)
	} else {
		s.metrics.Inc(MetricLoginFailure)
	}

	return LoginAttemptOutcome{
		Succeeded: ok,
		ElapsedMs: float64(elapsed) / float64(time.Millisecond),
	}, nil
}

func (s *Simulator) issueToken(record *UserRecord) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   record.ID,
		"email": record.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.config.Token.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Token.SigningKey)
}

func (s *Simulator) buildReport(outcomes []LoginAttemptOutcome, duration time.Duration) (*SimulationReport, error) {
	series := make([]float64, len(outcomes))
	successes := 0
	for i, outcome := range outcomes {
		series[i] = outcome.ElapsedMs
		if outcome.Succeeded {
			successes++
		}
	}

	latency, err := Summarize(series)
	if err != nil {
		return nil, err
	}

	return &SimulationReport{
		Outcomes:    outcomes,
		Registered:  len(s.users),
		Attempts:    len(outcomes),
		Successes:   successes,
		SuccessRate: float64(successes) / float64(len(outcomes)),
		Latency:     latency,
		Duration:    duration,
	}, nil
}
