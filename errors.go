package hashbench

import (
	"errors"

	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/internal/stores"
)

var (
	// ErrInvalidIterations is an exported constant or variable used by the benchmark engine.
	ErrInvalidIterations = errors.New("iterations must be >= 1")
	// ErrEmptyCorpus is an exported constant or variable used by the benchmark engine.
	ErrEmptyCorpus = errors.New("password corpus is empty")
	// ErrEmptySeries is an exported constant or variable used by the benchmark engine.
	ErrEmptySeries = errors.New("cannot summarize an empty series")
	// ErrNilHasher is an exported constant or variable used by the benchmark engine.
	ErrNilHasher = errors.New("nil hasher")
	// ErrNilStore is an exported constant or variable used by the benchmark engine.
	ErrNilStore = errors.New("nil user store")
	// ErrNoUsersRegistered is an exported constant or variable used by the benchmark engine.
	ErrNoUsersRegistered = errors.New("no users registered for simulation")
	// ErrSimulatorBusy is an exported constant or variable used by the benchmark engine.
	ErrSimulatorBusy = errors.New("simulation already in progress")

	// ErrUnsupportedAlgorithm is an exported constant or variable used by the benchmark engine.
	ErrUnsupportedAlgorithm = hasher.ErrUnsupportedAlgorithm
	// ErrInvalidParameters is an exported constant or variable used by the benchmark engine.
	ErrInvalidParameters = hasher.ErrInvalidParameters
	// ErrUserNotFound is an exported constant or variable used by the benchmark engine.
	ErrUserNotFound = stores.ErrUserNotFound
	// ErrStoreBackend is an exported constant or variable used by the benchmark engine.
	ErrStoreBackend = stores.ErrUserStoreBackend
)
