package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// AlgorithmBcrypt is an exported constant or variable used by the hashing capability.
	AlgorithmBcrypt = "bcrypt"
	// AlgorithmArgon2id is an exported constant or variable used by the hashing capability.
	AlgorithmArgon2id = "argon2id"
)

var (
	// ErrUnsupportedAlgorithm is an exported constant or variable used by the hashing capability.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrInvalidParameters is an exported constant or variable used by the hashing capability.
	ErrInvalidParameters = errors.New("invalid hashing parameters")
	// ErrAlgorithmMismatch is an exported constant or variable used by the hashing capability.
	ErrAlgorithmMismatch = errors.New("parameter set targets a different algorithm")
)

// Hasher defines a public type used by hashbench APIs.
//
// Hasher implementations hold one active ParameterSet at a time. Configure
// replaces it; callers that reconfigure a shared hasher must serialize access
// for the duration of a run and restore the prior parameters before returning.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
	Configure(params ParameterSet) error
	Params() ParameterSet
}

// ParameterSet defines a public type used by hashbench APIs.
//
// ParameterSet instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ParameterSet struct {
	Algorithm string
	Label     string

	// Bcrypt.
	BcryptCost int

	// Argon2id.
	Argon2MemoryKB uint32
	Argon2Time     uint32
	Argon2Threads  uint8
}

// NewBcryptParams describes the newbcryptparams operation and its observable behavior.
//
// NewBcryptParams may return an error when input validation, dependency calls, or security checks fail.
// NewBcryptParams does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewBcryptParams(label string, cost int) (ParameterSet, error) {
	p := ParameterSet{
		Algorithm:  AlgorithmBcrypt,
		Label:      label,
		BcryptCost: cost,
	}
	if err := p.Validate(); err != nil {
		return ParameterSet{}, err
	}
	return p, nil
}

// NewArgon2Params describes the newargon2params operation and its observable behavior.
//
// NewArgon2Params may return an error when input validation, dependency calls, or security checks fail.
// NewArgon2Params does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewArgon2Params(label string, memoryKB, timeCost uint32, threads uint8) (ParameterSet, error) {
	p := ParameterSet{
		Algorithm:      AlgorithmArgon2id,
		Label:          label,
		Argon2MemoryKB: memoryKB,
		Argon2Time:     timeCost,
		Argon2Threads:  threads,
	}
	if err := p.Validate(); err != nil {
		return ParameterSet{}, err
	}
	return p, nil
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p ParameterSet) Validate() error {
	if p.Label == "" {
		return fmt.Errorf("%w: empty configuration label", ErrInvalidParameters)
	}

	switch p.Algorithm {
	case AlgorithmBcrypt:
		if p.BcryptCost < bcrypt.MinCost || p.BcryptCost > bcrypt.MaxCost {
			return fmt.Errorf("%w: bcrypt cost must be in [%d, %d]",
				ErrInvalidParameters, bcrypt.MinCost, bcrypt.MaxCost)
		}
	case AlgorithmArgon2id:
		if p.Argon2Threads < 1 {
			return fmt.Errorf("%w: argon2 threads must be >= 1", ErrInvalidParameters)
		}
		// argon2 requires memory >= 8*threads KiB.
		if p.Argon2MemoryKB < 8*uint32(p.Argon2Threads) {
			return fmt.Errorf("%w: argon2 memory must be >= %d KB",
				ErrInvalidParameters, 8*uint32(p.Argon2Threads))
		}
		if p.Argon2Time < 1 {
			return fmt.Errorf("%w: argon2 time must be >= 1", ErrInvalidParameters)
		}
	case "":
		return fmt.Errorf("%w: empty algorithm", ErrUnsupportedAlgorithm)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, p.Algorithm)
	}

	return nil
}

// String describes the string operation and its observable behavior.
//
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p ParameterSet) String() string {
	switch p.Algorithm {
	case AlgorithmBcrypt:
		return fmt.Sprintf("cost=%d", p.BcryptCost)
	case AlgorithmArgon2id:
		return fmt.Sprintf("m=%d,t=%d,p=%d", p.Argon2MemoryKB, p.Argon2Time, p.Argon2Threads)
	default:
		return ""
	}
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(params ParameterSet) (Hasher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	switch params.Algorithm {
	case AlgorithmBcrypt:
		return newBcrypt(params), nil
	case AlgorithmArgon2id:
		return newArgon2(params), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, params.Algorithm)
	}
}
