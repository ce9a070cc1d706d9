package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt defines a public type used by hashbench APIs.
//
// Bcrypt instances hold the active parameter set; Configure replaces it and is
// serialized by the engine, not by this type.
type Bcrypt struct {
	params ParameterSet
}

func newBcrypt(params ParameterSet) *Bcrypt {
	return &Bcrypt{params: params}
}

// Hash describes the hash operation and its observable behavior.
//
// Hash may return an error when input validation, dependency calls, or security checks fail.
// Hash does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.params.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Bcrypt) Verify(password string, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// Configure describes the configure operation and its observable behavior.
//
// Configure may return an error when input validation, dependency calls, or security checks fail.
func (b *Bcrypt) Configure(params ParameterSet) error {
	if params.Algorithm != AlgorithmBcrypt {
		return fmt.Errorf("%w: bcrypt hasher cannot apply %q", ErrAlgorithmMismatch, params.Algorithm)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	b.params = params
	return nil
}

// Params describes the params operation and its observable behavior.
//
// Params does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Bcrypt) Params() ParameterSet {
	return b.params
}
