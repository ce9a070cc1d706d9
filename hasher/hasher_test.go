package hasher

import (
	"errors"
	"strings"
	"testing"
)

func fastArgon2Params(t *testing.T) ParameterSet {
	t.Helper()
	params, err := NewArgon2Params("argon2-fast", 1024, 1, 1)
	if err != nil {
		t.Fatalf("NewArgon2Params error: %v", err)
	}
	return params
}

func fastBcryptParams(t *testing.T) ParameterSet {
	t.Helper()
	params, err := NewBcryptParams("bcrypt-fast", 4)
	if err != nil {
		t.Fatalf("NewBcryptParams error: %v", err)
	}
	return params
}

func TestArgon2HashAndVerify(t *testing.T) {
	h, err := New(fastArgon2Params(t))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	hash, err := h.Hash("P@ssw0rd-Ascii")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected PHC prefix: %s", hash)
	}

	ok, err := h.Verify("P@ssw0rd-Ascii", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected password verification to succeed")
	}

	ok, err = h.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password verification to fail")
	}
}

func TestBcryptHashAndVerify(t *testing.T) {
	h, err := New(fastBcryptParams(t))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify("correct-password", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected password verification to succeed")
	}

	ok, err = h.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password verification to fail")
	}
}

func TestNewRejectsUnsupportedAlgorithm(t *testing.T) {
	_, err := New(ParameterSet{Algorithm: "md5", Label: "bad"})
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got: %v", err)
	}
}

func TestParameterValidation(t *testing.T) {
	if _, err := NewBcryptParams("too-high", 40); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for cost 40, got: %v", err)
	}
	if _, err := NewArgon2Params("zero-time", 1024, 0, 1); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for time 0, got: %v", err)
	}
	if _, err := NewArgon2Params("tiny-memory", 4, 1, 1); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for memory 4, got: %v", err)
	}
	if _, err := NewArgon2Params("", 1024, 1, 1); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for empty label, got: %v", err)
	}
}

func TestConfigureRejectsAlgorithmMismatch(t *testing.T) {
	h, err := New(fastArgon2Params(t))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := h.Configure(fastBcryptParams(t)); !errors.Is(err, ErrAlgorithmMismatch) {
		t.Fatalf("expected ErrAlgorithmMismatch, got: %v", err)
	}
}

func TestParamsReflectsConfigure(t *testing.T) {
	h, err := New(fastArgon2Params(t))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	next, err := NewArgon2Params("argon2-next", 2048, 2, 1)
	if err != nil {
		t.Fatalf("NewArgon2Params error: %v", err)
	}
	if err := h.Configure(next); err != nil {
		t.Fatalf("Configure error: %v", err)
	}

	got := h.Params()
	if got.Label != "argon2-next" || got.Argon2MemoryKB != 2048 || got.Argon2Time != 2 {
		t.Fatalf("Params mismatch after Configure: %+v", got)
	}
}

func TestParameterSetString(t *testing.T) {
	b := fastBcryptParams(t)
	if b.String() != "cost=4" {
		t.Fatalf("unexpected bcrypt parameter string: %s", b.String())
	}

	a := fastArgon2Params(t)
	if a.String() != "m=1024,t=1,p=1" {
		t.Fatalf("unexpected argon2 parameter string: %s", a.String())
	}
}
