// Package corpus generates benchmark password inputs: a few fixed reference
// passwords at known complexity tiers for run-to-run comparability, padded
// with random fill.
package corpus

import (
	"math/rand/v2"
	"strings"
)

// Reference passwords at three complexity tiers. Stable across runs so that
// results for different parameter sets stay comparable.
var tierPasswords = [3]string{
	"password",
	"P@ssw0rd123",
	"Tr0ub4dour&3-Benchmark!",
}

const (
	// Alphabet is an exported constant or variable used by the corpus generator.
	Alphabet = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!@#$%^&*()-_=+[]{};:,.<>?"

	// MinRandomLength is an exported constant or variable used by the corpus generator.
	MinRandomLength = 8
	// MaxRandomLength is an exported constant or variable used by the corpus generator.
	MaxRandomLength = 20
)

// Generate returns exactly count passwords. The first min(count, 3) entries
// are the fixed tier passwords in order; the rest are random over Alphabet
// with length uniform in [MinRandomLength, MaxRandomLength]. Randomness is
// intentional run-to-run variation; Generate is not seeded.
func Generate(count int) []string {
	if count <= 0 {
		return nil
	}

	passwords := make([]string, 0, count)
	for i := 0; i < count && i < len(tierPasswords); i++ {
		passwords = append(passwords, tierPasswords[i])
	}

	for len(passwords) < count {
		passwords = append(passwords, randomPassword())
	}

	return passwords
}

// Tiers returns the fixed reference passwords in tier order.
func Tiers() []string {
	out := make([]string, len(tierPasswords))
	copy(out, tierPasswords[:])
	return out
}

func randomPassword() string {
	length := MinRandomLength + rand.IntN(MaxRandomLength-MinRandomLength+1)

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(Alphabet[rand.IntN(len(Alphabet))])
	}
	return b.String()
}
