// Package hasher implements the password-hashing capability consumed by the
// benchmark engine: bcrypt and Argon2id hashers behind one [Hasher] interface,
// configured through immutable [ParameterSet] values.
//
// # Output format
//
// Argon2id hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Bcrypt hashes use the standard modular crypt encoding produced by
// golang.org/x/crypto/bcrypt.
//
// # Architecture boundaries
//
// This package owns hashing, verification, and parameter validation only.
// Timing, resource sampling, and aggregation are the engine's responsibility.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other hashbench package.
//   - Guard Configure with its own locking; the engine scopes reconfiguration
//     to one run at a time.
package hasher
