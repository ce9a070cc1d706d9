// Package stores provides the Redis-backed credential store used by the load
// simulation engine for its synthetic user population.
//
// # Design
//
// Each record is a versioned, binary-encoded (id, email, password hash) triple
// keyed by email under a configurable prefix. Records exist only for the
// lifetime of a simulation: Clear wipes the prefix before and after a run.
// The store never sees plaintext passwords — the simulator hashes before
// inserting.
//
// # Architecture boundaries
//
// This package owns persistence only. It does NOT hash, verify, or decide
// login outcomes; those responsibilities belong to the simulator.
//
// # What this package must NOT do
//
//   - Import hashbench or any sibling internal package.
//   - Log or expose password hashes.
package stores
