// Package store keeps a SQLite history of solver runs.
//
// Each row records one dispatcher run: the solver, the raw input, the step
// records and the rendered output. Two identities are kept per run:
//
//   - id: a UUIDv7 run identifier, unique per run and time-sortable
//   - problem_id: a content hash of (solver, normalised input), shared by
//     every run of the same problem
//
// answer_hash hashes the step records, so two runs of one problem can be
// compared without diffing their output.
//
// # Ordering
//
// Listings are ordered by the dispatcher's logical sequence number, never
// by wall time: ORDER BY seq, id COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Content hashes are SHA-256 with domain separation over canonical JSON;
// strings are NFC-normalised before hashing.
package store
