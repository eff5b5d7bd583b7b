// Package store provides a SQLite index of imported L5X documents.
//
// Each import records:
//   - Imports: one row per document, with a generated ID and a monotonically
//     increasing seq
//   - Tags: one row per controller or program tag, including the load error
//     of tags whose data could not be read
//   - Members: one row per leaf operand of each tag (atomic or string), with
//     its data type, radix and formatted value
//   - Snapshots: the same leaf values per tag as a CBOR blob, so a tag can be
//     restored without re-reading the document
//
// # Deterministic ordering
//
// Imports are ordered by seq; tags and members by their position in the
// document. Queries never order by wall-clock time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
