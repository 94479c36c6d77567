// Package rowstore provides the generic tabular store the inventory engines
// read and write: 2-D tables with a header row, addressed by row position.
//
// # Schema
//
// Schema resolves header names to column indices once per read,
// case-insensitively, and fails fast when a required column is missing.
// Engines never index rows by hard-coded positions.
//
// # Drivers
//
//   - MemoryStore: in-process snapshots, used by tests and dry runs.
//   - ObjectStore: each table is a CSV object in S3/MinIO. Full replaces are
//     staged under a temp key and promoted with a server-side copy.
//   - SQLStore: rows persisted as (sheet, row_idx, cells) records via GORM,
//     with replaces executed in a transaction and chunked inserts.
//
// The driver is chosen by configuration (store.driver); everything above this
// package depends only on the Store interface.
package rowstore
