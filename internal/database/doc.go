// Package database provides SQLite-based storage for fetched pages.
//
// The ArchiveDB keeps one row per article URL with the metadata of its
// most recent fetch. It is a side archive for inspection and auditing;
// the link graph itself is persisted separately as GraphML and is never
// reconstructed from the database.
//
// We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
