package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/wikigraph/wikigraph/internal/model"
)

// ArchiveDB stores one record per fetched article URL.
//
// Design decision: the archive is append-only from the crawler's point
// of view (re-fetches overwrite the row via UPSERT), and nothing in the
// crawl or analysis paths ever reads it back. It exists so that a crawl
// session leaves an inspectable trail next to the graph file.
type ArchiveDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ArchiveDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an ArchiveDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ArchiveDB, error) {
	dbPath := filepath.Join(dbDir, "archive.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw / mode=rwc in the DSN to control
	// whether opening may create a new file.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple connections buy nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &ArchiveDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *ArchiveDB) Close() error {
	return adb.db.Close()
}

// Path returns the path to the SQLite database file.
func (adb *ArchiveDB) Path() string {
	return adb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (adb *ArchiveDB) createTables() error {
	schema := `
	-- Pages store the most recent fetch of each article URL
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		title TEXT,
		source TEXT,
		status_code INTEGER,
		content_type TEXT,
		content_hash TEXT,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_pages_title ON pages(title);
	CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// PageRecord represents a stored page fetch.
type PageRecord struct {
	ID          int64
	URL         string
	Title       string
	Source      string
	StatusCode  int
	ContentType string
	ContentHash string
	FetchedAt   time.Time
}

// RecordPage inserts or updates the archive row for a fetched page.
// Re-fetching a URL overwrites its previous row.
func (adb *ArchiveDB) RecordPage(ctx context.Context, page *model.Page) error {
	query := `
	INSERT INTO pages (url, title, source, status_code, content_type, content_hash, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		title = excluded.title,
		source = excluded.source,
		status_code = excluded.status_code,
		content_type = excluded.content_type,
		content_hash = excluded.content_hash,
		fetched_at = excluded.fetched_at
	`

	_, err := adb.db.ExecContext(ctx, query,
		page.URL,
		page.Title,
		page.Source,
		page.StatusCode,
		page.ContentType,
		page.Hash,
		page.FetchedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to record page: %w", err)
	}

	return nil
}

// GetPage retrieves the archive row for a URL.
// Returns nil without error when the URL has never been archived.
func (adb *ArchiveDB) GetPage(ctx context.Context, url string) (*PageRecord, error) {
	query := `
	SELECT id, url, title, source, status_code, content_type, content_hash, fetched_at
	FROM pages
	WHERE url = ?
	`

	var record PageRecord
	var fetchedAt string

	err := adb.db.QueryRowContext(ctx, query, url).Scan(
		&record.ID,
		&record.URL,
		&record.Title,
		&record.Source,
		&record.StatusCode,
		&record.ContentType,
		&record.ContentHash,
		&fetchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	record.FetchedAt = parseTimestamp(fetchedAt)

	return &record, nil
}

// PageCount returns the number of archived pages.
func (adb *ArchiveDB) PageCount(ctx context.Context) (int, error) {
	var count int
	if err := adb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// RecentPages returns up to limit archive rows, most recently fetched first.
func (adb *ArchiveDB) RecentPages(ctx context.Context, limit int) ([]PageRecord, error) {
	query := `
	SELECT id, url, title, source, status_code, content_type, content_hash, fetched_at
	FROM pages
	ORDER BY fetched_at DESC, id DESC
	LIMIT ?
	`

	rows, err := adb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []PageRecord
	for rows.Next() {
		var record PageRecord
		var fetchedAt string
		if err := rows.Scan(
			&record.ID,
			&record.URL,
			&record.Title,
			&record.Source,
			&record.StatusCode,
			&record.ContentType,
			&record.ContentHash,
			&fetchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page row: %w", err)
		}
		record.FetchedAt = parseTimestamp(fetchedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate page rows: %w", err)
	}

	return records, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a timestamp string from SQLite.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
