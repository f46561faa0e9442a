// Package sqlite stores collection blobs in a SQLite database, one row per
// save location. It backs the "sqlite" backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"collectio/internal/adapters/filesystem"
	"collectio/internal/ports"
)

const (
	schemaVersion = "1"
	blobsTable    = "collection_blobs"
)

// builder produces "?" placeholders as expected by the sqlite3 driver
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// BlobStore implements ports.BlobStore using SQLite
type BlobStore struct {
	db     *sql.DB
	dbPath string
}

// Ensure BlobStore implements ports.BlobStore
var _ ports.BlobStore = (*BlobStore)(nil)

// Open opens (creating if needed) the database at dbPath. An empty dbPath
// uses DefaultPath.
func Open(dbPath string) (*BlobStore, error) {
	if dbPath == "" {
		dbPath = DefaultPath()
	}
	dbPath = filesystem.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS collection_blobs (
			location TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	query, args, err := builder().
		Replace("meta").
		Columns("key", "value").
		Values("schema_version", schemaVersion).
		ToSql()
	if err == nil {
		_, err = db.Exec(query, args...)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &BlobStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (b *BlobStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// DBPath returns the database file
func (b *BlobStore) DBPath() string {
	return b.dbPath
}

// Resolve names the row for location. It doubles as the Store cache key.
func (b *BlobStore) Resolve(location string) string {
	return b.dbPath + "#" + filesystem.ExpandPath(location)
}

// Read returns the stored payload for location
func (b *BlobStore) Read(ctx context.Context, location string) ([]byte, bool, error) {
	query, args, err := builder().
		Select("payload").
		From(blobsTable).
		Where(squirrel.Eq{"location": filesystem.ExpandPath(location)}).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = b.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read collections: %w", err)
	}
	return payload, true, nil
}

// Write upserts the payload for location
func (b *BlobStore) Write(ctx context.Context, blob []byte, location string) (string, error) {
	query, args, err := builder().
		Insert(blobsTable).
		Columns("location", "payload", "updated_at").
		Values(filesystem.ExpandPath(location), blob, time.Now().Unix()).
		Suffix("ON CONFLICT(location) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err == nil {
		_, err = b.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write collections: %w", err)
	}
	return b.Resolve(location), nil
}

// Locations returns every save location that has stored collections
func (b *BlobStore) Locations(ctx context.Context) ([]string, error) {
	query, args, err := builder().
		Select("location").
		From(blobsTable).
		OrderBy("location").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// DefaultPath returns the database path in the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "collectio", "collections.db")
}
