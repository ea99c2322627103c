package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	sqliteCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS a11y_preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	sqliteUpsertSQL = `
		INSERT INTO a11y_preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	sqliteSelectSQL = `SELECT value FROM a11y_preferences WHERE key = ?`
)

// SQLiteBackend persists the record in a SQLite database, for installs where
// several profiles share one settings database.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (and if needed migrates) the database at dbPath.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteCreateTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to migrate sqlite database: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Get returns the stored value or ErrNotFound.
func (s *SQLiteBackend) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, sqliteSelectSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("unable to query preference: %w", err)
	}
	return value, nil
}

// Set upserts the value for key.
func (s *SQLiteBackend) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, sqliteUpsertSQL, key, value); err != nil {
		return fmt.Errorf("unable to store preference: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
