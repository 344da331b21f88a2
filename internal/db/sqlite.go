// Package db provides SQLite storage for checklist items and settings.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection.
type DB struct {
	*sql.DB
	path string
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Busy timeout covers the watch loop and the CLI writing at the same time.
	dsn := path + "?_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	wrapped := &DB{DB: db, path: path}
	if err := wrapped.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return wrapped, nil
}

// Path returns the file the database was opened from.
func (db *DB) Path() string { return db.path }

// migrate runs database migrations.
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS checklist_items (
			id TEXT PRIMARY KEY,
			checklist TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			due_at INTEGER,
			due_mode TEXT NOT NULL DEFAULT 'datetime',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_checklist_items_due_at ON checklist_items(due_at)`,
		`CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist ON checklist_items(checklist)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// DefaultPath returns the default database path.
func DefaultPath() string {
	if p := os.Getenv("DUE_DB_PATH"); p != "" {
		return p
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "due", "due.db")
}
