// Package store keeps a small local record of completed study sessions
// so history works offline. The backend's session log stays the source
// of truth; this is a cache of what this client finished.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and provides repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path, applying pragmas and
// creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite has a single writer; keep the pool honest.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// History returns a HistoryRepo backed by this store.
func (s *Store) History() HistoryRepo {
	return &historyRepo{db: s.db}
}

func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_history (
			id              TEXT PRIMARY KEY,
			server_id       INTEGER,
			set_id          INTEGER NOT NULL,
			set_title       TEXT NOT NULL DEFAULT '',
			mode            TEXT NOT NULL,
			cards_studied   INTEGER NOT NULL,
			cards_correct   INTEGER NOT NULL,
			cards_incorrect INTEGER NOT NULL,
			duration_secs   INTEGER NOT NULL,
			completed_at    TIMESTAMP NOT NULL
		)`)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GHINHO_DB environment variable
// 2. $XDG_DATA_HOME/ghinho/ghinho.db
// 3. ~/.local/share/ghinho/ghinho.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GHINHO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "ghinho", "ghinho.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
