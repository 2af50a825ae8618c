package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/spendr/internal/spending"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite fixture database at dbPath, runs
// migrations and seeds the demo data set on first use.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS monthly_metrics (
		id     TEXT PRIMARY KEY,
		month  TEXT NOT NULL UNIQUE,
		value  REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS category_spends (
		id        TEXT PRIMARY KEY,
		category  TEXT NOT NULL,
		label     TEXT NOT NULL DEFAULT '',
		amount    REAL NOT NULL DEFAULT 0,
		spent_on  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_spends_spent_on ON category_spends(spent_on);

	CREATE TABLE IF NOT EXISTS screen_time_samples (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at       TEXT NOT NULL,
		category          TEXT NOT NULL,
		duration_seconds  REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_samples_recorded_at ON screen_time_samples(recorded_at);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('currency',        'USD'),
		('empty_selection', 'first_month'),
		('default_chart',   'bar');
	`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM monthly_metrics`).Scan(&n); err != nil {
		return fmt.Errorf("count metrics: %w", err)
	}
	if n > 0 {
		return nil
	}
	return s.ImportSeed(spending.DemoSeed())
}

// DefaultDBPath returns ~/.config/spendr/spendr.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "spendr", "spendr.db"), nil
}
