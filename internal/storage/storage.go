// Package storage is the client's persistent key/value store, the
// moral equivalent of browser localStorage. Values live in a small
// SQLite database; secrets are sealed at rest (see crypto.go).
package storage

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Well-known keys. Missing or corrupt values degrade to defaults
// rather than failing (anonymous session, light theme).
const (
	KeyAuthToken = "auth-token"
	KeyAuthUser  = "auth-user"
	KeyTheme     = "theme"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db     *sql.DB
	sealer *sealer
}

// Open opens the store at dbPath and runs migrations. keyPath names
// the sealing key file; it is created with a fresh random key on
// first use.
func Open(dbPath, keyPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s, err := loadSealer(keyPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load sealing key: %w", err)
	}

	return &Store{db: db, sealer: s}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or "" if the key is not set.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM values_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO values_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM values_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// SetSecret seals value and stores it under key.
func (s *Store) SetSecret(key, value string) error {
	sealed, err := s.sealer.seal([]byte(value))
	if err != nil {
		return fmt.Errorf("seal %q: %w", key, err)
	}
	return s.Set(key, sealed)
}

// Secret returns the unsealed value for key. An absent key yields "".
// A value that fails to unseal (tampered file, rotated key) is treated
// as absent, matching the degrade-to-anonymous policy.
func (s *Store) Secret(key string) (string, error) {
	sealed, err := s.Get(key)
	if err != nil {
		return "", err
	}
	if sealed == "" {
		return "", nil
	}
	plain, err := s.sealer.open(sealed)
	if err != nil {
		return "", nil
	}
	return string(plain), nil
}
