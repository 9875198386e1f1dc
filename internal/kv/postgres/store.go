// Package postgres implements a key-value Store on a single Postgres table.
// It uses pgx through database/sql so tests can substitute a mock driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/mesh-intelligence/coursebook/pkg/types"
)

var _ types.BatchStore = (*Store)(nil)

const driverName = "pgx"

// Values are TEXT rather than JSONB so stored bytes round-trip unchanged.
const (
	createKV = `CREATE TABLE IF NOT EXISTS coursebook_kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`
	selectKV = `SELECT value FROM coursebook_kv WHERE key = $1`
	upsertKV = `INSERT INTO coursebook_kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
)

// Store implements types.BatchStore on Postgres.
type Store struct {
	db *sql.DB
}

// Open connects to dsn, verifies the connection and ensures the kv table.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, types.ErrDSNRequired
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	s, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database handle and ensures the kv table exists.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, createKV); err != nil {
		return nil, fmt.Errorf("creating kv table: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, types.ErrInvalidKey
	}
	var value string
	err := s.db.QueryRowContext(ctx, selectKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("selecting %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value stored under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	if _, err := s.db.ExecContext(ctx, upsertKV, key, value); err != nil {
		return fmt.Errorf("upserting %s: %w", key, err)
	}
	return nil
}

// SetMany upserts every entry in one transaction.
func (s *Store) SetMany(ctx context.Context, entries map[string]string) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for k, v := range entries {
		if k == "" {
			return types.ErrInvalidKey
		}
		if _, err := tx.ExecContext(ctx, upsertKV, k, v); err != nil {
			return fmt.Errorf("upserting %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the database handle. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
