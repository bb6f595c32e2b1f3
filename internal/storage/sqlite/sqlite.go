// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/evensplit/internal/models"
	"github.com/mmynk/evensplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts the snapshot for a ledger slot.
func (s *SQLiteStore) Save(ctx context.Context, ledgerID string, slot storage.Slot, snapshot models.Snapshot) error {
	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (ledger_id, slot, snapshot, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (ledger_id, slot) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		ledgerID, string(slot), string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load retrieves the snapshot for a ledger slot.
func (s *SQLiteStore) Load(ctx context.Context, ledgerID string, slot storage.Slot) (*models.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT snapshot FROM snapshots WHERE ledger_id = ? AND slot = ?",
		ledgerID, string(slot),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return storage.Decode([]byte(data))
}

// Delete removes the snapshot for a ledger slot.
func (s *SQLiteStore) Delete(ctx context.Context, ledgerID string, slot storage.Slot) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM snapshots WHERE ledger_id = ? AND slot = ?",
		ledgerID, string(slot),
	)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// ListLedgers returns the ids of ledgers with an autosaved snapshot.
func (s *SQLiteStore) ListLedgers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT ledger_id FROM snapshots WHERE slot = ? ORDER BY ledger_id",
		string(storage.SlotCurrent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ledger id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledgers: %w", err)
	}
	return ids, nil
}
