// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/evensplit/internal/models"
)

// ErrNotFound is returned when a slot holds no snapshot.
var ErrNotFound = errors.New("snapshot not found")

// Slot names the two places a ledger snapshot can live.
type Slot string

const (
	// SlotCurrent is the autosave slot, overwritten after every mutation.
	SlotCurrent Slot = "current"
	// SlotSession is the explicitly saved "last session".
	SlotSession Slot = "session"
)

// Store defines the interface for ledger snapshot storage.
// This abstraction allows swapping storage backends (memory, SQLite, Redis)
// without changing the service layer.
type Store interface {
	// Save writes a snapshot to the given slot, replacing any previous one.
	Save(ctx context.Context, ledgerID string, slot Slot, snapshot models.Snapshot) error

	// Load reads the snapshot in the given slot.
	// Returns ErrNotFound if the slot is empty.
	Load(ctx context.Context, ledgerID string, slot Slot) (*models.Snapshot, error)

	// Delete clears the given slot. Clearing an empty slot is not an error.
	Delete(ctx context.Context, ledgerID string, slot Slot) error

	// ListLedgers returns the ids of all ledgers with an autosaved snapshot.
	ListLedgers(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
