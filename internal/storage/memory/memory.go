// Package memory provides an in-process implementation of storage.Store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mmynk/evensplit/internal/models"
	"github.com/mmynk/evensplit/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type key struct {
	ledgerID string
	slot     storage.Slot
}

// Store keeps encoded snapshots in a map. Snapshots are stored encoded so
// callers never share slices with the store.
type Store struct {
	mu    sync.RWMutex
	slots map[key][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{slots: make(map[key][]byte)}
}

// Save stores the snapshot under ledgerID and slot.
func (s *Store) Save(_ context.Context, ledgerID string, slot storage.Slot, snapshot models.Snapshot) error {
	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key{ledgerID, slot}] = data
	return nil
}

// Load returns the snapshot under ledgerID and slot.
func (s *Store) Load(_ context.Context, ledgerID string, slot storage.Slot) (*models.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.slots[key{ledgerID, slot}]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return storage.Decode(data)
}

// Delete removes the snapshot under ledgerID and slot.
func (s *Store) Delete(_ context.Context, ledgerID string, slot storage.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key{ledgerID, slot})
	return nil
}

// ListLedgers returns the ids with an autosaved snapshot, sorted.
func (s *Store) ListLedgers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for k := range s.slots {
		if k.slot == storage.SlotCurrent {
			ids = append(ids, k.ledgerID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Put stores raw bytes under ledgerID and slot, bypassing encoding.
func (s *Store) Put(ledgerID string, slot storage.Slot, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key{ledgerID, slot}] = data
}
