// Package redis provides a Redis-backed implementation of the storage.Store interface.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/evensplit/internal/config"
	"github.com/mmynk/evensplit/internal/models"
	"github.com/mmynk/evensplit/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const (
	ledgerPrefix = "ledger"
	indexKey     = "ledgers"
)

// cmdable is the subset of the redis client the store uses.
type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
	SAdd(context.Context, string, ...any) *redis.IntCmd
	SRem(context.Context, string, ...any) *redis.IntCmd
	SMembers(context.Context, string) *redis.StringSliceCmd
}

// Store keeps each ledger slot as a JSON string under
// {prefix}:ledger:{id}:{slot}, plus a set of ledger ids with an autosave.
type Store struct {
	client    cmdable
	raw       *redis.Client
	namespace string
}

// New connects to Redis and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: raw, raw: raw, namespace: cfg.KeyPrefix}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Save writes the encoded snapshot. Autosaves also register the ledger id.
func (s *Store) Save(ctx context.Context, ledgerID string, slot storage.Slot, snapshot models.Snapshot) error {
	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.slotKey(ledgerID, slot), string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if slot == storage.SlotCurrent {
		if err := s.client.SAdd(ctx, s.key(indexKey), ledgerID).Err(); err != nil {
			return fmt.Errorf("failed to index ledger: %w", err)
		}
	}
	return nil
}

// Load reads and decodes a snapshot.
func (s *Store) Load(ctx context.Context, ledgerID string, slot storage.Slot) (*models.Snapshot, error) {
	data, err := s.client.Get(ctx, s.slotKey(ledgerID, slot)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return storage.Decode([]byte(data))
}

// Delete removes a slot.
func (s *Store) Delete(ctx context.Context, ledgerID string, slot storage.Slot) error {
	if err := s.client.Del(ctx, s.slotKey(ledgerID, slot)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if slot == storage.SlotCurrent {
		if err := s.client.SRem(ctx, s.key(indexKey), ledgerID).Err(); err != nil {
			return fmt.Errorf("failed to unindex ledger: %w", err)
		}
	}
	return nil
}

// ListLedgers returns the indexed ledger ids, sorted.
func (s *Store) ListLedgers(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key(indexKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}

func (s *Store) slotKey(ledgerID string, slot storage.Slot) string {
	return s.key(ledgerPrefix, ledgerID, string(slot))
}

func (s *Store) key(parts ...string) string {
	if s.namespace == "" {
		return strings.Join(parts, ":")
	}
	return s.namespace + ":" + strings.Join(parts, ":")
}
