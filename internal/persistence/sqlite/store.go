package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/parish-booker/internal/persistence"
)

// Collection keys. One row in the collections table holds each serialized
// collection, mirroring the per-key layout of the original deployment.
const (
	colUsers         = "app_users"
	colRooms         = "app_rooms"
	colBookings      = "app_bookings"
	colConfig        = "app_config"
	colNotifications = "app_notifications"
	colCurrentUser   = "app_current_user"
)

func collectionKeys() []string {
	return []string{colUsers, colRooms, colBookings, colConfig, colNotifications, colCurrentUser}
}

// Store is a durable per-collection document store backed by SQLite. Each
// mutation is a read-modify-write of a whole collection, applied inside one
// transaction while holding that collection's mutex, so operations issued by
// the same instance observe each other atomically.
type Store struct {
	pool  *ConnectionPool
	now   func() time.Time
	locks map[string]*sync.Mutex
}

// NewStore wraps a connection pool. When now is nil, time.Now is used.
func NewStore(pool *ConnectionPool, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	locks := make(map[string]*sync.Mutex, len(collectionKeys()))
	for _, key := range collectionKeys() {
		locks[key] = &sync.Mutex{}
	}
	return &Store{pool: pool, now: now, locks: locks}
}

// Mutate locks the named collections in a fixed order, then runs fn inside a
// single transaction. Multi-collection invariants (the room/booking cascade)
// rely on the fixed acquisition order to stay deadlock free.
func (s *Store) Mutate(ctx context.Context, fn TransactionFunc, keys ...string) error {
	unlock := s.lock(keys...)
	defer unlock()
	return s.pool.WithTransaction(ctx, fn)
}

// Load reads a collection into out. It reports false when the key is absent.
func (s *Store) Load(ctx context.Context, key string, out any) (bool, error) {
	var found bool
	err := s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		found, err = s.loadTx(tx, key, out)
		return err
	})
	return found, err
}

// Save writes a collection, replacing any previous value.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	return s.Mutate(ctx, func(tx *sql.Tx) error {
		return s.saveTx(tx, key, value)
	}, key)
}

func (s *Store) lock(keys ...string) func() {
	ordered := make([]string, len(keys))
	copy(ordered, keys)
	sort.Strings(ordered)

	held := make([]*sync.Mutex, 0, len(ordered))
	for _, key := range ordered {
		mu, ok := s.locks[key]
		if !ok {
			continue
		}
		mu.Lock()
		held = append(held, mu)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (s *Store) loadTx(tx *sql.Tx, key string, out any) (bool, error) {
	var raw string
	err := tx.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read collection %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Unparseable persisted data is fatal; resetting it silently would
		// lose user state without anyone noticing.
		return false, fmt.Errorf("collection %s: %w: %v", key, persistence.ErrCorrupted, err)
	}
	return true, nil
}

func (s *Store) saveTx(tx *sql.Tx, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}

	_, err = tx.Exec(`
		INSERT INTO collections (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return nil
}

func (s *Store) deleteTx(tx *sql.Tx, key string) error {
	if _, err := tx.Exec("DELETE FROM collections WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", key, err)
	}
	return nil
}
