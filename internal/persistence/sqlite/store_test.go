package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/parish-booker/internal/persistence"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "booker.db")
	pool, err := NewConnectionPool("file:" + path)
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	store := NewStore(pool, nil)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func TestStore_LoadSaveRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var absent []persistence.Room
	found, err := store.Load(ctx, colRooms, &absent)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Fatal("expected empty store to report absence")
	}

	rooms := []persistence.Room{{ID: "room-1", Name: "Salón A", Capacity: 10}}
	if err := store.Save(ctx, colRooms, rooms); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var loaded []persistence.Room
	found, err = store.Load(ctx, colRooms, &loaded)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("expected collection present after save")
	}
	if len(loaded) != 1 || loaded[0].Name != "Salón A" {
		t.Fatalf("unexpected collection %+v", loaded)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, colRooms, []persistence.Room{{ID: "room-1"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, colRooms, []persistence.Room{{ID: "room-2"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var loaded []persistence.Room
	if _, err := store.Load(ctx, colRooms, &loaded); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "room-2" {
		t.Fatalf("expected overwritten collection, got %+v", loaded)
	}
}

func TestStore_CorruptedCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.Exec(
			"INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)",
			colRooms, "{not json", "2024-01-01T00:00:00Z",
		)
		return execErr
	})
	if err != nil {
		t.Fatalf("failed to plant corrupted row: %v", err)
	}

	var rooms []persistence.Room
	_, err = store.Load(ctx, colRooms, &rooms)
	if !errors.Is(err, persistence.ErrCorrupted) {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}

	// The corrupted value must survive; nothing may silently reseed it.
	repo := NewRoomRepository(store)
	if _, err := repo.ListRooms(ctx); !errors.Is(err, persistence.ErrCorrupted) {
		t.Fatalf("expected ErrCorrupted from repository read, got %v", err)
	}
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestStore_Seed(t *testing.T) {
	t.Run("writes first-run state", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()

		if err := store.Seed(ctx, persistence.DefaultSeed()); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}

		users, err := NewUserRepository(store).ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 seeded users, got %d", len(users))
		}

		rooms, err := NewRoomRepository(store).ListRooms(ctx)
		if err != nil {
			t.Fatalf("ListRooms failed: %v", err)
		}
		if len(rooms) != 1 || rooms[0].Name != "Salón Parroquial Principal" {
			t.Fatalf("unexpected seeded rooms %+v", rooms)
		}

		config, err := NewConfigRepository(store).GetConfig(ctx)
		if err != nil {
			t.Fatalf("GetConfig failed: %v", err)
		}
		if config.AppName != "Parish Booker" {
			t.Fatalf("unexpected seeded config %+v", config)
		}
	})

	t.Run("never resets existing collections", func(t *testing.T) {
		store := newTestStore(t)
		ctx := context.Background()

		if err := store.Seed(ctx, persistence.DefaultSeed()); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}

		users := NewUserRepository(store)
		if err := users.CreateUser(ctx, persistence.User{ID: "u3", Username: "maria", Role: persistence.RoleUser}); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		if err := store.Seed(ctx, persistence.DefaultSeed()); err != nil {
			t.Fatalf("second Seed failed: %v", err)
		}

		listed, err := users.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(listed) != 3 {
			t.Fatalf("expected registered user to survive reseeding, got %d users", len(listed))
		}
	})
}
