package testfixtures

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/parish-booker/internal/persistence"
	"github.com/example/parish-booker/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite store
// for integration-style persistence tests.
type SQLiteHarness struct {
	Store         *sqlite.Store
	Users         persistence.UserRepository
	Rooms         persistence.RoomRepository
	Bookings      persistence.BookingRepository
	Notifications persistence.NotificationRepository
	Config        persistence.ConfigRepository
	Sessions      persistence.SessionRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness over a temporary migrated
// database file. The store is left unseeded; tests that want the stock state
// call Seed themselves. A cleanup callback is registered with the provided
// testing.TB, so invoking Close is optional.
func NewSQLiteHarness(tb testing.TB, now func() time.Time) *SQLiteHarness {
	tb.Helper()

	if now == nil {
		now = NewClock(time.Time{}).NowFunc()
	}

	dir := tb.TempDir()
	path := filepath.Join(dir, "booker.db")

	pool, err := sqlite.NewConnectionPool("file:" + path)
	if err != nil {
		tb.Fatalf("failed to open store: %v", err)
	}

	store := sqlite.NewStore(pool, now)
	if err := store.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate store: %v", err)
	}

	harness := &SQLiteHarness{
		Store:         store,
		Users:         sqlite.NewUserRepository(store),
		Rooms:         sqlite.NewRoomRepository(store),
		Bookings:      sqlite.NewBookingRepository(store),
		Notifications: sqlite.NewNotificationRepository(store),
		Config:        sqlite.NewConfigRepository(store),
		Sessions:      sqlite.NewSessionRepository(store),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
