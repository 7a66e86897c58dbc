package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/parish-booker/internal/persistence"
)

// Seed writes the first-run state for every collection that does not exist
// yet. Collections already present are left untouched, so reopening a store
// never duplicates or resets data.
func (s *Store) Seed(ctx context.Context, seed persistence.SeedData) error {
	return s.Mutate(ctx, func(tx *sql.Tx) error {
		if err := s.seedCollection(tx, colRooms, seed.Rooms, &[]persistence.Room{}); err != nil {
			return err
		}
		if err := s.seedCollection(tx, colUsers, seed.Users, &[]persistence.User{}); err != nil {
			return err
		}
		if err := s.seedCollection(tx, colBookings, []persistence.Booking{}, &[]persistence.Booking{}); err != nil {
			return err
		}
		if err := s.seedCollection(tx, colNotifications, []persistence.AppNotification{}, &[]persistence.AppNotification{}); err != nil {
			return err
		}
		return s.seedCollection(tx, colConfig, seed.Config, &persistence.AppConfig{})
	}, colRooms, colUsers, colBookings, colNotifications, colConfig)
}

func (s *Store) seedCollection(tx *sql.Tx, key string, value, probe any) error {
	found, err := s.loadTx(tx, key, probe)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.saveTx(tx, key, value)
}
