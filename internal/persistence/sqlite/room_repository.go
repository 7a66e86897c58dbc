package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/parish-booker/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository over the document store.
type RoomRepository struct {
	store *Store
}

// NewRoomRepository creates a room repository bound to the store.
func NewRoomRepository(store *Store) *RoomRepository {
	return &RoomRepository{store: store}
}

// CreateRoom appends a new room to the inventory.
func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var rooms []persistence.Room
		if _, err := r.store.loadTx(tx, colRooms, &rooms); err != nil {
			return err
		}

		for _, existing := range rooms {
			if existing.ID == room.ID {
				return persistence.ErrDuplicate
			}
		}

		rooms = append(rooms, room)
		return r.store.saveTx(tx, colRooms, rooms)
	}, colRooms)
}

// UpdateRoom overwrites an existing room by id.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var rooms []persistence.Room
		if _, err := r.store.loadTx(tx, colRooms, &rooms); err != nil {
			return err
		}

		for i, existing := range rooms {
			if existing.ID != room.ID {
				continue
			}
			rooms[i] = room
			return r.store.saveTx(tx, colRooms, rooms)
		}
		return persistence.ErrNotFound
	}, colRooms)
}

// GetRoom retrieves a room by id.
func (r *RoomRepository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	var rooms []persistence.Room
	if _, err := r.store.Load(ctx, colRooms, &rooms); err != nil {
		return persistence.Room{}, err
	}

	for _, room := range rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return persistence.Room{}, persistence.ErrNotFound
}

// ListRooms returns the inventory in stored order.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	var rooms []persistence.Room
	if _, err := r.store.Load(ctx, colRooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// DeleteRoom removes a room and cascades to every booking referencing it.
// Both collections are rewritten inside one transaction, so callers never
// observe a booking pointing at a deleted room.
func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var rooms []persistence.Room
		if _, err := r.store.loadTx(tx, colRooms, &rooms); err != nil {
			return err
		}

		remaining := rooms[:0]
		removed := false
		for _, room := range rooms {
			if room.ID == id {
				removed = true
				continue
			}
			remaining = append(remaining, room)
		}
		if !removed {
			return persistence.ErrNotFound
		}
		if err := r.store.saveTx(tx, colRooms, remaining); err != nil {
			return err
		}

		var bookings []persistence.Booking
		if _, err := r.store.loadTx(tx, colBookings, &bookings); err != nil {
			return err
		}

		kept := bookings[:0]
		for _, booking := range bookings {
			if booking.RoomID == id {
				continue
			}
			kept = append(kept, booking)
		}
		return r.store.saveTx(tx, colBookings, kept)
	}, colRooms, colBookings)
}
