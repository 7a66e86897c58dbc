package sqlite

import (
	"context"
	"database/sql"
	"sort"

	"github.com/example/parish-booker/internal/persistence"
)

// BookingRepository implements persistence.BookingRepository over the document store.
type BookingRepository struct {
	store *Store
}

// NewBookingRepository creates a booking repository bound to the store.
func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

// CreateBooking appends a new booking record.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking persistence.Booking) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var bookings []persistence.Booking
		if _, err := r.store.loadTx(tx, colBookings, &bookings); err != nil {
			return err
		}

		for _, existing := range bookings {
			if existing.ID == booking.ID {
				return persistence.ErrDuplicate
			}
		}

		bookings = append(bookings, booking)
		return r.store.saveTx(tx, colBookings, bookings)
	}, colBookings)
}

// UpdateBooking overwrites an existing booking by id.
func (r *BookingRepository) UpdateBooking(ctx context.Context, booking persistence.Booking) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var bookings []persistence.Booking
		if _, err := r.store.loadTx(tx, colBookings, &bookings); err != nil {
			return err
		}

		for i, existing := range bookings {
			if existing.ID != booking.ID {
				continue
			}
			bookings[i] = booking
			return r.store.saveTx(tx, colBookings, bookings)
		}
		return persistence.ErrNotFound
	}, colBookings)
}

// GetBooking retrieves a booking by id.
func (r *BookingRepository) GetBooking(ctx context.Context, id string) (persistence.Booking, error) {
	var bookings []persistence.Booking
	if _, err := r.store.Load(ctx, colBookings, &bookings); err != nil {
		return persistence.Booking{}, err
	}

	for _, booking := range bookings {
		if booking.ID == id {
			return booking, nil
		}
	}
	return persistence.Booking{}, persistence.ErrNotFound
}

// ListBookings returns every booking, newest first. Records created at the
// same instant keep their stored order.
func (r *BookingRepository) ListBookings(ctx context.Context) ([]persistence.Booking, error) {
	var bookings []persistence.Booking
	if _, err := r.store.Load(ctx, colBookings, &bookings); err != nil {
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}
