package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/parish-booker/internal/persistence"
	"github.com/example/parish-booker/internal/testfixtures"
)

func TestBookingRepository_CreateBooking(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	createdAt := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	booking := testfixtures.NewBookingFixture(
		testfixtures.WithBookingID("b1"),
		testfixtures.WithBookingSlot("2024-03-15", "10:00", 2),
		testfixtures.WithBookingPurpose("Ensayo del coro"),
		testfixtures.WithBookingCreatedAt(createdAt),
	)
	if err := harness.Bookings.CreateBooking(ctx, booking.Persistence()); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	retrieved, err := harness.Bookings.GetBooking(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if retrieved.Status != persistence.BookingPending {
		t.Fatalf("expected status %s, got %s", persistence.BookingPending, retrieved.Status)
	}
	if retrieved.Purpose != "Ensayo del coro" || retrieved.DurationHours != 2 {
		t.Fatalf("unexpected booking %+v", retrieved)
	}
	if !retrieved.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected timestamp preserved, got %v", retrieved.CreatedAt)
	}

	clash := testfixtures.NewBookingFixture(testfixtures.WithBookingID("b1"))
	if err := harness.Bookings.CreateBooking(ctx, clash.Persistence()); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestBookingRepository_UpdateBooking(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	booking := testfixtures.NewBookingFixture(testfixtures.WithBookingID("b1"))
	if err := harness.Bookings.CreateBooking(ctx, booking.Persistence()); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	updated := booking.Persistence()
	updated.Status = persistence.BookingApproved
	if err := harness.Bookings.UpdateBooking(ctx, updated); err != nil {
		t.Fatalf("UpdateBooking failed: %v", err)
	}

	retrieved, err := harness.Bookings.GetBooking(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if retrieved.Status != persistence.BookingApproved {
		t.Fatalf("expected status %s, got %s", persistence.BookingApproved, retrieved.Status)
	}

	ghost := testfixtures.NewBookingFixture(testfixtures.WithBookingID("missing"))
	if err := harness.Bookings.UpdateBooking(ctx, ghost.Persistence()); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingRepository_ListBookings_NewestFirst(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"b1", "b2", "b3"} {
		booking := testfixtures.NewBookingFixture(
			testfixtures.WithBookingID(id),
			testfixtures.WithBookingCreatedAt(base.Add(time.Duration(i)*time.Minute)),
		)
		if err := harness.Bookings.CreateBooking(ctx, booking.Persistence()); err != nil {
			t.Fatalf("CreateBooking failed: %v", err)
		}
	}

	listed, err := harness.Bookings.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(listed))
	}
	if listed[0].ID != "b3" || listed[1].ID != "b2" || listed[2].ID != "b1" {
		t.Fatalf("expected newest first, got %s %s %s", listed[0].ID, listed[1].ID, listed[2].ID)
	}
}

func TestBookingRepository_ListBookings_StableOnTies(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	at := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"b1", "b2", "b3"} {
		booking := testfixtures.NewBookingFixture(
			testfixtures.WithBookingID(id),
			testfixtures.WithBookingCreatedAt(at),
		)
		if err := harness.Bookings.CreateBooking(ctx, booking.Persistence()); err != nil {
			t.Fatalf("CreateBooking failed: %v", err)
		}
	}

	listed, err := harness.Bookings.ListBookings(ctx)
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if listed[0].ID != "b1" || listed[1].ID != "b2" || listed[2].ID != "b3" {
		t.Fatalf("expected stored order on equal timestamps, got %s %s %s", listed[0].ID, listed[1].ID, listed[2].ID)
	}
}
