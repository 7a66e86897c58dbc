package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/parish-booker/internal/availability"
	"github.com/example/parish-booker/internal/persistence"
)

// BookingRepository captures the persistence operations needed by the service.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) (Booking, error)
	UpdateBooking(ctx context.Context, booking Booking) (Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
}

// Notifier enqueues mailbox entries emitted as booking lifecycle side effects.
type Notifier interface {
	Append(ctx context.Context, input NotificationInput) (AppNotification, error)
}

// BookingService owns the booking lifecycle: creation in the fixed PENDING
// state, status transitions with their notification side effects, and the
// advisory occupancy view.
type BookingService struct {
	bookings    BookingRepository
	notifier    Notifier
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(bookings BookingRepository, notifier Notifier, idGenerator func() string, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(bookings, notifier, idGenerator, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(bookings BookingRepository, notifier Notifier, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{bookings: bookings, notifier: notifier, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// Create persists a new booking in the PENDING state and notifies the
// administrator mailbox. Availability is never checked here; the occupancy
// view is advisory only and administrators resolve overlaps manually.
func (s *BookingService) Create(ctx context.Context, params CreateBookingParams) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create",
		"principal_id", params.Principal.UserID,
		"room_id", params.Input.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	vErr := validateBookingInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	booking = Booking{
		ID:            s.idGenerator(),
		RoomID:        params.Input.RoomID,
		RoomName:      strings.TrimSpace(params.Input.RoomName),
		UserID:        params.Input.UserID,
		UserName:      strings.TrimSpace(params.Input.UserName),
		Date:          params.Input.Date,
		Time:          params.Input.Time,
		DurationHours: params.Input.DurationHours,
		Purpose:       strings.TrimSpace(params.Input.Purpose),
		Status:        StatusPending,
		CreatedAt:     s.now(),
	}

	if s.bookings == nil {
		return
	}

	var persisted Booking
	persisted, err = s.bookings.CreateBooking(ctx, booking)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}
	booking = persisted

	if s.notifier == nil {
		return
	}
	_, err = s.notifier.Append(ctx, NotificationInput{
		UserID:  AdminRecipient,
		Title:   "Nueva Solicitud",
		Message: fmt.Sprintf("%s solicitó el salón %q para el %s.", booking.UserName, booking.RoomName, booking.Date),
		Type:    TypeBookingRequest,
	})
	return
}

// SetStatus overwrites the status of an existing booking and notifies the
// requester. A stale id is a tolerated no-op, reported via the outcome rather
// than an error. No transition restriction applies; an administrator may set
// any status from any status, including re-approving a rejected booking.
func (s *BookingService) SetStatus(ctx context.Context, params SetBookingStatusParams) (outcome Outcome, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "SetStatus",
		"principal_id", params.Principal.UserID,
		"booking_id", params.BookingID,
		"status", string(params.Status),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to set booking status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if outcome == OutcomeNotFound {
			logger.InfoContext(ctx, "booking status unchanged, stale id")
			return
		}
		logger.InfoContext(ctx, "booking status updated")
	}()

	switch params.Status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		vErr := &ValidationError{}
		vErr.add("status", fmt.Sprintf("estado desconocido: %s", params.Status))
		err = vErr
		return
	}

	booking, getErr := s.bookings.GetBooking(ctx, params.BookingID)
	if getErr != nil {
		if isNotFound(getErr) {
			outcome = OutcomeNotFound
			return
		}
		err = getErr
		return
	}

	booking.Status = params.Status
	if _, err = s.bookings.UpdateBooking(ctx, booking); err != nil {
		err = mapBookingRepoError(err)
		return
	}

	if s.notifier == nil {
		return
	}

	label, icon := "RECHAZADA", "❌"
	if params.Status == StatusApproved {
		label, icon = "APROBADA", "✅"
	}
	_, err = s.notifier.Append(ctx, NotificationInput{
		UserID:  booking.UserID,
		Title:   "Reserva " + label,
		Message: fmt.Sprintf("%s Tu solicitud para %q el %s ha sido %s.", icon, booking.RoomName, booking.Date, strings.ToLower(label)),
		Type:    TypeStatusChange,
	})
	return
}

// Update performs a full administrative overwrite of a booking, including its
// status. It emits no notification; only creation and SetStatus do. A stale
// id is a tolerated no-op.
func (s *BookingService) Update(ctx context.Context, params UpdateBookingParams) (outcome Outcome, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update",
		"principal_id", params.Principal.UserID,
		"booking_id", params.Booking.ID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if outcome == OutcomeNotFound {
			logger.InfoContext(ctx, "booking unchanged, stale id")
			return
		}
		logger.InfoContext(ctx, "booking updated")
	}()

	if _, err = s.bookings.UpdateBooking(ctx, params.Booking); err != nil {
		if isNotFound(err) {
			outcome = OutcomeNotFound
			err = nil
			return
		}
		err = mapBookingRepoError(err)
		return
	}
	return
}

// List returns every booking, newest first.
func (s *BookingService) List(ctx context.Context) (bookings []Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "List")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(bookings)).InfoContext(ctx, "bookings listed")
	}()

	bookings, err = s.bookings.ListBookings(ctx)
	return
}

// Occupancy classifies every operational hour of the room on the given date,
// computed from the stored bookings.
func (s *BookingService) Occupancy(ctx context.Context, roomID, date string) (map[int]availability.HourStatus, error) {
	if s == nil {
		return nil, fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return availability.Occupancy(roomID, date, nil), nil
	}

	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	return availability.Occupancy(roomID, date, toAvailabilityBookings(bookings)), nil
}

func toAvailabilityBookings(bookings []Booking) []availability.Booking {
	out := make([]availability.Booking, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, availability.Booking{
			RoomID:        booking.RoomID,
			Date:          booking.Date,
			Time:          booking.Time,
			DurationHours: booking.DurationHours,
			Status:        string(booking.Status),
		})
	}
	return out
}

func validateBookingInput(input BookingInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.RoomID) == "" {
		vErr.add("roomId", "el salón es requerido")
	}
	if strings.TrimSpace(input.UserID) == "" {
		vErr.add("userId", "el usuario es requerido")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		vErr.add("date", "la fecha debe tener formato AAAA-MM-DD")
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		vErr.add("time", "la hora debe tener formato HH:MM")
	}
	if input.DurationHours < 1 {
		vErr.add("durationHours", "la duración mínima es de 1 hora")
	}
	if strings.TrimSpace(input.Purpose) == "" {
		vErr.add("purpose", "el propósito es requerido")
	}

	return vErr
}

func mapBookingRepoError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return fmt.Errorf("booking id collision: %w", err)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound)
}
