package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/parish-booker/internal/persistence"
)

// RoomRepository captures the persistence operations needed by the service.
// DeleteRoom is expected to cascade to dependent bookings atomically.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context) ([]Room, error)
}

// RoomService orchestrates validation, authorization, and persistence for the
// room inventory.
type RoomService struct {
	rooms       RoomRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(rooms RoomRepository, idGenerator func() string, now func() time.Time) *RoomService {
	return NewRoomServiceWithLogger(rooms, idGenerator, now, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(rooms RoomRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{rooms: rooms, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// Create validates input and persists a new room for administrators.
func (s *RoomService) Create(ctx context.Context, params CreateRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateRoomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	room = Room{
		ID:       s.idGenerator(),
		Name:     strings.TrimSpace(params.Input.Name),
		Capacity: params.Input.Capacity,
		Features: cloneFeatures(params.Input.Features),
		ImageURL: strings.TrimSpace(params.Input.ImageURL),
	}

	if s.rooms == nil {
		return
	}

	var persisted Room
	persisted, err = s.rooms.CreateRoom(ctx, room)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	room = persisted
	return
}

// Update validates input and overwrites an existing room for administrators.
// A stale id is a tolerated no-op.
func (s *RoomService) Update(ctx context.Context, params UpdateRoomParams) (outcome Outcome, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update",
		"principal_id", params.Principal.UserID,
		"room_id", params.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if outcome == OutcomeNotFound {
			logger.InfoContext(ctx, "room unchanged, stale id")
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	vErr := validateRoomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := Room{
		ID:       params.RoomID,
		Name:     strings.TrimSpace(params.Input.Name),
		Capacity: params.Input.Capacity,
		Features: cloneFeatures(params.Input.Features),
		ImageURL: strings.TrimSpace(params.Input.ImageURL),
	}

	if _, err = s.rooms.UpdateRoom(ctx, updated); err != nil {
		if isNotFound(err) {
			outcome = OutcomeNotFound
			err = nil
			return
		}
		err = mapRoomRepoError(err)
		return
	}
	return
}

// Delete removes a room and, through the repository, every booking that
// references it. A stale id is a tolerated no-op.
func (s *RoomService) Delete(ctx context.Context, principal Principal, roomID string) (outcome Outcome, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Delete",
		"principal_id", principal.UserID,
		"room_id", roomID,
	)

	if err = s.rooms.DeleteRoom(ctx, roomID); err != nil {
		if isNotFound(err) {
			outcome = OutcomeNotFound
			err = nil
			logger.InfoContext(ctx, "room unchanged, stale id")
			return
		}
		err = mapRoomRepoError(err)
		logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
		return
	}

	logger.InfoContext(ctx, "room deleted with dependent bookings")
	return
}

// List returns the room inventory in stored order for any authenticated user.
func (s *RoomService) List(ctx context.Context) (rooms []Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if s.rooms == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "List")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(rooms)).InfoContext(ctx, "rooms listed")
	}()

	rooms, err = s.rooms.ListRooms(ctx)
	return
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "el nombre es requerido")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "la capacidad debe ser positiva")
	}

	return vErr
}

func mapRoomRepoError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return fmt.Errorf("room id collision: %w", err)
	}
	return err
}

func cloneFeatures(features []string) []string {
	if len(features) == 0 {
		return nil
	}
	out := make([]string, len(features))
	copy(out, features)
	return out
}
