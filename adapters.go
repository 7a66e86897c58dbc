package booker

import (
	"context"

	"github.com/example/parish-booker/internal/application"
	"github.com/example/parish-booker/internal/persistence"
)

// The adapters below translate between the application layer's models and the
// persistence models, keeping the two layers decoupled.

type bookingRepositoryAdapter struct {
	repo persistence.BookingRepository
}

func newBookingRepositoryAdapter(repo persistence.BookingRepository) *bookingRepositoryAdapter {
	return &bookingRepositoryAdapter{repo: repo}
}

func (a *bookingRepositoryAdapter) CreateBooking(ctx context.Context, booking application.Booking) (application.Booking, error) {
	if err := a.repo.CreateBooking(ctx, toPersistenceBooking(booking)); err != nil {
		return application.Booking{}, err
	}
	stored, err := a.repo.GetBooking(ctx, booking.ID)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) UpdateBooking(ctx context.Context, booking application.Booking) (application.Booking, error) {
	if err := a.repo.UpdateBooking(ctx, toPersistenceBooking(booking)); err != nil {
		return application.Booking{}, err
	}
	stored, err := a.repo.GetBooking(ctx, booking.ID)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) GetBooking(ctx context.Context, id string) (application.Booking, error) {
	stored, err := a.repo.GetBooking(ctx, id)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) ListBookings(ctx context.Context) ([]application.Booking, error) {
	models, err := a.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	bookings := make([]application.Booking, 0, len(models))
	for _, model := range models {
		bookings = append(bookings, toApplicationBooking(model))
	}
	return bookings, nil
}

type roomRepositoryAdapter struct {
	repo persistence.RoomRepository
}

func newRoomRepositoryAdapter(repo persistence.RoomRepository) *roomRepositoryAdapter {
	return &roomRepositoryAdapter{repo: repo}
}

func (a *roomRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.CreateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) GetRoom(ctx context.Context, id string) (application.Room, error) {
	stored, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) UpdateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.UpdateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) DeleteRoom(ctx context.Context, id string) error {
	return a.repo.DeleteRoom(ctx, id)
}

func (a *roomRepositoryAdapter) ListRooms(ctx context.Context) ([]application.Room, error) {
	models, err := a.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	rooms := make([]application.Room, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toApplicationRoom(model))
	}
	return rooms, nil
}

type notificationLogAdapter struct {
	repo persistence.NotificationRepository
}

func newNotificationLogAdapter(repo persistence.NotificationRepository) *notificationLogAdapter {
	return &notificationLogAdapter{repo: repo}
}

func (a *notificationLogAdapter) AppendNotification(ctx context.Context, notification application.AppNotification) (application.AppNotification, error) {
	if err := a.repo.AppendNotification(ctx, toPersistenceNotification(notification)); err != nil {
		return application.AppNotification{}, err
	}
	return notification, nil
}

func (a *notificationLogAdapter) ListForRecipient(ctx context.Context, recipientID string, includeAdmin bool) ([]application.AppNotification, error) {
	models, err := a.repo.ListForRecipient(ctx, recipientID, includeAdmin)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	notifications := make([]application.AppNotification, 0, len(models))
	for _, model := range models {
		notifications = append(notifications, toApplicationNotification(model))
	}
	return notifications, nil
}

func (a *notificationLogAdapter) MarkNotificationRead(ctx context.Context, id string) error {
	return a.repo.MarkNotificationRead(ctx, id)
}

func (a *notificationLogAdapter) DeleteForRecipient(ctx context.Context, recipientID string, includeAdmin bool) error {
	return a.repo.DeleteForRecipient(ctx, recipientID, includeAdmin)
}

type credentialStoreAdapter struct {
	repo persistence.UserRepository
}

func newCredentialStoreAdapter(repo persistence.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) CreateUser(ctx context.Context, user application.User, secret string) (application.User, error) {
	if err := a.repo.CreateUser(ctx, toPersistenceUser(user, secret)); err != nil {
		return application.User{}, err
	}
	stored, err := a.repo.GetUser(ctx, user.ID)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *credentialStoreAdapter) GetUserByUsername(ctx context.Context, username string) (application.User, string, error) {
	stored, err := a.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return application.User{}, "", err
	}
	return toApplicationUser(stored), stored.Password, nil
}

func (a *credentialStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *credentialStoreAdapter) SetPassword(ctx context.Context, userID, secret string) error {
	stored, err := a.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	stored.Password = secret
	return a.repo.UpdateUser(ctx, stored)
}

type sessionStoreAdapter struct {
	repo persistence.SessionRepository
}

func newSessionStoreAdapter(repo persistence.SessionRepository) *sessionStoreAdapter {
	return &sessionStoreAdapter{repo: repo}
}

func (a *sessionStoreAdapter) SetCurrentUser(ctx context.Context, user application.User) error {
	return a.repo.SetCurrentUser(ctx, toPersistenceUser(user, ""))
}

func (a *sessionStoreAdapter) GetCurrentUser(ctx context.Context) (application.User, error) {
	stored, err := a.repo.GetCurrentUser(ctx)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *sessionStoreAdapter) ClearCurrentUser(ctx context.Context) error {
	return a.repo.ClearCurrentUser(ctx)
}

type configRepositoryAdapter struct {
	repo persistence.ConfigRepository
}

func newConfigRepositoryAdapter(repo persistence.ConfigRepository) *configRepositoryAdapter {
	return &configRepositoryAdapter{repo: repo}
}

func (a *configRepositoryAdapter) GetConfig(ctx context.Context) (application.AppConfig, error) {
	stored, err := a.repo.GetConfig(ctx)
	if err != nil {
		return application.AppConfig{}, err
	}
	return application.AppConfig{AppName: stored.AppName, AppLogo: stored.AppLogo}, nil
}

func (a *configRepositoryAdapter) SetConfig(ctx context.Context, cfg application.AppConfig) error {
	return a.repo.SetConfig(ctx, persistence.AppConfig{AppName: cfg.AppName, AppLogo: cfg.AppLogo})
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:       model.ID,
		Username: model.Username,
		Role:     application.Role(model.Role),
		Name:     model.Name,
	}
}

func toPersistenceUser(user application.User, secret string) persistence.User {
	return persistence.User{
		ID:       user.ID,
		Username: user.Username,
		Password: secret,
		Role:     persistence.Role(user.Role),
		Name:     user.Name,
	}
}

func toApplicationRoom(model persistence.Room) application.Room {
	return application.Room{
		ID:       model.ID,
		Name:     model.Name,
		Capacity: model.Capacity,
		Features: cloneStrings(model.Features),
		ImageURL: model.ImageURL,
	}
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:       room.ID,
		Name:     room.Name,
		Capacity: room.Capacity,
		Features: cloneStrings(room.Features),
		ImageURL: room.ImageURL,
	}
}

func toApplicationBooking(model persistence.Booking) application.Booking {
	return application.Booking{
		ID:            model.ID,
		RoomID:        model.RoomID,
		RoomName:      model.RoomName,
		UserID:        model.UserID,
		UserName:      model.UserName,
		Date:          model.Date,
		Time:          model.Time,
		DurationHours: model.DurationHours,
		Purpose:       model.Purpose,
		Status:        application.BookingStatus(model.Status),
		CreatedAt:     model.CreatedAt,
	}
}

func toPersistenceBooking(booking application.Booking) persistence.Booking {
	return persistence.Booking{
		ID:            booking.ID,
		RoomID:        booking.RoomID,
		RoomName:      booking.RoomName,
		UserID:        booking.UserID,
		UserName:      booking.UserName,
		Date:          booking.Date,
		Time:          booking.Time,
		DurationHours: booking.DurationHours,
		Purpose:       booking.Purpose,
		Status:        persistence.BookingStatus(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
}

func toApplicationNotification(model persistence.AppNotification) application.AppNotification {
	return application.AppNotification{
		ID:        model.ID,
		UserID:    model.UserID,
		Title:     model.Title,
		Message:   model.Message,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
		Type:      application.NotificationType(model.Type),
	}
}

func toPersistenceNotification(notification application.AppNotification) persistence.AppNotification {
	return persistence.AppNotification{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Title:     notification.Title,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
		Type:      persistence.NotificationType(notification.Type),
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
