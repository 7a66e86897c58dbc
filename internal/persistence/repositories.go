package persistence

import "context"

// UserRepository exposes CRUD operations for member accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// RoomRepository exposes CRUD operations for the room inventory.
//
// DeleteRoom removes the room and every booking referencing it in one atomic
// step; no booking may reference a missing room once it returns.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// BookingRepository stores booking requests.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking Booking) error
	UpdateBooking(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	// ListBookings returns every booking sorted by CreatedAt descending.
	ListBookings(ctx context.Context) ([]Booking, error)
}

// NotificationRepository stores the shared notification log. The includeAdmin
// flag widens recipient queries to entries addressed to the ADMIN sentinel.
type NotificationRepository interface {
	AppendNotification(ctx context.Context, notification AppNotification) error
	// ListForRecipient returns matching entries sorted by CreatedAt descending.
	ListForRecipient(ctx context.Context, recipientID string, includeAdmin bool) ([]AppNotification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	DeleteForRecipient(ctx context.Context, recipientID string, includeAdmin bool) error
}

// ConfigRepository stores the singleton application configuration.
type ConfigRepository interface {
	GetConfig(ctx context.Context) (AppConfig, error)
	SetConfig(ctx context.Context, config AppConfig) error
}

// SessionRepository stores the single current-session snapshot: the signed-in
// user with the credential secret omitted, or nothing when signed out.
type SessionRepository interface {
	SetCurrentUser(ctx context.Context, user User) error
	GetCurrentUser(ctx context.Context) (User, error)
	ClearCurrentUser(ctx context.Context) error
}
