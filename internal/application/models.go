package application

import "time"

// Role identifies the authorization level of an account.
type Role string

const (
	// RoleAdmin may manage rooms, bookings, and configuration.
	RoleAdmin Role = "ADMIN"
	// RoleUser is a regular member.
	RoleUser Role = "USER"
)

// BookingStatus tracks the lifecycle state of a booking request.
type BookingStatus string

const (
	// StatusPending is the fixed initial state of every booking.
	StatusPending BookingStatus = "PENDING"
	// StatusApproved marks a request granted by an administrator.
	StatusApproved BookingStatus = "APPROVED"
	// StatusRejected marks a request declined by an administrator.
	StatusRejected BookingStatus = "REJECTED"
)

// NotificationType distinguishes the two notification flavours.
type NotificationType string

const (
	// TypeBookingRequest is addressed to administrators when a booking is created.
	TypeBookingRequest NotificationType = "BOOKING_REQUEST"
	// TypeStatusChange is addressed to the requester when a booking changes status.
	TypeStatusChange NotificationType = "BOOKING_STATUS_CHANGE"
)

// AdminRecipient is the sentinel notification target meaning "every administrator".
const AdminRecipient = "ADMIN"

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// Outcome distinguishes applied mutations from tolerated stale-id no-ops.
// The public contract treats NotFound as success; the distinction exists so
// callers and tests can still observe it.
type Outcome int

const (
	// OutcomeApplied means the mutation hit an existing record.
	OutcomeApplied Outcome = iota
	// OutcomeNotFound means the target id was stale and nothing changed.
	OutcomeNotFound
)

// User represents a member account with the credential secret stripped.
type User struct {
	ID       string
	Username string
	Role     Role
	Name     string
}

// Room represents a bookable room in the inventory.
type Room struct {
	ID       string
	Name     string
	Capacity int
	Features []string
	ImageURL string
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name     string
	Capacity int
	Features []string
	ImageURL string
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// UpdateRoomParams wraps the data required to update a room.
type UpdateRoomParams struct {
	Principal Principal
	RoomID    string
	Input     RoomInput
}

// Booking represents a request to use a room for a dated, timed interval.
// RoomName and UserName are point-in-time display copies taken at creation;
// they intentionally do not track later renames.
type Booking struct {
	ID            string
	RoomID        string
	RoomName      string
	UserID        string
	UserName      string
	Date          string
	Time          string
	DurationHours int
	Purpose       string
	Status        BookingStatus
	CreatedAt     time.Time
}

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	RoomID        string
	RoomName      string
	UserID        string
	UserName      string
	Date          string
	Time          string
	DurationHours int
	Purpose       string
}

// CreateBookingParams wraps the data required to create a booking.
type CreateBookingParams struct {
	Principal Principal
	Input     BookingInput
}

// SetBookingStatusParams wraps the data required to transition a booking.
type SetBookingStatusParams struct {
	Principal Principal
	BookingID string
	Status    BookingStatus
}

// UpdateBookingParams wraps a full administrative booking overwrite.
type UpdateBookingParams struct {
	Principal Principal
	Booking   Booking
}

// AppNotification is one entry of a recipient's notification feed.
type AppNotification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
	Type      NotificationType
}

// NotificationInput captures the caller provided fields of a new notification.
// ID, read state, and timestamp are assigned by the mailbox.
type NotificationInput struct {
	UserID  string
	Title   string
	Message string
	Type    NotificationType
}

// AppConfig is the application branding configuration.
type AppConfig struct {
	AppName string
	AppLogo string
}

// UpdateConfigParams wraps a wholesale configuration overwrite.
type UpdateConfigParams struct {
	Principal Principal
	Config    AppConfig
}

// LoginParams captures a sign-in attempt.
type LoginParams struct {
	Username string
	Password string
}

// RegisterParams captures a self-service registration.
type RegisterParams struct {
	Name     string
	Username string
	Password string
}

// ChangePasswordParams captures a credential change for an account.
type ChangePasswordParams struct {
	UserID   string
	Password string
	Confirm  string
}
