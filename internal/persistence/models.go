package persistence

import "time"

// Role identifies the authorization level stored with a user account.
type Role string

const (
	// RoleAdmin marks an account that may manage rooms, bookings, and configuration.
	RoleAdmin Role = "ADMIN"
	// RoleUser marks a regular member account.
	RoleUser Role = "USER"
)

// BookingStatus tracks the lifecycle state of a booking request.
type BookingStatus string

const (
	// BookingPending is the fixed initial state of every booking.
	BookingPending BookingStatus = "PENDING"
	// BookingApproved marks a request granted by an administrator.
	BookingApproved BookingStatus = "APPROVED"
	// BookingRejected marks a request declined by an administrator.
	BookingRejected BookingStatus = "REJECTED"
)

// NotificationType distinguishes the two notification flavours the system emits.
type NotificationType string

const (
	// NotificationBookingRequest is sent to administrators when a booking is created.
	NotificationBookingRequest NotificationType = "BOOKING_REQUEST"
	// NotificationStatusChange is sent to the requester when a booking changes status.
	NotificationStatusChange NotificationType = "BOOKING_STATUS_CHANGE"
)

// AdminRecipient is the sentinel notification target meaning "every administrator".
const AdminRecipient = "ADMIN"

// User represents a member account. Password is the stored credential secret;
// it never leaves the persistence boundary except through credential checks.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

// Room represents a bookable room in the inventory.
type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	ImageURL string   `json:"imageUrl"`
}

// Booking represents a request to use a room for a dated, timed interval.
// RoomName and UserName are point-in-time display copies, not live references;
// they deliberately tolerate drift when the room or user is later renamed.
type Booking struct {
	ID            string        `json:"id"`
	RoomID        string        `json:"roomId"`
	RoomName      string        `json:"roomName"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	DurationHours int           `json:"durationHours"`
	Purpose       string        `json:"purpose"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// AppNotification is one entry in the shared notification log. UserID is a
// concrete user id or the AdminRecipient sentinel.
type AppNotification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	Type      NotificationType `json:"type"`
}

// AppConfig is the singleton application configuration record.
type AppConfig struct {
	AppName string `json:"appName"`
	AppLogo string `json:"appLogo"`
}

// SeedData describes the state written to an empty store on first run.
type SeedData struct {
	Rooms  []Room
	Users  []User
	Config AppConfig
}

// DefaultSeed returns the stock first-run state: one room, an administrator,
// a regular member, and the default application configuration.
func DefaultSeed() SeedData {
	return SeedData{
		Rooms: []Room{
			{
				ID:       "room-1",
				Name:     "Salón Parroquial Principal",
				Capacity: 50,
				Features: []string{"Proyector", "Aire Acondicionado", "Pizarrón", "Sillas"},
				ImageURL: "https://picsum.photos/400/300?random=1",
			},
		},
		Users: []User{
			{ID: "u1", Username: "admin", Password: "password", Role: RoleAdmin, Name: "Administrador Principal"},
			{ID: "u2", Username: "user", Password: "password", Role: RoleUser, Name: "Juan Pérez"},
		},
		Config: AppConfig{AppName: "Parish Booker", AppLogo: "fa-church"},
	}
}
