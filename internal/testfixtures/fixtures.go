package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/parish-booker/internal/application"
	"github.com/example/parish-booker/internal/availability"
	"github.com/example/parish-booker/internal/persistence"
)

var (
	userCounter         uint64
	roomCounter         uint64
	bookingCounter      uint64
	notificationCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserFixture represents a deterministic user record that can be materialised
// for application or persistence tests.
type UserFixture struct {
	ID       string
	Username string
	Password string
	Role     application.Role
	Name     string
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic user fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	fixture := UserFixture{
		ID:       fmt.Sprintf("user-%03d", idx),
		Username: fmt.Sprintf("member%03d", idx),
		Password: fmt.Sprintf("secret-%03d", idx),
		Role:     application.RoleUser,
		Name:     fmt.Sprintf("Member %03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUsername overrides the generated username.
func WithUsername(username string) UserOption {
	return func(f *UserFixture) {
		f.Username = username
	}
}

// WithUserPassword overrides the generated credential secret.
func WithUserPassword(password string) UserOption {
	return func(f *UserFixture) {
		f.Password = password
	}
}

// WithUserRole sets the role on the generated fixture.
func WithUserRole(role application.Role) UserOption {
	return func(f *UserFixture) {
		f.Role = role
	}
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(f *UserFixture) {
		f.Name = name
	}
}

// Application returns the fixture as an application.User value with the
// credential secret stripped.
func (f UserFixture) Application() application.User {
	return application.User{
		ID:       f.ID,
		Username: f.Username,
		Role:     f.Role,
		Name:     f.Name,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f UserFixture) Principal() application.Principal {
	return application.Principal{UserID: f.ID, IsAdmin: f.Role == application.RoleAdmin}
}

// Persistence returns the fixture as a persistence.User value including the
// credential secret.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:       f.ID,
		Username: f.Username,
		Password: f.Password,
		Role:     persistence.Role(f.Role),
		Name:     f.Name,
	}
}

// ----------------------------- Room fixtures -----------------------------

// RoomFixture represents a deterministic room record.
type RoomFixture struct {
	ID       string
	Name     string
	Capacity int
	Features []string
	ImageURL string
}

// RoomOption configures the generated room fixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a deterministic room fixture with optional overrides.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	fixture := RoomFixture{
		ID:       fmt.Sprintf("room-%03d", idx),
		Name:     fmt.Sprintf("Salón %03d", idx),
		Capacity: 20,
		Features: []string{"Proyector", "Sillas"},
		ImageURL: fmt.Sprintf("https://picsum.photos/400/300?random=%d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id string) RoomOption {
	return func(f *RoomFixture) {
		f.ID = id
	}
}

// WithRoomName overrides the generated room name.
func WithRoomName(name string) RoomOption {
	return func(f *RoomFixture) {
		f.Name = name
	}
}

// WithRoomCapacity overrides the generated capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(f *RoomFixture) {
		f.Capacity = capacity
	}
}

// WithRoomFeatures overrides the generated feature list.
func WithRoomFeatures(features ...string) RoomOption {
	return func(f *RoomFixture) {
		f.Features = features
	}
}

// Application returns the fixture as an application.Room value.
func (f RoomFixture) Application() application.Room {
	return application.Room{
		ID:       f.ID,
		Name:     f.Name,
		Capacity: f.Capacity,
		Features: append([]string(nil), f.Features...),
		ImageURL: f.ImageURL,
	}
}

// Input returns the fixture as an application.RoomInput value.
func (f RoomFixture) Input() application.RoomInput {
	return application.RoomInput{
		Name:     f.Name,
		Capacity: f.Capacity,
		Features: append([]string(nil), f.Features...),
		ImageURL: f.ImageURL,
	}
}

// Persistence returns the fixture as a persistence.Room value.
func (f RoomFixture) Persistence() persistence.Room {
	return persistence.Room{
		ID:       f.ID,
		Name:     f.Name,
		Capacity: f.Capacity,
		Features: append([]string(nil), f.Features...),
		ImageURL: f.ImageURL,
	}
}

// ---------------------------- Booking fixtures ----------------------------

// BookingFixture represents a deterministic booking record.
type BookingFixture struct {
	ID            string
	RoomID        string
	RoomName      string
	UserID        string
	UserName      string
	Date          string
	Time          string
	DurationHours int
	Purpose       string
	Status        application.BookingStatus
	CreatedAt     time.Time
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*BookingFixture)

// NewBookingFixture returns a deterministic booking fixture with optional
// overrides. Successive fixtures receive successive creation timestamps so
// newest-first ordering is observable without further setup.
func NewBookingFixture(opts ...BookingOption) BookingFixture {
	idx := atomic.AddUint64(&bookingCounter, 1)
	fixture := BookingFixture{
		ID:            fmt.Sprintf("booking-%03d", idx),
		RoomID:        "room-1",
		RoomName:      "Salón Parroquial Principal",
		UserID:        "u2",
		UserName:      "Juan Pérez",
		Date:          "2024-03-15",
		Time:          "10:00",
		DurationHours: 1,
		Purpose:       fmt.Sprintf("Reunión %03d", idx),
		Status:        application.StatusPending,
		CreatedAt:     referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBookingID overrides the generated booking ID.
func WithBookingID(id string) BookingOption {
	return func(f *BookingFixture) {
		f.ID = id
	}
}

// WithBookingRoom sets the room reference and display copy together.
func WithBookingRoom(roomID, roomName string) BookingOption {
	return func(f *BookingFixture) {
		f.RoomID = roomID
		f.RoomName = roomName
	}
}

// WithBookingUser sets the requester reference and display copy together.
func WithBookingUser(userID, userName string) BookingOption {
	return func(f *BookingFixture) {
		f.UserID = userID
		f.UserName = userName
	}
}

// WithBookingSlot sets the date, start time, and duration of the fixture.
func WithBookingSlot(date, start string, durationHours int) BookingOption {
	return func(f *BookingFixture) {
		f.Date = date
		f.Time = start
		f.DurationHours = durationHours
	}
}

// WithBookingStatus sets the lifecycle status of the fixture.
func WithBookingStatus(status application.BookingStatus) BookingOption {
	return func(f *BookingFixture) {
		f.Status = status
	}
}

// WithBookingPurpose overrides the generated purpose text.
func WithBookingPurpose(purpose string) BookingOption {
	return func(f *BookingFixture) {
		f.Purpose = purpose
	}
}

// WithBookingCreatedAt sets the creation timestamp on the fixture.
func WithBookingCreatedAt(t time.Time) BookingOption {
	return func(f *BookingFixture) {
		f.CreatedAt = t
	}
}

// Application returns the fixture as an application.Booking value.
func (f BookingFixture) Application() application.Booking {
	return application.Booking{
		ID:            f.ID,
		RoomID:        f.RoomID,
		RoomName:      f.RoomName,
		UserID:        f.UserID,
		UserName:      f.UserName,
		Date:          f.Date,
		Time:          f.Time,
		DurationHours: f.DurationHours,
		Purpose:       f.Purpose,
		Status:        f.Status,
		CreatedAt:     f.CreatedAt,
	}
}

// Input returns the fixture as an application.BookingInput value.
func (f BookingFixture) Input() application.BookingInput {
	return application.BookingInput{
		RoomID:        f.RoomID,
		RoomName:      f.RoomName,
		UserID:        f.UserID,
		UserName:      f.UserName,
		Date:          f.Date,
		Time:          f.Time,
		DurationHours: f.DurationHours,
		Purpose:       f.Purpose,
	}
}

// Persistence returns the fixture as a persistence.Booking value.
func (f BookingFixture) Persistence() persistence.Booking {
	return persistence.Booking{
		ID:            f.ID,
		RoomID:        f.RoomID,
		RoomName:      f.RoomName,
		UserID:        f.UserID,
		UserName:      f.UserName,
		Date:          f.Date,
		Time:          f.Time,
		DurationHours: f.DurationHours,
		Purpose:       f.Purpose,
		Status:        persistence.BookingStatus(f.Status),
		CreatedAt:     f.CreatedAt,
	}
}

// Availability returns the fixture projected onto the occupancy input shape.
func (f BookingFixture) Availability() availability.Booking {
	return availability.Booking{
		RoomID:        f.RoomID,
		Date:          f.Date,
		Time:          f.Time,
		DurationHours: f.DurationHours,
		Status:        string(f.Status),
	}
}

// ------------------------- Notification fixtures --------------------------

// NotificationFixture represents a deterministic notification record.
type NotificationFixture struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
	Type      application.NotificationType
}

// NotificationOption configures the generated notification fixture.
type NotificationOption func(*NotificationFixture)

// NewNotificationFixture returns a deterministic notification fixture with
// optional overrides.
func NewNotificationFixture(opts ...NotificationOption) NotificationFixture {
	idx := atomic.AddUint64(&notificationCounter, 1)
	fixture := NotificationFixture{
		ID:        fmt.Sprintf("notification-%03d", idx),
		UserID:    "u2",
		Title:     "Reserva APROBADA",
		Message:   fmt.Sprintf("Mensaje %03d", idx),
		Read:      false,
		CreatedAt: referenceTime.Add(time.Duration(idx) * time.Second),
		Type:      application.TypeStatusChange,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithNotificationID overrides the generated notification ID.
func WithNotificationID(id string) NotificationOption {
	return func(f *NotificationFixture) {
		f.ID = id
	}
}

// WithNotificationRecipient sets the recipient, either a concrete user id or
// the administrator sentinel.
func WithNotificationRecipient(userID string) NotificationOption {
	return func(f *NotificationFixture) {
		f.UserID = userID
	}
}

// WithNotificationTitle overrides the generated title.
func WithNotificationTitle(title string) NotificationOption {
	return func(f *NotificationFixture) {
		f.Title = title
	}
}

// WithNotificationRead sets the read flag on the fixture.
func WithNotificationRead(read bool) NotificationOption {
	return func(f *NotificationFixture) {
		f.Read = read
	}
}

// WithNotificationType sets the notification flavour.
func WithNotificationType(t application.NotificationType) NotificationOption {
	return func(f *NotificationFixture) {
		f.Type = t
	}
}

// WithNotificationCreatedAt sets the creation timestamp on the fixture.
func WithNotificationCreatedAt(t time.Time) NotificationOption {
	return func(f *NotificationFixture) {
		f.CreatedAt = t
	}
}

// Application returns the fixture as an application.AppNotification value.
func (f NotificationFixture) Application() application.AppNotification {
	return application.AppNotification{
		ID:        f.ID,
		UserID:    f.UserID,
		Title:     f.Title,
		Message:   f.Message,
		Read:      f.Read,
		CreatedAt: f.CreatedAt,
		Type:      f.Type,
	}
}

// Persistence returns the fixture as a persistence.AppNotification value.
func (f NotificationFixture) Persistence() persistence.AppNotification {
	return persistence.AppNotification{
		ID:        f.ID,
		UserID:    f.UserID,
		Title:     f.Title,
		Message:   f.Message,
		Read:      f.Read,
		CreatedAt: f.CreatedAt,
		Type:      persistence.NotificationType(f.Type),
	}
}
