package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/parish-booker/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

func (f *ServiceFactory) idGen(override func() string) func() string {
	if override != nil {
		return override
	}
	return f.IDGenerator.NextFunc()
}

func (f *ServiceFactory) nowFunc(override func() time.Time) func() time.Time {
	if override != nil {
		return override
	}
	return f.Clock.NowFunc()
}

// BookingServiceDeps captures dependencies for constructing a booking service.
type BookingServiceDeps struct {
	Bookings    application.BookingRepository
	Notifier    application.Notifier
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewBookingService builds a booking service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewBookingService(deps BookingServiceDeps) *application.BookingService {
	return application.NewBookingServiceWithLogger(
		deps.Bookings,
		deps.Notifier,
		f.idGen(deps.IDGenerator),
		f.nowFunc(deps.Now),
		deps.Logger,
	)
}

// NotificationServiceDeps captures dependencies for constructing a
// notification service.
type NotificationServiceDeps struct {
	Notifications application.NotificationRepository
	IDGenerator   func() string
	Now           func() time.Time
	Logger        *slog.Logger
}

// NewNotificationService builds a notification service using the supplied
// dependencies.
func (f *ServiceFactory) NewNotificationService(deps NotificationServiceDeps) *application.NotificationService {
	return application.NewNotificationServiceWithLogger(
		deps.Notifications,
		f.idGen(deps.IDGenerator),
		f.nowFunc(deps.Now),
		deps.Logger,
	)
}

// RoomServiceDeps captures dependencies for constructing a room service.
type RoomServiceDeps struct {
	Rooms       application.RoomRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewRoomService builds a room service using the supplied dependencies.
func (f *ServiceFactory) NewRoomService(deps RoomServiceDeps) *application.RoomService {
	return application.NewRoomServiceWithLogger(
		deps.Rooms,
		f.idGen(deps.IDGenerator),
		f.nowFunc(deps.Now),
		deps.Logger,
	)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Users       application.CredentialStore
	Sessions    application.SessionStore
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	return application.NewAuthServiceWithLogger(
		deps.Users,
		deps.Sessions,
		f.idGen(deps.IDGenerator),
		f.nowFunc(deps.Now),
		deps.Logger,
	)
}

// ConfigServiceDeps captures dependencies for constructing a config service.
type ConfigServiceDeps struct {
	Config application.ConfigRepository
	Logger *slog.Logger
}

// NewConfigService builds a config service using the supplied dependencies.
func (f *ServiceFactory) NewConfigService(deps ConfigServiceDeps) *application.ConfigService {
	return application.NewConfigServiceWithLogger(deps.Config, deps.Logger)
}
