// Package booker is the embeddable room booking module: booking lifecycle,
// advisory availability, per-recipient notifications, room inventory, and
// local credential auth over a persistent SQLite-backed store.
package booker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/parish-booker/internal/application"
	"github.com/example/parish-booker/internal/config"
	"github.com/example/parish-booker/internal/persistence/sqlite"
)

// Options configures an App. The zero value selects the defaults: a local
// database file, a ten second poll cadence, the stock seed, and slog.Default.
type Options = config.Options

// App bundles the wired services over one open store. Hosts construct it with
// Open, use the service accessors, and Close it on shutdown.
type App struct {
	pool  *sqlite.ConnectionPool
	store *sqlite.Store

	pollInterval time.Duration

	bookings      *application.BookingService
	rooms         *application.RoomService
	notifications *application.NotificationService
	auth          *application.AuthService
	config        *application.ConfigService
}

// Open opens the store, applies migrations, seeds first-run state, and wires
// the services. The returned App owns the database handle until Close.
func Open(ctx context.Context, opts Options) (*App, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	pool, err := sqlite.NewConnectionPool(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	store := sqlite.NewStore(pool, time.Now)
	if err := store.Migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	if err := store.Seed(ctx, *opts.Seed); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("seed store: %w", err)
	}

	idGenerator := uuid.NewString
	now := time.Now
	logger := opts.Logger

	notificationService := application.NewNotificationServiceWithLogger(
		newNotificationLogAdapter(sqlite.NewNotificationRepository(store)), idGenerator, now, logger,
	)
	bookingService := application.NewBookingServiceWithLogger(
		newBookingRepositoryAdapter(sqlite.NewBookingRepository(store)), notificationService, idGenerator, now, logger,
	)
	roomService := application.NewRoomServiceWithLogger(
		newRoomRepositoryAdapter(sqlite.NewRoomRepository(store)), idGenerator, now, logger,
	)
	authService := application.NewAuthServiceWithLogger(
		newCredentialStoreAdapter(sqlite.NewUserRepository(store)), newSessionStoreAdapter(sqlite.NewSessionRepository(store)), idGenerator, now, logger,
	)
	configService := application.NewConfigServiceWithLogger(
		newConfigRepositoryAdapter(sqlite.NewConfigRepository(store)), logger,
	)

	return &App{
		pool:          pool,
		store:         store,
		pollInterval:  opts.PollInterval,
		bookings:      bookingService,
		rooms:         roomService,
		notifications: notificationService,
		auth:          authService,
		config:        configService,
	}, nil
}

// Close releases the database handle. The App must not be used afterwards.
func (a *App) Close() error {
	if a == nil || a.pool == nil {
		return nil
	}
	return a.pool.Close()
}

// Bookings returns the booking lifecycle service.
func (a *App) Bookings() *application.BookingService {
	return a.bookings
}

// Rooms returns the room inventory service.
func (a *App) Rooms() *application.RoomService {
	return a.rooms
}

// Notifications returns the notification mailbox service.
func (a *App) Notifications() *application.NotificationService {
	return a.notifications
}

// Auth returns the authentication and session service.
func (a *App) Auth() *application.AuthService {
	return a.auth
}

// Config returns the application configuration service.
func (a *App) Config() *application.ConfigService {
	return a.config
}

// NewPoller builds a poller over the notification mailbox for one recipient,
// using the interval the App was opened with.
func (a *App) NewPoller(recipientID string, role application.Role, handler func([]application.AppNotification)) *application.Poller {
	return application.NewPoller(a.notifications, recipientID, role, a.pollInterval, handler, nil)
}
