package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// NotificationRepository captures the persistence operations needed by the mailbox.
type NotificationRepository interface {
	AppendNotification(ctx context.Context, notification AppNotification) (AppNotification, error)
	ListForRecipient(ctx context.Context, recipientID string, includeAdmin bool) ([]AppNotification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	DeleteForRecipient(ctx context.Context, recipientID string, includeAdmin bool) error
}

// NotificationService is the mailbox over the shared notification log: an
// append-only feed per recipient, with the ADMIN sentinel visible to every
// administrator. Reads go through a short-lived cache so the poll loop stays
// cheap; every mutation invalidates it.
type NotificationService struct {
	notifications NotificationRepository
	cache         *mailboxCache
	idGenerator   func() string
	now           func() time.Time
	logger        *slog.Logger
}

// NewNotificationService constructs a mailbox service with the provided dependencies.
func NewNotificationService(notifications NotificationRepository, idGenerator func() string, now func() time.Time) *NotificationService {
	return NewNotificationServiceWithLogger(notifications, idGenerator, now, nil)
}

// NewNotificationServiceWithLogger constructs a mailbox service with a specified logger.
func NewNotificationServiceWithLogger(notifications NotificationRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *NotificationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &NotificationService{
		notifications: notifications,
		cache:         newMailboxCache(0, 0, now),
		idGenerator:   idGenerator,
		now:           now,
		logger:        defaultLogger(logger),
	}
}

func (s *NotificationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "NotificationService", operation, attrs...)
}

// Append assigns identity, unread state, and timestamp to the input and adds
// it to the log.
func (s *NotificationService) Append(ctx context.Context, input NotificationInput) (notification AppNotification, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Append",
		"recipient_id", input.UserID,
		"type", string(input.Type),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to append notification", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("notification_id", notification.ID).InfoContext(ctx, "notification appended")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.UserID) == "" {
		vErr.add("userId", "el destinatario es requerido")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "el título es requerido")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	notification = AppNotification{
		ID:        s.idGenerator(),
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Read:      false,
		CreatedAt: s.now(),
		Type:      input.Type,
	}

	if s.notifications == nil {
		return
	}

	var persisted AppNotification
	persisted, err = s.notifications.AppendNotification(ctx, notification)
	if err != nil {
		return
	}
	notification = persisted
	s.cache.Invalidate()
	return
}

// ListFor returns the recipient's feed, newest first. Administrators also see
// entries addressed to the ADMIN sentinel.
func (s *NotificationService) ListFor(ctx context.Context, recipientID string, role Role) (feed []AppNotification, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}
	if s.notifications == nil {
		return nil, nil
	}

	key := mailboxCacheKey(recipientID, role)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	feed, err = s.notifications.ListForRecipient(ctx, recipientID, role == RoleAdmin)
	if err != nil {
		s.loggerWith(ctx, "ListFor", "recipient_id", recipientID).
			ErrorContext(ctx, "failed to list notifications", "error", err, "error_kind", ErrorKind(err))
		return
	}

	s.cache.Store(key, feed)
	return
}

// UnreadCount reports how many of the recipient's visible entries are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string, role Role) (int, error) {
	feed, err := s.ListFor(ctx, recipientID, role)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, notification := range feed {
		if !notification.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flips the read flag on one entry. A stale id is a tolerated no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (outcome Outcome, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}
	if s.notifications == nil {
		err = fmt.Errorf("notification repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "MarkRead", "notification_id", id)

	if err = s.notifications.MarkNotificationRead(ctx, id); err != nil {
		if isNotFound(err) {
			outcome = OutcomeNotFound
			err = nil
			logger.InfoContext(ctx, "notification unchanged, stale id")
			return
		}
		logger.ErrorContext(ctx, "failed to mark notification read", "error", err, "error_kind", ErrorKind(err))
		return
	}

	s.cache.Invalidate()
	logger.InfoContext(ctx, "notification marked read")
	return
}

// ClearFor removes every entry ListFor would return for the recipient, leaving
// other recipients' entries untouched.
func (s *NotificationService) ClearFor(ctx context.Context, recipientID string, role Role) error {
	if s == nil {
		return fmt.Errorf("NotificationService is nil")
	}
	if s.notifications == nil {
		return fmt.Errorf("notification repository not configured")
	}

	logger := s.loggerWith(ctx, "ClearFor", "recipient_id", recipientID)

	if err := s.notifications.DeleteForRecipient(ctx, recipientID, role == RoleAdmin); err != nil {
		logger.ErrorContext(ctx, "failed to clear notifications", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	s.cache.Invalidate()
	logger.InfoContext(ctx, "notifications cleared")
	return nil
}
