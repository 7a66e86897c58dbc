package sqlite

import (
	"context"
	"database/sql"
	"sort"

	"github.com/example/parish-booker/internal/persistence"
)

// NotificationRepository implements persistence.NotificationRepository over the
// document store. The log is shared; recipient views are filtered on read.
type NotificationRepository struct {
	store *Store
}

// NewNotificationRepository creates a notification repository bound to the store.
func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

// AppendNotification adds an entry to the shared log.
func (r *NotificationRepository) AppendNotification(ctx context.Context, notification persistence.AppNotification) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var notifications []persistence.AppNotification
		if _, err := r.store.loadTx(tx, colNotifications, &notifications); err != nil {
			return err
		}

		notifications = append(notifications, notification)
		return r.store.saveTx(tx, colNotifications, notifications)
	}, colNotifications)
}

// ListForRecipient returns entries addressed to the recipient, widened to the
// ADMIN sentinel when includeAdmin is set, newest first.
func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID string, includeAdmin bool) ([]persistence.AppNotification, error) {
	var notifications []persistence.AppNotification
	if _, err := r.store.Load(ctx, colNotifications, &notifications); err != nil {
		return nil, err
	}

	visible := make([]persistence.AppNotification, 0, len(notifications))
	for _, notification := range notifications {
		if visibleTo(notification, recipientID, includeAdmin) {
			visible = append(visible, notification)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

// MarkNotificationRead flips the read flag on the matching entry.
func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var notifications []persistence.AppNotification
		if _, err := r.store.loadTx(tx, colNotifications, &notifications); err != nil {
			return err
		}

		for i, notification := range notifications {
			if notification.ID != id {
				continue
			}
			notifications[i].Read = true
			return r.store.saveTx(tx, colNotifications, notifications)
		}
		return persistence.ErrNotFound
	}, colNotifications)
}

// DeleteForRecipient removes exactly the entries ListForRecipient would return
// for the same arguments; other recipients' entries are untouched.
func (r *NotificationRepository) DeleteForRecipient(ctx context.Context, recipientID string, includeAdmin bool) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var notifications []persistence.AppNotification
		if _, err := r.store.loadTx(tx, colNotifications, &notifications); err != nil {
			return err
		}

		kept := notifications[:0]
		for _, notification := range notifications {
			if visibleTo(notification, recipientID, includeAdmin) {
				continue
			}
			kept = append(kept, notification)
		}
		return r.store.saveTx(tx, colNotifications, kept)
	}, colNotifications)
}

func visibleTo(notification persistence.AppNotification, recipientID string, includeAdmin bool) bool {
	if notification.UserID == recipientID {
		return true
	}
	return includeAdmin && notification.UserID == persistence.AdminRecipient
}
