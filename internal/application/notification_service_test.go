package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type notificationRepoStub struct {
	appendErr error
	appended  []AppNotification

	feed      []AppNotification
	listErr   error
	listCalls int

	markErr  error
	markedID string

	deleteErr      error
	deletedID      string
	deletedAsAdmin bool
}

func (r *notificationRepoStub) AppendNotification(ctx context.Context, notification AppNotification) (AppNotification, error) {
	if r.appendErr != nil {
		return AppNotification{}, r.appendErr
	}
	r.appended = append(r.appended, notification)
	return notification, nil
}

func (r *notificationRepoStub) ListForRecipient(ctx context.Context, recipientID string, includeAdmin bool) ([]AppNotification, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]AppNotification, 0, len(r.feed))
	for _, notification := range r.feed {
		if notification.UserID == recipientID || (includeAdmin && notification.UserID == AdminRecipient) {
			out = append(out, notification)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (r *notificationRepoStub) MarkNotificationRead(ctx context.Context, id string) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.markedID = id
	return nil
}

func (r *notificationRepoStub) DeleteForRecipient(ctx context.Context, recipientID string, includeAdmin bool) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = recipientID
	r.deletedAsAdmin = includeAdmin
	return nil
}

func TestNotificationService_Append(t *testing.T) {
	createdAt := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

	t.Run("validates required attributes", func(t *testing.T) {
		svc := NewNotificationService(&notificationRepoStub{}, nil, nil)

		_, err := svc.Append(context.Background(), NotificationInput{
			UserID: "  ",
			Title:  "",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["userId"]; !ok {
			t.Fatalf("expected userId validation error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["title"]; !ok {
			t.Fatalf("expected title validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("assigns identity and unread state", func(t *testing.T) {
		repo := &notificationRepoStub{}
		svc := NewNotificationService(repo, func() string { return "notification-1" }, fixedClock(createdAt))

		notification, err := svc.Append(context.Background(), NotificationInput{
			UserID:  "u2",
			Title:   "Reserva APROBADA",
			Message: "mensaje",
			Type:    TypeStatusChange,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if notification.ID != "notification-1" {
			t.Fatalf("expected generated id, got %q", notification.ID)
		}
		if notification.Read {
			t.Fatal("expected new notification to be unread")
		}
		if !notification.CreatedAt.Equal(createdAt) {
			t.Fatalf("expected created at %v, got %v", createdAt, notification.CreatedAt)
		}
		if len(repo.appended) != 1 {
			t.Fatalf("expected notification persisted, got %d", len(repo.appended))
		}
	})
}

func TestNotificationService_ListFor(t *testing.T) {
	adminEntry := AppNotification{ID: "n1", UserID: AdminRecipient, Title: "Nueva Solicitud"}
	userEntry := AppNotification{ID: "n2", UserID: "u2", Title: "Reserva APROBADA"}
	otherEntry := AppNotification{ID: "n3", UserID: "u3", Title: "Reserva RECHAZADA"}

	t.Run("regular members see only their own entries", func(t *testing.T) {
		repo := &notificationRepoStub{feed: []AppNotification{adminEntry, userEntry, otherEntry}}
		svc := NewNotificationService(repo, nil, nil)

		feed, err := svc.ListFor(context.Background(), "u2", RoleUser)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(feed) != 1 || feed[0].ID != "n2" {
			t.Fatalf("unexpected feed %+v", feed)
		}
	})

	t.Run("administrators also see the sentinel entries", func(t *testing.T) {
		repo := &notificationRepoStub{feed: []AppNotification{adminEntry, userEntry, otherEntry}}
		svc := NewNotificationService(repo, nil, nil)

		feed, err := svc.ListFor(context.Background(), "u1", RoleAdmin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(feed) != 1 || feed[0].ID != "n1" {
			t.Fatalf("unexpected feed %+v", feed)
		}
	})

	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		repo := &notificationRepoStub{feed: []AppNotification{userEntry}}
		svc := NewNotificationService(repo, nil, nil)

		if _, err := svc.ListFor(context.Background(), "u2", RoleUser); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ListFor(context.Background(), "u2", RoleUser); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listCalls != 1 {
			t.Fatalf("expected one repository read, got %d", repo.listCalls)
		}
	})

	t.Run("append invalidates the cache", func(t *testing.T) {
		repo := &notificationRepoStub{feed: []AppNotification{userEntry}}
		svc := NewNotificationService(repo, func() string { return "notification-9" }, nil)

		if _, err := svc.ListFor(context.Background(), "u2", RoleUser); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Append(context.Background(), NotificationInput{UserID: "u2", Title: "t"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ListFor(context.Background(), "u2", RoleUser); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listCalls != 2 {
			t.Fatalf("expected cache invalidation to force a second read, got %d", repo.listCalls)
		}
	})
}

func TestNotificationService_UnreadCount(t *testing.T) {
	repo := &notificationRepoStub{feed: []AppNotification{
		{ID: "n1", UserID: "u2", Read: false},
		{ID: "n2", UserID: "u2", Read: true},
		{ID: "n3", UserID: "u2", Read: false},
	}}
	svc := NewNotificationService(repo, nil, nil)

	count, err := svc.UnreadCount(context.Background(), "u2", RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	t.Run("marks an existing entry", func(t *testing.T) {
		repo := &notificationRepoStub{}
		svc := NewNotificationService(repo, nil, nil)

		outcome, err := svc.MarkRead(context.Background(), "n1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeApplied {
			t.Fatalf("expected OutcomeApplied, got %v", outcome)
		}
		if repo.markedID != "n1" {
			t.Fatalf("expected n1 marked, got %q", repo.markedID)
		}
	})

	t.Run("tolerates a stale id", func(t *testing.T) {
		repo := &notificationRepoStub{markErr: ErrNotFound}
		svc := NewNotificationService(repo, nil, nil)

		outcome, err := svc.MarkRead(context.Background(), "missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeNotFound {
			t.Fatalf("expected OutcomeNotFound, got %v", outcome)
		}
	})
}

func TestNotificationService_ClearFor(t *testing.T) {
	repo := &notificationRepoStub{}
	svc := NewNotificationService(repo, nil, nil)

	if err := svc.ClearFor(context.Background(), "u1", RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedID != "u1" || !repo.deletedAsAdmin {
		t.Fatalf("expected admin-wide clear for u1, got %q admin=%v", repo.deletedID, repo.deletedAsAdmin)
	}
}
