package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/parish-booker/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository over the document
// store. The stored snapshot always has the credential secret stripped.
type SessionRepository struct {
	store *Store
}

// NewSessionRepository creates a session repository bound to the store.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// SetCurrentUser records the signed-in user, credential omitted.
func (r *SessionRepository) SetCurrentUser(ctx context.Context, user persistence.User) error {
	user.Password = ""
	return r.store.Save(ctx, colCurrentUser, user)
}

// GetCurrentUser returns the signed-in user, or ErrNotFound when signed out.
func (r *SessionRepository) GetCurrentUser(ctx context.Context) (persistence.User, error) {
	var user persistence.User
	found, err := r.store.Load(ctx, colCurrentUser, &user)
	if err != nil {
		return persistence.User{}, err
	}
	if !found {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

// ClearCurrentUser removes the session snapshot. Clearing an absent session
// is not an error.
func (r *SessionRepository) ClearCurrentUser(ctx context.Context) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		return r.store.deleteTx(tx, colCurrentUser)
	}, colCurrentUser)
}
