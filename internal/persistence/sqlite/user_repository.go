package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/example/parish-booker/internal/persistence"
)

// UserRepository implements persistence.UserRepository over the document store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository bound to the store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// CreateUser appends a new account. Usernames are unique case-insensitively.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var users []persistence.User
		if _, err := r.store.loadTx(tx, colUsers, &users); err != nil {
			return err
		}

		for _, existing := range users {
			if existing.ID == user.ID || strings.EqualFold(existing.Username, user.Username) {
				return persistence.ErrDuplicate
			}
		}

		users = append(users, user)
		return r.store.saveTx(tx, colUsers, users)
	}, colUsers)
}

// UpdateUser overwrites an existing account by id.
func (r *UserRepository) UpdateUser(ctx context.Context, user persistence.User) error {
	return r.store.Mutate(ctx, func(tx *sql.Tx) error {
		var users []persistence.User
		if _, err := r.store.loadTx(tx, colUsers, &users); err != nil {
			return err
		}

		for i, existing := range users {
			if existing.ID != user.ID {
				continue
			}
			users[i] = user
			return r.store.saveTx(tx, colUsers, users)
		}
		return persistence.ErrNotFound
	}, colUsers)
}

// GetUser retrieves an account by id.
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	var users []persistence.User
	if _, err := r.store.Load(ctx, colUsers, &users); err != nil {
		return persistence.User{}, err
	}

	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

// GetUserByUsername retrieves an account by username, case-insensitively.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	var users []persistence.User
	if _, err := r.store.Load(ctx, colUsers, &users); err != nil {
		return persistence.User{}, err
	}

	for _, user := range users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

// ListUsers returns all accounts in stored order.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	var users []persistence.User
	if _, err := r.store.Load(ctx, colUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}
