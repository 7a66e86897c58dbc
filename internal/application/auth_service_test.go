package application

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type credentialStoreStub struct {
	users   map[string]User
	secrets map[string]string

	createErr error
	setErr    error
}

func newCredentialStoreStub(users ...UserWithSecret) *credentialStoreStub {
	stub := &credentialStoreStub{
		users:   make(map[string]User),
		secrets: make(map[string]string),
	}
	for _, entry := range users {
		stub.users[entry.User.ID] = entry.User
		stub.secrets[entry.User.ID] = entry.Secret
	}
	return stub
}

// UserWithSecret pairs an account with its stored credential for stub setup.
type UserWithSecret struct {
	User   User
	Secret string
}

func (s *credentialStoreStub) CreateUser(ctx context.Context, user User, secret string) (User, error) {
	if s.createErr != nil {
		return User{}, s.createErr
	}
	s.users[user.ID] = user
	s.secrets[user.ID] = secret
	return user, nil
}

func (s *credentialStoreStub) GetUserByUsername(ctx context.Context, username string) (User, string, error) {
	for id, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return user, s.secrets[id], nil
		}
	}
	return User{}, "", ErrNotFound
}

func (s *credentialStoreStub) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (s *credentialStoreStub) SetPassword(ctx context.Context, userID, secret string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if _, ok := s.users[userID]; !ok {
		return ErrNotFound
	}
	s.secrets[userID] = secret
	return nil
}

type sessionStoreStub struct {
	current *User
	setErr  error
}

func (s *sessionStoreStub) SetCurrentUser(ctx context.Context, user User) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.current = &user
	return nil
}

func (s *sessionStoreStub) GetCurrentUser(ctx context.Context) (User, error) {
	if s.current == nil {
		return User{}, ErrNotFound
	}
	return *s.current, nil
}

func (s *sessionStoreStub) ClearCurrentUser(ctx context.Context) error {
	s.current = nil
	return nil
}

func adminAccount() UserWithSecret {
	return UserWithSecret{
		User:   User{ID: "u1", Username: "admin", Role: RoleAdmin, Name: "Administrador Principal"},
		Secret: "password",
	}
}

func memberAccount() UserWithSecret {
	return UserWithSecret{
		User:   User{ID: "u2", Username: "user", Role: RoleUser, Name: "Juan Pérez"},
		Secret: "password",
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("matches the username case-insensitively", func(t *testing.T) {
		sessions := &sessionStoreStub{}
		svc := NewAuthService(newCredentialStoreStub(adminAccount()), sessions, nil, nil)

		user, err := svc.Login(context.Background(), LoginParams{Username: "ADMIN", Password: "password"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "u1" {
			t.Fatalf("expected u1, got %q", user.ID)
		}
		if sessions.current == nil || sessions.current.ID != "u1" {
			t.Fatalf("expected session set, got %+v", sessions.current)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(adminAccount()), &sessionStoreStub{}, nil, nil)

		_, err := svc.Login(context.Background(), LoginParams{Username: "admin", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if got := err.Error(); got != "Credenciales incorrectas." {
			t.Fatalf("unexpected display message %q", got)
		}
	})

	t.Run("rejects an unknown username", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(), &sessionStoreStub{}, nil, nil)

		_, err := svc.Login(context.Background(), LoginParams{Username: "ghost", Password: "password"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("requires every field", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(), &sessionStoreStub{}, nil, nil)

		_, err := svc.Register(context.Background(), RegisterParams{Name: " ", Username: "", Password: ""})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.Error(); got != "Todos los campos son obligatorios." {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("rejects a duplicate username regardless of case", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(memberAccount()), &sessionStoreStub{}, nil, nil)

		_, err := svc.Register(context.Background(), RegisterParams{
			Name:     "Otro Miembro",
			Username: "USER",
			Password: "secret",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.Error(); got != "El nombre de usuario ya existe." {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("creates a member account and signs it in", func(t *testing.T) {
		store := newCredentialStoreStub()
		sessions := &sessionStoreStub{}
		svc := NewAuthService(store, sessions, func() string { return "u3" }, nil)

		user, err := svc.Register(context.Background(), RegisterParams{
			Name:     "María López",
			Username: "maria",
			Password: "secret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if user.ID != "u3" {
			t.Fatalf("expected generated id, got %q", user.ID)
		}
		if user.Role != RoleUser {
			t.Fatalf("expected role %s, got %s", RoleUser, user.Role)
		}
		if store.secrets["u3"] != "secret" {
			t.Fatalf("expected secret stored, got %q", store.secrets["u3"])
		}
		if sessions.current == nil || sessions.current.ID != "u3" {
			t.Fatalf("expected auto login, got %+v", sessions.current)
		}
	})
}

func TestAuthService_Sessions(t *testing.T) {
	t.Run("current user round trip", func(t *testing.T) {
		sessions := &sessionStoreStub{}
		svc := NewAuthService(newCredentialStoreStub(memberAccount()), sessions, nil, nil)

		if _, err := svc.Login(context.Background(), LoginParams{Username: "user", Password: "password"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		current, err := svc.CurrentUser(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if current.ID != "u2" {
			t.Fatalf("expected u2, got %q", current.ID)
		}

		if err := svc.Logout(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.CurrentUser(context.Background()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound when signed out, got %v", err)
		}
	})

	t.Run("logout while signed out is tolerated", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(), &sessionStoreStub{}, nil, nil)
		if err := svc.Logout(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("requires a minimum length", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(memberAccount()), nil, nil, nil)

		_, err := svc.ChangePassword(context.Background(), ChangePasswordParams{
			UserID:   "u2",
			Password: "abc",
			Confirm:  "abc",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.Error(); got != "La contraseña debe tener al menos 4 caracteres." {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("requires a matching confirmation", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(memberAccount()), nil, nil, nil)

		_, err := svc.ChangePassword(context.Background(), ChangePasswordParams{
			UserID:   "u2",
			Password: "secret",
			Confirm:  "other",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.Error(); got != "Las contraseñas no coinciden." {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("stores the new secret", func(t *testing.T) {
		store := newCredentialStoreStub(memberAccount())
		svc := NewAuthService(store, nil, nil, nil)

		outcome, err := svc.ChangePassword(context.Background(), ChangePasswordParams{
			UserID:   "u2",
			Password: "fresh-secret",
			Confirm:  "fresh-secret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeApplied {
			t.Fatalf("expected OutcomeApplied, got %v", outcome)
		}
		if store.secrets["u2"] != "fresh-secret" {
			t.Fatalf("expected secret updated, got %q", store.secrets["u2"])
		}
	})

	t.Run("tolerates a stale user id", func(t *testing.T) {
		svc := NewAuthService(newCredentialStoreStub(), nil, nil, nil)

		outcome, err := svc.ChangePassword(context.Background(), ChangePasswordParams{
			UserID:   "missing",
			Password: "fresh-secret",
			Confirm:  "fresh-secret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeNotFound {
			t.Fatalf("expected OutcomeNotFound, got %v", outcome)
		}
	})
}
