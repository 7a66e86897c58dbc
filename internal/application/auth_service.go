package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// CredentialStore captures the account operations needed by the service. The
// credential secret crosses this boundary only as a separate argument or
// return value; it never rides on the User model.
type CredentialStore interface {
	CreateUser(ctx context.Context, user User, secret string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, string, error)
	GetUser(ctx context.Context, id string) (User, error)
	SetPassword(ctx context.Context, userID, secret string) error
}

// SessionStore persists the single current-session snapshot.
type SessionStore interface {
	SetCurrentUser(ctx context.Context, user User) error
	GetCurrentUser(ctx context.Context) (User, error)
	ClearCurrentUser(ctx context.Context) error
}

// AuthService handles login, registration, the current-session snapshot, and
// credential changes. Secrets are stored and compared verbatim; hardening the
// credential path is an explicit non-goal of this deployment.
type AuthService struct {
	users       CredentialStore
	sessions    SessionStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAuthService constructs an auth service with the provided dependencies.
func NewAuthService(users CredentialStore, sessions SessionStore, idGenerator func() string, now func() time.Time) *AuthService {
	return NewAuthServiceWithLogger(users, sessions, idGenerator, now, nil)
}

// NewAuthServiceWithLogger constructs an auth service with a specified logger.
func NewAuthServiceWithLogger(users CredentialStore, sessions SessionStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AuthService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{users: users, sessions: sessions, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Login matches the username case-insensitively and compares the secret. On
// success the sanitized user becomes the current session.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (user User, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("credential store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Login", "username", params.Username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to sign in", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "signed in")
	}()

	found, secret, getErr := s.users.GetUserByUsername(ctx, params.Username)
	if getErr != nil {
		if isNotFound(getErr) {
			err = ErrInvalidCredentials
			return
		}
		err = getErr
		return
	}

	if secret != params.Password {
		err = ErrInvalidCredentials
		return
	}

	user = found
	if s.sessions != nil {
		if err = s.sessions.SetCurrentUser(ctx, user); err != nil {
			user = User{}
			return
		}
	}
	return
}

// Register creates a USER-role account and signs it in. All fields are
// required and usernames must be unique case-insensitively.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (user User, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("credential store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Register", "username", params.Username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "registered and signed in")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Name) == "" {
		vErr.add("name", "Todos los campos son obligatorios.")
	}
	if strings.TrimSpace(params.Username) == "" {
		vErr.add("username", "Todos los campos son obligatorios.")
	}
	if params.Password == "" {
		vErr.add("password", "Todos los campos son obligatorios.")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, _, getErr := s.users.GetUserByUsername(ctx, params.Username); getErr == nil {
		vErr.add("username", "El nombre de usuario ya existe.")
		err = vErr
		return
	} else if !isNotFound(getErr) {
		err = getErr
		return
	}

	candidate := User{
		ID:       s.idGenerator(),
		Username: strings.TrimSpace(params.Username),
		Role:     RoleUser,
		Name:     strings.TrimSpace(params.Name),
	}

	user, err = s.users.CreateUser(ctx, candidate, params.Password)
	if err != nil {
		return
	}

	// Auto login after register.
	if s.sessions != nil {
		if err = s.sessions.SetCurrentUser(ctx, user); err != nil {
			user = User{}
			return
		}
	}
	return
}

// Logout clears the current session. Logging out while signed out is fine.
func (s *AuthService) Logout(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return nil
	}

	if err := s.sessions.ClearCurrentUser(ctx); err != nil {
		s.loggerWith(ctx, "Logout").ErrorContext(ctx, "failed to sign out", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	return nil
}

// CurrentUser returns the signed-in user, or ErrNotFound when signed out.
func (s *AuthService) CurrentUser(ctx context.Context) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return User{}, ErrNotFound
	}

	user, err := s.sessions.GetCurrentUser(ctx)
	if err != nil {
		if isNotFound(err) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// ChangePassword stores a new credential secret for the account. A stale user
// id is a tolerated no-op.
func (s *AuthService) ChangePassword(ctx context.Context, params ChangePasswordParams) (outcome Outcome, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("credential store not configured")
		return
	}

	logger := s.loggerWith(ctx, "ChangePassword", "user_id", params.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to change password", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if outcome == OutcomeNotFound {
			logger.InfoContext(ctx, "password unchanged, stale id")
			return
		}
		logger.InfoContext(ctx, "password changed")
	}()

	vErr := &ValidationError{}
	if len(params.Password) < 4 {
		vErr.add("password", "La contraseña debe tener al menos 4 caracteres.")
	}
	if params.Password != params.Confirm {
		vErr.add("confirm", "Las contraseñas no coinciden.")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = s.users.SetPassword(ctx, params.UserID, params.Password); err != nil {
		if isNotFound(err) {
			outcome = OutcomeNotFound
			err = nil
			return
		}
		return
	}
	return
}
