package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/odyssey-erp/stockroom/internal/shared"
)

// UserLookup abstracts the user store for authentication.
type UserLookup interface {
	FindByID(username string) (User, bool)
}

// Service wraps authentication business rules.
type Service struct {
	users  UserLookup
	hasher PasswordHasher
	clock  func() time.Time
	logger *slog.Logger
}

// NewService constructs a new Service.
func NewService(users UserLookup, hasher PasswordHasher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, hasher: hasher, clock: time.Now, logger: logger}
}

// Authenticate validates username/password credentials and opens a session.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, ok := s.users.FindByID(username)
	if !ok {
		s.logger.Warn("login rejected", slog.String("username", username), slog.String("reason", "unknown user"))
		return nil, shared.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn("login rejected", slog.String("username", username), slog.String("reason", "password mismatch"))
		return nil, shared.ErrInvalidCredentials
	}
	session := newSession(user, s.clock())
	s.logger.Info("login", slog.String("username", user.Username), slog.String("role", string(user.Role)), slog.String("session", session.ID))
	return session, nil
}

// Logout ends the session.
func (s *Service) Logout(session *Session) {
	if !session.Active() {
		return
	}
	session.active = false
	s.logger.Info("logout", slog.String("username", session.Username), slog.String("session", session.ID))
}
