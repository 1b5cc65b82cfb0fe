package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/observability"
	"github.com/odyssey-erp/stockroom/internal/shared"
)

// Flusher persists every store after a successful mutation.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Service handles user business logic.
type Service struct {
	store   *auth.UserStore
	hasher  auth.PasswordHasher
	flusher Flusher
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewService builds Service instance.
func NewService(store *auth.UserStore, hasher auth.PasswordHasher, flusher Flusher, metrics *observability.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, hasher: hasher, flusher: flusher, metrics: metrics, logger: logger}
}

// ListUsers returns all users in store order.
func (s *Service) ListUsers() []auth.User {
	return s.store.List()
}

// Register hashes the password and adds the account, then flushes.
func (s *Service) Register(ctx context.Context, input RegisterInput) (auth.User, error) {
	track := s.metrics.Track("user", "add")
	user, err := s.add(input)
	if err != nil {
		return auth.User{}, track.End(err)
	}
	s.logger.Info("user registered", slog.String("username", user.Username), slog.String("role", string(user.Role)))
	return user, track.End(s.flush(ctx))
}

// SeedDefaults adds the default accounts when no user exists yet. It
// reports whether anything was seeded.
func (s *Service) SeedDefaults(ctx context.Context) (bool, error) {
	if s.store.Count() > 0 {
		return false, nil
	}
	for _, account := range DefaultAccounts {
		if _, err := s.add(account); err != nil {
			return false, fmt.Errorf("users: seed %s: %w", account.Username, err)
		}
	}
	s.logger.Warn("seeded default accounts; change their passwords", slog.Int("count", len(DefaultAccounts)))
	if err := s.flush(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Service) add(input RegisterInput) (auth.User, error) {
	if input.Password == "" {
		return auth.User{}, fmt.Errorf("user %q: password required: %w", input.Username, shared.ErrInvalidRecord)
	}
	role, err := auth.ParseRole(string(input.Role))
	if err != nil {
		return auth.User{}, err
	}
	if s.store.Exists(input.Username) {
		return auth.User{}, fmt.Errorf("user %q: %w", input.Username, shared.ErrDuplicateID)
	}
	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return auth.User{}, err
	}
	user := auth.User{Username: input.Username, PasswordHash: digest, Role: role}
	if err := s.store.Add(user); err != nil {
		return auth.User{}, err
	}
	return user, nil
}

func (s *Service) flush(ctx context.Context) error {
	if s.flusher == nil {
		return nil
	}
	if err := s.flusher.Flush(ctx); err != nil {
		s.logger.Error("flush after user change failed", slog.Any("error", err))
		return fmt.Errorf("users: persist: %w", err)
	}
	return nil
}
