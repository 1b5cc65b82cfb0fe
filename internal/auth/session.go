package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/stockroom/internal/shared"
)

// Session tracks the logged-in user for one CLI invocation.
type Session struct {
	ID        string
	Username  string
	Role      Role
	StartedAt time.Time
	active    bool
}

func newSession(u User, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Username:  u.Username,
		Role:      u.Role,
		StartedAt: now,
		active:    true,
	}
}

// Active reports whether the session is still logged in.
func (s *Session) Active() bool { return s != nil && s.active }

// IsAdmin reports whether the logged-in user is an administrator.
func (s *Session) IsAdmin() bool { return s.Active() && s.Role == RoleAdmin }

// IsStaff reports whether the logged-in user is staff.
func (s *Session) IsStaff() bool { return s.Active() && s.Role == RoleStaff }

// RequireAdmin returns ErrForbidden unless the session belongs to an admin.
func (s *Session) RequireAdmin(action string) error {
	if s.IsAdmin() {
		return nil
	}
	if !s.Active() {
		return fmt.Errorf("%s: not logged in: %w", action, shared.ErrForbidden)
	}
	return fmt.Errorf("%s requires %s, %s is %s: %w", action, RoleAdmin, s.Username, s.Role, shared.ErrForbidden)
}

// RequireActive returns ErrForbidden when nobody is logged in.
func (s *Session) RequireActive(action string) error {
	if s.Active() {
		return nil
	}
	return fmt.Errorf("%s: not logged in: %w", action, shared.ErrForbidden)
}
