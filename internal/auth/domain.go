package auth

import (
	"fmt"
	"strings"

	"github.com/odyssey-erp/stockroom/internal/shared"
	"github.com/odyssey-erp/stockroom/internal/store"
	"github.com/odyssey-erp/stockroom/internal/validation"
)

// Role grants access to CLI operations.
type Role string

const (
	// RoleAdmin may run every operation.
	RoleAdmin Role = "ADMIN"
	// RoleStaff may browse products and post stock movements.
	RoleStaff Role = "STAFF"
)

// ParseRole maps s onto a Role. An empty string defaults to STAFF.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(RoleStaff):
		return RoleStaff, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("role %q: %w", s, shared.ErrInvalidRecord)
	}
}

// User represents an account able to log in.
type User struct {
	Username     string `json:"username" validate:"required,max=50,flat"`
	PasswordHash string `json:"password_hash" validate:"flat"`
	Role         Role   `json:"role" validate:"oneof=ADMIN STAFF"`
}

// ValidateUser checks a user in isolation.
func ValidateUser(u User) error {
	return validation.Struct(u)
}

// UserStore holds users keyed by username.
type UserStore = store.Store[string, User]

// NewUserStore builds a user store bounded by capacity (0 = unbounded).
func NewUserStore(capacity int) *UserStore {
	return store.New(store.Options[string, User]{
		Name:     "user",
		Capacity: capacity,
		Key:      func(u User) string { return u.Username },
		WithKey: func(u User, username string) User {
			u.Username = username
			return u
		},
		Validate: ValidateUser,
	})
}
