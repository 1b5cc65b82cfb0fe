package users

import "github.com/odyssey-erp/stockroom/internal/auth"

// RegisterInput describes a new account.
type RegisterInput struct {
	Username string
	Password string
	Role     auth.Role
}

// DefaultAccounts are seeded when the user store is empty.
var DefaultAccounts = []RegisterInput{
	{Username: "admin", Password: "admin123", Role: auth.RoleAdmin},
	{Username: "staff", Password: "staff123", Role: auth.RoleStaff},
}
