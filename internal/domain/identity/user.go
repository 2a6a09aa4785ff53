package identity

import (
	"strings"

	"github.com/scart/backend/internal/domain/shared"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User represents an account in the system.
// Accounts register as inactive and are activated as a side effect of the
// customer approval workflow: approving the customer a user requested flips
// the user active within the same transaction.
type User struct {
	shared.BaseEntity
	LoginID      string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	IsActive     bool
}

// NewUser creates a new inactive user with the regular role.
func NewUser(loginID, displayName, passwordHash string) (*User, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return nil, shared.NewDomainError("INVALID_LOGIN_ID", "Login ID cannot be empty")
	}
	if len(loginID) > 128 {
		return nil, shared.NewDomainError("INVALID_LOGIN_ID", "Login ID cannot exceed 128 characters")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		LoginID:      loginID,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     false,
	}, nil
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
