package identity

import (
	"context"

	"gorm.io/gorm"
)

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) UserRepository

	FindByID(ctx context.Context, id uint) (*User, error)
	FindByLoginID(ctx context.Context, loginID string) (*User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]User, error)
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	Save(ctx context.Context, user *User) error

	// Activate sets is_active=true for the user. Idempotent; activating an
	// already active user is a no-op that still reports success.
	Activate(ctx context.Context, id uint) error
}
