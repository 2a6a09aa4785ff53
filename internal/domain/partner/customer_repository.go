package partner

import (
	"context"
	"time"

	"github.com/scart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// CustomerRepository defines the persistence contract for customers.
//
// MarkApproved and MarkRejected are the only mutation points for the
// approval status. Both are single conditional updates guarded by
// status='pending'; they report whether a row was actually transitioned so
// callers can distinguish winning the transition from arriving late.
type CustomerRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) CustomerRepository

	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uint) error

	// MarkApproved atomically transitions the customer from pending to
	// approved, recording the actor and timestamp. Returns false when the
	// conditional update affected zero rows (already processed or missing).
	MarkApproved(ctx context.Context, customerID, actorUserID uint, at time.Time) (bool, error)

	// MarkRejected atomically transitions the customer from pending to
	// rejected, clearing any approval fields and storing the comment.
	MarkRejected(ctx context.Context, customerID uint, comment string, at time.Time) (bool, error)
}
