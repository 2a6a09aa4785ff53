package trade

import (
	"context"

	"github.com/scart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// QuotationRepository defines the persistence contract for quotations.
type QuotationRepository interface {
	WithTx(tx *gorm.DB) QuotationRepository

	FindByID(ctx context.Context, id uint) (*Quotation, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Quotation, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, quotation *Quotation) error
	Delete(ctx context.Context, id uint) error

	// CountByCustomer reports how many quotations reference the customer.
	// Used to block customer deletion while references exist.
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)

	// MaxRevisionNo returns the highest revision number within the group
	// anchored by originalID.
	MaxRevisionNo(ctx context.Context, originalID uint) (int, error)
}
