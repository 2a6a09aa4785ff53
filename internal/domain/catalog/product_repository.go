package catalog

import (
	"context"

	"github.com/scart/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
}
