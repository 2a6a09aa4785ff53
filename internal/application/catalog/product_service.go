package catalog

import (
	"context"
	"time"

	"github.com/scart/backend/internal/domain/catalog"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductRequest contains input for creating or updating a product
type ProductRequest struct {
	Name      string          `json:"name" binding:"required,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Cost      decimal.Decimal `json:"cost"`
	Note      string          `json:"note"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Cost      decimal.Decimal `json:"cost"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductService handles product master operations
type ProductService struct {
	products catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.UnitPrice, req.Cost)
	if err != nil {
		return nil, err
	}
	product.Note = req.Note

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update updates a product's master fields
func (s *ProductService) Update(ctx context.Context, id uint, req ProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.UnitPrice, req.Cost, req.Note); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id uint) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = *toProductResponse(&products[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Cost:      p.Cost,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
