package catalog

import (
	"strings"

	"github.com/scart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a product master record used in quotation lines.
type Product struct {
	shared.BaseEntity
	Name      string
	UnitPrice decimal.Decimal
	Cost      decimal.Decimal
	Note      string
}

// NewProduct creates a new product.
func NewProduct(name string, unitPrice, cost decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		UnitPrice:  unitPrice,
		Cost:       cost,
	}, nil
}

// Update updates the product's master fields.
func (p *Product) Update(name string, unitPrice, cost decimal.Decimal, note string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	p.Name = name
	p.UnitPrice = unitPrice
	p.Cost = cost
	p.Note = note
	return nil
}
