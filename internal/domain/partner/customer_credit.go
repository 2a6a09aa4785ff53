package partner

import (
	"context"

	"github.com/scart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerCredit holds one fiscal year of credit figures for a customer.
// At most one row exists per (customer, fiscal year).
type CustomerCredit struct {
	shared.BaseEntity
	CustomerID  uint
	FiscalYear  int
	SalesAmount *decimal.Decimal
	NetIncome   *decimal.Decimal
	Equity      *decimal.Decimal
}

// NewCustomerCredit creates a credit row for the given fiscal year.
func NewCustomerCredit(customerID uint, fiscalYear int) (*CustomerCredit, error) {
	if fiscalYear <= 0 {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year must be positive")
	}
	return &CustomerCredit{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		FiscalYear: fiscalYear,
	}, nil
}

// CustomerCreditRepository persists per-fiscal-year credit rows.
type CustomerCreditRepository interface {
	WithTx(tx *gorm.DB) CustomerCreditRepository

	FindByCustomer(ctx context.Context, customerID uint) ([]CustomerCredit, error)
	Upsert(ctx context.Context, credit *CustomerCredit) error
	DeleteByCustomer(ctx context.Context, customerID uint) error
}
