package persistence

import (
	"context"

	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerCreditRepository implements CustomerCreditRepository using GORM
type GormCustomerCreditRepository struct {
	db *gorm.DB
}

// NewGormCustomerCreditRepository creates a new GormCustomerCreditRepository
func NewGormCustomerCreditRepository(db *gorm.DB) *GormCustomerCreditRepository {
	return &GormCustomerCreditRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormCustomerCreditRepository) WithTx(tx *gorm.DB) partner.CustomerCreditRepository {
	return &GormCustomerCreditRepository{db: tx}
}

// FindByCustomer returns all credit rows for a customer ordered by fiscal year
func (r *GormCustomerCreditRepository) FindByCustomer(ctx context.Context, customerID uint) ([]partner.CustomerCredit, error) {
	var creditModels []models.CustomerCreditModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("fiscal_year ASC").
		Find(&creditModels).Error; err != nil {
		return nil, err
	}

	credits := make([]partner.CustomerCredit, len(creditModels))
	for i, model := range creditModels {
		credits[i] = *model.ToDomain()
	}
	return credits, nil
}

// Upsert inserts or updates the credit row keyed by (customer, fiscal year)
func (r *GormCustomerCreditRepository) Upsert(ctx context.Context, credit *partner.CustomerCredit) error {
	model := models.CustomerCreditModelFromDomain(credit)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "fiscal_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sales_amount", "net_income", "equity", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}
	credit.ID = model.ID
	return nil
}

// DeleteByCustomer removes all credit rows for a customer
func (r *GormCustomerCreditRepository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	return r.db.WithContext(ctx).
		Delete(&models.CustomerCreditModel{}, "customer_id = ?", customerID).Error
}

// Ensure GormCustomerCreditRepository implements CustomerCreditRepository
var _ partner.CustomerCreditRepository = (*GormCustomerCreditRepository)(nil)
