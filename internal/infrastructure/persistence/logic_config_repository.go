package persistence

import (
	"context"
	"errors"

	"github.com/scart/backend/internal/domain/trade"
	"github.com/scart/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLogicConfigRepository implements LogicConfigRepository using GORM.
// The table holds a single row; Get materializes a zero-rate default when
// the row does not exist yet.
type GormLogicConfigRepository struct {
	db *gorm.DB
}

// NewGormLogicConfigRepository creates a new GormLogicConfigRepository
func NewGormLogicConfigRepository(db *gorm.DB) *GormLogicConfigRepository {
	return &GormLogicConfigRepository{db: db}
}

// Get returns the rates row, or a zero-rate default when none exists
func (r *GormLogicConfigRepository) Get(ctx context.Context) (*trade.LogicConfig, error) {
	var model models.LogicConfigModel
	if err := r.db.WithContext(ctx).Order("id ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &trade.LogicConfig{
				DesignRate: decimal.Zero,
				SetupRate:  decimal.Zero,
			}, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the rates row
func (r *GormLogicConfigRepository) Save(ctx context.Context, config *trade.LogicConfig) error {
	model := models.LogicConfigModelFromDomain(config)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	config.ID = model.ID
	config.CreatedAt = model.CreatedAt
	config.UpdatedAt = model.UpdatedAt
	return nil
}

// Ensure GormLogicConfigRepository implements LogicConfigRepository
var _ trade.LogicConfigRepository = (*GormLogicConfigRepository)(nil)
