package persistence

import (
	"context"

	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormApprovalLogRepository implements ApprovalLogRepository using GORM
type GormApprovalLogRepository struct {
	db *gorm.DB
}

// NewGormApprovalLogRepository creates a new GormApprovalLogRepository
func NewGormApprovalLogRepository(db *gorm.DB) *GormApprovalLogRepository {
	return &GormApprovalLogRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormApprovalLogRepository) WithTx(tx *gorm.DB) partner.ApprovalLogRepository {
	return &GormApprovalLogRepository{db: tx}
}

// Append inserts a new audit entry. The table is append-only.
func (r *GormApprovalLogRepository) Append(ctx context.Context, entry *partner.ApprovalLogEntry) error {
	model := models.ApprovalLogModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	entry.ID = model.ID
	return nil
}

// HistoryByCustomer returns all entries for a customer, newest first
func (r *GormApprovalLogRepository) HistoryByCustomer(ctx context.Context, customerID uint) ([]partner.ApprovalLogEntry, error) {
	var logModels []models.ApprovalLogModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("approved_at DESC, id DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}

	entries := make([]partner.ApprovalLogEntry, len(logModels))
	for i, model := range logModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// CountByCustomer counts the audit entries for a customer
func (r *GormApprovalLogRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ApprovalLogModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormApprovalLogRepository implements ApprovalLogRepository
var _ partner.ApprovalLogRepository = (*GormApprovalLogRepository)(nil)
