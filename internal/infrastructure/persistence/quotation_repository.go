package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/scart/backend/internal/domain/shared"
	"github.com/scart/backend/internal/domain/trade"
	"github.com/scart/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormQuotationRepository) WithTx(tx *gorm.DB) trade.QuotationRepository {
	return &GormQuotationRepository{db: tx}
}

// FindByID finds a quotation with its detail lines
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uint) (*trade.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("quotation_details.id ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds quotation headers matching the filter. Detail lines are
// loaded too; lists in this system stay small enough to preload.
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)

	if err := query.Preload("Details").Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]trade.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// Count counts quotations matching the filter
func (r *GormQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a quotation together with its detail lines.
// On update the existing lines are replaced wholesale.
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *trade.Quotation) error {
	model := models.QuotationModelFromDomain(quotation)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if model.ID != 0 {
			if err := tx.Delete(&models.QuotationDetailModel{}, "quotation_id = ?", model.ID).Error; err != nil {
				return err
			}
			for i := range model.Details {
				model.Details[i].ID = 0
				model.Details[i].QuotationID = model.ID
			}
		}
		return tx.Save(model).Error
	})
	if err != nil {
		return err
	}

	quotation.ID = model.ID
	quotation.CreatedAt = model.CreatedAt
	quotation.UpdatedAt = model.UpdatedAt
	for i := range model.Details {
		quotation.Details[i].ID = model.Details[i].ID
		quotation.Details[i].QuotationID = model.Details[i].QuotationID
	}
	return nil
}

// Delete deletes a quotation and its detail lines
func (r *GormQuotationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.QuotationDetailModel{}, "quotation_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.QuotationModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByCustomer reports how many quotations reference the customer
func (r *GormQuotationRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxRevisionNo returns the highest revision number within the group
// anchored by originalID. The anchor row itself counts as revision 0.
func (r *GormQuotationRepository) MaxRevisionNo(ctx context.Context, originalID uint) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("original_id = ? OR id = ?", originalID, originalID).
		Select("MAX(revision_no)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, shared.ErrNotFound
	}
	return *max, nil
}

// applyFilter applies filter options to the query
func (r *GormQuotationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC, id DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormQuotationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR project_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "original_id":
			query = query.Where("original_id = ? OR id = ?", value, value)
		case "latest_only":
			if value == true {
				query = query.Where(
					"NOT EXISTS (SELECT 1 FROM quotations later WHERE COALESCE(later.original_id, later.id) = COALESCE(quotations.original_id, quotations.id) AND later.revision_no > quotations.revision_no)",
				)
			}
		}
	}

	return query
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ trade.QuotationRepository = (*GormQuotationRepository)(nil)
