package models

import (
	"time"

	"github.com/scart/backend/internal/domain/shared"
	"github.com/scart/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// QuotationModel is the persistence model for the Quotation header.
type QuotationModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	CompanyName   string          `gorm:"type:varchar(255);not null"`
	ContactName   string          `gorm:"type:varchar(255)"`
	ProjectName   string          `gorm:"type:varchar(255);not null"`
	DeliveryDate  string          `gorm:"type:varchar(100)"`
	DeliveryTerms string          `gorm:"type:varchar(255)"`
	PaymentTerms  string          `gorm:"type:varchar(255)"`
	ValidUntil    string          `gorm:"type:varchar(100)"`
	Remarks       string          `gorm:"type:text"`
	EstimatorName string          `gorm:"type:varchar(128)"`
	DiscountRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	OriginalID *uint `gorm:"index"`
	RevisionNo int   `gorm:"not null;default:0"`
	CustomerID *uint `gorm:"index"`

	Details []QuotationDetailModel `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// QuotationDetailModel is the persistence model for a quotation line.
type QuotationDetailModel struct {
	ID          uint  `gorm:"primaryKey;autoIncrement"`
	QuotationID uint  `gorm:"not null;index"`
	ProductID   *uint `gorm:"index"`
	Label       string          `gorm:"type:varchar(255)"`
	Description string          `gorm:"type:text"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ProfitRate  *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (QuotationDetailModel) TableName() string {
	return "quotation_details"
}

// ToDomain converts the persistence model to a domain Quotation entity.
func (m *QuotationModel) ToDomain() *trade.Quotation {
	q := &trade.Quotation{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		CompanyName:   m.CompanyName,
		ContactName:   m.ContactName,
		ProjectName:   m.ProjectName,
		DeliveryDate:  m.DeliveryDate,
		DeliveryTerms: m.DeliveryTerms,
		PaymentTerms:  m.PaymentTerms,
		ValidUntil:    m.ValidUntil,
		Remarks:       m.Remarks,
		EstimatorName: m.EstimatorName,
		DiscountRate:  m.DiscountRate,
		OriginalID:    m.OriginalID,
		RevisionNo:    m.RevisionNo,
		CustomerID:    m.CustomerID,
	}

	q.Details = make([]trade.QuotationDetail, len(m.Details))
	for i, d := range m.Details {
		q.Details[i] = trade.QuotationDetail{
			ID:          d.ID,
			QuotationID: d.QuotationID,
			ProductID:   d.ProductID,
			Label:       d.Label,
			Description: d.Description,
			Quantity:    d.Quantity,
			Price:       d.Price,
			ProfitRate:  d.ProfitRate,
			Subtotal:    d.Subtotal,
		}
	}
	return q
}

// QuotationModelFromDomain creates a persistence model from a domain Quotation entity.
func QuotationModelFromDomain(q *trade.Quotation) *QuotationModel {
	m := &QuotationModel{
		ID:            q.ID,
		CompanyName:   q.CompanyName,
		ContactName:   q.ContactName,
		ProjectName:   q.ProjectName,
		DeliveryDate:  q.DeliveryDate,
		DeliveryTerms: q.DeliveryTerms,
		PaymentTerms:  q.PaymentTerms,
		ValidUntil:    q.ValidUntil,
		Remarks:       q.Remarks,
		EstimatorName: q.EstimatorName,
		DiscountRate:  q.DiscountRate,
		OriginalID:    q.OriginalID,
		RevisionNo:    q.RevisionNo,
		CustomerID:    q.CustomerID,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}

	m.Details = make([]QuotationDetailModel, len(q.Details))
	for i, d := range q.Details {
		m.Details[i] = QuotationDetailModel{
			ID:          d.ID,
			QuotationID: d.QuotationID,
			ProductID:   d.ProductID,
			Label:       d.Label,
			Description: d.Description,
			Quantity:    d.Quantity,
			Price:       d.Price,
			ProfitRate:  d.ProfitRate,
			Subtotal:    d.Subtotal,
		}
	}
	return m
}

// LogicConfigModel is the persistence model for the cost-estimation rates row.
type LogicConfigModel struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	DesignRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	SetupRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (LogicConfigModel) TableName() string {
	return "logic_configs"
}

// ToDomain converts the persistence model to a domain LogicConfig.
func (m *LogicConfigModel) ToDomain() *trade.LogicConfig {
	return &trade.LogicConfig{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		DesignRate: m.DesignRate,
		SetupRate:  m.SetupRate,
	}
}

// LogicConfigModelFromDomain creates a persistence model from a domain LogicConfig.
func LogicConfigModelFromDomain(c *trade.LogicConfig) *LogicConfigModel {
	return &LogicConfigModel{
		ID:         c.ID,
		DesignRate: c.DesignRate,
		SetupRate:  c.SetupRate,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
