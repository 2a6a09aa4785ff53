package models

import (
	"time"

	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	Code            string `gorm:"type:varchar(50)"`
	Name            string `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_name"`
	NameKana        string `gorm:"type:varchar(255)"`
	PostalCode      string `gorm:"type:varchar(20)"`
	Address         string `gorm:"type:varchar(255)"`
	Phone           string `gorm:"type:varchar(50)"`
	TransactionType string `gorm:"type:varchar(50)"`
	PaymentTerms    string `gorm:"type:varchar(100)"`
	Note            string `gorm:"type:text"`

	Status            partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RequestedByUserID *uint
	ApprovedByUserID  *uint
	ApprovedAt        *time.Time
	RejectedAt        *time.Time
	ApprovalComment   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Code:              m.Code,
		Name:              m.Name,
		NameKana:          m.NameKana,
		PostalCode:        m.PostalCode,
		Address:           m.Address,
		Phone:             m.Phone,
		TransactionType:   m.TransactionType,
		PaymentTerms:      m.PaymentTerms,
		Note:              m.Note,
		Status:            m.Status,
		RequestedByUserID: m.RequestedByUserID,
		ApprovedByUserID:  m.ApprovedByUserID,
		ApprovedAt:        m.ApprovedAt,
		RejectedAt:        m.RejectedAt,
		ApprovalComment:   m.ApprovalComment,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.ID = c.ID
	m.Code = c.Code
	m.Name = c.Name
	m.NameKana = c.NameKana
	m.PostalCode = c.PostalCode
	m.Address = c.Address
	m.Phone = c.Phone
	m.TransactionType = c.TransactionType
	m.PaymentTerms = c.PaymentTerms
	m.Note = c.Note
	m.Status = c.Status
	m.RequestedByUserID = c.RequestedByUserID
	m.ApprovedByUserID = c.ApprovedByUserID
	m.ApprovedAt = c.ApprovedAt
	m.RejectedAt = c.RejectedAt
	m.ApprovalComment = c.ApprovalComment
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ApprovalLogModel is the persistence model for approval audit entries.
// The table is append-only; no update or delete paths exist.
type ApprovalLogModel struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	CustomerID uint `gorm:"not null;index"`
	UserID     uint `gorm:"not null"`
	ApprovedBy uint `gorm:"not null"`
	ApprovedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ApprovalLogModel) TableName() string {
	return "customer_approval_log"
}

// ToDomain converts the persistence model to a domain entry.
func (m *ApprovalLogModel) ToDomain() *partner.ApprovalLogEntry {
	return &partner.ApprovalLogEntry{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		UserID:     m.UserID,
		ApprovedBy: m.ApprovedBy,
		ApprovedAt: m.ApprovedAt,
	}
}

// ApprovalLogModelFromDomain creates a persistence model from a domain entry.
func ApprovalLogModelFromDomain(e *partner.ApprovalLogEntry) *ApprovalLogModel {
	return &ApprovalLogModel{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		UserID:     e.UserID,
		ApprovedBy: e.ApprovedBy,
		ApprovedAt: e.ApprovedAt,
	}
}

// CustomerCreditModel is the persistence model for per-fiscal-year credit rows.
type CustomerCreditModel struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	CustomerID  uint `gorm:"not null;uniqueIndex:idx_credit_customer_year,priority:1"`
	FiscalYear  int  `gorm:"not null;uniqueIndex:idx_credit_customer_year,priority:2"`
	SalesAmount *decimal.Decimal `gorm:"type:decimal(18,2)"`
	NetIncome   *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Equity      *decimal.Decimal `gorm:"type:decimal(18,2)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (CustomerCreditModel) TableName() string {
	return "customer_credit"
}

// ToDomain converts the persistence model to a domain credit row.
func (m *CustomerCreditModel) ToDomain() *partner.CustomerCredit {
	return &partner.CustomerCredit{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		CustomerID:  m.CustomerID,
		FiscalYear:  m.FiscalYear,
		SalesAmount: m.SalesAmount,
		NetIncome:   m.NetIncome,
		Equity:      m.Equity,
	}
}

// CustomerCreditModelFromDomain creates a persistence model from a domain credit row.
func CustomerCreditModelFromDomain(c *partner.CustomerCredit) *CustomerCreditModel {
	return &CustomerCreditModel{
		ID:          c.ID,
		CustomerID:  c.CustomerID,
		FiscalYear:  c.FiscalYear,
		SalesAmount: c.SalesAmount,
		NetIncome:   c.NetIncome,
		Equity:      c.Equity,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
