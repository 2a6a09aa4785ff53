package partner

import (
	"time"

	"github.com/scart/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerCreditInput is one fiscal-year credit row supplied with a customer
type CustomerCreditInput struct {
	FiscalYear  int              `json:"fiscal_year" binding:"required,gt=0"`
	SalesAmount *decimal.Decimal `json:"sales_amount"`
	NetIncome   *decimal.Decimal `json:"net_income"`
	Equity      *decimal.Decimal `json:"equity"`
}

// CreateCustomerRequest contains input for creating a customer
type CreateCustomerRequest struct {
	Name            string                `json:"name" binding:"required,max=255"`
	Code            string                `json:"code" binding:"max=50"`
	NameKana        string                `json:"name_kana" binding:"max=255"`
	PostalCode      string                `json:"postal_code" binding:"max=20"`
	Address         string                `json:"address" binding:"max=255"`
	Phone           string                `json:"phone" binding:"max=50"`
	TransactionType string                `json:"transaction_type" binding:"max=50"`
	PaymentTerms    string                `json:"payment_terms" binding:"max=100"`
	Note            string                `json:"note"`
	Credits         []CustomerCreditInput `json:"credits" binding:"dive"`
}

// UpdateCustomerRequest contains input for updating a customer
type UpdateCustomerRequest struct {
	Name            string                `json:"name" binding:"required,max=255"`
	Code            string                `json:"code" binding:"max=50"`
	NameKana        string                `json:"name_kana" binding:"max=255"`
	PostalCode      string                `json:"postal_code" binding:"max=20"`
	Address         string                `json:"address" binding:"max=255"`
	Phone           string                `json:"phone" binding:"max=50"`
	TransactionType string                `json:"transaction_type" binding:"max=50"`
	PaymentTerms    string                `json:"payment_terms" binding:"max=100"`
	Note            string                `json:"note"`
	Credits         []CustomerCreditInput `json:"credits" binding:"dive"`
}

// RejectCustomerRequest carries the optional rejection comment
type RejectCustomerRequest struct {
	Comment string `json:"comment" binding:"max=1000"`
}

// CustomerCreditResponse is one fiscal-year credit row in a response
type CustomerCreditResponse struct {
	FiscalYear  int              `json:"fiscal_year"`
	SalesAmount *decimal.Decimal `json:"sales_amount"`
	NetIncome   *decimal.Decimal `json:"net_income"`
	Equity      *decimal.Decimal `json:"equity"`
}

// CustomerResponse is the API representation of a customer
type CustomerResponse struct {
	ID                uint                     `json:"id"`
	Code              string                   `json:"code"`
	Name              string                   `json:"name"`
	NameKana          string                   `json:"name_kana"`
	PostalCode        string                   `json:"postal_code"`
	Address           string                   `json:"address"`
	Phone             string                   `json:"phone"`
	TransactionType   string                   `json:"transaction_type"`
	PaymentTerms      string                   `json:"payment_terms"`
	Note              string                   `json:"note"`
	Status            string                   `json:"status"`
	RequestedByUserID *uint                    `json:"requested_by_user_id"`
	ApprovedByUserID  *uint                    `json:"approved_by_user_id"`
	ApprovedAt        *time.Time               `json:"approved_at"`
	RejectedAt        *time.Time               `json:"rejected_at"`
	ApprovalComment   *string                  `json:"approval_comment"`
	Credits           []CustomerCreditResponse `json:"credits,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// ApprovalHistoryEntryResponse is one audit row with login ids resolved
type ApprovalHistoryEntryResponse struct {
	ID                uint      `json:"id"`
	CustomerID        uint      `json:"customer_id"`
	UserID            uint      `json:"user_id"`
	UserLoginID       string    `json:"user_login_id"`
	ApprovedByUserID  uint      `json:"approved_by_user_id"`
	ApprovedByLoginID string    `json:"approved_by_login_id"`
	ApprovedAt        time.Time `json:"approved_at"`
}

// ToCustomerResponse converts a domain customer to its API representation
func ToCustomerResponse(c *partner.Customer, credits []partner.CustomerCredit) *CustomerResponse {
	resp := &CustomerResponse{
		ID:                c.ID,
		Code:              c.Code,
		Name:              c.Name,
		NameKana:          c.NameKana,
		PostalCode:        c.PostalCode,
		Address:           c.Address,
		Phone:             c.Phone,
		TransactionType:   c.TransactionType,
		PaymentTerms:      c.PaymentTerms,
		Note:              c.Note,
		Status:            string(c.Status),
		RequestedByUserID: c.RequestedByUserID,
		ApprovedByUserID:  c.ApprovedByUserID,
		ApprovedAt:        c.ApprovedAt,
		RejectedAt:        c.RejectedAt,
		ApprovalComment:   c.ApprovalComment,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	for _, cr := range credits {
		resp.Credits = append(resp.Credits, CustomerCreditResponse{
			FiscalYear:  cr.FiscalYear,
			SalesAmount: cr.SalesAmount,
			NetIncome:   cr.NetIncome,
			Equity:      cr.Equity,
		})
	}
	return resp
}
