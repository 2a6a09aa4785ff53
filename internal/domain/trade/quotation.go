package trade

import (
	"strings"
	"time"

	"github.com/scart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Quotation represents a price quotation header. Quotations are grouped into
// revision chains: revision 0 points at itself via OriginalID, later
// revisions share the same OriginalID with an incremented RevisionNo.
type Quotation struct {
	shared.BaseEntity
	CompanyName   string
	ContactName   string
	ProjectName   string
	DeliveryDate  string
	DeliveryTerms string
	PaymentTerms  string
	ValidUntil    string
	Remarks       string
	EstimatorName string
	DiscountRate  decimal.Decimal

	OriginalID *uint
	RevisionNo int

	// Optional reference to an approved customer. The approval gate is
	// enforced at creation time by the application layer.
	CustomerID *uint

	Details []QuotationDetail
}

// QuotationDetail is one line of a quotation.
type QuotationDetail struct {
	ID          uint
	QuotationID uint
	ProductID   *uint
	Label       string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	ProfitRate  *decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewQuotation creates a new revision-0 quotation.
func NewQuotation(companyName, projectName string) (*Quotation, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if strings.TrimSpace(projectName) == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot be empty")
	}

	return &Quotation{
		BaseEntity:   shared.NewBaseEntity(),
		CompanyName:  strings.TrimSpace(companyName),
		ProjectName:  strings.TrimSpace(projectName),
		DiscountRate: decimal.Zero,
		RevisionNo:   0,
	}, nil
}

// NewRevision copies the quotation into a new revision of the same group.
// The copy carries the source's header fields and detail lines; the store
// assigns a fresh ID on insert.
func (q *Quotation) NewRevision(nextRevisionNo int) *Quotation {
	groupID := q.GroupID()

	rev := &Quotation{
		BaseEntity:    shared.NewBaseEntity(),
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
		OriginalID:    &groupID,
		RevisionNo:    nextRevisionNo,
		CustomerID:    q.CustomerID,
	}

	rev.Details = make([]QuotationDetail, len(q.Details))
	for i, d := range q.Details {
		rev.Details[i] = QuotationDetail{
			ProductID:   d.ProductID,
			Label:       d.Label,
			Description: d.Description,
			Quantity:    d.Quantity,
			Price:       d.Price,
			ProfitRate:  d.ProfitRate,
			Subtotal:    d.Subtotal,
		}
	}
	return rev
}

// GroupID returns the id of the revision group this quotation belongs to.
// Revision 0 rows anchor their own group.
func (q *Quotation) GroupID() uint {
	if q.OriginalID != nil {
		return *q.OriginalID
	}
	return q.ID
}

// Total returns the sum of detail subtotals before discount.
func (q *Quotation) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range q.Details {
		total = total.Add(d.Subtotal)
	}
	return total
}

// TotalAfterDiscount applies the header discount rate (percent) to the total.
func (q *Quotation) TotalAfterDiscount() decimal.Decimal {
	rate := decimal.NewFromInt(100).Sub(q.DiscountRate).Div(decimal.NewFromInt(100))
	return q.Total().Mul(rate)
}

// SetUpdatedAt records a modification timestamp.
func (q *Quotation) SetUpdatedAt(at time.Time) {
	q.UpdatedAt = at
}
