package trade

import (
	"time"

	"github.com/scart/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// QuotationDetailInput is one line of a quotation request
type QuotationDetailInput struct {
	ProductID   *uint            `json:"product_id"`
	Label       string           `json:"label" binding:"max=255"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	ProfitRate  *decimal.Decimal `json:"profit_rate"`
}

// QuotationRequest contains input for creating or updating a quotation
type QuotationRequest struct {
	CompanyName   string                 `json:"company_name" binding:"required,max=255"`
	ContactName   string                 `json:"contact_name" binding:"max=255"`
	ProjectName   string                 `json:"project_name" binding:"required,max=255"`
	DeliveryDate  string                 `json:"delivery_date" binding:"max=100"`
	DeliveryTerms string                 `json:"delivery_terms" binding:"max=255"`
	PaymentTerms  string                 `json:"payment_terms" binding:"max=255"`
	ValidUntil    string                 `json:"valid_until" binding:"max=100"`
	Remarks       string                 `json:"remarks"`
	EstimatorName string                 `json:"estimator_name" binding:"max=128"`
	DiscountRate  decimal.Decimal        `json:"discount_rate"`
	CustomerID    *uint                  `json:"customer_id"`
	Details       []QuotationDetailInput `json:"details" binding:"dive"`
}

// QuotationDetailResponse is one line of a quotation response
type QuotationDetailResponse struct {
	ID          uint             `json:"id"`
	ProductID   *uint            `json:"product_id"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	ProfitRate  *decimal.Decimal `json:"profit_rate"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
}

// QuotationResponse is the API representation of a quotation
type QuotationResponse struct {
	ID                 uint                      `json:"id"`
	CompanyName        string                    `json:"company_name"`
	ContactName        string                    `json:"contact_name"`
	ProjectName        string                    `json:"project_name"`
	DeliveryDate       string                    `json:"delivery_date"`
	DeliveryTerms      string                    `json:"delivery_terms"`
	PaymentTerms       string                    `json:"payment_terms"`
	ValidUntil         string                    `json:"valid_until"`
	Remarks            string                    `json:"remarks"`
	EstimatorName      string                    `json:"estimator_name"`
	DiscountRate       decimal.Decimal           `json:"discount_rate"`
	OriginalID         *uint                     `json:"original_id"`
	RevisionNo         int                       `json:"revision_no"`
	CustomerID         *uint                     `json:"customer_id"`
	Details            []QuotationDetailResponse `json:"details"`
	Total              decimal.Decimal           `json:"total"`
	TotalAfterDiscount decimal.Decimal           `json:"total_after_discount"`
	DesignAmount       decimal.Decimal           `json:"design_amount"`
	SetupAmount        decimal.Decimal           `json:"setup_amount"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// RatesRequest contains input for updating the cost-estimation rates
type RatesRequest struct {
	DesignRate decimal.Decimal `json:"design_rate"`
	SetupRate  decimal.Decimal `json:"setup_rate"`
}

// RatesResponse is the API representation of the cost-estimation rates
type RatesResponse struct {
	DesignRate decimal.Decimal `json:"design_rate"`
	SetupRate  decimal.Decimal `json:"setup_rate"`
}

func toQuotationResponse(q *trade.Quotation, rates *trade.LogicConfig) *QuotationResponse {
	resp := &QuotationResponse{
		ID:                 q.ID,
		CompanyName:        q.CompanyName,
		ContactName:        q.ContactName,
		ProjectName:        q.ProjectName,
		DeliveryDate:       q.DeliveryDate,
		DeliveryTerms:      q.DeliveryTerms,
		PaymentTerms:       q.PaymentTerms,
		ValidUntil:         q.ValidUntil,
		Remarks:            q.Remarks,
		EstimatorName:      q.EstimatorName,
		DiscountRate:       q.DiscountRate,
		OriginalID:         q.OriginalID,
		RevisionNo:         q.RevisionNo,
		CustomerID:         q.CustomerID,
		Total:              q.Total(),
		TotalAfterDiscount: q.TotalAfterDiscount(),
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}

	total := q.Total()
	if rates != nil {
		resp.DesignAmount = rates.DesignAmount(total)
		resp.SetupAmount = rates.SetupAmount(total)
	}

	resp.Details = make([]QuotationDetailResponse, len(q.Details))
	for i, d := range q.Details {
		resp.Details[i] = QuotationDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			Label:       d.Label,
			Description: d.Description,
			Quantity:    d.Quantity,
			Price:       d.Price,
			ProfitRate:  d.ProfitRate,
			Subtotal:    d.Subtotal,
		}
	}
	return resp
}
