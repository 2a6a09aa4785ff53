package trade

import (
	"context"

	"github.com/scart/backend/internal/domain/catalog"
	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/scart/backend/internal/domain/trade"
)

// QuotationService handles quotation operations.
//
// Creation and reassignment are gated on customer approval: a quotation may
// only reference a customer whose record has been approved.
type QuotationService struct {
	quotations trade.QuotationRepository
	customers  partner.CustomerRepository
	products   catalog.ProductRepository
	rates      trade.LogicConfigRepository
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	quotations trade.QuotationRepository,
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	rates trade.LogicConfigRepository,
) *QuotationService {
	return &QuotationService{
		quotations: quotations,
		customers:  customers,
		products:   products,
		rates:      rates,
	}
}

// Create creates a new revision-0 quotation after the approval gate check
func (s *QuotationService) Create(ctx context.Context, req QuotationRequest) (*QuotationResponse, error) {
	if err := s.checkCustomerGate(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.checkProductRefs(ctx, req.Details); err != nil {
		return nil, err
	}

	quotation, err := trade.NewQuotation(req.CompanyName, req.ProjectName)
	if err != nil {
		return nil, err
	}
	applyHeaderFields(quotation, req)
	quotation.Details = buildDetails(req.Details)

	if err := s.quotations.Save(ctx, quotation); err != nil {
		return nil, err
	}
	return s.respond(ctx, quotation)
}

// Update replaces a quotation's header and detail lines
func (s *QuotationService) Update(ctx context.Context, id uint, req QuotationRequest) (*QuotationResponse, error) {
	quotation, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Re-run the gate only when the customer reference changes.
	if !sameCustomer(quotation.CustomerID, req.CustomerID) {
		if err := s.checkCustomerGate(ctx, req.CustomerID); err != nil {
			return nil, err
		}
	}
	if err := s.checkProductRefs(ctx, req.Details); err != nil {
		return nil, err
	}

	if req.CompanyName == "" || req.ProjectName == "" {
		return nil, shared.ErrInvalidInput
	}
	quotation.CompanyName = req.CompanyName
	quotation.ProjectName = req.ProjectName
	applyHeaderFields(quotation, req)
	quotation.Details = buildDetails(req.Details)

	if err := s.quotations.Save(ctx, quotation); err != nil {
		return nil, err
	}
	return s.respond(ctx, quotation)
}

// Get returns one quotation with derived amounts
func (s *QuotationService) Get(ctx context.Context, id uint) (*QuotationResponse, error) {
	quotation, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, quotation)
}

// List returns quotations matching the filter
func (s *QuotationService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[QuotationResponse], error) {
	quotations, err := s.quotations.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.quotations.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	rates, err := s.rates.Get(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]QuotationResponse, len(quotations))
	for i := range quotations {
		items[i] = *toQuotationResponse(&quotations[i], rates)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// CreateRevision copies a quotation as the next revision of its group
func (s *QuotationService) CreateRevision(ctx context.Context, id uint) (*QuotationResponse, error) {
	source, err := s.quotations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	groupID := source.GroupID()
	maxRevision, err := s.quotations.MaxRevisionNo(ctx, groupID)
	if err != nil {
		return nil, err
	}

	revision := source.NewRevision(maxRevision + 1)
	if err := s.quotations.Save(ctx, revision); err != nil {
		return nil, err
	}
	return s.respond(ctx, revision)
}

// Delete removes a quotation and its lines
func (s *QuotationService) Delete(ctx context.Context, id uint) error {
	return s.quotations.Delete(ctx, id)
}

// GetRates returns the cost-estimation rates
func (s *QuotationService) GetRates(ctx context.Context) (*RatesResponse, error) {
	rates, err := s.rates.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &RatesResponse{DesignRate: rates.DesignRate, SetupRate: rates.SetupRate}, nil
}

// UpdateRates replaces the cost-estimation rates
func (s *QuotationService) UpdateRates(ctx context.Context, req RatesRequest) (*RatesResponse, error) {
	rates, err := s.rates.Get(ctx)
	if err != nil {
		return nil, err
	}
	rates.DesignRate = req.DesignRate
	rates.SetupRate = req.SetupRate
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	if err := s.rates.Save(ctx, rates); err != nil {
		return nil, err
	}
	return &RatesResponse{DesignRate: rates.DesignRate, SetupRate: rates.SetupRate}, nil
}

// checkCustomerGate refuses quotations for customers that are not approved
func (s *QuotationService) checkCustomerGate(ctx context.Context, customerID *uint) error {
	if customerID == nil {
		return nil
	}
	customer, err := s.customers.FindByID(ctx, *customerID)
	if err != nil {
		return err
	}
	if !customer.IsApproved() {
		return shared.ErrCustomerNotApproved
	}
	return nil
}

// checkProductRefs verifies every referenced product exists
func (s *QuotationService) checkProductRefs(ctx context.Context, details []QuotationDetailInput) error {
	ids := make([]uint, 0, len(details))
	seen := make(map[uint]bool)
	for _, d := range details {
		if d.ProductID != nil && !seen[*d.ProductID] {
			seen[*d.ProductID] = true
			ids = append(ids, *d.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(products) != len(ids) {
		return shared.NewDomainError("INVALID_PRODUCT_REF", "A quotation line references a product that does not exist")
	}
	return nil
}

func (s *QuotationService) respond(ctx context.Context, q *trade.Quotation) (*QuotationResponse, error) {
	rates, err := s.rates.Get(ctx)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q, rates), nil
}

func applyHeaderFields(q *trade.Quotation, req QuotationRequest) {
	q.ContactName = req.ContactName
	q.DeliveryDate = req.DeliveryDate
	q.DeliveryTerms = req.DeliveryTerms
	q.PaymentTerms = req.PaymentTerms
	q.ValidUntil = req.ValidUntil
	q.Remarks = req.Remarks
	q.EstimatorName = req.EstimatorName
	q.DiscountRate = req.DiscountRate
	q.CustomerID = req.CustomerID
}

func buildDetails(inputs []QuotationDetailInput) []trade.QuotationDetail {
	details := make([]trade.QuotationDetail, len(inputs))
	for i, in := range inputs {
		details[i] = trade.QuotationDetail{
			ProductID:   in.ProductID,
			Label:       in.Label,
			Description: in.Description,
			Quantity:    in.Quantity,
			Price:       in.Price,
			ProfitRate:  in.ProfitRate,
			Subtotal:    in.Quantity.Mul(in.Price),
		}
	}
	return details
}

func sameCustomer(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
