package partner

import (
	"context"

	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/scart/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// CustomerService handles customer master data operations
type CustomerService struct {
	db         *gorm.DB
	customers  partner.CustomerRepository
	credits    partner.CustomerCreditRepository
	quotations trade.QuotationRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	db *gorm.DB,
	customers partner.CustomerRepository,
	credits partner.CustomerCreditRepository,
	quotations trade.QuotationRepository,
) *CustomerService {
	return &CustomerService{
		db:         db,
		customers:  customers,
		credits:    credits,
		quotations: quotations,
	}
}

// Create creates a new pending customer requested by the given user.
// The customer and its credit rows are written in one transaction.
func (s *CustomerService) Create(ctx context.Context, requestedByUserID uint, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customers.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateName
	}

	customer, err := partner.NewCustomer(req.Name, requestedByUserID)
	if err != nil {
		return nil, err
	}
	applyMasterFields(customer, req.Code, req.NameKana, req.PostalCode, req.Address, req.Phone, req.TransactionType, req.PaymentTerms, req.Note)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customers := s.customers.WithTx(tx)
		if err := customers.Save(ctx, customer); err != nil {
			return err
		}
		return s.upsertCredits(ctx, tx, customer.ID, req.Credits)
	})
	if err != nil {
		return nil, err
	}

	creditRows, err := s.credits.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer, creditRows), nil
}

// Update updates a customer's master fields and replaces its credit rows
func (s *CustomerService) Update(ctx context.Context, id uint, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.customers.ExistsByName(ctx, req.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateName
	}

	if err := customer.Update(req.Name); err != nil {
		return nil, err
	}
	applyMasterFields(customer, req.Code, req.NameKana, req.PostalCode, req.Address, req.Phone, req.TransactionType, req.PaymentTerms, req.Note)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customers := s.customers.WithTx(tx)
		if err := customers.Save(ctx, customer); err != nil {
			return err
		}
		return s.upsertCredits(ctx, tx, customer.ID, req.Credits)
	})
	if err != nil {
		return nil, err
	}

	creditRows, err := s.credits.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer, creditRows), nil
}

// Get returns one customer with its credit rows
func (s *CustomerService) Get(ctx context.Context, id uint) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	creditRows, err := s.credits.FindByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer, creditRows), nil
}

// List returns customers matching the filter. Non-admin callers only see
// approved customers regardless of the filter they pass.
func (s *CustomerService) List(ctx context.Context, isAdmin bool, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if !isAdmin {
		filter.Filters["status"] = partner.CustomerStatusApproved
	}

	customers, err := s.customers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customers.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = *ToCustomerResponse(&customers[i], nil)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a customer and its credit rows. Deletion is refused while
// any quotation references the customer.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		return err
	}

	quoted, err := s.quotations.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if quoted > 0 {
		return shared.ErrCustomerInUse
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.credits.WithTx(tx).DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		return s.customers.WithTx(tx).Delete(ctx, id)
	})
}

func (s *CustomerService) upsertCredits(ctx context.Context, tx *gorm.DB, customerID uint, inputs []CustomerCreditInput) error {
	credits := s.credits.WithTx(tx)
	for _, in := range inputs {
		credit, err := partner.NewCustomerCredit(customerID, in.FiscalYear)
		if err != nil {
			return err
		}
		credit.SalesAmount = in.SalesAmount
		credit.NetIncome = in.NetIncome
		credit.Equity = in.Equity
		if err := credits.Upsert(ctx, credit); err != nil {
			return err
		}
	}
	return nil
}

func applyMasterFields(c *partner.Customer, code, nameKana, postalCode, address, phone, transactionType, paymentTerms, note string) {
	c.Code = code
	c.NameKana = nameKana
	c.PostalCode = postalCode
	c.Address = address
	c.Phone = phone
	c.TransactionType = transactionType
	c.PaymentTerms = paymentTerms
	c.Note = note
}
