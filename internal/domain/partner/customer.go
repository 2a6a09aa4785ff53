package partner

import (
	"strings"
	"time"

	"github.com/scart/backend/internal/domain/shared"
)

// CustomerStatus represents the approval status of a customer record
type CustomerStatus string

const (
	CustomerStatusPending  CustomerStatus = "pending"
	CustomerStatusApproved CustomerStatus = "approved"
	CustomerStatusRejected CustomerStatus = "rejected"
)

// Customer represents a customer master record.
// A customer is created in pending status by a regular user and becomes
// usable for quotations only after an admin approves it. The pending ->
// approved/rejected transition is performed by the store as a conditional
// update; the entity methods below only mirror that transition in memory.
type Customer struct {
	shared.BaseEntity
	Code            string
	Name            string
	NameKana        string
	PostalCode      string
	Address         string
	Phone           string
	TransactionType string
	PaymentTerms    string
	Note            string

	Status            CustomerStatus
	RequestedByUserID *uint
	ApprovedByUserID  *uint
	ApprovedAt        *time.Time
	RejectedAt        *time.Time
	ApprovalComment   *string
}

// NewCustomer creates a new pending customer requested by the given user.
func NewCustomer(name string, requestedByUserID uint) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}

	requester := requestedByUserID
	return &Customer{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              strings.TrimSpace(name),
		Status:            CustomerStatusPending,
		RequestedByUserID: &requester,
	}, nil
}

// Update updates the customer's master data fields.
func (c *Customer) Update(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Approve applies the pending -> approved transition to the in-memory
// entity. Callers must go through the repository's conditional update for
// the durable transition; this only keeps a loaded entity consistent.
func (c *Customer) Approve(actorUserID uint, at time.Time) error {
	if c.Status != CustomerStatusPending {
		return shared.ErrAlreadyProcessed
	}
	actor := actorUserID
	c.Status = CustomerStatusApproved
	c.ApprovedByUserID = &actor
	c.ApprovedAt = &at
	c.RejectedAt = nil
	c.ApprovalComment = nil
	c.UpdatedAt = at
	return nil
}

// Reject applies the pending -> rejected transition to the in-memory entity.
func (c *Customer) Reject(comment string, at time.Time) error {
	if c.Status != CustomerStatusPending {
		return shared.ErrAlreadyProcessed
	}
	c.Status = CustomerStatusRejected
	c.ApprovedByUserID = nil
	c.ApprovedAt = nil
	c.RejectedAt = &at
	c.ApprovalComment = &comment
	c.UpdatedAt = at
	return nil
}

// IsPending returns true if the customer awaits approval
func (c *Customer) IsPending() bool {
	return c.Status == CustomerStatusPending
}

// IsApproved returns true if the customer has been approved
func (c *Customer) IsApproved() bool {
	return c.Status == CustomerStatusApproved
}

// IsRejected returns true if the customer has been rejected
func (c *Customer) IsRejected() bool {
	return c.Status == CustomerStatusRejected
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 255 characters")
	}
	return nil
}
