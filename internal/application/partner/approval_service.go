package partner

import (
	"context"
	"errors"
	"time"

	"github.com/scart/backend/internal/domain/identity"
	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/scart/backend/internal/infrastructure/notification"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomerApprovalService orchestrates the customer approval workflow.
//
// Approve and Reject both funnel through a single conditional UPDATE guarded
// by status='pending'. Whoever's update matches the row wins the decision;
// every other concurrent caller observes zero rows affected and gets
// ErrAlreadyProcessed. On approval the requesting user's activation and the
// audit append commit in the same transaction as the status flip.
type CustomerApprovalService struct {
	db        *gorm.DB
	customers partner.CustomerRepository
	users     identity.UserRepository
	logs      partner.ApprovalLogRepository
	notifier  notification.Notifier
	logger    *zap.Logger
}

// NewCustomerApprovalService creates a new CustomerApprovalService
func NewCustomerApprovalService(
	db *gorm.DB,
	customers partner.CustomerRepository,
	users identity.UserRepository,
	logs partner.ApprovalLogRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) *CustomerApprovalService {
	return &CustomerApprovalService{
		db:        db,
		customers: customers,
		users:     users,
		logs:      logs,
		notifier:  notifier,
		logger:    logger,
	}
}

// Approve transitions a pending customer to approved, activates the
// requesting user's account and appends the audit entry, all in one
// transaction. The post-commit notification is best effort.
func (s *CustomerApprovalService) Approve(ctx context.Context, customerID, actorUserID uint) (*CustomerResponse, error) {
	var (
		approved  *partner.Customer
		requester *identity.User
	)
	now := time.Now().UTC()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customers := s.customers.WithTx(tx)

		won, err := customers.MarkApproved(ctx, customerID, actorUserID, now)
		if err != nil {
			return err
		}
		if !won {
			// Zero rows: either the customer is gone or another decision
			// landed first. One read tells them apart.
			if _, err := customers.FindByID(ctx, customerID); err != nil {
				return err
			}
			return shared.ErrAlreadyProcessed
		}

		customer, err := customers.FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer.RequestedByUserID == nil {
			return shared.ErrDataIntegrity
		}

		users := s.users.WithTx(tx)
		user, err := users.FindByID(ctx, *customer.RequestedByUserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrDataIntegrity
			}
			return err
		}
		if err := users.Activate(ctx, user.ID); err != nil {
			return err
		}

		entry := partner.NewApprovalLogEntry(customer.ID, user.ID, actorUserID, now)
		if err := s.logs.WithTx(tx).Append(ctx, entry); err != nil {
			return err
		}

		approved = customer
		requester = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, approved, requester, actorUserID, "")

	return ToCustomerResponse(approved, nil), nil
}

// Reject transitions a pending customer to rejected. No audit entry is
// written and no account is activated; the decision lives on the customer
// row itself.
func (s *CustomerApprovalService) Reject(ctx context.Context, customerID, actorUserID uint, comment string) (*CustomerResponse, error) {
	now := time.Now().UTC()

	won, err := s.customers.MarkRejected(ctx, customerID, comment, now)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, shared.ErrAlreadyProcessed
	}

	var requester *identity.User
	if customer.RequestedByUserID != nil {
		if u, err := s.users.FindByID(ctx, *customer.RequestedByUserID); err == nil {
			requester = u
		}
	}
	s.notify(ctx, customer, requester, actorUserID, comment)

	return ToCustomerResponse(customer, nil), nil
}

// History returns the approval audit entries for a customer, newest first,
// with the involved users' login ids resolved.
func (s *CustomerApprovalService) History(ctx context.Context, customerID uint) ([]ApprovalHistoryEntryResponse, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	entries, err := s.logs.HistoryByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(entries)*2)
	seen := make(map[uint]bool)
	for _, e := range entries {
		for _, id := range []uint{e.UserID, e.ApprovedBy} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	loginByID := make(map[uint]string, len(users))
	for _, u := range users {
		loginByID[u.ID] = u.LoginID
	}

	result := make([]ApprovalHistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = ApprovalHistoryEntryResponse{
			ID:                e.ID,
			CustomerID:        e.CustomerID,
			UserID:            e.UserID,
			UserLoginID:       loginByID[e.UserID],
			ApprovedByUserID:  e.ApprovedBy,
			ApprovedByLoginID: loginByID[e.ApprovedBy],
			ApprovedAt:        e.ApprovedAt,
		}
	}
	return result, nil
}

// notify delivers the status-change notification after the decision is
// durable. Failures are logged, never returned.
func (s *CustomerApprovalService) notify(ctx context.Context, customer *partner.Customer, requester *identity.User, actorUserID uint, comment string) {
	recipient := ""
	if requester != nil {
		recipient = requester.LoginID
	}
	change := notification.StatusChange{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		NewStatus:    string(customer.Status),
		ActorUserID:  actorUserID,
		Recipient:    recipient,
		Comment:      comment,
		DecidedAt:    customer.UpdatedAt,
	}
	if err := s.notifier.NotifyStatusChange(ctx, change); err != nil {
		s.logger.Warn("Status-change notification failed",
			zap.Uint("customer_id", customer.ID),
			zap.String("new_status", string(customer.Status)),
			zap.Error(err),
		)
	}
}
