package partner

import (
	"time"
)

// ApprovalLogEntry is one append-only audit row written when a customer is
// approved. Rejections are deliberately not logged here; they are tracked on
// the customer record itself.
type ApprovalLogEntry struct {
	ID         uint
	CustomerID uint
	UserID     uint // the requesting user whose account was activated
	ApprovedBy uint // the acting admin
	ApprovedAt time.Time
}

// NewApprovalLogEntry creates an audit entry for a successful approval.
func NewApprovalLogEntry(customerID, userID, approvedBy uint, approvedAt time.Time) *ApprovalLogEntry {
	return &ApprovalLogEntry{
		CustomerID: customerID,
		UserID:     userID,
		ApprovedBy: approvedBy,
		ApprovedAt: approvedAt,
	}
}
