package partner

import (
	"context"

	"gorm.io/gorm"
)

// ApprovalLogRepository is the append-only store for approval audit entries.
// No update or delete operations are exposed; entries are retained
// indefinitely.
type ApprovalLogRepository interface {
	// WithTx returns a repository bound to the given transaction. Append
	// must run in the same transaction as the status transition that
	// triggered it.
	WithTx(tx *gorm.DB) ApprovalLogRepository

	Append(ctx context.Context, entry *ApprovalLogEntry) error

	// HistoryByCustomer returns all entries for a customer, newest first.
	HistoryByCustomer(ctx context.Context, customerID uint) ([]ApprovalLogEntry, error)

	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
}
