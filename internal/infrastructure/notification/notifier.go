package notification

import (
	"context"
	"time"

	"github.com/scart/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StatusChange describes a customer approval decision to be announced to the
// requesting user.
type StatusChange struct {
	CustomerID   uint
	CustomerName string
	NewStatus    string
	ActorUserID  uint
	Recipient    string
	Comment      string
	DecidedAt    time.Time
}

// Notifier delivers status-change notifications. Delivery is best effort:
// implementations report errors for logging but callers never fail the
// originating operation on them.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, change StatusChange) error
}

// LogNotifier writes notifications to the application log. It stands in for
// real delivery channels in development and as the fallback channel.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs deliveries
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

// NotifyStatusChange implements Notifier
func (n *LogNotifier) NotifyStatusChange(_ context.Context, change StatusChange) error {
	n.logger.Info("Customer status changed",
		zap.Uint("customer_id", change.CustomerID),
		zap.String("customer_name", change.CustomerName),
		zap.String("new_status", change.NewStatus),
		zap.Uint("actor_user_id", change.ActorUserID),
		zap.String("recipient", change.Recipient),
		zap.Time("decided_at", change.DecidedAt),
	)
	return nil
}

// New selects a notifier for the configured channel. The email channel has
// no transport yet and falls back to logging.
func New(cfg config.NotificationConfig, logger *zap.Logger) Notifier {
	if !cfg.Enabled {
		return &noopNotifier{}
	}
	switch cfg.Channel {
	case "email":
		// TODO: wire an SMTP sender once the mail relay is provisioned
		return NewLogNotifier(logger)
	default:
		return NewLogNotifier(logger)
	}
}

type noopNotifier struct{}

func (noopNotifier) NotifyStatusChange(context.Context, StatusChange) error { return nil }
