package trade

import (
	"context"

	"github.com/scart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LogicConfig is the singleton row holding the cost-estimation rates applied
// to quotation detail subtotals when deriving design and setup amounts.
type LogicConfig struct {
	shared.BaseEntity
	DesignRate decimal.Decimal
	SetupRate  decimal.Decimal
}

// Validate checks the rates are usable percentages.
func (c *LogicConfig) Validate() error {
	if c.DesignRate.IsNegative() || c.SetupRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rates cannot be negative")
	}
	return nil
}

// DesignAmount derives the design cost for a subtotal.
func (c *LogicConfig) DesignAmount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.DesignRate).Div(decimal.NewFromInt(100))
}

// SetupAmount derives the setup cost for a subtotal.
func (c *LogicConfig) SetupAmount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.SetupRate).Div(decimal.NewFromInt(100))
}

// LogicConfigRepository stores the single rates row.
type LogicConfigRepository interface {
	Get(ctx context.Context) (*LogicConfig, error)
	Save(ctx context.Context, config *LogicConfig) error
}
