package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuotation(t *testing.T) {
	t.Run("creates revision zero quotation", func(t *testing.T) {
		q, err := NewQuotation("Acme Industries", "Factory line retrofit")

		require.NoError(t, err)
		assert.Equal(t, 0, q.RevisionNo)
		assert.Nil(t, q.OriginalID)
		assert.True(t, q.DiscountRate.IsZero())
	})

	t.Run("fails with empty company name", func(t *testing.T) {
		q, err := NewQuotation("", "Factory line retrofit")

		assert.Error(t, err)
		assert.Nil(t, q)
	})

	t.Run("fails with empty project name", func(t *testing.T) {
		q, err := NewQuotation("Acme Industries", "  ")

		assert.Error(t, err)
		assert.Nil(t, q)
	})
}

func TestQuotation_NewRevision(t *testing.T) {
	q, err := NewQuotation("Acme Industries", "Factory line retrofit")
	require.NoError(t, err)
	q.ID = 42
	q.EstimatorName = "Tanaka"
	q.DiscountRate = decimal.NewFromInt(5)
	q.Details = []QuotationDetail{
		{Label: "A", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(200)},
		{Label: "B", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(50)},
	}

	rev := q.NewRevision(1)

	assert.Equal(t, 1, rev.RevisionNo)
	require.NotNil(t, rev.OriginalID)
	assert.Equal(t, uint(42), *rev.OriginalID)
	assert.Zero(t, rev.ID)
	assert.Equal(t, q.CompanyName, rev.CompanyName)
	assert.Equal(t, q.EstimatorName, rev.EstimatorName)
	assert.True(t, q.DiscountRate.Equal(rev.DiscountRate))
	require.Len(t, rev.Details, 2)
	assert.Zero(t, rev.Details[0].QuotationID)
	assert.Equal(t, "A", rev.Details[0].Label)

	t.Run("revision of a revision keeps the group anchor", func(t *testing.T) {
		rev.ID = 43
		rev2 := rev.NewRevision(2)

		require.NotNil(t, rev2.OriginalID)
		assert.Equal(t, uint(42), *rev2.OriginalID)
		assert.Equal(t, 2, rev2.RevisionNo)
	})
}

func TestQuotation_GroupID(t *testing.T) {
	q, _ := NewQuotation("Acme Industries", "Retrofit")
	q.ID = 10
	assert.Equal(t, uint(10), q.GroupID())

	anchor := uint(10)
	q.OriginalID = &anchor
	assert.Equal(t, uint(10), q.GroupID())
}

func TestQuotation_Totals(t *testing.T) {
	q, _ := NewQuotation("Acme Industries", "Retrofit")
	q.Details = []QuotationDetail{
		{Subtotal: decimal.NewFromInt(300)},
		{Subtotal: decimal.NewFromInt(700)},
	}

	assert.True(t, q.Total().Equal(decimal.NewFromInt(1000)))

	q.DiscountRate = decimal.NewFromInt(10)
	assert.True(t, q.TotalAfterDiscount().Equal(decimal.NewFromInt(900)))
}

func TestLogicConfig_Amounts(t *testing.T) {
	cfg := &LogicConfig{
		DesignRate: decimal.NewFromInt(15),
		SetupRate:  decimal.NewFromInt(8),
	}
	require.NoError(t, cfg.Validate())

	subtotal := decimal.NewFromInt(1000)
	assert.True(t, cfg.DesignAmount(subtotal).Equal(decimal.NewFromInt(150)))
	assert.True(t, cfg.SetupAmount(subtotal).Equal(decimal.NewFromInt(80)))

	cfg.SetupRate = decimal.NewFromInt(-1)
	assert.Error(t, cfg.Validate())
}
