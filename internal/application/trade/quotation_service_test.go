package trade

import (
	"context"
	"testing"

	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/scart/backend/internal/infrastructure/persistence"
	"github.com/scart/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupQuotationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.CustomerModel{},
		&models.ProductModel{},
		&models.QuotationModel{},
		&models.QuotationDetailModel{},
		&models.LogicConfigModel{},
	)
	require.NoError(t, err)

	return db
}

func newQuotationService(t *testing.T, db *gorm.DB) *QuotationService {
	t.Helper()
	return NewQuotationService(
		persistence.NewGormQuotationRepository(db),
		persistence.NewGormCustomerRepository(db),
		persistence.NewGormProductRepository(db),
		persistence.NewGormLogicConfigRepository(db),
	)
}

func seedCustomer(t *testing.T, db *gorm.DB, name string, status partner.CustomerStatus) uint {
	t.Helper()
	customer := &models.CustomerModel{Name: name, Status: status}
	require.NoError(t, db.Create(customer).Error)
	return customer.ID
}

func seedProduct(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	product := &models.ProductModel{
		Name:      name,
		UnitPrice: decimal.NewFromInt(100),
		Cost:      decimal.NewFromInt(60),
	}
	require.NoError(t, db.Create(product).Error)
	return product.ID
}

func TestQuotationService_CustomerGate(t *testing.T) {
	t.Run("allows an approved customer", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)
		customerID := seedCustomer(t, db, "Approved Co", partner.CustomerStatusApproved)

		resp, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Approved Co",
			ProjectName: "Line renewal",
			CustomerID:  &customerID,
		})

		require.NoError(t, err)
		assert.Equal(t, customerID, *resp.CustomerID)
	})

	t.Run("refuses a pending customer", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)
		customerID := seedCustomer(t, db, "Pending Co", partner.CustomerStatusPending)

		_, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Pending Co",
			ProjectName: "Line renewal",
			CustomerID:  &customerID,
		})

		assert.ErrorIs(t, err, shared.ErrCustomerNotApproved)
	})

	t.Run("refuses a rejected customer", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)
		customerID := seedCustomer(t, db, "Rejected Co", partner.CustomerStatusRejected)

		_, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Rejected Co",
			ProjectName: "Line renewal",
			CustomerID:  &customerID,
		})

		assert.ErrorIs(t, err, shared.ErrCustomerNotApproved)
	})

	t.Run("allows a quotation without customer reference", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)

		resp, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Walk-in KK",
			ProjectName: "One-off job",
		})

		require.NoError(t, err)
		assert.Nil(t, resp.CustomerID)
	})

	t.Run("missing customer is not found", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)
		ghost := uint(404)

		_, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Ghost Co",
			ProjectName: "Nothing",
			CustomerID:  &ghost,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("gate re-runs when update changes the customer", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)
		pendingID := seedCustomer(t, db, "Pending Co", partner.CustomerStatusPending)

		created, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Walk-in KK",
			ProjectName: "One-off job",
		})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), created.ID, QuotationRequest{
			CompanyName: "Walk-in KK",
			ProjectName: "One-off job",
			CustomerID:  &pendingID,
		})
		assert.ErrorIs(t, err, shared.ErrCustomerNotApproved)
	})
}

func TestQuotationService_DetailsAndTotals(t *testing.T) {
	t.Run("computes subtotals and totals from lines", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)
		productID := seedProduct(t, db, "Control panel")

		resp, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName:  "Acme Industries",
			ProjectName:  "Panel refresh",
			DiscountRate: decimal.NewFromInt(10),
			Details: []QuotationDetailInput{
				{ProductID: &productID, Label: "Panel", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(300)},
				{Label: "Cabling", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(400)},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Details, 2)
		assert.True(t, resp.Details[0].Subtotal.Equal(decimal.NewFromInt(600)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(1000)))
		assert.True(t, resp.TotalAfterDiscount.Equal(decimal.NewFromInt(900)))
	})

	t.Run("refuses a line referencing a missing product", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)
		ghost := uint(999)

		_, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Acme Industries",
			ProjectName: "Panel refresh",
			Details: []QuotationDetailInput{
				{ProductID: &ghost, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(100)},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT_REF", domainErr.Code)
	})

	t.Run("derives design and setup amounts from configured rates", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)

		_, err := svc.UpdateRates(context.Background(), RatesRequest{
			DesignRate: decimal.NewFromInt(10),
			SetupRate:  decimal.NewFromInt(5),
		})
		require.NoError(t, err)

		resp, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Acme Industries",
			ProjectName: "Panel refresh",
			Details: []QuotationDetailInput{
				{Label: "Work", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1000)},
			},
		})

		require.NoError(t, err)
		assert.True(t, resp.DesignAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.SetupAmount.Equal(decimal.NewFromInt(50)))
	})
}

func TestQuotationService_Revisions(t *testing.T) {
	t.Run("revision copies lines with next revision number", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)

		original, err := svc.Create(context.Background(), QuotationRequest{
			CompanyName: "Acme Industries",
			ProjectName: "Panel refresh",
			Details: []QuotationDetailInput{
				{Label: "Panel", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(300)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, original.RevisionNo)

		rev1, err := svc.CreateRevision(context.Background(), original.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, rev1.RevisionNo)
		require.NotNil(t, rev1.OriginalID)
		assert.Equal(t, original.ID, *rev1.OriginalID)
		require.Len(t, rev1.Details, 1)
		assert.True(t, rev1.Details[0].Subtotal.Equal(decimal.NewFromInt(600)))

		// Revising the revision still anchors to the original group.
		rev2, err := svc.CreateRevision(context.Background(), rev1.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, rev2.RevisionNo)
		assert.Equal(t, original.ID, *rev2.OriginalID)
	})

	t.Run("missing source is not found", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)

		_, err := svc.CreateRevision(context.Background(), 12345)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestQuotationService_Rates(t *testing.T) {
	t.Run("returns zero rates before configuration", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)

		rates, err := svc.GetRates(context.Background())
		require.NoError(t, err)
		assert.True(t, rates.DesignRate.IsZero())
		assert.True(t, rates.SetupRate.IsZero())
	})

	t.Run("round-trips configured rates", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)

		_, err := svc.UpdateRates(context.Background(), RatesRequest{
			DesignRate: decimal.NewFromFloat(12.5),
			SetupRate:  decimal.NewFromInt(3),
		})
		require.NoError(t, err)

		rates, err := svc.GetRates(context.Background())
		require.NoError(t, err)
		assert.True(t, rates.DesignRate.Equal(decimal.NewFromFloat(12.5)))
		assert.True(t, rates.SetupRate.Equal(decimal.NewFromInt(3)))
	})

	t.Run("refuses negative rates", func(t *testing.T) {
		db := setupQuotationTestDB(t)
		svc := newQuotationService(t, db)

		_, err := svc.UpdateRates(context.Background(), RatesRequest{
			DesignRate: decimal.NewFromInt(-1),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RATE", domainErr.Code)
	})
}
