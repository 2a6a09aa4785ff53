package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/scart/backend/internal/domain/partner"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCustomerRepo creates a repository with mocked DB
func newMockCustomerRepo(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("returns customer when found", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}).
			AddRow(42, "Acme Industries", "pending", now, now)
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1`).
			WithArgs(42, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, uint(42), customer.ID)
		assert.Equal(t, "Acme Industries", customer.Name)
		assert.Equal(t, partner.CustomerStatusPending, customer.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1`).
			WithArgs(7, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), 7)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_ExistsByName(t *testing.T) {
	t.Run("counts matching names", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE name = \$1`).
			WithArgs("Acme Industries").
			WillReturnRows(rows)

		exists, err := repo.ExistsByName(context.Background(), "Acme Industries", 0)

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes the row being updated", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE name = \$1 AND id <> \$2`).
			WithArgs("Acme Industries", 42).
			WillReturnRows(rows)

		exists, err := repo.ExistsByName(context.Background(), "Acme Industries", 42)

		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestMarkApproved_ConditionalTransition verifies the status transition is a
// single guarded UPDATE and that the outcome is read from rows affected.
func TestMarkApproved_ConditionalTransition(t *testing.T) {
	t.Run("wins the transition when row is still pending", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "customers" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		won, err := repo.MarkApproved(context.Background(), 42, 9, time.Now())

		require.NoError(t, err)
		assert.True(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loses when another decision landed first", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		// The guard no longer matches: the row is approved or rejected.
		mock.ExpectExec(`UPDATE "customers" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		won, err := repo.MarkApproved(context.Background(), 42, 9, time.Now())

		require.NoError(t, err)
		assert.False(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loses when the customer does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "customers" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		won, err := repo.MarkApproved(context.Background(), 99999, 9, time.Now())

		require.NoError(t, err)
		assert.False(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "customers" SET`).
			WillReturnError(assert.AnError)

		won, err := repo.MarkApproved(context.Background(), 42, 9, time.Now())

		require.Error(t, err)
		assert.False(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkRejected_ConditionalTransition(t *testing.T) {
	t.Run("wins the transition when row is still pending", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "customers" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		won, err := repo.MarkRejected(context.Background(), 42, "insufficient documents", time.Now())

		require.NoError(t, err)
		assert.True(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loses against a prior approval", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "customers" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		won, err := repo.MarkRejected(context.Background(), 42, "", time.Now())

		require.NoError(t, err)
		assert.False(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "customers" WHERE id = \$1`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 7)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
