package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockUserRepo(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_Activate(t *testing.T) {
	t.Run("activates an inactive user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "users" SET "is_active"=\$1 .* WHERE id = \$\d+ AND is_active = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Activate(context.Background(), 5)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("is a no-op for an already active user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "users" SET "is_active"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1`).
			WithArgs(5).
			WillReturnRows(rows)

		err := repo.Activate(context.Background(), 5)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found for a missing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepo(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "users" SET "is_active"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = \$1`).
			WithArgs(999).
			WillReturnRows(rows)

		err := repo.Activate(context.Background(), 999)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByLoginID(t *testing.T) {
	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepo(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE login_id = \$1`).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByLoginID(context.Background(), "ghost")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
