package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCustomDesignRepository creates a GormCustomDesignRepository with a mocked SQL connection
func newMockCustomDesignRepository(t *testing.T) (*GormCustomDesignRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCustomDesignRepository(gormDB), mock, mockDB
}

func TestGormCustomDesignRepository_FindByID(t *testing.T) {
	t.Run("finds existing design", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomDesignRepository(t)
		defer mockDB.Close()

		designID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "product_id", "preview_image", "quoted_price", "customer_email"}).
			AddRow(designID, "Birthday Gift", productID, "https://cdn.example.com/design-previews/p.png", "34.90", "ana@example.com")

		mock.ExpectQuery(`SELECT \* FROM "custom_designs" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(designID, 1).
			WillReturnRows(rows)

		d, err := repo.FindByID(context.Background(), designID)

		assert.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "Birthday Gift", d.Name)
		assert.Equal(t, productID, d.ProductID)
		assert.Equal(t, "34.9", d.QuotedPrice.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent design", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomDesignRepository(t)
		defer mockDB.Close()

		designID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "custom_designs" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(designID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		d, err := repo.FindByID(context.Background(), designID)

		assert.Error(t, err)
		assert.Nil(t, d)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomDesignRepository_FindAll(t *testing.T) {
	t.Run("defaults to most recently saved first", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomDesignRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "product_id"}).
			AddRow(uuid.New(), "Newest", uuid.New()).
			AddRow(uuid.New(), "Older", uuid.New())

		mock.ExpectQuery(`SELECT \* FROM "custom_designs" ORDER BY updated_at DESC`).
			WillReturnRows(rows)

		designs, err := repo.FindAll(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, designs, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("searches by name or customer email", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomDesignRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "product_id", "customer_email"}).
			AddRow(uuid.New(), "Gift", uuid.New(), "ana@example.com")

		mock.ExpectQuery(`SELECT \* FROM "custom_designs" WHERE name ILIKE \$1 OR customer_email ILIKE \$2 ORDER BY updated_at DESC`).
			WithArgs("%ana%", "%ana%").
			WillReturnRows(rows)

		designs, err := repo.FindAll(context.Background(), shared.Filter{Search: "ana"})

		assert.NoError(t, err)
		assert.Len(t, designs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomDesignRepository_FindByProduct(t *testing.T) {
	t.Run("scopes to the product", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomDesignRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "product_id"}).
			AddRow(uuid.New(), "Case Draft", productID)

		mock.ExpectQuery(`SELECT \* FROM "custom_designs" WHERE product_id = \$1 ORDER BY updated_at DESC`).
			WithArgs(productID).
			WillReturnRows(rows)

		designs, err := repo.FindByProduct(context.Background(), productID, shared.Filter{})

		assert.NoError(t, err)
		require.Len(t, designs, 1)
		assert.Equal(t, productID, designs[0].ProductID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomDesignRepository_Delete(t *testing.T) {
	t.Run("returns not found when no rows affected", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomDesignRepository(t)
		defer mockDB.Close()

		designID := uuid.New()

		mock.ExpectExec(`DELETE FROM "custom_designs" WHERE id = \$1`).
			WithArgs(designID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), designID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
