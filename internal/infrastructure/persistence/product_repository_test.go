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

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "category_id", "brand", "base_price", "base_image", "mask_image"}).
			AddRow(productID, "iPhone 15 Pro Case", categoryID, "Apple", "19.90", "https://cdn.example.com/models/base.png", "")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "iPhone 15 Pro Case", product.Name)
		assert.Equal(t, "Apple", product.Brand)
		assert.Equal(t, "19.9", product.BasePrice.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	t.Run("applies search and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "brand"}).
			AddRow(productID, "Galaxy S24 Case", "Samsung")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE name ILIKE \$1 OR brand ILIKE \$2 ORDER BY name ASC LIMIT .*`).
			WithArgs("%galaxy%", "%galaxy%", 20).
			WillReturnRows(rows)

		products, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     1,
			PageSize: 20,
			Search:   "galaxy",
		})

		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Galaxy S24 Case", products[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("orders by a whitelisted column", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY base_price DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{
			OrderBy:  "base_price",
			OrderDir: "desc",
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hostile order_by degrades to the default ordering", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY name ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{
			OrderBy:  "base_price; DROP TABLE products;--",
			OrderDir: "desc",
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters by brand", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "brand"}).
			AddRow(uuid.New(), "iPhone 15 Case", "Apple")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE brand = \$1 ORDER BY name ASC`).
			WithArgs("Apple").
			WillReturnRows(rows)

		products, err := repo.FindAll(context.Background(), shared.Filter{
			Filters: map[string]interface{}{"brand": "Apple"},
		})

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByCategory(t *testing.T) {
	t.Run("queries all given category ids", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		catA := uuid.New()
		catB := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "category_id"}).
			AddRow(uuid.New(), "Case A", catA).
			AddRow(uuid.New(), "Case B", catB)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE category_id IN \(\$1,\$2\) ORDER BY name ASC`).
			WithArgs(catA, catB).
			WillReturnRows(rows)

		products, err := repo.FindByCategory(context.Background(), []uuid.UUID{catA, catB}, shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty id list short-circuits without querying", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		products, err := repo.FindByCategory(context.Background(), nil, shared.Filter{})

		assert.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("deletes existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no rows affected", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_CountByCategory(t *testing.T) {
	t.Run("counts products referencing the category", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE category_id = \$1`).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByCategory(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
