package catalog

import (
	"context"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds products matching the filter (category, brand, search)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds products in any of the given categories
	FindByCategory(ctx context.Context, categoryIDs []uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCategory counts products referencing the given category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
