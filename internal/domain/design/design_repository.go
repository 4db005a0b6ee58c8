package design

import (
	"context"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomDesignRepository defines the interface for design persistence
type CustomDesignRepository interface {
	// FindByID finds a design by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomDesign, error)

	// FindAll finds designs matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CustomDesign, error)

	// FindByProduct finds designs referencing the given product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]CustomDesign, error)

	// Save creates a design; designs are never updated in place
	Save(ctx context.Context, design *CustomDesign) error

	// Delete deletes a design
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts designs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
