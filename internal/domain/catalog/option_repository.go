package catalog

import (
	"context"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OptionGroupRepository defines the interface for option group persistence.
// Finders load groups with their items attached.
type OptionGroupRepository interface {
	// FindByID finds a group (with items) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*OptionGroup, error)

	// FindByCode finds a group (with items) by its code
	FindByCode(ctx context.Context, code string) (*OptionGroup, error)

	// FindAll finds groups matching the filter, items attached
	FindAll(ctx context.Context, filter shared.Filter) ([]OptionGroup, error)

	// Save creates or updates a group (items are managed separately)
	Save(ctx context.Context, group *OptionGroup) error

	// Delete deletes a group and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts groups matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a group with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// OptionItemRepository defines the interface for option item persistence
type OptionItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*OptionItem, error)

	// FindByGroup finds all items of a group
	FindByGroup(ctx context.Context, groupID uuid.UUID) ([]OptionItem, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *OptionItem) error

	// SaveBatch persists a batch of items in one statement
	SaveBatch(ctx context.Context, items []OptionItem) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error
}
