package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll returns every category, ordered by layer_level then sort_order
	FindAll(ctx context.Context) ([]Category, error)

	// FindChildren finds all direct children of a category, in sibling order
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// FindRoots finds all root categories, in sibling order
	FindRoots(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// DeleteSubtree deletes a category together with all of its descendants
	DeleteSubtree(ctx context.Context, category *Category) error

	// ReorderSiblings rewrites sort_order sequentially for the given sibling ids
	ReorderSiblings(ctx context.Context, orderedIDs []uuid.UUID) error
}
