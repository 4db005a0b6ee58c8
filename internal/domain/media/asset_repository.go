package media

import (
	"context"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssetRepository defines the interface for asset persistence
type AssetRepository interface {
	// FindByID finds an asset by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// FindAll finds assets matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Asset, error)

	// FindByFileName finds an asset by stored filename within a bucket
	FindByFileName(ctx context.Context, bucket, fileName string) (*Asset, error)

	// Save creates or updates an asset record
	Save(ctx context.Context, asset *Asset) error

	// Delete deletes an asset record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts assets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReferenceScanner collects every file URL the database still references,
// across all tables and JSONB columns that can hold one.
type ReferenceScanner interface {
	// CollectReferences returns the set of referenced filenames
	CollectReferences(ctx context.Context) (ReferenceSet, error)
}
