package persistence

import (
	"context"
	"errors"

	"github.com/casecraft/backend/internal/domain/media"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure GormAssetRepository implements AssetRepository
var _ media.AssetRepository = (*GormAssetRepository)(nil)

// GormAssetRepository implements AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByID finds an asset by its ID
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.Asset, error) {
	var asset media.Asset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// FindAll finds assets matching the filter
func (r *GormAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]media.Asset, error) {
	var assets []media.Asset
	query := r.applyFilter(r.db.WithContext(ctx).Model(&media.Asset{}), filter)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByFileName finds an asset by its stored file name within a bucket
func (r *GormAssetRepository) FindByFileName(ctx context.Context, bucket, fileName string) (*media.Asset, error) {
	var asset media.Asset
	if err := r.db.WithContext(ctx).
		Where("bucket = ? AND file_name = ?", bucket, fileName).
		First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// Save creates or updates an asset
func (r *GormAssetRepository) Save(ctx context.Context, asset *media.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete deletes an asset
func (r *GormAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&media.Asset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts assets matching the filter
func (r *GormAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&media.Asset{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination
func (r *GormAssetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	if offset, limit, ok := filter.Paginate(); ok {
		query = query.Offset(offset).Limit(limit)
	}
	filter.OrderBy = sortColumn(filter.OrderBy, assetSortColumns)
	return query.Order(filter.OrderClause())
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAssetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("original_name ILIKE ? OR category ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "bucket":
			query = query.Where("bucket = ?", value)
		}
	}

	return query
}
