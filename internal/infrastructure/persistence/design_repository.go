package persistence

import (
	"context"
	"errors"

	"github.com/casecraft/backend/internal/domain/design"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure GormCustomDesignRepository implements CustomDesignRepository
var _ design.CustomDesignRepository = (*GormCustomDesignRepository)(nil)

// GormCustomDesignRepository implements CustomDesignRepository using GORM
type GormCustomDesignRepository struct {
	db *gorm.DB
}

// NewGormCustomDesignRepository creates a new GormCustomDesignRepository
func NewGormCustomDesignRepository(db *gorm.DB) *GormCustomDesignRepository {
	return &GormCustomDesignRepository{db: db}
}

// FindByID finds a design by its ID
func (r *GormCustomDesignRepository) FindByID(ctx context.Context, id uuid.UUID) (*design.CustomDesign, error) {
	var d design.CustomDesign
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAll finds designs matching the filter
func (r *GormCustomDesignRepository) FindAll(ctx context.Context, filter shared.Filter) ([]design.CustomDesign, error) {
	var designs []design.CustomDesign
	query := r.applyFilter(r.db.WithContext(ctx).Model(&design.CustomDesign{}), filter)

	if err := query.Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// FindByProduct finds designs for a product
func (r *GormCustomDesignRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]design.CustomDesign, error) {
	var designs []design.CustomDesign
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&design.CustomDesign{}).
			Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// Save creates or updates a design
func (r *GormCustomDesignRepository) Save(ctx context.Context, d *design.CustomDesign) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete deletes a design
func (r *GormCustomDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&design.CustomDesign{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts designs matching the filter
func (r *GormCustomDesignRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&design.CustomDesign{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options including pagination
func (r *GormCustomDesignRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	if offset, limit, ok := filter.Paginate(); ok {
		query = query.Offset(offset).Limit(limit)
	}
	filter.OrderBy = sortColumn(filter.OrderBy, designSortColumns)
	if filter.OrderBy == "" {
		// Most recently saved first
		return query.Order("updated_at DESC")
	}
	return query.Order(filter.OrderClause())
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomDesignRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR customer_email ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "customer_email":
			query = query.Where("customer_email = ?", value)
		}
	}

	return query
}
