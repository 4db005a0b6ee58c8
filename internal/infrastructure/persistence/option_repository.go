package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure the gorm repositories implement the domain interfaces
var (
	_ catalog.OptionGroupRepository = (*GormOptionGroupRepository)(nil)
	_ catalog.OptionItemRepository  = (*GormOptionItemRepository)(nil)
)

// GormOptionGroupRepository implements OptionGroupRepository using GORM.
// Finders preload items so visibility and pricing can evaluate a group
// without a second round trip.
type GormOptionGroupRepository struct {
	db *gorm.DB
}

// NewGormOptionGroupRepository creates a new GormOptionGroupRepository
func NewGormOptionGroupRepository(db *gorm.DB) *GormOptionGroupRepository {
	return &GormOptionGroupRepository{db: db}
}

// withItems preloads the group's items in stable creation order
func (r *GormOptionGroupRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

// FindByID finds a group (with items) by its ID
func (r *GormOptionGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.OptionGroup, error) {
	var group catalog.OptionGroup
	if err := r.withItems(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindByCode finds a group (with items) by its code
func (r *GormOptionGroupRepository) FindByCode(ctx context.Context, code string) (*catalog.OptionGroup, error) {
	var group catalog.OptionGroup
	if err := r.withItems(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindAll finds groups matching the filter, items attached
func (r *GormOptionGroupRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.OptionGroup, error) {
	var groups []catalog.OptionGroup
	query := r.applyFilter(r.withItems(ctx).Model(&catalog.OptionGroup{}), filter)

	if err := query.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Save creates or updates a group. Items are managed through the item
// repository; gorm association autosave is disabled here so a group save
// never writes item rows as a side effect.
func (r *GormOptionGroupRepository) Save(ctx context.Context, group *catalog.OptionGroup) error {
	return r.db.WithContext(ctx).Omit("Items").Save(group).Error
}

// Delete deletes a group and its items in one transaction
func (r *GormOptionGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.OptionItem{}, "parent_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.OptionGroup{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts groups matching the filter
func (r *GormOptionGroupRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.OptionGroup{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a group with the given code exists
func (r *GormOptionGroupRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.OptionGroup{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options including pagination
func (r *GormOptionGroupRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	if offset, limit, ok := filter.Paginate(); ok {
		query = query.Offset(offset).Limit(limit)
	}
	filter.OrderBy = sortColumn(filter.OrderBy, optionGroupSortColumns)
	if filter.OrderBy == "" {
		// Configurator step order, then position within the step
		return query.Order("(ui_config->>'step')::int ASC, (ui_config->>'sort_order')::int ASC, code ASC")
	}
	return query.Order(filter.OrderClause())
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOptionGroupRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("ui_config->>'category' = ?", value)
		case "step":
			query = query.Where("(ui_config->>'step')::int = ?", value)
		}
	}

	return query
}

// GormOptionItemRepository implements OptionItemRepository using GORM
type GormOptionItemRepository struct {
	db *gorm.DB
}

// NewGormOptionItemRepository creates a new GormOptionItemRepository
func NewGormOptionItemRepository(db *gorm.DB) *GormOptionItemRepository {
	return &GormOptionItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormOptionItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.OptionItem, error) {
	var item catalog.OptionItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByGroup finds all items of a group
func (r *GormOptionItemRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]catalog.OptionItem, error) {
	var items []catalog.OptionItem
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", groupID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormOptionItemRepository) Save(ctx context.Context, item *catalog.OptionItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveBatch persists a batch of items in one statement
func (r *GormOptionItemRepository) SaveBatch(ctx context.Context, items []catalog.OptionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&items).Error
}

// Delete deletes an item
func (r *GormOptionItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.OptionItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
