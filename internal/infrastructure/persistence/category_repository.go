package persistence

import (
	"context"
	"errors"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll returns every category, ordered by layer_level then sort_order
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Order("layer_level ASC, sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindChildren finds all direct children of a category, in sibling order
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindRoots finds all root categories, in sibling order
func (r *GormCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteSubtree deletes a category together with all of its descendants.
// Products referencing any deleted category are detached (category_id set to
// NULL), not deleted. The whole operation runs in one transaction.
func (r *GormCategoryRepository) DeleteSubtree(ctx context.Context, category *catalog.Category) error {
	pathPrefix := category.Path + "/%"

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`UPDATE products SET category_id = NULL WHERE category_id IN (SELECT id FROM product_categories WHERE path = ? OR path LIKE ?)`,
			category.Path, pathPrefix,
		).Error; err != nil {
			return err
		}

		result := tx.Where("path = ? OR path LIKE ?", category.Path, pathPrefix).
			Delete(&catalog.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ReorderSiblings rewrites sort_order sequentially for the given sibling ids
func (r *GormCategoryRepository) ReorderSiblings(ctx context.Context, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			if err := tx.Model(&catalog.Category{}).
				Where("id = ?", id).
				Update("sort_order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
