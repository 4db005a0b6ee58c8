package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxCategoryDepth is the maximum depth of the category hierarchy
const MaxCategoryDepth = 3

// Category represents a product category.
// Categories form a tree of at most MaxCategoryDepth levels; LayerLevel is
// 1-based (a root category has LayerLevel 1).
type Category struct {
	shared.BaseAggregateRoot
	Name       string     `gorm:"type:varchar(100);not null"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index"`
	Path       string     `gorm:"type:varchar(500);not null;index"` // Materialized path for subtree queries
	LayerLevel int        `gorm:"not null;default:1"`
	SortOrder  int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "product_categories"
}

// NewCategory creates a new root category
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		LayerLevel:        1,
	}
	// Root category path is just the ID
	category.Path = category.ID.String()

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// NewChildCategory creates a new child category under a parent
func NewChildCategory(name string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}

	if parent.LayerLevel >= MaxCategoryDepth {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", fmt.Sprintf("Category depth cannot exceed %d levels", MaxCategoryDepth))
	}

	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ParentID:          &parent.ID,
		LayerLevel:        parent.LayerLevel + 1,
	}
	category.Path = parent.Path + "/" + category.ID.String()

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// SetSortOrder sets the display order of the category among its siblings
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsAncestorOf returns true if this category is an ancestor of the given category
func (c *Category) IsAncestorOf(other *Category) bool {
	if other == nil || other.Path == "" {
		return false
	}
	return strings.HasPrefix(other.Path, c.Path+"/")
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
