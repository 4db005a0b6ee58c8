package catalog

import (
	"time"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder *int       `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	SortOrder *int    `json:"sort_order"`
}

// ReorderCategoriesRequest rewrites the display order of one sibling list
type ReorderCategoriesRequest struct {
	ParentID   *uuid.UUID  `json:"parent_id"`
	OrderedIDs []uuid.UUID `json:"ordered_ids" binding:"required,min=1"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	ParentID   *uuid.UUID `json:"parent_id"`
	LayerLevel int        `json:"layer_level"`
	SortOrder  int        `json:"sort_order"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CategoryTreeNode represents a category with its children nested
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// DeleteCategoryResult reports what a cascading category delete touched
type DeleteCategoryResult struct {
	DeletedCategories int   `json:"deleted_categories"`
	DetachedProducts  int64 `json:"detached_products"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	Brand      string           `json:"brand" binding:"max=100"`
	CategoryID *uuid.UUID       `json:"category_id"`
	BasePrice  *decimal.Decimal `json:"base_price"`
	BaseImage  string           `json:"base_image"`
	MaskImage  string           `json:"mask_image"`
	Specs      catalog.Specs    `json:"specs"`
	Tags       []string         `json:"tags"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Brand      *string          `json:"brand" binding:"omitempty,max=100"`
	CategoryID *uuid.UUID       `json:"category_id"`
	BasePrice  *decimal.Decimal `json:"base_price"`
	BaseImage  *string          `json:"base_image"`
	MaskImage  *string          `json:"mask_image"`
	Specs      catalog.Specs    `json:"specs"`
	Tags       []string         `json:"tags"`
}

// DeleteProductImageRequest selects which image columns to clear
type DeleteProductImageRequest struct {
	Target string `json:"target" binding:"required,oneof=base mask all"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	CategoryID *uuid.UUID      `json:"category_id"`
	BasePrice  decimal.Decimal `json:"base_price"`
	BaseImage  string          `json:"base_image"`
	MaskImage  string          `json:"mask_image"`
	Specs      catalog.Specs   `json:"specs"`
	Tags       []string        `json:"tags"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	Brand      string     `form:"brand"`
	CategoryID *uuid.UUID `form:"category_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		ParentID:   c.ParentID,
		LayerLevel: c.LayerLevel,
		SortOrder:  c.SortOrder,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = *ToCategoryResponse(&c)
	}
	return responses
}

// ToCategoryTree converts a domain category tree into response nodes
func ToCategoryTree(tree *catalog.CategoryTree) []CategoryTreeNode {
	return toTreeNodes(tree.Roots)
}

func toTreeNodes(nodes []*catalog.CategoryNode) []CategoryTreeNode {
	result := make([]CategoryTreeNode, len(nodes))
	for i, n := range nodes {
		result[i] = CategoryTreeNode{
			CategoryResponse: *ToCategoryResponse(&n.Category),
			Children:         toTreeNodes(n.Children),
		}
	}
	return result
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		CategoryID: p.CategoryID,
		BasePrice:  p.BasePrice,
		BaseImage:  p.BaseImage,
		MaskImage:  p.MaskImage,
		Specs:      p.Specs,
		Tags:       p.Tags,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Version:    p.Version,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = *ToProductResponse(&p)
	}
	return responses
}
