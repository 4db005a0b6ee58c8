package catalog

import (
	"time"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UIConfigRequest mirrors the persisted ui_config shape for writes.
// schema_version is server-assigned and never accepted from clients.
type UIConfigRequest struct {
	Step              int        `json:"step" binding:"required,min=1"`
	DisplayType       string     `json:"display_type" binding:"omitempty,oneof=swatch thumbnail dropdown"`
	Category          string     `json:"category" binding:"max=100"`
	Description       string     `json:"description" binding:"max=500"`
	DependsOnGroupID  *uuid.UUID `json:"depends_on_group_id"`
	DependsOnOptionID *uuid.UUID `json:"depends_on_option_id"`
	SortOrder         int        `json:"sort_order"`
	CategorySortOrder int        `json:"category_sort_order"`
}

// ToUIConfig converts the request to the domain value
func (r UIConfigRequest) ToUIConfig() catalog.UIConfig {
	return catalog.UIConfig{
		Step:              r.Step,
		DisplayType:       r.DisplayType,
		Category:          r.Category,
		Description:       r.Description,
		DependsOnGroupID:  r.DependsOnGroupID,
		DependsOnOptionID: r.DependsOnOptionID,
		SortOrder:         r.SortOrder,
		CategorySortOrder: r.CategorySortOrder,
	}
}

// CreateOptionGroupRequest represents a request to create an option group
type CreateOptionGroupRequest struct {
	Code          string                    `json:"code" binding:"required,min=1,max=50"`
	Name          string                    `json:"name" binding:"required,min=1,max=100"`
	PriceModifier *decimal.Decimal          `json:"price_modifier"`
	Thumbnail     string                    `json:"thumbnail"`
	UIConfig      UIConfigRequest           `json:"ui_config" binding:"required"`
	SubAttributes catalog.SubAttributes     `json:"sub_attributes"`
	Items         []CreateOptionItemRequest `json:"items" binding:"dive"`
}

// UpdateOptionGroupRequest represents a request to update an option group
type UpdateOptionGroupRequest struct {
	Name          string                `json:"name" binding:"required,min=1,max=100"`
	PriceModifier *decimal.Decimal      `json:"price_modifier"`
	Thumbnail     string                `json:"thumbnail"`
	UIConfig      UIConfigRequest       `json:"ui_config" binding:"required"`
	SubAttributes catalog.SubAttributes `json:"sub_attributes"`
}

// ReplaceSubAttributesRequest represents a request to replace a group's sub-attribute set
type ReplaceSubAttributesRequest struct {
	SubAttributes catalog.SubAttributes `json:"sub_attributes" binding:"required"`
}

// DuplicateOptionGroupRequest represents a request to duplicate a group
type DuplicateOptionGroupRequest struct {
	Code string `json:"code" binding:"required,min=1,max=50"`
	Name string `json:"name" binding:"max=100"`
}

// CreateOptionItemRequest represents a request to create an option item
type CreateOptionItemRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=100"`
	PriceModifier *decimal.Decimal `json:"price_modifier"`
	ColorHex      string           `json:"color_hex"`
	ImageURL      string           `json:"image_url"`
	RequiredTags  []string         `json:"required_tags"`
}

// UpdateOptionItemRequest represents a request to update an option item
type UpdateOptionItemRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	PriceModifier *decimal.Decimal `json:"price_modifier"`
	ColorHex      *string          `json:"color_hex"`
	ImageURL      *string          `json:"image_url"`
	RequiredTags  []string         `json:"required_tags"`
}

// OptionGroupListFilter represents filter options for group list
type OptionGroupListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OptionItemResponse represents an option item in API responses
type OptionItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ParentID      uuid.UUID       `json:"parent_id"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	ColorHex      string          `json:"color_hex,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	RequiredTags  []string        `json:"required_tags"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OptionGroupResponse represents an option group in API responses
type OptionGroupResponse struct {
	ID            uuid.UUID             `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	PriceModifier decimal.Decimal       `json:"price_modifier"`
	Thumbnail     string                `json:"thumbnail,omitempty"`
	UIConfig      catalog.UIConfig      `json:"ui_config"`
	SubAttributes catalog.SubAttributes `json:"sub_attributes"`
	Items         []OptionItemResponse  `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Version       int                   `json:"version"`
}

// OptionBucketResponse groups visible option groups under a display category
type OptionBucketResponse struct {
	Category string                `json:"category"`
	Groups   []OptionGroupResponse `json:"groups"`
}

// VisibleOptionsRequest carries the customer's current selections
type VisibleOptionsRequest struct {
	Selections map[uuid.UUID]uuid.UUID `json:"selections"`
}

// QuoteRequest asks for the price of a selection set
type QuoteRequest struct {
	Selections    map[uuid.UUID]uuid.UUID `json:"selections"`
	SubSelections map[uuid.UUID]string    `json:"sub_selections"`
}

// QuoteResponse is the computed price breakdown
type QuoteResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	BasePrice decimal.Decimal `json:"base_price"`
	Total     decimal.Decimal `json:"total"`
}

// ToOptionItemResponse converts a domain OptionItem to OptionItemResponse
func ToOptionItemResponse(i *catalog.OptionItem) OptionItemResponse {
	return OptionItemResponse{
		ID:            i.ID,
		ParentID:      i.ParentID,
		Name:          i.Name,
		PriceModifier: i.PriceModifier,
		ColorHex:      i.ColorHex,
		ImageURL:      i.ImageURL,
		RequiredTags:  i.RequiredTags,
		CreatedAt:     i.CreatedAt,
	}
}

// ToOptionGroupResponse converts a domain OptionGroup to OptionGroupResponse
func ToOptionGroupResponse(g *catalog.OptionGroup) *OptionGroupResponse {
	items := make([]OptionItemResponse, len(g.Items))
	for i := range g.Items {
		items[i] = ToOptionItemResponse(&g.Items[i])
	}
	return &OptionGroupResponse{
		ID:            g.ID,
		Code:          g.Code,
		Name:          g.Name,
		PriceModifier: g.PriceModifier,
		Thumbnail:     g.Thumbnail,
		UIConfig:      g.UIConfig,
		SubAttributes: g.SubAttributes,
		Items:         items,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
		Version:       g.Version,
	}
}

// ToOptionBucketResponses converts evaluated buckets into response form
func ToOptionBucketResponses(buckets []catalog.OptionBucket) []OptionBucketResponse {
	responses := make([]OptionBucketResponse, len(buckets))
	for i, b := range buckets {
		groups := make([]OptionGroupResponse, len(b.Groups))
		for j := range b.Groups {
			groups[j] = *ToOptionGroupResponse(&b.Groups[j])
		}
		responses[i] = OptionBucketResponse{Category: b.Category, Groups: groups}
	}
	return responses
}
