package design

import (
	"time"

	"github.com/casecraft/backend/internal/domain/design"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaveDesignRequest represents a request to save a customization
type SaveDesignRequest struct {
	Name          string                  `json:"name" binding:"required,min=1,max=200"`
	ProductID     uuid.UUID               `json:"product_id" binding:"required"`
	Selections    map[uuid.UUID]uuid.UUID `json:"selections"`
	SubSelections map[uuid.UUID]string    `json:"sub_selections"`
	Canvas        design.CanvasState      `json:"canvas"`
	PreviewImage  string                  `json:"preview_image"`
	CustomerEmail string                  `json:"customer_email" binding:"omitempty,email"`
}

// RenameDesignRequest represents a request to rename a saved design
type RenameDesignRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// DesignListFilter represents filter options for design list
type DesignListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DesignResponse represents a saved design in API responses
type DesignResponse struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	ProductID     uuid.UUID                `json:"product_id"`
	Selections    design.SelectionSnapshot `json:"selections"`
	Canvas        design.CanvasState       `json:"canvas"`
	PreviewImage  string                   `json:"preview_image,omitempty"`
	QuotedPrice   decimal.Decimal          `json:"quoted_price"`
	CustomerEmail string                   `json:"customer_email,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ToDesignResponse converts a domain CustomDesign to DesignResponse
func ToDesignResponse(d *design.CustomDesign) *DesignResponse {
	return &DesignResponse{
		ID:            d.ID,
		Name:          d.Name,
		ProductID:     d.ProductID,
		Selections:    d.Selections,
		Canvas:        d.Canvas,
		PreviewImage:  d.PreviewImage,
		QuotedPrice:   d.QuotedPrice,
		CustomerEmail: d.CustomerEmail,
		CreatedAt:     d.CreatedAt,
	}
}
