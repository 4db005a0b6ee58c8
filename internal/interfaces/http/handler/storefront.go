package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	catalogapp "github.com/casecraft/backend/internal/application/catalog"
	"github.com/casecraft/backend/internal/infrastructure/cache"
	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/casecraft/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StorefrontHandler serves the public configurator endpoints. Evaluated
// option payloads are cached per product and selection state.
type StorefrontHandler struct {
	BaseHandler
	optionService *catalogapp.OptionService
	catalogCache  *cache.CatalogCache
}

// NewStorefrontHandler creates a new StorefrontHandler. The cache may be nil,
// in which case every request evaluates against the database.
func NewStorefrontHandler(optionService *catalogapp.OptionService, catalogCache *cache.CatalogCache) *StorefrontHandler {
	return &StorefrontHandler{
		optionService: optionService,
		catalogCache:  catalogCache,
	}
}

// parseSelections decodes the sel query parameter. The format is a
// comma-separated list of groupID:itemID pairs.
func parseSelections(raw string) (map[uuid.UUID]uuid.UUID, error) {
	selections := make(map[uuid.UUID]uuid.UUID)
	if raw == "" {
		return selections, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		groupStr, itemStr, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, errInvalidSelection
		}
		groupID, err := uuid.Parse(strings.TrimSpace(groupStr))
		if err != nil {
			return nil, errInvalidSelection
		}
		itemID, err := uuid.Parse(strings.TrimSpace(itemStr))
		if err != nil {
			return nil, errInvalidSelection
		}
		selections[groupID] = itemID
	}
	return selections, nil
}

var errInvalidSelection = &selectionError{}

type selectionError struct{}

func (e *selectionError) Error() string {
	return "sel must be a comma-separated list of groupID:itemID pairs"
}

// GetOptions godoc
// @Summary      Evaluated options for a product
// @Description  Return the option groups visible for the product given the current selection state, grouped by display category and ordered by step. Results are cached per product and selection digest.
// @Tags         storefront
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        sel query string false "Current selections as comma-separated groupID:itemID pairs"
// @Success      200 {object} dto.Response{data=[]catalogapp.OptionBucketResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /storefront/products/{id}/options [get]
func (h *StorefrontHandler) GetOptions(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	selections, err := parseSelections(c.Query("sel"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	key := cache.OptionsKey(productID, selections)
	if h.catalogCache != nil {
		if payload, err := h.catalogCache.GetOptions(c.Request.Context(), key); err == nil && payload != nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	buckets, err := h.optionService.VisibleOptions(c.Request.Context(), productID, catalogapp.VisibleOptionsRequest{
		Selections: selections,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	resp := dto.NewSuccessResponse(buckets)
	if h.catalogCache != nil {
		// Cache write failures degrade to uncached reads
		if payload, err := json.Marshal(resp); err == nil {
			_ = h.catalogCache.SetOptions(c.Request.Context(), key, payload)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Quote godoc
// @Summary      Price a selection set
// @Description  Compute base price plus the modifiers of every selected option item and sub-attribute option.
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.QuoteRequest true "Selections to price"
// @Success      200 {object} dto.Response{data=catalogapp.QuoteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /storefront/products/{id}/quote [post]
func (h *StorefrontHandler) Quote(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	quote, err := h.optionService.Quote(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}
