package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	catalogapp "github.com/casecraft/backend/internal/application/catalog"
	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupStorefrontRouter(productRepo *MockProductRepository, groupRepo *MockOptionGroupRepository) *gin.Engine {
	svc := catalogapp.NewOptionService(groupRepo, new(MockOptionItemRepository), productRepo, nil)
	h := NewStorefrontHandler(svc, nil)

	router := gin.New()
	router.GET("/storefront/products/:id/options", h.GetOptions)
	router.POST("/storefront/products/:id/quote", h.Quote)
	return router
}

func TestParseSelections(t *testing.T) {
	groupID := uuid.New()
	itemID := uuid.New()

	t.Run("empty string yields empty map", func(t *testing.T) {
		selections, err := parseSelections("")
		require.NoError(t, err)
		assert.Empty(t, selections)
	})

	t.Run("single pair", func(t *testing.T) {
		selections, err := parseSelections(groupID.String() + ":" + itemID.String())
		require.NoError(t, err)
		assert.Equal(t, itemID, selections[groupID])
	})

	t.Run("multiple pairs with whitespace", func(t *testing.T) {
		otherGroup := uuid.New()
		otherItem := uuid.New()
		raw := fmt.Sprintf("%s:%s, %s : %s", groupID, itemID, otherGroup, otherItem)

		selections, err := parseSelections(raw)
		require.NoError(t, err)
		require.Len(t, selections, 2)
		assert.Equal(t, itemID, selections[groupID])
		assert.Equal(t, otherItem, selections[otherGroup])
	})

	t.Run("missing colon", func(t *testing.T) {
		_, err := parseSelections(groupID.String())
		assert.Error(t, err)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		_, err := parseSelections(groupID.String() + ":not-a-uuid")
		assert.Error(t, err)
	})
}

func TestStorefrontHandlerGetOptions(t *testing.T) {
	t.Run("returns bucketed options", func(t *testing.T) {
		product, err := catalog.NewProduct("Clear Case iPhone 15", "Apple", decimal.NewFromInt(199))
		require.NoError(t, err)
		group := newHandlerTestGroup(t, "COLOR", "Red", "Blue")

		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		groupRepo := new(MockOptionGroupRepository)
		groupRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.OptionGroup{*group}, nil)

		router := setupStorefrontRouter(productRepo, groupRepo)

		w := performJSON(t, router, http.MethodGet, "/storefront/products/"+product.ID.String()+"/options", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeEnvelope(t, w)
		assert.True(t, resp.Success)

		var buckets []catalogapp.OptionBucketResponse
		require.NoError(t, json.Unmarshal(resp.Data, &buckets))
		require.Len(t, buckets, 1)
		require.Len(t, buckets[0].Groups, 1)
		assert.Equal(t, "COLOR", buckets[0].Groups[0].Code)
		assert.Len(t, buckets[0].Groups[0].Items, 2)
	})

	t.Run("invalid sel parameter", func(t *testing.T) {
		router := setupStorefrontRouter(new(MockProductRepository), new(MockOptionGroupRepository))

		w := performJSON(t, router, http.MethodGet, "/storefront/products/"+uuid.New().String()+"/options?sel=garbage", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		id := uuid.New()
		productRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		router := setupStorefrontRouter(productRepo, new(MockOptionGroupRepository))

		w := performJSON(t, router, http.MethodGet, "/storefront/products/"+id.String()+"/options", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeEnvelope(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestStorefrontHandlerQuote(t *testing.T) {
	t.Run("sums base price and selected modifiers", func(t *testing.T) {
		product, err := catalog.NewProduct("Clear Case iPhone 15", "Apple", decimal.NewFromInt(199))
		require.NoError(t, err)
		group := newHandlerTestGroup(t, "COLOR", "Red")

		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		groupRepo := new(MockOptionGroupRepository)
		groupRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.OptionGroup{*group}, nil)

		router := setupStorefrontRouter(productRepo, groupRepo)

		w := performJSON(t, router, http.MethodPost, "/storefront/products/"+product.ID.String()+"/quote", gin.H{
			"selections": map[string]string{
				group.ID.String(): group.Items[0].ID.String(),
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeEnvelope(t, w)
		assert.True(t, resp.Success)

		var quote catalogapp.QuoteResponse
		require.NoError(t, json.Unmarshal(resp.Data, &quote))
		assert.True(t, quote.BasePrice.Equal(decimal.NewFromInt(199)), "base price %s", quote.BasePrice)
		assert.True(t, quote.Total.Equal(decimal.NewFromInt(299)), "total %s", quote.Total)
	})

	t.Run("unselected groups do not contribute", func(t *testing.T) {
		product, err := catalog.NewProduct("Clear Case iPhone 15", "Apple", decimal.NewFromInt(199))
		require.NoError(t, err)
		group := newHandlerTestGroup(t, "COLOR", "Red")

		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		groupRepo := new(MockOptionGroupRepository)
		groupRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.OptionGroup{*group}, nil)

		router := setupStorefrontRouter(productRepo, groupRepo)

		w := performJSON(t, router, http.MethodPost, "/storefront/products/"+product.ID.String()+"/quote", gin.H{})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeEnvelope(t, w)

		var quote catalogapp.QuoteResponse
		require.NoError(t, json.Unmarshal(resp.Data, &quote))
		assert.True(t, quote.Total.Equal(decimal.NewFromInt(199)), "total %s", quote.Total)
	})
}
