package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createItemPayload struct {
	Name     string `json:"name" binding:"required,max=100"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
	Display  string `json:"display" binding:"omitempty,oneof=swatch thumbnail dropdown"`
}

type listQueryPayload struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func newItemRouter() *gin.Engine {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/items", func(c *gin.Context) {
		var req createItemPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/items", func(c *gin.Context) {
		var req listQueryPayload
		if err := c.ShouldBindQuery(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func detailFields(resp dto.Response) []string {
	fields := make([]string, 0, len(resp.Error.Details))
	for _, d := range resp.Error.Details {
		fields = append(fields, d.Field)
	}
	return fields
}

func TestHandleValidationError(t *testing.T) {
	router := newItemRouter()

	t.Run("field failures carry per-field details", func(t *testing.T) {
		w := postJSON(router, `{"image_url": "not a url", "display": "carousel"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeEnvelope(t, w)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := detailFields(resp)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "image_url")
		assert.Contains(t, fields, "display")
	})

	t.Run("details use wire names, not Go field names", func(t *testing.T) {
		w := postJSON(router, `{}`)

		resp := decodeEnvelope(t, w)
		assert.Contains(t, detailFields(resp), "name")
		assert.NotContains(t, detailFields(resp), "Name")
	})

	t.Run("query filters fall back to form names", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/items?page=-1&order_dir=down", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeEnvelope(t, w)
		fields := detailFields(resp)
		assert.Contains(t, fields, "page")
		assert.Contains(t, fields, "order_dir")
	})

	t.Run("malformed json is reported as unparseable", func(t *testing.T) {
		w := postJSON(router, `{"name": `)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeEnvelope(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("request id rides into the envelope", func(t *testing.T) {
		SetupValidator()
		engine := gin.New()
		engine.POST("/items", func(c *gin.Context) {
			c.Set("request_id", "bind-req-1")
			var req createItemPayload
			if err := c.ShouldBindJSON(&req); err != nil {
				HandleValidationError(c, err)
				return
			}
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("POST", "/items", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		resp := decodeEnvelope(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "bind-req-1", resp.Error.RequestID)
	})
}

func TestFieldMessage(t *testing.T) {
	type quoteInput struct {
		ProductID string   `validate:"required"`
		DesignID  string   `validate:"omitempty,uuid"`
		Target    string   `validate:"oneof=base mask all"`
		Price     float64  `validate:"gt=0"`
		Scale     float64  `validate:"lte=4"`
		Stickers  []string `validate:"max=5"`
		Name      string   `validate:"min=3"`
		Preview   string   `validate:"url"`
		Contact   string   `validate:"email"`
		Coupon    string   `validate:"len=8"`
	}

	input := quoteInput{
		DesignID: "not-a-uuid",
		Target:   "trim",
		Scale:    10,
		Stickers: []string{"a", "b", "c", "d", "e", "f"},
		Name:     "ab",
		Preview:  "not a url",
		Contact:  "nope",
		Coupon:   "short",
	}

	expected := map[string]string{
		"ProductID": "This field is required",
		"DesignID":  "Must be a valid UUID",
		"Target":    "Must be one of: base mask all",
		"Price":     "Must be greater than 0",
		"Scale":     "Must be at most 4",
		"Stickers":  "Must have at most 5 entries",
		"Name":      "Must be at least 3 characters",
		"Preview":   "Must be a valid URL",
		"Contact":   "Must be a valid email address",
		"Coupon":    "Invalid value",
	}

	err := validator.New().Struct(input)
	require.Error(t, err)

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, len(expected))

	for _, e := range fieldErrs {
		assert.Equal(t, expected[e.Field()], fieldMessage(e), "field %s", e.Field())
	}
}
