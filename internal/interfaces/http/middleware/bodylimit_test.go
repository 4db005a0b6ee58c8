package middleware

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadRouter(maxBytes int64, handled *bool) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(maxBytes))
	router.POST("/assets", func(c *gin.Context) {
		if handled != nil {
			*handled = true
		}
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusCreated)
	})
	router.GET("/assets", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("small sticker upload passes through", func(t *testing.T) {
		var buf bytes.Buffer
		form := multipart.NewWriter(&buf)
		require.NoError(t, form.WriteField("type", "sticker"))
		part, err := form.CreateFormFile("file", "flame.png")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("p"), 1024))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		router := newUploadRouter(64*1024, nil)
		req := httptest.NewRequest("POST", "/assets", &buf)
		req.Header.Set("Content-Type", form.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("oversized upload is rejected before the handler runs", func(t *testing.T) {
		handled := false
		router := newUploadRouter(100, &handled)

		req := httptest.NewRequest("POST", "/assets", strings.NewReader(strings.Repeat("x", 500)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.False(t, handled)

		resp := decodeEnvelope(t, w)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeFileTooLarge, resp.Error.Code)
	})

	t.Run("chunked body is cut off at the cap", func(t *testing.T) {
		router := newUploadRouter(100, nil)

		req := httptest.NewRequest("POST", "/assets", strings.NewReader(strings.Repeat("x", 500)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("bodyless requests are untouched", func(t *testing.T) {
		router := newUploadRouter(10, nil)

		req := httptest.NewRequest("GET", "/assets", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
