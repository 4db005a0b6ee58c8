package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	mediaapp "github.com/casecraft/backend/internal/application/media"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AIHandler proxies the design tool's image effects. These endpoints predate
// the admin envelope and keep their original flat response shape: the editor
// expects {success, url} and {success, message, errorCode} verbatim.
type AIHandler struct {
	BaseHandler
	aiService *mediaapp.AIService
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(aiService *mediaapp.AIService) *AIHandler {
	return &AIHandler{
		aiService: aiService,
	}
}

// aiURLRequest is the JSON body for already-hosted images
type aiURLRequest struct {
	ImageURL string `json:"imageUrl"`
}

// aiSuccess is the flat success payload
type aiSuccess struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// aiFailure is the flat error payload
type aiFailure struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// Cartoonize godoc
// @Summary      Cartoon-style image effect
// @Description  Accepts a multipart "file" or a JSON body with "imageUrl" and returns the processed image URL in a flat {success, url} payload.
// @Tags         ai
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Success      200 {object} handler.aiSuccess
// @Failure      400 {object} handler.aiFailure
// @Failure      502 {object} handler.aiFailure
// @Router       /ai/cartoon [post]
func (h *AIHandler) Cartoonize(c *gin.Context) {
	h.runEffect(c, h.aiService.Cartoonize)
}

// RemoveBackground godoc
// @Summary      Background removal effect
// @Description  Accepts a multipart "file" or a JSON body with "imageUrl" and returns the processed image URL in a flat {success, url} payload.
// @Tags         ai
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Success      200 {object} handler.aiSuccess
// @Failure      400 {object} handler.aiFailure
// @Failure      502 {object} handler.aiFailure
// @Router       /ai/remove-bg [post]
func (h *AIHandler) RemoveBackground(c *gin.Context) {
	h.runEffect(c, h.aiService.RemoveBackground)
}

func (h *AIHandler) runEffect(c *gin.Context, effect func(context.Context, mediaapp.AIImageRequest) (string, error)) {
	req, closer, ok := h.bindImageRequest(c)
	if !ok {
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	url, err := effect(c.Request.Context(), req)
	if err != nil {
		h.aiError(c, err)
		return
	}

	c.JSON(http.StatusOK, aiSuccess{Success: true, URL: url})
}

// bindImageRequest reads either the multipart file or the JSON imageUrl body
func (h *AIHandler) bindImageRequest(c *gin.Context) (mediaapp.AIImageRequest, io.Closer, bool) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			h.aiError(c, shared.NewDomainError("MISSING_IMAGE", "Provide a file or an imageUrl"))
			return mediaapp.AIImageRequest{}, nil, false
		}
		file, err := fileHeader.Open()
		if err != nil {
			h.aiError(c, shared.NewDomainError("MISSING_IMAGE", "Failed to read uploaded file"))
			return mediaapp.AIImageRequest{}, nil, false
		}
		return mediaapp.AIImageRequest{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        file,
		}, file, true
	}

	var body aiURLRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.ImageURL == "" {
		h.aiError(c, shared.NewDomainError("MISSING_IMAGE", "Provide a file or an imageUrl"))
		return mediaapp.AIImageRequest{}, nil, false
	}
	return mediaapp.AIImageRequest{ImageURL: body.ImageURL}, nil, true
}

// aiError renders the flat error shape, mapping domain codes through the
// shared status table
func (h *AIHandler) aiError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(dto.NormalizeErrorCode(domainErr.Code))
		c.JSON(status, aiFailure{
			Success:   false,
			Message:   domainErr.Message,
			ErrorCode: domainErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, aiFailure{
		Success:   false,
		Message:   "An unexpected error occurred",
		ErrorCode: "INTERNAL_ERROR",
	})
}
