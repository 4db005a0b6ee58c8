package handler

import (
	"strings"

	mediaapp "github.com/casecraft/backend/internal/application/media"
	"github.com/casecraft/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AssetHandler handles design-library asset API endpoints
type AssetHandler struct {
	BaseHandler
	assetService *mediaapp.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *mediaapp.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// UploadAssetForm is the multipart form for asset uploads
type UploadAssetForm struct {
	Type     string `form:"type" binding:"required,oneof=sticker background frame"`
	Category string `form:"category" binding:"max=100"`
	Tags     string `form:"tags"`
}

// Upload godoc
// @Summary      Upload a design asset
// @Description  Upload a sticker, background or frame image via multipart form. The file field must be named "file"; tags are comma-separated.
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file"
// @Param        type formData string true "Asset type" Enums(sticker, background, frame)
// @Param        category formData string false "Display category"
// @Param        tags formData string false "Comma-separated tags"
// @Success      201 {object} dto.Response{data=mediaapp.AssetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      415 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /assets [post]
func (h *AssetHandler) Upload(c *gin.Context) {
	var form UploadAssetForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.ErrorWithCode(c, "ERR_VALIDATION_REQUIRED", "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	var tags []string
	for _, tag := range strings.Split(form.Tags, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	asset, err := h.assetService.Upload(c.Request.Context(), mediaapp.UploadAssetRequest{
		Type:         form.Type,
		Category:     form.Category,
		Tags:         tags,
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Body:         file,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, asset)
}

// List godoc
// @Summary      List design assets
// @Tags         assets
// @Produce      json
// @Param        type query string false "Asset type filter" Enums(sticker, background, frame)
// @Param        category query string false "Category filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]mediaapp.AssetResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	var filter mediaapp.AssetListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	assets, total, err := h.assetService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, assets, total, filter.Page, filter.PageSize)
}

// Delete godoc
// @Summary      Delete a design asset
// @Description  Remove the asset record and its stored object.
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	assetID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	if err := h.assetService.Delete(c.Request.Context(), assetID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
