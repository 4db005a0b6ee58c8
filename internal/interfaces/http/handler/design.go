package handler

import (
	designapp "github.com/casecraft/backend/internal/application/design"
	"github.com/casecraft/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DesignHandler handles saved-design API endpoints. Saved designs freeze
// their selections and quoted price at creation; only the display name can
// change afterwards.
type DesignHandler struct {
	BaseHandler
	designService *designapp.DesignService
}

// NewDesignHandler creates a new DesignHandler
func NewDesignHandler(designService *designapp.DesignService) *DesignHandler {
	return &DesignHandler{
		designService: designService,
	}
}

// Save godoc
// @Summary      Save a customization
// @Description  Persist a customer design with its selections, canvas state and a server-computed quoted price.
// @Tags         designs
// @Accept       json
// @Produce      json
// @Param        request body designapp.SaveDesignRequest true "Design to save"
// @Success      201 {object} dto.Response{data=designapp.DesignResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /designs [post]
func (h *DesignHandler) Save(c *gin.Context) {
	var req designapp.SaveDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	saved, err := h.designService.Save(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, saved)
}

// GetByID godoc
// @Summary      Get design by ID
// @Tags         designs
// @Produce      json
// @Param        id path string true "Design ID" format(uuid)
// @Success      200 {object} dto.Response{data=designapp.DesignResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /designs/{id} [get]
func (h *DesignHandler) GetByID(c *gin.Context) {
	designID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid design ID format")
		return
	}

	saved, err := h.designService.GetByID(c.Request.Context(), designID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, saved)
}

// List godoc
// @Summary      List saved designs
// @Tags         designs
// @Produce      json
// @Param        product_id query string false "Product filter" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]designapp.DesignResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /designs [get]
func (h *DesignHandler) List(c *gin.Context) {
	var filter designapp.DesignListFilter
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

	designs, total, err := h.designService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, designs, total, filter.Page, filter.PageSize)
}

// Rename godoc
// @Summary      Rename a saved design
// @Description  Change the display name. The frozen selections, canvas and quoted price cannot be modified.
// @Tags         designs
// @Accept       json
// @Produce      json
// @Param        id path string true "Design ID" format(uuid)
// @Param        request body designapp.RenameDesignRequest true "New name"
// @Success      200 {object} dto.Response{data=designapp.DesignResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /designs/{id}/rename [post]
func (h *DesignHandler) Rename(c *gin.Context) {
	designID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid design ID format")
		return
	}

	var req designapp.RenameDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	renamed, err := h.designService.Rename(c.Request.Context(), designID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, renamed)
}

// Delete godoc
// @Summary      Delete a saved design
// @Tags         designs
// @Produce      json
// @Param        id path string true "Design ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /designs/{id} [delete]
func (h *DesignHandler) Delete(c *gin.Context) {
	designID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid design ID format")
		return
	}

	if err := h.designService.Delete(c.Request.Context(), designID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
