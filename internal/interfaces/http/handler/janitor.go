package handler

import (
	mediaapp "github.com/casecraft/backend/internal/application/media"
	"github.com/casecraft/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// JanitorHandler exposes the orphaned-object scan and purge operations
type JanitorHandler struct {
	BaseHandler
	janitorService *mediaapp.JanitorService
}

// NewJanitorHandler creates a new JanitorHandler
func NewJanitorHandler(janitorService *mediaapp.JanitorService) *JanitorHandler {
	return &JanitorHandler{
		janitorService: janitorService,
	}
}

// Scan godoc
// @Summary      Scan for orphaned objects
// @Description  List every managed bucket and report objects no database row references. Read-only; nothing is deleted.
// @Tags         janitor
// @Produce      json
// @Success      200 {object} dto.Response{data=mediaapp.ScanResult}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/janitor/scan [post]
func (h *JanitorHandler) Scan(c *gin.Context) {
	result, err := h.janitorService.Scan(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Purge godoc
// @Summary      Purge confirmed orphans
// @Description  Delete an explicit list of objects from a prior scan. Best-effort and irreversible; per-object failures are reported, not rolled back.
// @Tags         janitor
// @Accept       json
// @Produce      json
// @Param        request body mediaapp.PurgeRequest true "Objects to delete, per bucket"
// @Success      200 {object} dto.Response{data=mediaapp.PurgeResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/janitor/purge [post]
func (h *JanitorHandler) Purge(c *gin.Context) {
	var req mediaapp.PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.janitorService.Purge(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
