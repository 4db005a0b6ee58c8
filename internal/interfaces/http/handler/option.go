package handler

import (
	catalogapp "github.com/casecraft/backend/internal/application/catalog"
	"github.com/casecraft/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OptionHandler handles option group and option item API endpoints
type OptionHandler struct {
	BaseHandler
	optionService *catalogapp.OptionService
}

// NewOptionHandler creates a new OptionHandler
func NewOptionHandler(optionService *catalogapp.OptionService) *OptionHandler {
	return &OptionHandler{
		optionService: optionService,
	}
}

// CreateGroup godoc
// @Summary      Create an option group
// @Description  Create an option group with its UI configuration, optional sub-attributes and initial items.
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateOptionGroupRequest true "Option group creation request"
// @Success      201 {object} dto.Response{data=catalogapp.OptionGroupResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups [post]
func (h *OptionHandler) CreateGroup(c *gin.Context) {
	var req catalogapp.CreateOptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	group, err := h.optionService.CreateGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, group)
}

// GetGroup godoc
// @Summary      Get option group by ID
// @Tags         options
// @Produce      json
// @Param        id path string true "Option Group ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.OptionGroupResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id} [get]
func (h *OptionHandler) GetGroup(c *gin.Context) {
	groupID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid option group ID format")
		return
	}

	group, err := h.optionService.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, group)
}

// ListGroups godoc
// @Summary      List option groups
// @Tags         options
// @Produce      json
// @Param        search query string false "Search by code or name"
// @Param        category query string false "Display category filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.OptionGroupResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups [get]
func (h *OptionHandler) ListGroups(c *gin.Context) {
	var filter catalogapp.OptionGroupListFilter
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

	groups, total, err := h.optionService.ListGroups(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, groups, total, filter.Page, filter.PageSize)
}

// UpdateGroup godoc
// @Summary      Update an option group
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option Group ID" format(uuid)
// @Param        request body catalogapp.UpdateOptionGroupRequest true "Option group update request"
// @Success      200 {object} dto.Response{data=catalogapp.OptionGroupResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id} [put]
func (h *OptionHandler) UpdateGroup(c *gin.Context) {
	groupID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid option group ID format")
		return
	}

	var req catalogapp.UpdateOptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	group, err := h.optionService.UpdateGroup(c.Request.Context(), groupID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, group)
}

// ReplaceSubAttributes godoc
// @Summary      Replace a group's sub-attributes
// @Description  Replace the entire sub-attribute set of an option group. The submitted list becomes the new set.
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option Group ID" format(uuid)
// @Param        request body catalogapp.ReplaceSubAttributesRequest true "New sub-attribute set"
// @Success      200 {object} dto.Response{data=catalogapp.OptionGroupResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id}/sub-attributes [put]
func (h *OptionHandler) ReplaceSubAttributes(c *gin.Context) {
	groupID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid option group ID format")
		return
	}

	var req catalogapp.ReplaceSubAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	group, err := h.optionService.ReplaceSubAttributes(c.Request.Context(), groupID, req.SubAttributes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, group)
}

// DuplicateGroup godoc
// @Summary      Duplicate an option group
// @Description  Copy a group and all of its items under a new unique code.
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        id path string true "Source Option Group ID" format(uuid)
// @Param        request body catalogapp.DuplicateOptionGroupRequest true "Target code and optional name"
// @Success      201 {object} dto.Response{data=catalogapp.OptionGroupResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id}/duplicate [post]
func (h *OptionHandler) DuplicateGroup(c *gin.Context) {
	groupID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid option group ID format")
		return
	}

	var req catalogapp.DuplicateOptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	group, err := h.optionService.Duplicate(c.Request.Context(), groupID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, group)
}

// DeleteGroup godoc
// @Summary      Delete an option group
// @Description  Delete an option group and all of its items.
// @Tags         options
// @Produce      json
// @Param        id path string true "Option Group ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id} [delete]
func (h *OptionHandler) DeleteGroup(c *gin.Context) {
	groupID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid option group ID format")
		return
	}

	if err := h.optionService.DeleteGroup(c.Request.Context(), groupID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddItem godoc
// @Summary      Add an option item to a group
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option Group ID" format(uuid)
// @Param        request body catalogapp.CreateOptionItemRequest true "Option item creation request"
// @Success      201 {object} dto.Response{data=catalogapp.OptionItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id}/items [post]
func (h *OptionHandler) AddItem(c *gin.Context) {
	groupID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid option group ID format")
		return
	}

	var req catalogapp.CreateOptionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.optionService.AddItem(c.Request.Context(), groupID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// UpdateItem godoc
// @Summary      Update an option item
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option Group ID" format(uuid)
// @Param        itemId path string true "Option Item ID" format(uuid)
// @Param        request body catalogapp.UpdateOptionItemRequest true "Option item update request"
// @Success      200 {object} dto.Response{data=catalogapp.OptionItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id}/items/{itemId} [put]
func (h *OptionHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid option item ID format")
		return
	}

	var req catalogapp.UpdateOptionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.optionService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteItem godoc
// @Summary      Delete an option item
// @Tags         options
// @Produce      json
// @Param        id path string true "Option Group ID" format(uuid)
// @Param        itemId path string true "Option Item ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/option-groups/{id}/items/{itemId} [delete]
func (h *OptionHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid option item ID format")
		return
	}

	if err := h.optionService.DeleteItem(c.Request.Context(), itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
