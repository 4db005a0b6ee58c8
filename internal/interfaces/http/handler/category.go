package handler

import (
	catalogapp "github.com/casecraft/backend/internal/application/catalog"
	"github.com/casecraft/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create godoc
// @Summary      Create a new category
// @Description  Create a product category, either at the root or nested under an existing parent (max 3 levels).
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category creation request"
// @Success      201 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, category)
}

// GetByID godoc
// @Summary      Get category by ID
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// GetTree godoc
// @Summary      Get category tree
// @Description  Retrieve all categories as a nested tree, siblings ordered by sort order.
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryTreeNode}
// @Router       /catalog/categories/tree [get]
func (h *CategoryHandler) GetTree(c *gin.Context) {
	tree, err := h.categoryService.GetTree(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tree)
}

// GetChildren godoc
// @Summary      Get children of a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Parent Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories/{id}/children [get]
func (h *CategoryHandler) GetChildren(c *gin.Context) {
	parentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid parent category ID format")
		return
	}

	children, err := h.categoryService.GetChildren(c.Request.Context(), parentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, children)
}

// GetRoots godoc
// @Summary      Get root categories
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Router       /catalog/categories/roots [get]
func (h *CategoryHandler) GetRoots(c *gin.Context) {
	categories, err := h.categoryService.GetRoots(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, categories)
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body catalogapp.UpdateCategoryRequest true "Category update request"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), categoryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// ReorderChildren godoc
// @Summary      Reorder a category's children
// @Description  Rewrite the sort order of the direct children of a category to match the submitted ID list.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Parent Category ID" format(uuid)
// @Param        request body catalogapp.ReorderCategoriesRequest true "Ordered child IDs"
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories/{id}/reorder-children [post]
func (h *CategoryHandler) ReorderChildren(c *gin.Context) {
	parentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid parent category ID format")
		return
	}

	var req catalogapp.ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.ParentID = &parentID

	if err := h.categoryService.Reorder(c.Request.Context(), req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	children, err := h.categoryService.GetChildren(c.Request.Context(), parentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, children)
}

// Delete godoc
// @Summary      Delete a category subtree
// @Description  Delete a category and all of its descendants. Products pointing at deleted categories are detached, not removed.
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.DeleteCategoryResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	result, err := h.categoryService.Delete(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
