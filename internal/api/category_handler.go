package api

import (
	"errors"
	"net/http"
	"time"
	"wellness-admin/internal/domain"
	"wellness-admin/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryHandler holds the category service dependency.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// --- DTOs ---

// CategoryRequest defines the expected JSON for creating or relabeling a category.
type CategoryRequest struct {
	Label string `json:"label" binding:"required"`
}

// CategoryResponse is the DTO for returning category details. Value is the
// lower-cased label exercises store as their category.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapCategoryToResponse converts a domain.Category to CategoryResponse DTO.
func MapCategoryToResponse(category *domain.Category) CategoryResponse {
	if category == nil {
		return CategoryResponse{}
	}
	return CategoryResponse{
		ID:        category.ID.Hex(),
		Label:     category.Label,
		Value:     category.Value(),
		CreatedAt: category.CreatedAt,
	}
}

// --- Handler Methods ---

// CreateCategory godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category label"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Label)
	if err != nil {
		if errors.Is(err, service.ErrCategoryValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			respondStoreError(c, err, "Failed to create category.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapCategoryToResponse(category))
}

// ListCategories godoc
// @Summary List all categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve categories.")
		return
	}

	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = MapCategoryToResponse(&category)
	}
	c.JSON(http.StatusOK, responses)
}

// RelabelCategory godoc
// @Summary Relabel a category
// @Description Changes the label only; exercises keep the value they were saved with.
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param category body CategoryRequest true "New label"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /categories/{id} [put]
func (h *CategoryHandler) RelabelCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid category ID format.")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	category, err := h.categoryService.RelabelCategory(c.Request.Context(), id, req.Label)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCategoryValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			respondStoreError(c, err, "Failed to relabel category.")
		}
		return
	}

	c.JSON(http.StatusOK, MapCategoryToResponse(category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description No cascade: exercises using the category value are untouched.
// @Tags Categories
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid category ID format.")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			respondStoreError(c, err, "Failed to delete category.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
