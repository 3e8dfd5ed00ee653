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

// TagHandler holds the tag service dependency.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// --- DTOs ---

// TagRequest defines the expected JSON for creating or renaming a tag.
type TagRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagResponse is the DTO for returning tag details.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapTagToResponse converts a domain.Tag to TagResponse DTO.
func MapTagToResponse(tag *domain.Tag) TagResponse {
	if tag == nil {
		return TagResponse{}
	}
	return TagResponse{
		ID:        tag.ID.Hex(),
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
	}
}

// --- Handler Methods ---

// CreateTag godoc
// @Summary Create a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tag body TagRequest true "Tag name"
// @Success 201 {object} TagResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrTagValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			respondStoreError(c, err, "Failed to create tag.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTagToResponse(tag))
}

// ListTags godoc
// @Summary List all tags
// @Tags Tags
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TagResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve tags.")
		return
	}

	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = MapTagToResponse(&tag)
	}
	c.JSON(http.StatusOK, responses)
}

// RenameTag godoc
// @Summary Rename a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tag ID"
// @Param tag body TagRequest true "New name"
// @Success 200 {object} TagResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /tags/{id} [put]
func (h *TagHandler) RenameTag(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid tag ID format.")
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tag, err := h.tagService.RenameTag(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTagValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			respondStoreError(c, err, "Failed to rename tag.")
		}
		return
	}

	c.JSON(http.StatusOK, MapTagToResponse(tag))
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags Tags
// @Security BearerAuth
// @Param id path string true "Tag ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid tag ID format.")
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			respondStoreError(c, err, "Failed to delete tag.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
