package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"wellness-admin/internal/domain"
	"wellness-admin/internal/form"
	"wellness-admin/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upper bound for in-memory multipart parsing; larger parts spill to disk.
const maxUploadMemory = 32 << 20

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID              string                 `json:"id"`
	Visible         bool                   `json:"visible"`
	Name            string                 `json:"name"`
	SummDescription string                 `json:"summDescription"`
	FullDescription string                 `json:"fullDescription,omitempty"`
	Category        string                 `json:"category"`
	Tags            []string               `json:"tags,omitempty"`
	ImageType       domain.ImageType       `json:"imageType"`
	Image           string                 `json:"image,omitempty"`
	MultipleImages  domain.MultipleImages  `json:"multipleImages,omitempty"`
	MediaType       domain.MediaType       `json:"mediaType,omitempty"`
	AudioFile       string                 `json:"audioFile,omitempty"`
	VideoFile       string                 `json:"videoFile,omitempty"`
	SlideshowFiles  []domain.Slide         `json:"slideshowFiles,omitempty"`
	Breathe         *domain.BreatheTiming  `json:"breathe,omitempty"`
	Duration        *float64               `json:"duration,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// StatsResponse is the DTO for returning usage counters.
type StatsResponse struct {
	ID          string `json:"id"`
	Views       int64  `json:"views"`
	Starts      int64  `json:"starts"`
	Completions int64  `json:"completions"`
	Favorites   int64  `json:"favorites"`
}

// UpdateStatsRequest defines the expected JSON for overwriting counters.
type UpdateStatsRequest struct {
	Views       int64 `json:"views" binding:"min=0"`
	Starts      int64 `json:"starts" binding:"min=0"`
	Completions int64 `json:"completions" binding:"min=0"`
	Favorites   int64 `json:"favorites" binding:"min=0"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:              ex.ID.Hex(),
		Visible:         ex.Visible,
		Name:            ex.Name,
		SummDescription: ex.SummDescription,
		FullDescription: ex.FullDescription,
		Category:        ex.Category,
		Tags:            ex.Tags,
		ImageType:       ex.ImageType,
		Image:           ex.Image,
		MultipleImages:  ex.MultipleImages,
		MediaType:       ex.MediaType,
		AudioFile:       ex.AudioFile,
		VideoFile:       ex.VideoFile,
		SlideshowFiles:  ex.SlideshowFiles,
		Breathe:         ex.Breathe,
		Duration:        ex.Duration,
		CreatedAt:       ex.CreatedAt,
		UpdatedAt:       ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to response DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

// MapStatsToResponse converts a domain.Stats to StatsResponse DTO.
func MapStatsToResponse(stats *domain.Stats) StatsResponse {
	if stats == nil {
		return StatsResponse{}
	}
	return StatsResponse{
		ID:          stats.ID.Hex(),
		Views:       stats.Views,
		Starts:      stats.Starts,
		Completions: stats.Completions,
		Favorites:   stats.Favorites,
	}
}

// --- Multipart form parsing ---

// The exercise editor submits multipart/form-data. For every file-valued
// field the same name carries either an uploaded part (new bytes) or a text
// value (the already-persisted URL, passed through unchanged on edit).
// Slideshow entries use indexed names: slideshowFiles.0.image,
// slideshowFiles.0.caption, and so on.
func parseExerciseForm(c *gin.Context) (form.ExerciseInput, error) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		return form.ExerciseInput{}, err
	}
	mf := c.Request.MultipartForm

	input := form.ExerciseInput{
		Visible:         c.PostForm("visible") == "true",
		Name:            c.PostForm("name"),
		SummDescription: c.PostForm("summDescription"),
		FullDescription: c.PostForm("fullDescription"),
		Category:        strings.ToLower(c.PostForm("category")),
		Tags:            c.PostFormArray("tags"),
		ImageType:       domain.ImageType(c.PostForm("imageType")),
		MediaType:       domain.MediaType(c.PostForm("mediaType")),
		Duration:        form.ParseNumber(c.PostForm("duration")),
		Breathe: form.BreatheInput{
			Inhale: form.ParseNumber(c.PostForm("breathe.inhale")),
			Hold:   form.ParseNumber(c.PostForm("breathe.hold")),
			Exhale: form.ParseNumber(c.PostForm("breathe.exhale")),
		},
	}

	var err error
	if input.Image, err = fileField(mf, "image"); err != nil {
		return form.ExerciseInput{}, err
	}
	if input.MultipleImages.Vertical, err = fileField(mf, "multipleImages.vertical"); err != nil {
		return form.ExerciseInput{}, err
	}
	if input.MultipleImages.Horizontal, err = fileField(mf, "multipleImages.horizontal"); err != nil {
		return form.ExerciseInput{}, err
	}
	if input.MultipleImages.Fullscreen, err = fileField(mf, "multipleImages.fullscreen"); err != nil {
		return form.ExerciseInput{}, err
	}
	if input.AudioFile, err = fileField(mf, "audioFile"); err != nil {
		return form.ExerciseInput{}, err
	}
	if input.VideoFile, err = fileField(mf, "videoFile"); err != nil {
		return form.ExerciseInput{}, err
	}

	var slides []form.SlideInput
	for i := 0; ; i++ {
		imageKey := fmt.Sprintf("slideshowFiles.%d.image", i)
		captionKey := fmt.Sprintf("slideshowFiles.%d.caption", i)

		_, hasFile := mf.File[imageKey]
		_, hasURL := mf.Value[imageKey]
		captions, hasCaption := mf.Value[captionKey]
		if !hasFile && !hasURL && !hasCaption {
			break
		}

		slide := form.SlideInput{}
		if slide.Image, err = fileField(mf, imageKey); err != nil {
			return form.ExerciseInput{}, err
		}
		if hasCaption && len(captions) > 0 {
			slide.Caption = captions[0]
		}
		slides = append(slides, slide)
	}
	input.SlideshowFiles = form.ClampSlides(slides)

	return input, nil
}

// fileField resolves one file-valued form field to either pending bytes or a
// persisted URL.
func fileField(mf *multipart.Form, name string) (form.FileField, error) {
	if headers := mf.File[name]; len(headers) > 0 {
		upload, err := readUpload(headers[0])
		if err != nil {
			return form.FileField{}, err
		}
		return form.FileField{Upload: upload}, nil
	}
	if values := mf.Value[name]; len(values) > 0 && values[0] != "" {
		return form.FileField{URL: values[0]}, nil
	}
	return form.FileField{}, nil
}

func readUpload(header *multipart.FileHeader) (*form.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &form.Upload{
		Filename:    filepath.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Accepts the exercise editor form, uploads any attached media, and persists the record.
// @Tags Exercises
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} ExerciseResponse "Exercise created"
// @Failure 400 {object} gin.H "Validation error with per-field details"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	input, err := parseExerciseForm(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not parse form: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.SaveExercise(c.Request.Context(), primitive.NilObjectID, input)
	if err != nil {
		h.respondSaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Update an existing exercise
// @Description Re-runs the editor workflow against an existing record. Untouched file fields keep their URLs without re-upload.
// @Tags Exercises
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse "Exercise updated"
// @Failure 400 {object} gin.H "Validation error with per-field details"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	input, err := parseExerciseForm(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not parse form: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.SaveExercise(c.Request.Context(), id, input)
	if err != nil {
		h.respondSaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) respondSaveError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		respondStoreError(c, err, "Failed to save exercise.")
	}
}

// GetExercise godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			respondStoreError(c, err, "Failed to retrieve exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List all exercises
// @Description Returns all exercises, newest first.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve exercises.")
		return
	}

	if exercises == nil {
		c.JSON(http.StatusOK, []ExerciseResponse{})
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Description Removes the document and its stats, then best-effort deletes the asset folder.
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			respondStoreError(c, err, "Failed to delete exercise.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStats godoc
// @Summary Get usage counters for an exercise
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} StatsResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id}/stats [get]
func (h *ExerciseHandler) GetStats(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	stats, err := h.exerciseService.GetStats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStatsNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			respondStoreError(c, err, "Failed to retrieve statistics.")
		}
		return
	}

	c.JSON(http.StatusOK, MapStatsToResponse(stats))
}

// UpdateStats godoc
// @Summary Overwrite usage counters for an exercise
// @Description Counters are caller-managed; this replaces the stored values.
// @Tags Statistics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param counters body UpdateStatsRequest true "Counter values"
// @Success 200 {object} StatsResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id}/stats [put]
func (h *ExerciseHandler) UpdateStats(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	stats, err := h.exerciseService.UpdateStats(c.Request.Context(), &domain.Stats{
		ID:          id,
		Views:       req.Views,
		Starts:      req.Starts,
		Completions: req.Completions,
		Favorites:   req.Favorites,
	})
	if err != nil {
		if errors.Is(err, service.ErrStatsNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			respondStoreError(c, err, "Failed to update statistics.")
		}
		return
	}

	c.JSON(http.StatusOK, MapStatsToResponse(stats))
}
