package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"wellness-admin/internal/domain"
	"wellness-admin/internal/form"
	"wellness-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExerciseService records the input handed to SaveExercise and returns
// canned results.
type stubExerciseService struct {
	savedID    primitive.ObjectID
	savedInput form.ExerciseInput
	saveResult *domain.Exercise
	saveErr    error
}

func (s *stubExerciseService) SaveExercise(ctx context.Context, id primitive.ObjectID, input form.ExerciseInput) (*domain.Exercise, error) {
	s.savedID = id
	s.savedInput = input
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return s.saveResult, nil
}

func (s *stubExerciseService) GetExerciseByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return nil, service.ErrExerciseNotFound
}

func (s *stubExerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return nil, nil
}

func (s *stubExerciseService) DeleteExercise(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (s *stubExerciseService) GetStats(ctx context.Context, id primitive.ObjectID) (*domain.Stats, error) {
	return nil, service.ErrStatsNotFound
}

func (s *stubExerciseService) UpdateStats(ctx context.Context, stats *domain.Stats) (*domain.Stats, error) {
	return stats, nil
}

func newExerciseRouter(stub *stubExerciseService) *gin.Engine {
	router := gin.New()
	handler := NewExerciseHandler(stub)
	router.POST("/exercises", handler.CreateExercise)
	router.PUT("/exercises/:id", handler.UpdateExercise)
	return router
}

// multipartBody builds a multipart payload from text fields and file parts.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, filename := range files {
		part, err := writer.CreateFormFile(name, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreateExercise_ParsesFormFields(t *testing.T) {
	stub := &stubExerciseService{saveResult: &domain.Exercise{ID: primitive.NewObjectID()}}
	router := newExerciseRouter(stub)

	body, contentType := multipartBody(t,
		map[string]string{
			"visible":              "true",
			"name":                 "Box Breathing",
			"summDescription":      "Four count cycle",
			"category":             "Breathe", // handler lower-cases
			"imageType":            "Single",
			"breathe.inhale":       "4",
			"breathe.hold":         "4",
			"breathe.exhale":       "4",
			"duration":             "",
		},
		map[string]string{"image": "cover.png"},
	)

	req := httptest.NewRequest(http.MethodPost, "/exercises", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, primitive.NilObjectID, stub.savedID)

	in := stub.savedInput
	assert.True(t, in.Visible)
	assert.Equal(t, "Box Breathing", in.Name)
	assert.Equal(t, domain.CategoryBreathe, in.Category)
	assert.Equal(t, domain.ImageTypeSingle, in.ImageType)
	require.NotNil(t, in.Image.Upload)
	assert.Equal(t, "cover.png", in.Image.Upload.Filename)
	assert.Equal(t, []byte("file-bytes"), in.Image.Upload.Data)
	assert.Equal(t, form.Number{Set: true, Value: 4}, in.Breathe.Inhale)
	assert.False(t, in.Duration.Set)
}

func TestUpdateExercise_URLValueIsPassthrough(t *testing.T) {
	id := primitive.NewObjectID()
	stub := &stubExerciseService{saveResult: &domain.Exercise{ID: id}}
	router := newExerciseRouter(stub)

	body, contentType := multipartBody(t,
		map[string]string{
			"visible":         "false",
			"name":            "Morning Calm",
			"summDescription": "A short reset",
			"category":        "meditation",
			"imageType":       "Single",
			"image":           "https://assets.test/media/abc/cover.png",
			"mediaType":       "audio",
			"audioFile":       "https://assets.test/media/abc/calm.mp3",
		},
		nil,
	)

	req := httptest.NewRequest(http.MethodPut, "/exercises/"+id.Hex(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, stub.savedID)

	in := stub.savedInput
	assert.Nil(t, in.Image.Upload)
	assert.Equal(t, "https://assets.test/media/abc/cover.png", in.Image.URL)
	assert.Equal(t, "https://assets.test/media/abc/calm.mp3", in.AudioFile.URL)
}

func TestCreateExercise_ParsesIndexedSlides(t *testing.T) {
	stub := &stubExerciseService{saveResult: &domain.Exercise{ID: primitive.NewObjectID()}}
	router := newExerciseRouter(stub)

	body, contentType := multipartBody(t,
		map[string]string{
			"name":                      "Neck Release",
			"summDescription":           "Three step sequence",
			"category":                  "move",
			"imageType":                 "Single",
			"image":                     "https://assets.test/media/abc/cover.png",
			"mediaType":                 "slideshow",
			"slideshowFiles.0.caption":  "start",
			"slideshowFiles.1.image":    "https://assets.test/media/abc/s2.png",
			"slideshowFiles.1.caption":  "finish",
		},
		map[string]string{"slideshowFiles.0.image": "s1.png"},
	)

	req := httptest.NewRequest(http.MethodPost, "/exercises", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	slides := stub.savedInput.SlideshowFiles
	require.Len(t, slides, 2)
	require.NotNil(t, slides[0].Image.Upload)
	assert.Equal(t, "s1.png", slides[0].Image.Upload.Filename)
	assert.Equal(t, "start", slides[0].Caption)
	assert.Equal(t, "https://assets.test/media/abc/s2.png", slides[1].Image.URL)
	assert.Equal(t, "finish", slides[1].Caption)
}

func TestCreateExercise_ValidationErrorReturnsFieldMap(t *testing.T) {
	stub := &stubExerciseService{
		saveErr: &service.ValidationError{Fields: form.Errors{
			"name":  form.ErrRequired,
			"image": form.ErrRequired,
		}},
	}
	router := newExerciseRouter(stub)

	body, contentType := multipartBody(t, map[string]string{"category": "move"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/exercises", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Validation failed", payload.Error)
	assert.Equal(t, "required", payload.Fields["name"])
	assert.Equal(t, "required", payload.Fields["image"])
}

func TestUpdateExercise_UnknownIDReturns404(t *testing.T) {
	stub := &stubExerciseService{saveErr: service.ErrExerciseNotFound}
	router := newExerciseRouter(stub)

	body, contentType := multipartBody(t, map[string]string{"name": "x"}, nil)
	req := httptest.NewRequest(http.MethodPut, "/exercises/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateExercise_PermissionDeniedRedirectsToSignIn(t *testing.T) {
	stub := &stubExerciseService{saveErr: errors.New("store rejected write: Unauthorized")}
	router := newExerciseRouter(stub)

	body, contentType := multipartBody(t, map[string]string{"name": "x"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/exercises", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, SignInPath, payload["redirect"])
}
