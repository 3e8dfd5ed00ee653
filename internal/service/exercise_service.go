package service

import (
	"context"
	"errors"
	"log"
	"wellness-admin/internal/domain"
	"wellness-admin/internal/form"
	"wellness-admin/internal/repository"
	"wellness-admin/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrStatsNotFound    = errors.New("statistics not found")
)

// ValidationError carries the per-field error map for a rejected submission.
// No side effects have occurred when it is returned.
type ValidationError struct {
	Fields form.Errors
}

func (e *ValidationError) Error() string {
	return "exercise validation failed"
}

// --- Service Interface ---
type ExerciseService interface {
	// SaveExercise runs the full submission workflow. A nil id creates a new
	// record (shell document + zero stats first, so uploads can be namespaced
	// under the id); an existing id edits the record in place.
	SaveExercise(ctx context.Context, id primitive.ObjectID, input form.ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	DeleteExercise(ctx context.Context, id primitive.ObjectID) error

	GetStats(ctx context.Context, id primitive.ObjectID) (*domain.Stats, error)
	UpdateStats(ctx context.Context, stats *domain.Stats) (*domain.Stats, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	statsRepo    repository.StatsRepository
	assets       storage.AssetStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	statsRepo repository.StatsRepository,
	assets storage.AssetStorage,
) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		statsRepo:    statsRepo,
		assets:       assets,
	}
}

// SaveExercise handles one form submission end to end.
//
// There are no transactional guarantees across the steps: a failure after the
// shell document exists leaves the shell (and any uploaded assets) behind.
// That window is accepted, not reconciled.
func (s *exerciseService) SaveExercise(ctx context.Context, id primitive.ObjectID, input form.ExerciseInput) (*domain.Exercise, error) {
	input.SlideshowFiles = form.ClampSlides(input.SlideshowFiles)

	// 1. Validate. No external call happens for invalid input.
	if errs := form.Validate(input); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	// 2. Slide caption check: every offending index is reported, not just the
	// first. Runs before any network call.
	if domain.MediaTypeApplies(input.Category) && input.MediaType == domain.MediaTypeSlideshow {
		if errs := form.CaptionErrors(input.SlideshowFiles); len(errs) > 0 {
			return nil, &ValidationError{Fields: errs}
		}
	}

	// 3. Ensure identifier. Creating allocates a shell document so uploads can
	// be keyed by a stable id, plus the companion zero-valued stats document.
	if id == primitive.NilObjectID {
		shellID, err := s.exerciseRepo.CreateShell(ctx)
		if err != nil {
			return nil, err
		}
		id = shellID

		if err := s.statsRepo.CreateWithID(ctx, id); err != nil {
			return nil, err
		}
	}

	// 4. Resolve media: pending files are uploaded under the record id,
	// existing URLs pass through untouched, and fields belonging to an
	// unselected media type are skipped even if present (stale form state).
	exercise, err := s.resolveMedia(ctx, id, input)
	if err != nil {
		return nil, err
	}

	// 5. Persist the fully-resolved record.
	exercise.ID = id
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	// Refetch so createdAt and updatedAt come back populated.
	return s.exerciseRepo.GetByID(ctx, id)
}

// resolveMedia turns the validated form input into a persistable record,
// uploading whatever still holds raw bytes.
func (s *exerciseService) resolveMedia(ctx context.Context, id primitive.ObjectID, input form.ExerciseInput) (*domain.Exercise, error) {
	folderKey := id.Hex()

	exercise := &domain.Exercise{
		Visible:         input.Visible,
		Name:            input.Name,
		SummDescription: input.SummDescription,
		FullDescription: input.FullDescription,
		Category:        input.Category,
		Tags:            input.Tags,
		ImageType:       input.ImageType,
	}

	// Exactly one image shape is authoritative, selected by imageType.
	switch input.ImageType {
	case domain.ImageTypeSingle:
		imageURL, err := s.resolveFile(ctx, folderKey, input.Image)
		if err != nil {
			return nil, err
		}
		exercise.Image = imageURL
	case domain.ImageTypeMultiple:
		vertical, err := s.resolveFile(ctx, folderKey, input.MultipleImages.Vertical)
		if err != nil {
			return nil, err
		}
		horizontal, err := s.resolveFile(ctx, folderKey, input.MultipleImages.Horizontal)
		if err != nil {
			return nil, err
		}
		fullscreen, err := s.resolveFile(ctx, folderKey, input.MultipleImages.Fullscreen)
		if err != nil {
			return nil, err
		}
		exercise.MultipleImages = domain.MultipleImages{
			Vertical:   vertical,
			Horizontal: horizontal,
			Fullscreen: fullscreen,
		}
	}

	if domain.MediaTypeApplies(input.Category) {
		exercise.MediaType = input.MediaType
		switch input.MediaType {
		case domain.MediaTypeAudio:
			audioURL, err := s.resolveFile(ctx, folderKey, input.AudioFile)
			if err != nil {
				return nil, err
			}
			exercise.AudioFile = audioURL
		case domain.MediaTypeVideo:
			videoURL, err := s.resolveFile(ctx, folderKey, input.VideoFile)
			if err != nil {
				return nil, err
			}
			exercise.VideoFile = videoURL
		case domain.MediaTypeSlideshow:
			slides, err := s.resolveSlides(ctx, folderKey, input.SlideshowFiles)
			if err != nil {
				return nil, err
			}
			exercise.SlideshowFiles = slides
		}
	}

	if input.Category == domain.CategoryBreathe {
		exercise.Breathe = &domain.BreatheTiming{
			Inhale: input.Breathe.Inhale.Value,
			Hold:   input.Breathe.Hold.Value,
			Exhale: input.Breathe.Exhale.Value,
		}
	}

	if input.Duration.Set {
		duration := input.Duration.Value
		exercise.Duration = &duration
	}

	return exercise, nil
}

// resolveFile uploads a pending file and returns its URL, or passes an
// already-persisted URL through unchanged.
func (s *exerciseService) resolveFile(ctx context.Context, folderKey string, field form.FileField) (string, error) {
	if field.Upload == nil {
		return field.URL, nil
	}
	return s.assets.Upload(ctx, folderKey, field.Upload.Filename, field.Upload.ContentType, field.Upload.Data)
}

// resolveSlides uploads all pending slideshow images as one concurrent batch,
// preserving input order. If any upload fails, the whole batch fails and
// nothing is persisted.
func (s *exerciseService) resolveSlides(ctx context.Context, folderKey string, slides []form.SlideInput) ([]domain.Slide, error) {
	resolved := make([]domain.Slide, len(slides))

	g, gctx := errgroup.WithContext(ctx)
	for i, slide := range slides {
		g.Go(func() error {
			imageURL, err := s.resolveFile(gctx, folderKey, slide.Image)
			if err != nil {
				return err
			}
			resolved[i] = domain.Slide{Image: imageURL, Caption: slide.Caption}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolved, nil
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises retrieves all exercises, newest first.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// DeleteExercise removes the document, its stats, and then its asset folder.
// The document goes first; asset cleanup is best-effort and a failure there
// is logged without rolling anything back, so orphaned files can accumulate.
func (s *exerciseService) DeleteExercise(ctx context.Context, id primitive.ObjectID) error {
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if err := s.statsRepo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("ERROR: Failed to delete stats for exercise %s: %v", id.Hex(), err)
	}

	if err := s.assets.DeleteFolder(ctx, id.Hex()); err != nil {
		log.Printf("ERROR: Failed to delete asset folder for exercise %s: %v", id.Hex(), err)
	}

	return nil
}

// GetStats retrieves the usage counters for one exercise.
func (s *exerciseService) GetStats(ctx context.Context, id primitive.ObjectID) (*domain.Stats, error) {
	stats, err := s.statsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStatsNotFound
		}
		return nil, err
	}
	return stats, nil
}

// UpdateStats overwrites the counter values. Counters are caller-managed.
func (s *exerciseService) UpdateStats(ctx context.Context, stats *domain.Stats) (*domain.Stats, error) {
	if stats.ID == primitive.NilObjectID {
		return nil, errors.New("stats ID is required")
	}

	if err := s.statsRepo.Update(ctx, stats); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStatsNotFound
		}
		return nil, err
	}

	return s.statsRepo.GetByID(ctx, stats.ID)
}
