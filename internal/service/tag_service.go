package service

import (
	"context"
	"errors"
	"strings"
	"wellness-admin/internal/domain"
	"wellness-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTagNotFound         = errors.New("tag not found")
	ErrTagValidationFailed = errors.New("tag name cannot be empty")
)

// --- Service Interface ---
type TagService interface {
	CreateTag(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	RenameTag(ctx context.Context, id primitive.ObjectID, name string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

// tagService implements the TagService interface.
type tagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new instance of tagService.
func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// CreateTag adds a new tag. Surrounding whitespace is not meaningful.
func (s *tagService) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagValidationFailed
	}

	tag := &domain.Tag{Name: name}
	tagID, err := s.tagRepo.Create(ctx, tag)
	if err != nil {
		return nil, err
	}
	return s.tagRepo.GetByID(ctx, tagID)
}

// ListTags retrieves all tags, newest first.
func (s *tagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tagRepo.List(ctx)
}

// RenameTag changes a tag's name. Exercises referencing the old name are not
// rewritten.
func (s *tagService) RenameTag(ctx context.Context, id primitive.ObjectID, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagValidationFailed
	}

	if err := s.tagRepo.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return s.tagRepo.GetByID(ctx, id)
}

// DeleteTag removes a tag.
func (s *tagService) DeleteTag(ctx context.Context, id primitive.ObjectID) error {
	err := s.tagRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return nil
}
