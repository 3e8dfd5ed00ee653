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
	ErrCategoryNotFound         = errors.New("category not found")
	ErrCategoryValidationFailed = errors.New("category label cannot be empty")
)

// --- Service Interface ---
type CategoryService interface {
	CreateCategory(ctx context.Context, label string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	RelabelCategory(ctx context.Context, id primitive.ObjectID, label string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

// categoryService implements the CategoryService interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of categoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory adds a new category. The lower-cased label is what exercises
// store as their category value.
func (s *categoryService) CreateCategory(ctx context.Context, label string) (*domain.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrCategoryValidationFailed
	}

	category := &domain.Category{Label: label}
	categoryID, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, categoryID)
}

// ListCategories retrieves all categories, newest first.
func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// RelabelCategory changes a category's label. Exercises already using the old
// value keep it; deleting or relabeling a category never cascades.
func (s *categoryService) RelabelCategory(ctx context.Context, id primitive.ObjectID, label string) (*domain.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrCategoryValidationFailed
	}

	if err := s.categoryRepo.UpdateLabel(ctx, id, label); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, id)
}

// DeleteCategory removes a category.
func (s *categoryService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
