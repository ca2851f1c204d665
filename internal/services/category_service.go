package services

import (
	"context"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/pkg/logging"

	"go.uber.org/zap"
)

// CategoryService exposes the read-only category list.
type CategoryService struct {
	repo repositories.CategoryRepository
	log  *zap.SugaredLogger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, log *zap.SugaredLogger) *CategoryService {
	return &CategoryService{repo: repo, log: logging.OrNop(log)}
}

// ListCategories is used to fill the form selector. Failures are logged and
// leave the selector empty.
func (s *CategoryService) ListCategories(ctx context.Context) []models.Category {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Errorf("Error fetching categories: %v", err)
		return []models.Category{}
	}
	return categories
}
