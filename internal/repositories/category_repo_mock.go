package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories []models.Category
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

// GetAll returns all categories in insertion order.
func (r *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Category{}, r.categories...), nil
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	for _, existing := range r.categories {
		if existing.ID == category.ID {
			return fmt.Errorf("category with ID %s already exists", category.ID)
		}
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	r.categories = append(r.categories, *category)
	return nil
}
