package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tokoadmin/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// GetAll returns products in insertion order.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, cloneProduct(r.products[id]))
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product = cloneProduct(product)
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product with ID %s already exists", product.ID)
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	r.products[product.ID] = cloneProduct(*product)
	r.order = append(r.order, product.ID)
	return nil
}

// Update modifies an existing product. The creation timestamp is kept.
func (r *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneProduct(p models.Product) models.Product {
	if p.Price != nil {
		price := *p.Price
		p.Price = &price
	}
	if p.MainMedia != nil {
		media := *p.MainMedia
		p.MainMedia = &media
	}
	if p.MediaItems != nil {
		p.MediaItems = append([]models.MediaItem(nil), p.MediaItems...)
	}
	return p
}
