package repositories

import (
	"context"
	"errors"

	"tokoadmin/internal/models"
)

// Collection names inside the catalog namespace.
const (
	ProductsCollection   = "products"
	CategoriesCollection = "categories"
)

// ErrNotFound is wrapped by every repository when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category data access.
// The admin surface only lists categories; Create exists for seeding.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}
