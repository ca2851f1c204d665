package repositories

import (
	"context"
	"errors"
	"fmt"

	"tokoadmin/internal/metrics"
	"tokoadmin/internal/models"
	"tokoadmin/pkg/crudclient"

	"github.com/google/uuid"
)

// CrudService is the subset of the remote CRUD client the repositories use.
type CrudService interface {
	GetAll(ctx context.Context, collection string, out any) error
	GetByID(ctx context.Context, collection, id string, out any) error
	Create(ctx context.Context, collection string, record any, out any) error
	Update(ctx context.Context, collection, id string, record any, out any) error
	Delete(ctx context.Context, collection, id string) error
}

// RemoteProductRepository stores products in the remote catalog service.
type RemoteProductRepository struct {
	crud CrudService
}

// NewRemoteProductRepository creates a new instance of RemoteProductRepository.
func NewRemoteProductRepository(crud CrudService) *RemoteProductRepository {
	return &RemoteProductRepository{crud: crud}
}

// GetAll lists the whole products collection.
func (r *RemoteProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.crud.GetAll(ctx, ProductsCollection, &products)
	metrics.ObserveStoreCall(ProductsCollection, "get_all", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID fetches a single product.
func (r *RemoteProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.crud.GetByID(ctx, ProductsCollection, id, &product)
	metrics.ObserveStoreCall(ProductsCollection, "get_by_id", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, remoteErr(err))
	}
	return &product, nil
}

// Create stores a new product under a freshly generated identifier.
func (r *RemoteProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	var stored models.Product
	err := r.crud.Create(ctx, ProductsCollection, product, &stored)
	metrics.ObserveStoreCall(ProductsCollection, "create", err)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	mergeStored(product, &stored)
	return nil
}

// Update replaces an existing product.
func (r *RemoteProductRepository) Update(ctx context.Context, product *models.Product) error {
	var stored models.Product
	err := r.crud.Update(ctx, ProductsCollection, product.ID, product, &stored)
	metrics.ObserveStoreCall(ProductsCollection, "update", err)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, remoteErr(err))
	}
	mergeStored(product, &stored)
	return nil
}

// Delete removes a product.
func (r *RemoteProductRepository) Delete(ctx context.Context, id string) error {
	err := r.crud.Delete(ctx, ProductsCollection, id)
	metrics.ObserveStoreCall(ProductsCollection, "delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, remoteErr(err))
	}
	return nil
}

// RemoteCategoryRepository reads categories from the remote catalog service.
type RemoteCategoryRepository struct {
	crud CrudService
}

// NewRemoteCategoryRepository creates a new instance of RemoteCategoryRepository.
func NewRemoteCategoryRepository(crud CrudService) *RemoteCategoryRepository {
	return &RemoteCategoryRepository{crud: crud}
}

// GetAll lists the whole categories collection.
func (r *RemoteCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.crud.GetAll(ctx, CategoriesCollection, &categories)
	metrics.ObserveStoreCall(CategoriesCollection, "get_all", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// Create stores a new category.
func (r *RemoteCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	err := r.crud.Create(ctx, CategoriesCollection, category, nil)
	metrics.ObserveStoreCall(CategoriesCollection, "create", err)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// mergeStored copies server assigned timestamps back onto the caller's record.
func mergeStored(product, stored *models.Product) {
	if !stored.CreatedAt.IsZero() {
		product.CreatedAt = stored.CreatedAt
	}
	if !stored.UpdatedAt.IsZero() {
		product.UpdatedAt = stored.UpdatedAt
	}
}

func remoteErr(err error) error {
	if errors.Is(err, crudclient.ErrNotFound) {
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	return err
}
