package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/pkg/logging"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RequiredFieldsMessage is shown inline when the form misses a required field.
const RequiredFieldsMessage = "Please fill in all required fields"

var (
	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDeleteInProgress is returned while another delete of the same product runs.
	ErrDeleteInProgress = errors.New("delete already in progress")
)

// ValidationError lists the form fields that failed the required check.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", RequiredFieldsMessage, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ProductService handles the product list and the product form.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	log       *zap.SugaredLogger

	mu       sync.Mutex
	deleting map[string]struct{}
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *zap.SugaredLogger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		log:       logging.OrNop(log),
		deleting:  make(map[string]struct{}),
	}
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts fetches the full list and applies the name filter. A fetch
// failure is logged and yields an empty list.
func (s *ProductService) ListProducts(ctx context.Context, search string) []models.Product {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Errorf("Error fetching products: %v", err)
		return []models.Product{}
	}
	return FilterByName(products, search)
}

// FilterByName keeps products whose name contains term, ignoring case.
// An empty term keeps everything.
func FilterByName(products []models.Product, term string) []models.Product {
	out := make([]models.Product, 0, len(products))
	needle := strings.ToLower(term)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// RemoveFromList drops the product with id from a list the caller already holds.
func RemoveFromList(products []models.Product, id string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// DeleteProduct deletes a product by its ID. Concurrent deletes of the same
// ID are refused with ErrDeleteInProgress.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if !s.beginDelete(id) {
		return ErrDeleteInProgress
	}
	defer s.endDelete(id)

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Errorf("Error deleting product %s: %v", id, err)
		return err
	}
	publishProductEvent(s.publisher, s.log, EventProductDeleted, &models.Product{ID: id})
	return nil
}

// IsDeleting reports whether a delete of id is in flight.
func (s *ProductService) IsDeleting(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.deleting[id]
	return ok
}

func (s *ProductService) beginDelete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.deleting[id]; busy {
		return false
	}
	s.deleting[id] = struct{}{}
	return true
}

func (s *ProductService) endDelete(id string) {
	s.mu.Lock()
	delete(s.deleting, id)
	s.mu.Unlock()
}

// LoadForm fetches a product and flattens it into form fields.
func (s *ProductService) LoadForm(ctx context.Context, id string) (models.ProductForm, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf("Error fetching product %s: %v", id, err)
		return models.ProductForm{AdditionalImages: []string{}}, err
	}
	return models.FormFromProduct(product), nil
}

// Validate runs the required-field check. A zero price counts as missing.
func (s *ProductService) Validate(form models.ProductForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate product form: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field())
	}
	return &ValidationError{Fields: fields}
}

// SaveProduct validates the form then creates a product (new random ID) when
// form.ID is empty, or updates the product with form.ID otherwise.
func (s *ProductService) SaveProduct(ctx context.Context, form models.ProductForm) (*models.Product, error) {
	if err := s.Validate(form); err != nil {
		return nil, err
	}

	product := form.ToProduct()
	if form.ID == "" {
		if err := s.repo.Create(ctx, product); err != nil {
			s.log.Errorf("Error creating product: %v", err)
			return nil, err
		}
		publishProductEvent(s.publisher, s.log, EventProductCreated, product)
		return product, nil
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.log.Errorf("Error updating product %s: %v", form.ID, err)
		return nil, err
	}
	publishProductEvent(s.publisher, s.log, EventProductUpdated, product)
	return product, nil
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParsePrice coerces form input to a number the way a browser number field
// does: the leading numeric part is used and anything unparsable becomes 0.
func ParsePrice(raw string) float64 {
	match := leadingFloat.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}
