package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
)

// Fixtures is the seed file layout.
type Fixtures struct {
	Categories []CategoryFixture `yaml:"categories"`
	Products   []ProductFixture  `yaml:"products"`
}

type CategoryFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
}

type ProductFixture struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Price       *float64   `yaml:"price"`
	Description string     `yaml:"description"`
	Category    string     `yaml:"category"`
	MainImage   string     `yaml:"main_image"`
	Images      []string   `yaml:"images"`
	CreatedAt   *time.Time `yaml:"created_at"`
}

// SeedResult counts the records written.
type SeedResult struct {
	Categories int
	Products   int
}

func loadFixtures(path string) (Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("catalogctl: read fixtures: %w", err)
	}
	return parseFixtures(raw)
}

func parseFixtures(raw []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fixtures{}, fmt.Errorf("catalogctl: parse fixtures: %w", err)
	}
	if err := f.validate(); err != nil {
		return Fixtures{}, err
	}
	return f, nil
}

func (f Fixtures) validate() error {
	var errs []error
	for i, p := range f.Products {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("products[%d]: name is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalogctl: invalid fixtures: %w", errors.Join(errs...))
	}
	return nil
}

// Apply writes categories first so products can reference them.
func (f Fixtures) Apply(ctx context.Context, categories repositories.CategoryRepository, products repositories.ProductRepository) (SeedResult, error) {
	var res SeedResult
	for _, c := range f.Categories {
		category := models.Category{ID: c.ID, Name: c.Name, DisplayName: c.DisplayName}
		if err := categories.Create(ctx, &category); err != nil {
			return res, fmt.Errorf("catalogctl: create category %q: %w", c.Name, err)
		}
		res.Categories++
	}
	for _, p := range f.Products {
		product := p.toProduct()
		if err := products.Create(ctx, product); err != nil {
			return res, fmt.Errorf("catalogctl: create product %q: %w", p.Name, err)
		}
		res.Products++
	}
	return res, nil
}

func (p ProductFixture) toProduct() *models.Product {
	form := models.ProductForm{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		CategoryID:       p.Category,
		MainImage:        p.MainImage,
		AdditionalImages: p.Images,
	}
	product := form.ToProduct()
	// ToProduct always sets a price; fixtures may leave it out.
	product.Price = p.Price
	if p.CreatedAt != nil {
		product.CreatedAt = *p.CreatedAt
	}
	return product
}
