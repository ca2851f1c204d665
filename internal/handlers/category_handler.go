package handlers

import (
	"context"

	"tokoadmin/internal/models"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryOption is one entry of the form's category selector.
type CategoryOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryHandler serves the category list.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleList)
}

// HandleList returns every category. A failed fetch yields an empty list.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories := h.categoryService.ListCategories(c.UserContext())
	return c.JSON(fiber.Map{
		"categories": categories,
		"options":    categoryOptions(categories),
	})
}

func (h *CategoryHandler) options(ctx context.Context) []CategoryOption {
	return categoryOptions(h.categoryService.ListCategories(ctx))
}

func categoryOptions(categories []models.Category) []CategoryOption {
	out := make([]CategoryOption, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryOption{ID: cat.ID, Label: cat.Label()})
	}
	return out
}
