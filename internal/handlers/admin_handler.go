package handlers

import (
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler composes the admin page: it reads the navigation state from
// the query string and embeds the selected component's state.
type AdminHandler struct {
	dashboard *DashboardHandler
	products  *ProductHandler
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(dashboard *DashboardHandler, products *ProductHandler) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, products: products}
}

// RegisterRoutes registers the admin page on an already gated router.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandlePage)
}

// HandlePage renders the admin page for ?view=&id=&name=&refresh=.
func (h *AdminHandler) HandlePage(c *fiber.Ctx) error {
	query := queryValues(c)
	state := services.AdminStateFromQuery(query)
	ctx := c.UserContext()

	var data fiber.Map
	switch state.View {
	case services.ViewProducts:
		data = h.products.listState(ctx, query.Get("search"), state.Refresh)
	case services.ViewCreateProduct, services.ViewEditProduct:
		data = h.products.formState(ctx, state)
	default:
		data = h.dashboard.state(ctx)
	}

	var editing fiber.Map
	if state.View == services.ViewEditProduct {
		editing = fiber.Map{"id": state.EditingID, "name": state.EditingName}
	}

	greeting := "Welcome"
	if member, ok := middleware.CurrentMember(c); ok {
		greeting = "Welcome, " + member.DisplayName()
	}

	return c.JSON(fiber.Map{
		"view":     state.View,
		"greeting": greeting,
		"refresh":  state.Refresh,
		"editing":  editing,
		"links": fiber.Map{
			"dashboard":      state.Navigate(services.ViewDashboard).URL(AdminBasePath),
			"products":       state.Navigate(services.ViewProducts).URL(AdminBasePath),
			"create_product": state.Navigate(services.ViewCreateProduct).URL(AdminBasePath),
			"home":           "/",
		},
		"data": data,
	})
}
