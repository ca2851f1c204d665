package handlers

import (
	"context"

	"tokoadmin/internal/charts"
	"tokoadmin/internal/services"
	"tokoadmin/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Chart names served under /dashboard/charts.
const (
	ChartCategories = "categories"
	ChartOverview   = "overview"
)

// DashboardHandler serves the summary statistics and their charts.
type DashboardHandler struct {
	dashboardService *services.DashboardService
	renderer         *charts.Renderer
	log              *zap.SugaredLogger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService, renderer *charts.Renderer, log *zap.SugaredLogger) *DashboardHandler {
	if renderer == nil {
		renderer = charts.NewRenderer()
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		renderer:         renderer,
		log:              logging.OrNop(log),
	}
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleStats)
	router.Get("/dashboard/charts/:chart", h.HandleChart)
}

// HandleStats returns the dashboard state. Fetch failures show up as zeros.
func (h *DashboardHandler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.state(c.UserContext()))
}

// HandleChart renders one dashboard chart as an HTML page.
func (h *DashboardHandler) HandleChart(c *fiber.Ctx) error {
	stats := h.dashboardService.Stats(c.UserContext())

	var (
		page string
		err  error
	)
	switch c.Params("chart") {
	case ChartCategories:
		page, err = h.renderer.CategoryBar(stats.CategoryCounts)
	case ChartOverview:
		page, err = h.renderer.Overview(stats)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Chart not found",
		})
	}
	if err != nil {
		h.log.Errorf("Error rendering chart %s: %v", c.Params("chart"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to render chart",
			"error":   err.Error(),
		})
	}

	c.Type("html")
	return c.SendString(page)
}

func (h *DashboardHandler) state(ctx context.Context) fiber.Map {
	return fiber.Map{
		"stats": h.dashboardService.Stats(ctx),
		"charts": fiber.Map{
			ChartCategories: AdminBasePath + "/dashboard/charts/" + ChartCategories,
			ChartOverview:   AdminBasePath + "/dashboard/charts/" + ChartOverview,
		},
	}
}
