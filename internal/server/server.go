// Package server wires repositories, services and handlers into the Fiber app.
package server

import (
	"errors"
	"time"

	"tokoadmin/internal/charts"
	"tokoadmin/internal/handlers"
	"tokoadmin/internal/media"
	"tokoadmin/internal/metrics"
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/services"
	"tokoadmin/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds a request body. A product form may carry several
// images, each capped by the media encoder.
const MaxBodyBytes = 4 * media.DefaultMaxBytes

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Store     *repositories.Store
	JWTSecret string
	Policy    services.AccessPolicy
	Encoder   media.Encoder
	Publisher services.EventPublisher
	Log       *zap.SugaredLogger

	// AccessLog enables the per-request log line.
	AccessLog bool
	// UploadDir is served under UploadURLPrefix when both are set.
	UploadDir       string
	UploadURLPrefix string
}

// Server is the assembled application.
type Server struct {
	App  *fiber.App
	Auth *services.AuthService
}

// New builds the Fiber app with every route registered.
func New(deps Deps) *Server {
	log := logging.OrNop(deps.Log)
	policy := deps.Policy
	if policy == nil {
		policy = services.DefaultAdminPolicy()
	}

	// --- Services ---
	authService := services.NewAuthService(deps.Store.Users, deps.JWTSecret, log)
	productService := services.NewProductService(deps.Store.Products, deps.Publisher, log)
	categoryService := services.NewCategoryService(deps.Store.Categories, log)
	dashboardService := services.NewDashboardService(deps.Store.Products, deps.Store.Categories, log)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, policy, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, charts.NewRenderer(), log)
	productHandler := handlers.NewProductHandler(productService, categoryService, deps.Encoder, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminHandler := handlers.NewAdminHandler(dashboardHandler, productHandler)

	app := fiber.New(fiber.Config{
		AppName:      "tokoadmin",
		BodyLimit:    MaxBodyBytes,
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(metrics.Middleware())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "healthy",
			"time":           time.Now().Format(time.RFC3339),
			"catalog_driver": deps.Store.Driver,
			"events":         deps.Publisher != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.UploadDir != "" && deps.UploadURLPrefix != "" {
		app.Static(deps.UploadURLPrefix, deps.UploadDir)
	}

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	// Admin routes: authenticated, then gated by the access policy.
	admin := app.Group(handlers.AdminBasePath,
		middleware.AuthRequired(authService),
		middleware.RequireAdmin(policy),
	)
	adminHandler.RegisterRoutes(admin)
	dashboardHandler.RegisterRoutes(admin)
	productHandler.RegisterRoutes(admin)
	categoryHandler.RegisterRoutes(admin)

	return &Server{App: app, Auth: authService}
}

func errorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Status(code).JSON(fiber.Map{
			"message": utils.StatusMessage(code),
			"error":   err.Error(),
		})
	}
}
