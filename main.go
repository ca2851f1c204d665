package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tokoadmin/internal/config"
	"tokoadmin/internal/media"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/server"
	"tokoadmin/internal/services"
	"tokoadmin/pkg/logging"
	"tokoadmin/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogProduction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.UsesDefaultSecret() {
		log.Warn("JWT_SECRET is the development default; anyone can mint admin tokens. Set JWT_SECRET before exposing this service")
	}

	if err := run(cfg, log); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	ctx := context.Background()

	// --- Catalog store ---
	store, err := repositories.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer store.Close()
	log.Infof("Catalog store ready (driver: %s)", store.Driver)

	encoder, err := media.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configure media: %w", err)
	}

	// --- Events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			return fmt.Errorf("initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		log.Infof("Starting RabbitMQ consumer for %s...", rabbitmq.CatalogQueue)
		if err := mqClient.ConsumeCatalogEvents(catalogEventHandler(log)); err != nil {
			log.Errorf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Info("RabbitMQ disabled; catalog events are not published")
	}

	deps := server.Deps{
		Store:     store,
		JWTSecret: cfg.JWTSecret,
		Policy:    services.StaticAdminPolicy{Titles: cfg.AdminTitles, Emails: cfg.AdminEmails},
		Encoder:   encoder,
		Publisher: publisher,
		Log:       log,
		AccessLog: true,
	}
	if cfg.MediaDriver == "local" {
		deps.UploadDir = cfg.LocalUploadDir
		deps.UploadURLPrefix = cfg.LocalUploadURLPrefix
	}
	app := server.New(deps).App

	// --- Start HTTP Server ---
	log.Infof("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
	return nil
}

// catalogEventHandler logs catalog change events. Malformed messages are
// logged and acknowledged so they are not redelivered forever.
func catalogEventHandler(log *zap.SugaredLogger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event services.ProductEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Warnf("Dropping malformed catalog event (Tag: %d): %v", msg.DeliveryTag, err)
			return nil
		}
		log.Infow("Received catalog event",
			"type", event.Type,
			"product_id", event.ProductID,
			"name", event.Name,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}
