package services

import (
	"encoding/json"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/pkg/rabbitmq"

	"go.uber.org/zap"
)

// Product change event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes raw messages to the broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ProductEvent is the body of a catalog change message.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publishProductEvent never fails the caller: the mutation already happened.
func publishProductEvent(pub EventPublisher, log *zap.SugaredLogger, eventType string, p *models.Product) {
	if pub == nil {
		log.Debugf("Event publisher is not configured. Skipping %s for product %s", eventType, p.ID)
		return
	}

	body, err := json.Marshal(ProductEvent{
		Type:       eventType,
		ProductID:  p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Errorf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := pub.Publish("", rabbitmq.CatalogQueue, body); err != nil {
		log.Warnf("Failed to publish %s event for product %s: %v", eventType, p.ID, err)
		return
	}
	log.Debugf("Published %s event for product %s", eventType, p.ID)
}
