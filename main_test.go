package main

import (
	"testing"

	"tokoadmin/internal/services"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCatalogEventHandler_LogsEvent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := catalogEventHandler(zap.New(core).Sugar())

	err := handler(amqp.Delivery{
		DeliveryTag: 1,
		Body:        []byte(`{"type":"product.created","product_id":"prod-1","name":"Red Mug"}`),
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("Received catalog event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, services.EventProductCreated, fields["type"])
	assert.Equal(t, "prod-1", fields["product_id"])
}

func TestCatalogEventHandler_AcksMalformedMessages(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := catalogEventHandler(zap.New(core).Sugar())

	err := handler(amqp.Delivery{DeliveryTag: 2, Body: []byte("not json")})
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
