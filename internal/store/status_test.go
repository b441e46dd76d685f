package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"velora_back_end/internal/models"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(models.OrderStatusProcessing))
	assert.True(t, ValidStatus(models.OrderStatusShipped))
	assert.True(t, ValidStatus(models.OrderStatusDelivered))
	assert.True(t, ValidStatus(models.OrderStatusCancelled))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestStatusTransitions(t *testing.T) {
	// chemin nominal
	assert.True(t, CanTransition(models.OrderStatusProcessing, models.OrderStatusShipped))
	assert.True(t, CanTransition(models.OrderStatusShipped, models.OrderStatusDelivered))

	// annulation possible tant que non livré
	assert.True(t, CanTransition(models.OrderStatusProcessing, models.OrderStatusCancelled))
	assert.True(t, CanTransition(models.OrderStatusShipped, models.OrderStatusCancelled))

	// les états terminaux sont figés
	assert.False(t, CanTransition(models.OrderStatusDelivered, models.OrderStatusCancelled))
	assert.False(t, CanTransition(models.OrderStatusCancelled, models.OrderStatusProcessing))

	// pas de saut ni de retour en arrière
	assert.False(t, CanTransition(models.OrderStatusProcessing, models.OrderStatusDelivered))
	assert.False(t, CanTransition(models.OrderStatusShipped, models.OrderStatusProcessing))
}

func TestDeliveryEstimateText(t *testing.T) {
	assert.Equal(t, "Delivers in 3-5 business days", DeliveryEstimateText("standard"))
	assert.Equal(t, "Delivers in 2-3 business days", DeliveryEstimateText("premium"))
	assert.Equal(t, "Delivers in 1-2 business days", DeliveryEstimateText("nextday"))
	assert.Equal(t, "Delivery time not specified", DeliveryEstimateText("drone"))
}
