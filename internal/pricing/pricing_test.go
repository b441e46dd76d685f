package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"velora_back_end/internal/models"
)

func TestResolvePriceSizeWins(t *testing.T) {
	p := &models.Product{Price: 30.99}
	s := &models.Size{Size: "M", Price: 35.50}

	assert.Equal(t, 35.50, ResolvePrice(p, s))
}

func TestResolvePriceZeroSizeMeansUnset(t *testing.T) {
	p := &models.Product{Price: 30.99}
	s := &models.Size{Size: "S", Price: 0}

	assert.Equal(t, 30.99, ResolvePrice(p, s))
}

func TestResolvePriceFallbacks(t *testing.T) {
	p := &models.Product{Price: 30.99}

	assert.Equal(t, 30.99, ResolvePrice(p, nil))
	assert.Equal(t, 30.99, ResolvePrice(p, &models.Size{Price: -5}))
	assert.Equal(t, 30.99, ResolvePrice(p, &models.Size{Price: math.NaN()}))
	assert.Equal(t, 30.99, ResolvePrice(p, &models.Size{Price: math.Inf(1)}))
}

func TestResolvePriceNoProduct(t *testing.T) {
	assert.Equal(t, 0.0, ResolvePrice(nil, nil))
	assert.Equal(t, 12.0, ResolvePrice(nil, &models.Size{Price: 12}))
}

func TestResolveLinePriceOverride(t *testing.T) {
	p := &models.Product{Price: 30.99}
	s := &models.Size{Price: 35.50}

	override := 19.99
	assert.Equal(t, 19.99, ResolveLinePrice(&override, p, s))

	// pas d'override : résolution normale par taille
	assert.Equal(t, 35.50, ResolveLinePrice(nil, p, s))
}

func TestResolveLinePriceIgnoresInvalidOverride(t *testing.T) {
	p := &models.Product{Price: 30.99}

	zero := 0.0
	assert.Equal(t, 30.99, ResolveLinePrice(&zero, p, nil))

	nan := math.NaN()
	assert.Equal(t, 30.99, ResolveLinePrice(&nan, p, nil))
}
