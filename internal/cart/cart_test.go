package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/models"
)

func testProduct() *models.Product {
	return &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "T-shirt oversize",
		Price:    30.99,
		Image:    "tshirt.jpg",
		Category: "clothing",
		Variants: []models.Variant{
			{
				ID:    primitive.NewObjectID(),
				Color: "#368ce2",
				Sizes: []models.Size{
					{Size: "S", InStock: true, Price: 0},
					{Size: "M", InStock: true, Price: 35.50},
				},
			},
		},
	}
}

func newTestService() *Service {
	return NewService(NewMemoryRepository())
}

func TestAddLineRequiresUser(t *testing.T) {
	s := newTestService()

	_, err := s.AddLine(context.Background(), "", AddLineInput{Product: testProduct(), Quantity: 1})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = s.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAddLineResolvesSizePrice(t *testing.T) {
	s := newTestService()
	p := testProduct()

	items, err := s.AddLine(context.Background(), "u1", AddLineInput{
		Product:  p,
		Variant:  &p.Variants[0],
		Color:    p.Variants[0].Color,
		Size:     "M",
		Quantity: 1,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 35.50, items[0].Price)

	// taille à prix 0 : retombe sur le prix de base
	items, err = s.AddLine(context.Background(), "u1", AddLineInput{
		Product:  p,
		Variant:  &p.Variants[0],
		Color:    p.Variants[0].Color,
		Size:     "S",
		Quantity: 1,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 30.99, items[1].Price)
}

func TestAddLineMergesIdenticalLines(t *testing.T) {
	s := newTestService()
	p := testProduct()

	in := AddLineInput{
		Product:  p,
		Variant:  &p.Variants[0],
		Color:    p.Variants[0].Color,
		Size:     "M",
		Quantity: 2,
	}
	_, err := s.AddLine(context.Background(), "u1", in)
	require.NoError(t, err)

	override := 28.00
	in.Quantity = 3
	in.PriceOverride = &override
	items, err := s.AddLine(context.Background(), "u1", in)
	require.NoError(t, err)

	// une seule ligne : quantités additionnées, prix ÉCRASÉ par le plus récent
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 28.00, items[0].Price)
}

func TestAddLineDistinguishesAllFourKeys(t *testing.T) {
	s := newTestService()
	p := testProduct()

	base := AddLineInput{
		Product:  p,
		Variant:  &p.Variants[0],
		Color:    p.Variants[0].Color,
		Size:     "M",
		Quantity: 1,
	}
	_, err := s.AddLine(context.Background(), "u1", base)
	require.NoError(t, err)

	other := base
	other.Size = "S"
	items, err := s.AddLine(context.Background(), "u1", other)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSetQuantityFloorsAtOne(t *testing.T) {
	s := newTestService()
	p := testProduct()

	_, err := s.AddLine(context.Background(), "u1", AddLineInput{
		Product: p, Variant: &p.Variants[0], Color: p.Variants[0].Color, Size: "M", Quantity: 4,
	})
	require.NoError(t, err)

	items, err := s.SetQuantity(context.Background(), "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)

	items, err = s.SetQuantity(context.Background(), "u1", 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)

	_, err = s.SetQuantity(context.Background(), "u1", 5, 2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestRemoveLine(t *testing.T) {
	s := newTestService()
	p := testProduct()

	_, err := s.AddLine(context.Background(), "u1", AddLineInput{
		Product: p, Variant: &p.Variants[0], Color: p.Variants[0].Color, Size: "M", Quantity: 1,
	})
	require.NoError(t, err)

	items, err := s.RemoveLine(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = s.RemoveLine(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := newTestService()
	p := testProduct()

	_, err := s.AddLine(context.Background(), "alice", AddLineInput{
		Product: p, Variant: &p.Variants[0], Color: p.Variants[0].Color, Size: "M", Quantity: 1,
	})
	require.NoError(t, err)

	items, err := s.Get(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.Clear(context.Background(), "bob"))
	items, err = s.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTotal(t *testing.T) {
	items := []models.CartItem{
		{Price: 25.99, Quantity: 3},
		{Price: 0, Quantity: 10},
	}
	assert.InDelta(t, 77.97, Total(items), 1e-9)

	// l'ordre des lignes ne change pas le total
	reversed := []models.CartItem{items[1], items[0]}
	assert.Equal(t, Total(items), Total(reversed))

	assert.Zero(t, Total(nil))
}
