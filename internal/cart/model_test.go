package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bekzatm/tezdeliver/internal/store"
)

func TestLineTotal(t *testing.T) {
	r := ItemRow{
		Item:    Item{Quantity: 3},
		Product: store.Product{Price: 450},
	}
	assert.Equal(t, int64(1350), r.LineTotal().IntPart())

	r.Quantity = 0
	assert.True(t, r.LineTotal().IsZero())
}

func TestNewItemDTO(t *testing.T) {
	dto := NewItemDTO(ItemRow{
		Item: Item{Quantity: 2},
		Product: store.Product{
			Name:        "lagman",
			Image:       "/uploads/lagman.jpg",
			Price:       300,
			Description: "hand pulled noodles",
		},
	})
	assert.Equal(t, "lagman", dto.Product.ProductName)
	assert.Equal(t, "/uploads/lagman.jpg", dto.Product.ProductImage)
	assert.Equal(t, int64(300), dto.Product.Price)
	assert.Equal(t, 2, dto.Quantity)
	assert.Equal(t, int64(600), dto.TotalPrice)
}

func TestNewCartDTO(t *testing.T) {
	c := &Cart{ID: "c1", UserID: "u1"}
	rows := []ItemRow{
		{Item: Item{Quantity: 1}, Product: store.Product{Name: "plov", Price: 500}},
		{Item: Item{Quantity: 4}, Product: store.Product{Name: "tea", Price: 50}},
	}

	dto := NewCartDTO(c, rows)
	assert.Equal(t, "u1", dto.User)
	assert.Len(t, dto.Items, 2)
	assert.Equal(t, int64(500), dto.Items[0].TotalPrice)
	assert.Equal(t, int64(200), dto.Items[1].TotalPrice)

	// empty cart still marshals with an empty list, not null
	empty := NewCartDTO(c, nil)
	assert.NotNil(t, empty.Items)
	assert.Len(t, empty.Items, 0)
}
