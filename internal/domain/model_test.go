package domain_test

import (
	"testing"

	"github.com/dibella/orderdesk/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 5, Name: "Bolo de cenoura", Size: "M", UnitPrice: decimal.RequireFromString("10.00"), Stock: 12},
		{ID: 3, Name: "Torta de limão", Size: "G", UnitPrice: decimal.RequireFromString("42.50"), Stock: 4},
		{ID: 8, Name: "Brigadeiro", Size: "P", UnitPrice: decimal.RequireFromString("1.75"), Stock: 200},
	}
}

func TestOrder_IsNew(t *testing.T) {
	assert.True(t, domain.Order{}.IsNew())
	assert.False(t, domain.Order{ID: 7}.IsNew())
}

func TestOrder_CloneDoesNotShareLineItems(t *testing.T) {
	original := domain.Order{ID: 7, LineItems: domain.LineItems{{ProductID: 3, Quantity: 1}}}
	clone := original.Clone()

	clone.LineItems[0].Quantity = 9
	clone.LineItems.Append()

	assert.Equal(t, 1, original.LineItems[0].Quantity)
	assert.Len(t, original.LineItems, 1)
	assert.Equal(t, domain.OrderID(7), clone.ID)
}

func TestLineItem_IsComplete(t *testing.T) {
	assert.True(t, domain.LineItem{ProductID: 1, Quantity: 1}.IsComplete())
	assert.False(t, domain.LineItem{ProductID: 0, Quantity: 1}.IsComplete())
	assert.False(t, domain.LineItem{ProductID: 1, Quantity: 0}.IsComplete())
}

func TestCatalog_LookupAndPrice(t *testing.T) {
	c := domain.NewCatalog(sampleProducts())

	p, ok := c.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, "Torta de limão", p.Name)
	assert.True(t, c.UnitPrice(5).Equal(decimal.NewFromInt(10)))

	_, ok = c.Lookup(99)
	assert.False(t, ok)
	assert.True(t, c.UnitPrice(99).IsZero())
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_PreservesOrderAndIsolatesInput(t *testing.T) {
	products := sampleProducts()
	c := domain.NewCatalog(products)
	products[0].Name = "changed"

	got := c.Products()
	assert.Equal(t, domain.ProductID(5), got[0].ID)
	assert.Equal(t, "Bolo de cenoura", got[0].Name)

	got[1].Name = "changed too"
	assert.Equal(t, "Torta de limão", c.Products()[1].Name)
}

func TestCatalog_ZeroValue(t *testing.T) {
	var c domain.Catalog
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Products())
	assert.True(t, c.UnitPrice(1).IsZero())
}

func TestIDs_String(t *testing.T) {
	assert.Equal(t, "42", domain.OrderID(42).String())
	assert.Equal(t, "5", domain.ProductID(5).String())
}
