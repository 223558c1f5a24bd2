package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OrderID identifies an order on the remote API. Zero means the order has
// not been saved yet.
type OrderID int64

func (id OrderID) String() string { return strconv.FormatInt(int64(id), 10) }

// ProductID identifies a product. Zero means "no product selected".
type ProductID int64

func (id ProductID) String() string { return strconv.FormatInt(int64(id), 10) }

// Product is read-only reference data fetched from the gateway.
type Product struct {
	ID        ProductID       `json:"id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
}

// LineItem is one (product, quantity) slot of an order.
type LineItem struct {
	ProductID ProductID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// IsComplete reports whether both the product and a positive quantity are set.
func (li LineItem) IsComplete() bool {
	return li.ProductID > 0 && li.Quantity > 0
}

// Order is a user-composed purchase, pending or persisted.
type Order struct {
	ID         OrderID         `json:"id,omitempty"`
	TotalValue decimal.Decimal `json:"total_value"`
	LineItems  LineItems       `json:"line_items"`
	Date       time.Time       `json:"date,omitzero"`
}

// IsNew reports whether the order has never been saved.
func (o Order) IsNew() bool { return o.ID == 0 }

// Clone returns a copy that shares no line-item storage with o.
func (o Order) Clone() Order {
	o.LineItems = o.LineItems.Clone()
	return o
}

// OrderSummary is one row of the order listing.
type OrderSummary struct {
	ID         OrderID         `json:"id"`
	TotalValue decimal.Decimal `json:"total_value"`
	Date       time.Time       `json:"date,omitzero"`
	RawDate    string          `json:"raw_date,omitempty"`
}

// Catalog indexes products by ID for pricing line items.
type Catalog struct {
	products []Product
	byID     map[ProductID]Product
}

// NewCatalog builds a catalog preserving the gateway's product order.
func NewCatalog(products []Product) Catalog {
	c := Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[ProductID]Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// Products returns the catalog's products in their original order.
func (c Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup returns the product with the given ID.
func (c Catalog) Lookup(id ProductID) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// UnitPrice returns the price of the product, or zero when it is unknown.
func (c Catalog) UnitPrice(id ProductID) decimal.Decimal {
	if p, ok := c.byID[id]; ok {
		return p.UnitPrice
	}
	return decimal.Zero
}

func (c Catalog) Len() int { return len(c.products) }
