package domain

import "context"

// OrderGateway is the remote API boundary for orders and products.
type OrderGateway interface {
	ListOrders(ctx context.Context) ([]OrderSummary, error)
	GetOrder(ctx context.Context, id OrderID) (*Order, error)
	// CreateOrder persists a new order. The returned ID is zero when the
	// server does not echo one back.
	CreateOrder(ctx context.Context, order Order) (OrderID, error)
	UpdateOrder(ctx context.Context, order Order) error
	ListProducts(ctx context.Context) ([]Product, error)
}

// ConfigLoader loads client configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (ClientConfig, error)
}

// CatalogCache holds product catalog snapshots between composition sessions.
type CatalogCache interface {
	Load(key string) (*CatalogSnapshot, error)
	Save(snapshot *CatalogSnapshot) error
	Invalidate(key string) error
}
