package application_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dibella/orderdesk/internal/domain"
)

// fakeGateway is an in-memory domain.OrderGateway. Setting one of the gate
// channels makes the matching call block until the gate is closed or the
// call's context ends; started receives one value per call that reached it.
type fakeGateway struct {
	mu sync.Mutex

	orders   map[domain.OrderID]*domain.Order
	products []domain.Product
	nextID   domain.OrderID

	listErr     error
	getErr      error
	createErr   error
	updateErr   error
	productsErr error

	getGate      chan struct{}
	productsGate chan struct{}
	submitGate   chan struct{}
	started      chan string

	created  []domain.Order
	updated  []domain.Order
	calls    map[string]int
	lastCtxs map[string]context.Context
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		orders:   map[domain.OrderID]*domain.Order{},
		products: sampleProducts(),
		nextID:   100,
		started:  make(chan string, 16),
		calls:    map[string]int{},
		lastCtxs: map[string]context.Context{},
	}
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 5, Name: "Bolo de cenoura", Size: "M", UnitPrice: decimal.RequireFromString("10.00"), Stock: 12},
		{ID: 3, Name: "Torta de limão", Size: "G", UnitPrice: decimal.RequireFromString("42.50"), Stock: 4},
		{ID: 8, Name: "Brigadeiro", Size: "P", UnitPrice: decimal.RequireFromString("1.75"), Stock: 200},
	}
}

func (f *fakeGateway) enter(ctx context.Context, op string, gate chan struct{}) error {
	f.mu.Lock()
	f.calls[op]++
	f.lastCtxs[op] = ctx
	f.mu.Unlock()

	select {
	case f.started <- op:
	default:
	}
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeGateway) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeGateway) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls["create"] + f.calls["update"]
}

func (f *fakeGateway) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	if err := f.enter(ctx, "list", nil); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.OrderSummary, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, domain.OrderSummary{ID: o.ID, TotalValue: o.TotalValue, Date: o.Date})
	}
	return out, nil
}

func (f *fakeGateway) GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	if err := f.enter(ctx, "get", f.getGate); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := o.Clone()
	return &clone, nil
}

func (f *fakeGateway) CreateOrder(ctx context.Context, order domain.Order) (domain.OrderID, error) {
	if err := f.enter(ctx, "create", f.submitGate); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, order.Clone())
	id := f.nextID
	f.nextID++
	order.ID = id
	f.orders[id] = &order
	return id, nil
}

func (f *fakeGateway) UpdateOrder(ctx context.Context, order domain.Order) error {
	if err := f.enter(ctx, "update", f.submitGate); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, order.Clone())
	f.orders[order.ID] = &order
	return nil
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := f.enter(ctx, "products", f.productsGate); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}
