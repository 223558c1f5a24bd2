package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dibella/orderdesk/internal/domain"
)

// OrderService is the entry point shared by the CLI, the interactive session
// and the MCP server: plain reads, draft previews and composition sessions.
type OrderService struct {
	gateway  domain.OrderGateway
	settings settings
}

// NewOrderService creates an OrderService. The options are also applied to
// every Composer it creates.
func NewOrderService(gw domain.OrderGateway, opts ...Option) *OrderService {
	return &OrderService{gateway: gw, settings: newSettings(opts)}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	orders, err := s.gateway.ListOrders(ctx)
	if err != nil {
		return nil, &domain.LoadError{Resource: "orders", Err: err}
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	order, err := s.gateway.GetOrder(ctx, id)
	if err == nil && order == nil {
		err = domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, &domain.LoadError{Resource: "order", ID: id, Err: err}
	}
	return order, nil
}

func (s *OrderService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return fetchCatalog(ctx, s.gateway, s.settings)
}

// NewComposer opens a composition session for id, or for a new order when
// id is zero. The caller owns the Composer and must Close it.
func (s *OrderService) NewComposer(id domain.OrderID) *Composer {
	return newComposer(s.gateway, id, s.settings)
}

// Preview is the derived view of a draft that has not been submitted.
type Preview struct {
	Order    domain.Order       `json:"order"`
	Progress float64            `json:"progress"`
	Valid    bool               `json:"valid"`
	Problem  string             `json:"problem,omitempty"`
	Unknown  []domain.ProductID `json:"unknown_products,omitempty"`
}

// Preview prices items against the current catalog and reports progress and
// whether the draft would pass validation. Nothing is sent to the gateway.
func (s *OrderService) Preview(ctx context.Context, items []domain.LineItem) (*Preview, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	order := domain.Order{LineItems: domain.LineItems(items).Clone()}
	catalog := domain.NewCatalog(products)
	order.TotalValue = domain.TotalValue(order.LineItems, catalog)
	return buildPreview(order, s.settings.progress(order), catalog), nil
}

func buildPreview(order domain.Order, progress float64, catalog domain.Catalog) *Preview {
	p := &Preview{
		Order:    order,
		Progress: progress,
		Valid:    true,
	}
	if err := domain.ValidateLineItems(order.LineItems); err != nil {
		p.Valid = false
		p.Problem = err.Error()
	}
	for _, item := range order.LineItems {
		if item.ProductID == 0 {
			continue
		}
		if _, ok := catalog.Lookup(item.ProductID); !ok {
			p.Unknown = append(p.Unknown, item.ProductID)
		}
	}
	return p
}

// Save replaces the line items of order id (or of a new order when id is
// zero) with items and submits it through a short-lived Composer.
func (s *OrderService) Save(ctx context.Context, id domain.OrderID, items []domain.LineItem) (domain.OrderID, error) {
	c := s.NewComposer(id)
	defer c.Close()

	if err := c.Mount(ctx); err != nil {
		return 0, err
	}
	if err := ReplaceLineItems(c, items); err != nil {
		return 0, err
	}
	return c.Submit(ctx)
}

// ReplaceLineItems clears the composer's line items and enters items in
// their place through the regular edit operations.
func ReplaceLineItems(c *Composer, items []domain.LineItem) error {
	for n := len(c.Snapshot().Order.LineItems); n > 0; n-- {
		if err := c.RemoveLineItem(n - 1); err != nil {
			return fmt.Errorf("clearing line items: %w", err)
		}
	}
	for _, item := range items {
		if err := AddItem(c, item); err != nil {
			return err
		}
	}
	return nil
}

// AddItem appends a line item and fills in both of its fields.
func AddItem(c *Composer, item domain.LineItem) error {
	index := len(c.Snapshot().Order.LineItems)
	if err := c.AddLineItem(); err != nil {
		return fmt.Errorf("adding line item: %w", err)
	}
	if err := c.UpdateLineItem(index, domain.FieldProductID, item.ProductID.String()); err != nil {
		return fmt.Errorf("setting product: %w", err)
	}
	if err := c.UpdateLineItem(index, domain.FieldQuantity, strconv.Itoa(item.Quantity)); err != nil {
		return fmt.Errorf("setting quantity: %w", err)
	}
	return nil
}
