package gateway

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dibella/orderdesk/internal/domain"
)

// Wire shapes of the remote API. Reads use the API's English field names;
// writes keep the legacy Portuguese body the API still expects. All mapping
// between these and the domain types happens in this file.

type wireOrderSummary struct {
	ID         int64           `json:"id"`
	TotalValue decimal.Decimal `json:"totalValue"`
	Date       string          `json:"date"`
}

type wireOrder struct {
	ID         int64           `json:"id"`
	TotalValue decimal.Decimal `json:"totalValue"`
	Date       string          `json:"date,omitempty"`
	LineItems  []wireLineItem  `json:"lineItems"`
}

type wireLineItem struct {
	ProductID int64        `json:"productId"`
	Quantity  int          `json:"quantity"`
	Product   *wireProduct `json:"product,omitempty"`
}

type wireProduct struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock"`
}

type wireSubmission struct {
	Valor    json.Number          `json:"valor"`
	Produtos []wireSubmissionItem `json:"produtos"`
}

type wireSubmissionItem struct {
	ProdutoID  int64 `json:"produtoId"`
	Quantidade int   `json:"quantidade"`
}

type wireCreated struct {
	ID int64 `json:"id"`
}

// dateLayouts are tried in order when parsing order dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toSummaries(rows []wireOrderSummary) []domain.OrderSummary {
	out := make([]domain.OrderSummary, 0, len(rows))
	for _, r := range rows {
		s := domain.OrderSummary{
			ID:         domain.OrderID(r.ID),
			TotalValue: r.TotalValue,
			RawDate:    r.Date,
		}
		if t, ok := parseDate(r.Date); ok {
			s.Date = t
		}
		out = append(out, s)
	}
	return out
}

// toOrder normalizes a fetched order into the domain shape. Nested product
// payloads are reduced to their identifier: when the line item carries no
// productId of its own, the nested product's id is used instead.
func toOrder(w wireOrder) *domain.Order {
	items := make(domain.LineItems, 0, len(w.LineItems))
	for _, li := range w.LineItems {
		id := li.ProductID
		if id == 0 && li.Product != nil {
			id = li.Product.ID
		}
		items = append(items, domain.LineItem{
			ProductID: domain.ProductID(max(id, 0)),
			Quantity:  max(li.Quantity, 0),
		})
	}
	order := &domain.Order{
		ID:         domain.OrderID(w.ID),
		TotalValue: w.TotalValue,
		LineItems:  items,
	}
	if t, ok := parseDate(w.Date); ok {
		order.Date = t
	}
	return order
}

func toProducts(rows []wireProduct) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Product{
			ID:        domain.ProductID(r.ID),
			Name:      r.Name,
			Size:      r.Size,
			UnitPrice: r.UnitPrice,
			Stock:     r.Stock,
		})
	}
	return out
}

// toSubmission projects an order into the body accepted by create/update:
// only product identifiers and quantities travel, never product details.
func toSubmission(o domain.Order) wireSubmission {
	items := make([]wireSubmissionItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, wireSubmissionItem{
			ProdutoID:  int64(li.ProductID),
			Quantidade: li.Quantity,
		})
	}
	return wireSubmission{
		Valor:    json.Number(o.TotalValue.String()),
		Produtos: items,
	}
}
