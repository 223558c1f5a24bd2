package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dibella/orderdesk/internal/application"
	"github.com/dibella/orderdesk/internal/domain"
)

// registerResources registers all orderdesk MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.OrderService) {
	// 1. orderdesk://orders - order listing
	s.AddResource(
		mcplib.NewResource(
			"orderdesk://orders",
			"Orders",
			mcplib.WithResourceDescription("Saved orders with id, total value and date"),
			mcplib.WithMIMEType("application/json"),
		),
		handleOrdersResource(svc),
	)

	// 2. orderdesk://products - product catalog
	s.AddResource(
		mcplib.NewResource(
			"orderdesk://products",
			"Products",
			mcplib.WithResourceDescription("Product catalog with unit prices and stock"),
			mcplib.WithMIMEType("application/json"),
		),
		handleProductsResource(svc),
	)

	// 3. orderdesk://orders/{id} - one order (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"orderdesk://orders/{id}",
			"Order",
			mcplib.WithTemplateDescription("One saved order with its line items"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleOrderResource(svc),
	)
}

func handleOrdersResource(svc *application.OrderService) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		orders, err := svc.ListOrders(ctx)
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, orders)
	}
}

func handleProductsResource(svc *application.OrderService) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		products, err := svc.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, products)
	}
}

func handleOrderResource(svc *application.OrderService) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Extract the id from the arguments (populated by template matching)
		raw := templateArg(request.Params.Arguments, "id")
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid order id %q", raw)
		}

		order, err := svc.GetOrder(ctx, domain.OrderID(n))
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, order)
	}
}

// templateArg reads a matched URI template variable, which arrives either as
// a string or as a single-element list depending on the template expression.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
