package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dibella/orderdesk/internal/application"
	"github.com/dibella/orderdesk/internal/domain"
)

const itemsDescription = "Line items as comma-separated PRODUCT:QUANTITY pairs, e.g. \"5:2,3:1\""

// registerTools registers all orderdesk MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.OrderService) {
	// 1. orderdesk_list_orders
	s.AddTool(
		mcplib.NewTool("orderdesk_list_orders",
			mcplib.WithDescription("Lists saved orders with their id, total value and date"),
		),
		handleListOrders(svc),
	)

	// 2. orderdesk_get_order
	s.AddTool(
		mcplib.NewTool("orderdesk_get_order",
			mcplib.WithDescription("Returns one order with its line items"),
			mcplib.WithNumber("id",
				mcplib.Required(),
				mcplib.Description("Order id"),
			),
		),
		handleGetOrder(svc),
	)

	// 3. orderdesk_list_products
	s.AddTool(
		mcplib.NewTool("orderdesk_list_products",
			mcplib.WithDescription("Lists the product catalog with unit prices and stock"),
		),
		handleListProducts(svc),
	)

	// 4. orderdesk_preview_order
	s.AddTool(
		mcplib.NewTool("orderdesk_preview_order",
			mcplib.WithDescription("Prices a draft order and reports progress and validation problems without saving it"),
			mcplib.WithString("items", mcplib.Description(itemsDescription)),
		),
		handlePreviewOrder(svc),
	)

	// 5. orderdesk_save_order
	s.AddTool(
		mcplib.NewTool("orderdesk_save_order",
			mcplib.WithDescription("Creates an order, or replaces the line items of an existing order when id is given. The total value is computed from the catalog."),
			mcplib.WithNumber("id", mcplib.Description("Existing order id; omit to create a new order")),
			mcplib.WithString("items",
				mcplib.Required(),
				mcplib.Description(itemsDescription),
			),
		),
		handleSaveOrder(svc),
	)
}

func handleListOrders(svc *application.OrderService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		orders, err := svc.ListOrders(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(orders)
	}
}

func handleGetOrder(svc *application.OrderService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, ok, err := intArg(request.GetArguments(), "id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if !ok || id <= 0 {
			return errorResult(fmt.Sprintf("invalid order id %d", id)), nil
		}

		order, err := svc.GetOrder(ctx, domain.OrderID(id))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(order)
	}
}

func handleListProducts(svc *application.OrderService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		products, err := svc.ListProducts(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(products)
	}
}

func handlePreviewOrder(svc *application.OrderService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, _ := request.GetArguments()["items"].(string)
		items, err := parseItems(raw)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		preview, err := svc.Preview(ctx, items)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(preview)
	}
}

// saveResult is returned by orderdesk_save_order.
type saveResult struct {
	ID      domain.OrderID `json:"id"`
	Created bool           `json:"created"`
}

func handleSaveOrder(svc *application.OrderService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("items")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		items, err := parseItems(raw)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		id, _, err := intArg(request.GetArguments(), "id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if id < 0 {
			return errorResult(fmt.Sprintf("invalid order id %d", id)), nil
		}

		saved, err := svc.Save(ctx, domain.OrderID(id), items)
		if err != nil {
			return errorResult(fmt.Sprintf("saving order: %v", err)), nil
		}
		return jsonResult(saveResult{ID: saved, Created: id == 0})
	}
}

// intArg reads a whole-number argument. JSON numbers arrive as float64;
// numeric strings are accepted too.
func intArg(args map[string]any, name string) (int64, bool, error) {
	switch v := args[name].(type) {
	case nil:
		return 0, false, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, true, fmt.Errorf("%s must be a whole number", name)
		}
		return int64(v), true, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, true, fmt.Errorf("%s must be a whole number", name)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("%s must be a number", name)
	}
}

func parseItems(raw string) ([]domain.LineItem, error) {
	return domain.ParseLineItems(strings.Split(raw, ","))
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
