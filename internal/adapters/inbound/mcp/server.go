package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/dibella/orderdesk/internal/application"
)

// NewOrderDeskMCPServer creates a new MCP server with all orderdesk tools and
// resources registered. Every handler goes through svc, so catalog caching
// and logging match the CLI.
func NewOrderDeskMCPServer(svc *application.OrderService, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"orderdesk",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}
