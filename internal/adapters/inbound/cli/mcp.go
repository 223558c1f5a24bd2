package cli

import (
	mcpadapter "github.com/dibella/orderdesk/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the orderdesk MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start orderdesk MCP server (stdio)",
		Long:  "Start the orderdesk MCP server using stdio transport. This lets AI assistants list orders and products, preview drafts and save orders.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			s := mcpadapter.NewOrderDeskMCPServer(a.svc, version)
			return server.ServeStdio(s)
		},
	}
}
