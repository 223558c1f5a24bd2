package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dibella/orderdesk/internal/adapters/outbound/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configDir string
	baseURL   string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "orderdesk",
		Short:         "Compose and manage bakery orders",
		Long:          "orderdesk lists, composes and submits orders against the order API, keeping totals and progress in step with every edit.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", ".", "Directory containing .orderdesk.yaml")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Order API base URL (overrides config and ORDERDESK_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newOrdersCmd(opts))
	cmd.AddCommand(newProductsCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI until ctx is cancelled and reports a failure on
// stderr, since the root command silences cobra's own error output.
func Execute(ctx context.Context, stderr io.Writer) error {
	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(stderr, tui.RenderError(err))
	}
	return err
}
