package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dibella/orderdesk/internal/adapters/outbound/config"
	"github.com/dibella/orderdesk/internal/domain"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .orderdesk.yaml configuration file",
		Long:  "Create a .orderdesk.yaml with the default settings, commented for editing.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configDir
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			if opts.baseURL != "" {
				cfg.Gateway.BaseURL = opts.baseURL
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .orderdesk.yaml")

	return cmd
}

func generateConfig(cfg domain.ClientConfig) string {
	return fmt.Sprintf(`# orderdesk configuration

gateway:
  base_url: %s
  timeout: %s
  order_path: %s
  product_path: %s

progress:
  # Count the order total as an extra slot when computing progress.
  count_total_slot: %t

catalog:
  # How long a fetched product catalog is reused. 0 disables reuse.
  ttl: %s

log:
  level: %s # debug|info|warn|error
  format: %s # console|json
`,
		cfg.Gateway.BaseURL,
		cfg.Gateway.Timeout,
		cfg.Gateway.OrderPath,
		cfg.Gateway.ProductPath,
		cfg.Progress.CountTotalSlot,
		cfg.Catalog.TTL,
		cfg.Log.Level,
		cfg.Log.Format,
	)
}
