package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dibella/orderdesk/internal/adapters/outbound/cache"
	"github.com/dibella/orderdesk/internal/adapters/outbound/config"
	"github.com/dibella/orderdesk/internal/adapters/outbound/gateway"
	"github.com/dibella/orderdesk/internal/adapters/outbound/logging"
	"github.com/dibella/orderdesk/internal/application"
	"github.com/dibella/orderdesk/internal/domain"
)

// app is the wiring shared by the commands that talk to the order API.
type app struct {
	cfg    domain.ClientConfig
	logger *zap.Logger
	svc    *application.OrderService
}

// loadConfig reads .orderdesk.yaml and applies the persistent flag overrides.
func (o *rootOptions) loadConfig() (domain.ClientConfig, error) {
	dir, err := filepath.Abs(o.configDir)
	if err != nil {
		return domain.ClientConfig{}, fmt.Errorf("resolving config dir: %w", err)
	}

	cfg, err := config.New().Load(dir)
	if err != nil {
		return domain.ClientConfig{}, fmt.Errorf("loading config: %w", err)
	}

	if o.baseURL != "" {
		cfg.Gateway.BaseURL = o.baseURL
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// bootstrap builds the logger, gateway client and order service for cmd.
// Logs go to stderr so stdout stays clean for --json output.
func (o *rootOptions) bootstrap(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	gw := gateway.New(cfg.Gateway, gateway.WithLogger(logger))
	svc := application.NewOrderService(gw,
		application.WithLogger(logger),
		application.WithCatalogCache(cache.New(), gw.BaseURL(), cfg.Catalog.TTL),
		application.WithTotalSlot(cfg.Progress.CountTotalSlot),
	)

	logger.Debug("orderdesk ready", zap.String("base_url", cfg.Gateway.BaseURL), zap.String("command", cmd.CommandPath()))
	return &app{cfg: cfg, logger: logger, svc: svc}, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
