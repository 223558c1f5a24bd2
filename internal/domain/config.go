package domain

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Defaults applied when .orderdesk.yaml omits a value.
const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultTimeout     = 10 * time.Second
	DefaultOrderPath   = "/order"
	DefaultProductPath = "/product"
	DefaultCatalogTTL  = 5 * time.Minute
)

// ValidLogLevels enumerates the accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats enumerates the accepted log.format values.
var ValidLogFormats = []string{"console", "json"}

// ClientConfig holds client configuration loaded from .orderdesk.yaml.
type ClientConfig struct {
	Gateway  GatewayConfig  `yaml:"gateway"  json:"gateway"`
	Progress ProgressConfig `yaml:"progress" json:"progress"`
	Catalog  CatalogConfig  `yaml:"catalog"  json:"catalog"`
	Log      LogConfig      `yaml:"log"      json:"log"`
}

// GatewayConfig locates the remote order API.
type GatewayConfig struct {
	BaseURL     string        `yaml:"base_url"     json:"base_url"`
	Timeout     time.Duration `yaml:"timeout"      json:"timeout"`
	OrderPath   string        `yaml:"order_path"   json:"order_path"`
	ProductPath string        `yaml:"product_path" json:"product_path"`
}

// ProgressConfig selects the composition progress formula.
type ProgressConfig struct {
	// CountTotalSlot counts the order's total value as a fillable slot.
	CountTotalSlot bool `yaml:"count_total_slot" json:"count_total_slot"`
}

// CatalogConfig controls product catalog caching between sessions.
type CatalogConfig struct {
	// TTL is how long a fetched catalog is reused. Zero disables caching.
	TTL time.Duration `yaml:"ttl" json:"ttl"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Gateway: GatewayConfig{
			BaseURL:     DefaultBaseURL,
			Timeout:     DefaultTimeout,
			OrderPath:   DefaultOrderPath,
			ProductPath: DefaultProductPath,
		},
		Catalog: CatalogConfig{TTL: DefaultCatalogTTL},
		Log:     LogConfig{Level: "info", Format: "console"},
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ClientConfig) Validate() error {
	u, err := url.Parse(c.Gateway.BaseURL)
	if err != nil {
		return fmt.Errorf("gateway.base_url %q: %w", c.Gateway.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("gateway.base_url %q must use http or https", c.Gateway.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("gateway.base_url %q has no host", c.Gateway.BaseURL)
	}

	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("gateway.timeout must be > 0 (got %s)", c.Gateway.Timeout)
	}

	paths := map[string]string{
		"gateway.order_path":   c.Gateway.OrderPath,
		"gateway.product_path": c.Gateway.ProductPath,
	}
	for name, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s %q must start with /", name, p)
		}
	}

	if c.Catalog.TTL < 0 {
		return fmt.Errorf("catalog.ttl must not be negative (got %s)", c.Catalog.TTL)
	}

	if !slices.Contains(ValidLogLevels, c.Log.Level) {
		return fmt.Errorf("unknown log.level %q (valid: %s)", c.Log.Level, strings.Join(ValidLogLevels, ", "))
	}
	if !slices.Contains(ValidLogFormats, c.Log.Format) {
		return fmt.Errorf("unknown log.format %q (valid: %s)", c.Log.Format, strings.Join(ValidLogFormats, ", "))
	}

	return nil
}

// OrderURL joins the base URL with the order path, plus an ID when non-zero.
func (g GatewayConfig) OrderURL(id OrderID) string {
	u := strings.TrimRight(g.BaseURL, "/") + g.OrderPath
	if id != 0 {
		u += "/" + id.String()
	}
	return u
}

// ProductURL joins the base URL with the product path.
func (g GatewayConfig) ProductURL() string {
	return strings.TrimRight(g.BaseURL, "/") + g.ProductPath
}
