package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dibella/orderdesk/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the config directory.
const FileName = ".orderdesk.yaml"

// BaseURLEnv overrides gateway.base_url when set.
const BaseURLEnv = "ORDERDESK_BASE_URL"

// YAMLLoader implements domain.ConfigLoader by reading .orderdesk.yaml.
type YAMLLoader struct {
	getenv func(string) string
}

// New creates a YAMLLoader that consults the process environment.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// NewWithEnv creates a YAMLLoader with a custom environment lookup.
func NewWithEnv(getenv func(string) string) *YAMLLoader { return &YAMLLoader{getenv: getenv} }

// Load reads .orderdesk.yaml from dir. Keys absent from the file keep their
// default values; a missing file yields DefaultConfig.
func (l *YAMLLoader) Load(dir string) (domain.ClientConfig, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.ClientConfig{}, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.ClientConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
		}
	}

	if v := strings.TrimSpace(l.getenv(BaseURLEnv)); v != "" {
		cfg.Gateway.BaseURL = v
	}

	if err := cfg.Validate(); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg, nil
}
