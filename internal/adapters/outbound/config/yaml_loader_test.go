package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	appconfig "github.com/dibella/orderdesk/internal/adapters/outbound/config"
	"github.com/dibella/orderdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".orderdesk.yaml"), []byte(content), 0644))
}

func noEnv(string) string { return "" }

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.NewWithEnv(noEnv)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
gateway:
  base_url: https://pedidos.example.com/api
  timeout: 3s
  order_path: /pedido
  product_path: /produto
progress:
  count_total_slot: true
catalog:
  ttl: 90s
log:
  level: debug
  format: json
`)
	loader := appconfig.NewWithEnv(noEnv)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://pedidos.example.com/api", cfg.Gateway.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, "/pedido", cfg.Gateway.OrderPath)
	assert.Equal(t, "/produto", cfg.Gateway.ProductPath)
	assert.True(t, cfg.Progress.CountTotalSlot)
	assert.Equal(t, 90*time.Second, cfg.Catalog.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestYAMLLoader_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
gateway:
  base_url: http://10.0.0.5:9000
`)
	loader := appconfig.NewWithEnv(noEnv)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.Gateway.BaseURL)
	assert.Equal(t, domain.DefaultTimeout, cfg.Gateway.Timeout)
	assert.Equal(t, domain.DefaultOrderPath, cfg.Gateway.OrderPath)
	assert.Equal(t, domain.DefaultCatalogTTL, cfg.Catalog.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestYAMLLoader_ExplicitZeroTTL(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
catalog:
  ttl: 0s
`)
	loader := appconfig.NewWithEnv(noEnv)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Catalog.TTL)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.NewWithEnv(noEnv)

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .orderdesk.yaml")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
log:
  level: loud
`)
	loader := appconfig.NewWithEnv(noEnv)

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .orderdesk.yaml")
	assert.Contains(t, err.Error(), `unknown log.level "loud"`)
}

func TestYAMLLoader_EnvOverridesBaseURL(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
gateway:
  base_url: http://from-file:8080
`)
	loader := appconfig.NewWithEnv(func(key string) string {
		if key == appconfig.BaseURLEnv {
			return " http://from-env:9090 "
		}
		return ""
	})

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9090", cfg.Gateway.BaseURL)
}

func TestYAMLLoader_ReadErrorIsReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".orderdesk.yaml"), 0755))
	loader := appconfig.NewWithEnv(noEnv)

	_, err := loader.Load(dir)
	assert.Error(t, err)
}
