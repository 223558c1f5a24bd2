package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dibella/orderdesk/internal/adapters/inbound/cli"
	"github.com/dibella/orderdesk/internal/adapters/outbound/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	var out bytes.Buffer

	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Created .orderdesk.yaml")

	data, err := os.ReadFile(filepath.Join(tmpDir, ".orderdesk.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: http://localhost:8080")
	assert.Contains(t, string(data), "count_total_slot: false")
	assert.Contains(t, string(data), "ttl: 5m0s")
}

func TestInitCmd_GeneratedFileLoads(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"init", tmpDir, "--base-url", "https://pedidos.example.com"})
	require.NoError(t, root.Execute())

	cfg, err := config.NewWithEnv(func(string) string { return "" }).Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "https://pedidos.example.com", cfg.Gateway.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.TTL)
}

func TestInitCmd_UsesConfigDir(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", tmpDir, "init"})
	require.NoError(t, root.Execute())

	_, err := os.Stat(filepath.Join(tmpDir, ".orderdesk.yaml"))
	assert.NoError(t, err)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".orderdesk.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".orderdesk.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".orderdesk.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "gateway:")
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_InvalidBaseURL(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--base-url", "localhost"})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer

	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "orderdesk dev (none)\n", out.String())
}
