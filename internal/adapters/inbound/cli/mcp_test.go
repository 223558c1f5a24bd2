package cli_test

import (
	"io"
	"testing"

	"github.com/dibella/orderdesk/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
)

func TestMCPCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"mcp", "--help"})
	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"mcp", "serve", "--help"})
	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestComposeCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"orders", "compose", "--help"})
	err := cmd.Execute()
	assert.NoError(t, err)
}
