package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPCmd_HasServeSubcommand(t *testing.T) {
	found := false
	for _, c := range mcpCmd.Commands() {
		if c.Name() == "serve" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMCPServe_RuntimeNotConfigured(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	newRuntime = func(context.Context) (*Runtime, error) { return nil, errFactory }

	_, err := runRoot(t, "mcp", "serve")

	require.Error(t, err)
	assert.ErrorIs(t, err, errFactory)
}
