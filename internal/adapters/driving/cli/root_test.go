package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillscout/internal/logger"
)

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"discover", "mcp", "settings", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestRootCmd_VerboseEnablesLogger(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		verbose = false
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{"--verbose", "version"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, logger.IsVerbose())
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version, "empty keeps the current version")
}

func TestOpenRuntime(t *testing.T) {
	oldSettings, oldFactory := settingsService, newRuntime
	defer func() { settingsService, newRuntime = oldSettings, oldFactory }()

	t.Run("no factory", func(t *testing.T) {
		newRuntime = nil
		_, err := openRuntime(context.Background())
		assert.EqualError(t, err, "discovery service not configured")
	})

	t.Run("factory error is returned", func(t *testing.T) {
		newRuntime = func(context.Context) (*Runtime, error) { return nil, errFactory }
		_, err := openRuntime(context.Background())
		assert.True(t, errors.Is(err, errFactory))
	})

	t.Run("runtime without discovery", func(t *testing.T) {
		newRuntime = func(context.Context) (*Runtime, error) { return &Runtime{}, nil }
		_, err := openRuntime(context.Background())
		assert.Error(t, err)
	})
}

func TestCloseRuntime(t *testing.T) {
	closed := 0
	closeRuntime(&Runtime{Close: func() error { closed++; return errors.New("busy") }})
	assert.Equal(t, 1, closed)

	assert.NotPanics(t, func() {
		closeRuntime(nil)
		closeRuntime(&Runtime{})
	})
}
