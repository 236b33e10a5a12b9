// Command skillscout discovers and ranks learning resources.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/skillscout/internal/adapters/driven/config/file"
	"github.com/custodia-labs/skillscout/internal/adapters/driving/cli"
	"github.com/custodia-labs/skillscout/internal/core/services"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Error("loading configuration: %v", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)

	cli.SetVersion(version)
	cli.SetServices(settingsService, func(ctx context.Context) (*cli.Runtime, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, err
		}
		return buildRuntime(ctx, settings, "")
	})

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
