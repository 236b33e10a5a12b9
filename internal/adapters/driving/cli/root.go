// Package cli provides the cobra command tree for skillscout.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skillscout/internal/core/ports/driving"
	"github.com/custodia-labs/skillscout/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Runtime is the wired discovery stack a command runs against.
type Runtime struct {
	// Discovery finds and ranks resources.
	Discovery driving.DiscoveryService

	// Metrics serves Prometheus metrics. May be nil.
	Metrics http.Handler

	// Close releases the cache and other resources. May be nil.
	Close func() error
}

// RuntimeFactory builds a Runtime from the current settings.
type RuntimeFactory func(ctx context.Context) (*Runtime, error)

var (
	settingsService driving.SettingsService
	newRuntime      RuntimeFactory

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "skillscout",
	Short: "Discover and rank learning resources",
	Long: `skillscout finds learning material for a skill, a job role or any phrase.

It queries several content providers (YouTube, Coursera, GitHub, MDN),
keeps only relevant results, scores their quality and returns a short
ranked list.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the settings service and the discovery runtime factory.
func SetServices(settings driving.SettingsService, factory RuntimeFactory) {
	settingsService = settings
	newRuntime = factory
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openRuntime builds the runtime for one command invocation.
func openRuntime(ctx context.Context) (*Runtime, error) {
	if newRuntime == nil {
		return nil, errors.New("discovery service not configured")
	}
	rt, err := newRuntime(ctx)
	if err != nil {
		return nil, err
	}
	if rt == nil || rt.Discovery == nil {
		return nil, errors.New("discovery service not configured")
	}
	return rt, nil
}

// closeRuntime releases the runtime, logging rather than failing the command.
func closeRuntime(rt *Runtime) {
	if rt == nil || rt.Close == nil {
		return
	}
	if err := rt.Close(); err != nil {
		logger.Warn("closing runtime: %v", err)
	}
}
