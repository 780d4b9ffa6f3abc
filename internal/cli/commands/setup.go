// Package commands implements the pgnav subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pgnav/internal/cli/config"
	"github.com/leapstack-labs/pgnav/internal/introspect"
	"github.com/leapstack-labs/pgnav/pkg/schema"
)

// CommandContext carries the shared dependencies for a command invocation.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext builds the command context from the loaded config.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// OpenLoader connects to the configured database.
// The caller owns the loader and must Close it.
func (c *CommandContext) OpenLoader(ctx context.Context) (*introspect.Loader, error) {
	if c.Cfg.Database == "" {
		return nil, fmt.Errorf("no database configured: set --database, PGNAV_DATABASE, or pgnav.yaml")
	}
	return introspect.Open(ctx, c.Cfg.Params(), c.Logger)
}

// LoadSnapshot connects, introspects every configured schema, and
// disconnects.
func (c *CommandContext) LoadSnapshot(ctx context.Context) (schema.Snapshot, error) {
	loader, err := c.OpenLoader(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = loader.Close() }()

	return loader.Snapshot(ctx)
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	port := config.DefaultPort
	if v := os.Getenv("PGNAV_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}

	return &config.Config{
		Host:         getEnvOrDefault("PGNAV_HOST", config.DefaultHost),
		Port:         port,
		Database:     os.Getenv("PGNAV_DATABASE"),
		User:         os.Getenv("PGNAV_USER"),
		Password:     os.Getenv("PGNAV_PASSWORD"),
		SSLMode:      getEnvOrDefault("PGNAV_SSLMODE", config.DefaultSSLMode),
		Verbose:      os.Getenv("PGNAV_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("PGNAV_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
