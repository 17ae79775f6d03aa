package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/bstree/internal/cli/config"
	"github.com/leapstack-labs/bstree/internal/cli/output"
	"github.com/leapstack-labs/bstree/internal/service"
	"github.com/leapstack-labs/bstree/internal/state"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    state.Store
	Service  *service.Service
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an open, migrated store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command, opts ...service.Option) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    store,
		Service:  service.New(store, logger, opts...),
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
// Useful for commands that don't need database access.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		StatePath:    getEnvOrDefault("BSTREE_STATE_PATH", config.DefaultStateFile),
		Driver:       getEnvOrDefault("BSTREE_DRIVER", config.DefaultDriver),
		DSN:          os.Getenv("BSTREE_DSN"),
		OutputFormat: getEnvOrDefault("BSTREE_OUTPUT", config.DefaultOutput),
		LogLevel:     config.DefaultLogLevel,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens the configured history store and applies migrations.
func openStore(cfg *config.Config, logger *slog.Logger) (state.Store, error) {
	if cfg.Driver == "" || cfg.Driver == state.DriverSQLite {
		// Ensure state directory exists
		stateDir := filepath.Dir(cfg.StatePath)
		if cfg.StatePath != ":memory:" && stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	store, err := state.Open(state.Config{
		Driver:      cfg.Driver,
		Path:        cfg.StatePath,
		DSN:         cfg.StoreDSN(),
		AutoMigrate: true,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, nil
}
