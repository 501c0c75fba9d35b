package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libpanel/pkg/buildinfo"
	"github.com/matzehuels/libpanel/pkg/cache"
	"github.com/matzehuels/libpanel/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "libpanel"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "libpanel shows React Native library details with their npm author",
		Long:         `libpanel renders the detail panel of a React Native Directory library (compatibility, platforms, popularity, statistics) and resolves the package author from the npm registry.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/libpanel/config.toml)")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Registry Factory
// =============================================================================

// registryOptions controls how a command talks to the registry.
type registryOptions struct {
	noCache bool
}

// newRegistryClient loads the config and builds a registry client with the
// configured cache. The returned cache must be closed by the caller.
func (c *CLI) newRegistryClient(ctx context.Context, opts registryOptions) (Config, *registry.Client, cache.Cache, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return cfg, nil, nil, err
	}
	cc, err := newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return cfg, nil, nil, err
	}
	client := registry.NewClient(
		registry.WithBaseURL(cfg.RegistryURL),
		registry.WithCache(cc, cfg.Cache.TTL),
		registry.WithLogger(c.Logger),
	)
	c.Logger.Debug("registry client ready", "base", client.BaseURL(), "cache", cfg.Cache.Backend, "no_cache", opts.noCache)
	return cfg, client, cc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/libpanel/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
