// Package cli implements the apg command-line interface.
//
// The commands work on graph documents (JSON or TOML, see pkg/graphio) and
// on dataflow programs built from the box catalogue. The CLI is built with
// cobra, logs through charmbracelet/log and styles its output with lipgloss.
//
// # Commands
//
//   - inspect: counts, direction, bounding box and crossings of a graph
//   - intersect: crossings of several graphs, computed concurrently
//   - complement: write the complement of a graph
//   - render: DOT, SVG, PDF or PNG through Graphviz, with a render cache
//   - run: run a program of boxes and wires and report box statuses
//   - boxes: list the box catalogue
//   - cache: inspect and clear the render cache
//
// # Configuration
//
// Defaults for render and cache flags can be set in a TOML file, by default
// $XDG_CONFIG_HOME/apg/config.toml. Flags given on the command line win.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apg/pkg/buildinfo"
	"github.com/matzehuels/apg/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "apg"

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
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The persistent pre-run loads the config file and puts the logger into the
// command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "apg inspects, renders and runs positioned graph programs",
		Long:         `apg works with positioned graphs: it inspects and renders graph documents, and runs dataflow programs of boxes that pass frozen graph values along wires.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/apg/config.toml)")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.intersectCommand())
	root.AddCommand(c.complementCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.boxesCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the render cache selected by flags and config. Keys are
// scoped by build version so upgrades never serve stale renders.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	var backend cache.Cache
	switch {
	case noCache || c.config.Cache.Disabled:
		backend = cache.NullCache{}
	case redisURL != "":
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, err
		}
		backend = rc
	default:
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("render cache disabled", "err", err)
			backend = cache.NullCache{}
			break
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		backend = fc
	}
	return cache.Instrumented(cache.Scoped(backend, buildinfo.Version+"/")), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/apg/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/apg/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, fallback, appName), nil
}
