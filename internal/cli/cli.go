// Package cli implements the spendgraph command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spendgraph/pkg/buildinfo"
	"github.com/matzehuels/spendgraph/pkg/cache"
	"github.com/matzehuels/spendgraph/pkg/observability"
	"github.com/matzehuels/spendgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "spendgraph"

	// configEnv names a config file used when --config is not given.
	configEnv = "SPENDGRAPH_CONFIG"
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
	noCache    bool
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
		Short:        "Spendgraph lays out a week of expenses as a force-directed graph",
		Long:         `Spendgraph is a CLI tool for laying out a week of expenses as a graph: expenses sit in weekday lanes, categories float in a band below them, and links show which category each expense belongs to.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.registerHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML config file (default: $"+configEnv+")")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dragCommand())
	root.AddCommand(c.detailCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// registerHooks routes pipeline, drag and cache events to the debug log.
func (c *CLI) registerHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetDragHooks(h)
	observability.SetCacheHooks(h)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cache, err := newCache(c.noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, cacheKeyer(), c.Logger), nil
}

// cacheKeyer scopes cache keys by build version so a new binary never reads
// layouts computed by an older engine.
func cacheKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/spendgraph/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// options loads the config file, if any, and overlays the flag values.
func (c *CLI) options(flags pipeline.Options) (pipeline.Options, error) {
	var opts pipeline.Options
	path := c.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path != "" {
		loaded, err := pipeline.LoadOptionsFile(path)
		if err != nil {
			return pipeline.Options{}, err
		}
		c.Logger.Debug("loaded config", "path", path)
		opts = loaded
	}
	opts.Merge(flags)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// addLayoutFlags binds the window and simulation flags shared by commands
// that lay out a dataset. Zero values fall back to the config file, then to
// pipeline defaults.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "window width (default 1440)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "window height (default 900)")
	cmd.Flags().Float64Var(&opts.LeftPanel, "left-panel", 0, "side panel width subtracted from the window (default 325)")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", 0, "simulation tick budget (default 1000)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for starting positions (default 42)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on expenses that reference unknown categories")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
}

// parseFormats parses a comma-separated format string into a slice.
// Empty means the configured default.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the output base path (without extension) for input.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	base := filepath.Base(input)
	for _, ext := range []string{".layout.json", ".json"} {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(input, ext)
		}
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
