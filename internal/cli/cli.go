// Package cli implements the structviz command-line interface.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/backend/native"
	"github.com/matzehuels/structviz/pkg/buildinfo"
	"github.com/matzehuels/structviz/pkg/cache"
	"github.com/matzehuels/structviz/pkg/config"
	"github.com/matzehuels/structviz/pkg/render"
	"github.com/matzehuels/structviz/pkg/render/nodelink"
	"github.com/matzehuels/structviz/pkg/session"
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

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string
	logOut     io.Writer
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Structviz animates heaps, AVL trees, graphs and hash tables",
		Long: `Structviz drives heap, AVL tree, graph and hash table backends and renders
their state after every operation, highlighting graph algorithm results.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/structviz/config.toml)")

	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if c.Logger.GetLevel() <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newModule creates the structure backend and waits until it is ready.
func (c *CLI) newModule(ctx context.Context) (backend.Module, error) {
	m := native.New(native.WithLoadDelay(time.Duration(c.Config.Backend.LoadDelay)))
	if m.Ready() {
		return m, nil
	}

	spinner := newSpinnerWithContext(ctx, "Loading structure backend...")
	spinner.Start()
	err := backend.WaitReady(ctx, m, c.Config.Policy())
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("backend ready")
	return m, nil
}

// newSession creates a session on a fresh backend.
func (c *CLI) newSession(ctx context.Context) (*session.Session, error) {
	m, err := c.newModule(ctx)
	if err != nil {
		return nil, err
	}
	return session.New(m,
		session.WithLogger(c.Logger),
		session.WithMessageLimit(c.Config.Session.MessageLimit))
}

// newCache opens the configured cache, or a null cache when noCache is set.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return c.Config.OpenCache(ctx)
}

// newRenderers builds the frame renderer and graph exporter over one cache.
// Keys are scoped by build version so upgraded binaries never reuse frames
// drawn by older ones.
func (c *CLI) newRenderers(store cache.Cache) (*render.Orchestrator, *nodelink.Exporter) {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version)
	orch := render.New(store, keyer, c.Logger,
		render.WithTheme(c.Config.Theme),
		render.WithFrameTTL(time.Duration(c.Config.Cache.TTL)))
	return orch, nodelink.NewExporter(store, keyer)
}
