package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/marathon/internal/catalog"
	"github.com/javiermolinar/marathon/internal/config"
	"github.com/javiermolinar/marathon/internal/db"
	"github.com/javiermolinar/marathon/internal/logging"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// ErrNoCatalog is returned when a command needs a catalog file and none is configured.
var ErrNoCatalog = errors.New("no catalog file given, pass --catalog or set catalog.path in the config")

// App holds the CLI application state.
type App struct {
	config *config.Config
	logger zerolog.Logger
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, logger: zerolog.Nop()}

	a.root = &cobra.Command{
		Use:   "marathon",
		Short: "Plan movie marathons from cinema showtimes",
		Long: `Marathon finds every way to watch several different movies back to back.

Give it the movies you want to see, their running times and showtimes, and
it lists the schedules with the least time wasted between films.

Run without arguments to start an interactive session.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSession(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging on stderr")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.moviesCmd())
	a.root.AddCommand(a.sessionCmd())

	return a
}

// setup configures logging and colour before any command runs.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	a.logger = logging.Setup(level, cmd.ErrOrStderr())

	if !a.config.UI.Color {
		DisableColor()
	}
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marathon %s (commit: %s)\n", Version, Commit)
		},
	}
}

// newCatalog opens an empty session catalog.
func (a *App) newCatalog() (*catalog.Catalog, error) {
	repo, err := db.NewMemory()
	if err != nil {
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}
	return catalog.New(repo, a.config.Format()), nil
}

// openCatalog opens a session catalog filled from the file at path, falling
// back to the configured catalog path.
func (a *App) openCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	if path == "" {
		path = a.config.Catalog.Path
	}
	if path == "" {
		return nil, ErrNoCatalog
	}

	c, err := a.newCatalog()
	if err != nil {
		return nil, err
	}
	n, err := c.LoadFile(ctx, path)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	a.logger.Debug().Str("path", path).Int("movies", n).Msg("catalog loaded")
	return c, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx, so cancelling ctx stops
// a running search.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}
