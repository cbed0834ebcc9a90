package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/marathon/internal/catalog"
	"github.com/javiermolinar/marathon/internal/movie"
)

func (a *App) moviesCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List the movies in a catalog file",
		Long: `List the movies of a catalog file with their ids, running times and the
showtimes that were understood. Use the ids with plan --mandatory.`,
		Example: `  marathon movies --catalog movies.toml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.openCatalog(cmd.Context(), catalogPath)
			if err != nil {
				return err
			}
			defer func() { _ = cat.Close() }()

			movies, err := cat.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing movies: %w", err)
			}
			printMovies(cmd.OutOrStdout(), movies)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (.toml, .yaml or .yml)")

	return cmd
}

// movieLine renders "1. Title (1 hr 30 min) - Showtimes: 10:00, 14:30".
func movieLine(m *movie.Movie) string {
	return fmt.Sprintf("%d. %s", m.ID, m.String())
}

func printMovies(w io.Writer, movies []*movie.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies added yet.")
		return
	}
	for _, m := range movies {
		line := movieLine(m)
		if m.Mandatory {
			line += " " + formatSuccess("[mandatory]")
		}
		fmt.Fprintln(w, line)
	}
}

func hasMandatory(ctx context.Context, c *catalog.Catalog) (bool, error) {
	movies, err := c.List(ctx)
	if err != nil {
		return false, fmt.Errorf("listing movies: %w", err)
	}
	for _, m := range movies {
		if m.Mandatory {
			return true, nil
		}
	}
	return false, nil
}
