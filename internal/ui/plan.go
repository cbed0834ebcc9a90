package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/marathon/internal/planner"
	"github.com/javiermolinar/marathon/internal/tui"
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// browse is replaced in tests.
var browse = tui.Run

func (a *App) planCmd() *cobra.Command {
	var (
		catalogPath string
		params      planner.Params
		top         int
		copyOut     bool
		browseOut   bool
		sweep       bool
	)

	timeout, _ := a.config.Timeout()

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Find marathon schedules for a catalog file",
		Long: `Search every way to watch --count different movies from a catalog file.

Consecutive movies are separated by at least --break minutes, and the first
one starts no earlier than --earliest. Movies flagged mandatory in the file,
or named with --mandatory, appear in every schedule. Schedules are ranked by
total break time, shortest first.

With --sweep, every marathon length from 1 to --count is searched at once.`,
		Example: `  marathon plan --catalog movies.toml
  marathon plan --catalog movies.yaml --count 2 --break 20 --earliest 11:00
  marathon plan --catalog movies.toml --mandatory "Alien" --mandatory 3
  marathon plan --catalog movies.toml --browse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cat, err := a.openCatalog(ctx, catalogPath)
			if err != nil {
				return err
			}
			defer func() { _ = cat.Close() }()

			p := planner.New(cat, a.logger)

			if sweep {
				results, err := p.Sweep(ctx, params, sweepCounts(params.Count))
				if err != nil {
					return err
				}
				mandatory := len(params.Mandatory) > 0
				if !mandatory {
					if mandatory, err = hasMandatory(ctx, cat); err != nil {
						return err
					}
				}
				lines := RenderSweep(results, top, mandatory)
				printLines(out, lines)
				return a.maybeCopy(out, copyOut, lines)
			}

			result, err := p.Plan(ctx, params)
			if err != nil {
				return err
			}

			lines := RenderResult(result, top)
			printLines(out, lines)
			if err := a.maybeCopy(out, copyOut, lines); err != nil {
				return err
			}

			if browseOut && !result.Empty() {
				return browse(result, tui.Options{Theme: a.config.UI.Theme})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (.toml, .yaml or .yml)")
	cmd.Flags().IntVar(&params.Count, "count", a.config.Schedule.Count, "Number of movies in the marathon")
	cmd.Flags().IntVar(&params.BreakMinutes, "break", a.config.Schedule.BreakMinutes, "Minimum minutes between movies")
	cmd.Flags().StringVar(&params.EarliestStart, "earliest", a.config.Schedule.EarliestStart, "Earliest start of the first movie (HH:MM)")
	cmd.Flags().StringArrayVar(&params.Mandatory, "mandatory", nil, "Movie id or title every schedule must include (repeatable)")
	cmd.Flags().IntVar(&params.Limit, "limit", a.config.Search.Limit, "Stop after this many schedules (0 for no limit)")
	cmd.Flags().DurationVar(&params.Timeout, "timeout", timeout, "Stop searching after this long (0 for no limit)")
	cmd.Flags().IntVar(&top, "top", a.config.Schedule.Top, "Number of schedules to show")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the shown schedules to the clipboard")
	cmd.Flags().BoolVar(&browseOut, "browse", false, "Browse all schedules interactively")
	cmd.Flags().BoolVar(&sweep, "sweep", false, "Search every marathon length up to --count")
	cmd.MarkFlagsMutuallyExclusive("sweep", "browse")

	return cmd
}

// sweepCounts returns the marathon lengths 1..n. A non-positive n is passed
// through unchanged so the planner rejects it like a plain plan would.
func sweepCounts(n int) []int {
	if n < 1 {
		return []int{n}
	}
	counts := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		counts = append(counts, i)
	}
	return counts
}

func (a *App) maybeCopy(out io.Writer, enabled bool, lines []Line) error {
	if !enabled {
		return nil
	}
	if err := clipboardWrite(PlainText(lines)); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	fmt.Fprintln(out, formatSuccess("Copied to clipboard."))
	return nil
}

// elapsed formats a search duration for the session footer.
func elapsed(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}
