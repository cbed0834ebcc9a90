package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/marathon/internal/catalog"
	"github.com/javiermolinar/marathon/internal/movie"
	"github.com/javiermolinar/marathon/internal/planner"
)

var errQuit = errors.New("quit")

const sessionHelp = `Commands:
  add                              add a movie (prompts for details)
  list                             list the movies added so far
  mandatory <id|title>             toggle whether a movie must be included
  load <file>                      add the movies of a catalog file
  plan [count] [break] [earliest]  find schedules (defaults from config,
                                   '-' as earliest for no start limit)
  copy                             copy the last plan to the clipboard
  help                             show this help
  quit                             leave the session`

func (a *App) sessionCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Add movies and plan marathons interactively",
		Long: `Start an interactive session. Movies added during the session are kept
in memory and forgotten when it ends.

Pass --catalog to start with the movies of a catalog file.`,
		Example: `  marathon session
  marathon session --catalog movies.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.startSession(cmd.Context(), catalogPath, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file to load first")

	return cmd
}

func (a *App) runSession(ctx context.Context, in io.Reader, out io.Writer) error {
	return a.startSession(ctx, "", in, out)
}

type session struct {
	app     *App
	catalog *catalog.Catalog
	planner *planner.Planner
	in      *bufio.Scanner
	out     io.Writer
	last    []Line
}

func (a *App) startSession(ctx context.Context, catalogPath string, in io.Reader, out io.Writer) error {
	var (
		cat *catalog.Catalog
		err error
	)
	if catalogPath != "" {
		cat, err = a.openCatalog(ctx, catalogPath)
	} else {
		cat, err = a.newCatalog()
	}
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()

	s := &session{
		app:     a,
		catalog: cat,
		planner: planner.New(cat, a.logger),
		in:      bufio.NewScanner(in),
		out:     out,
	}
	return s.run(ctx)
}

func (s *session) run(ctx context.Context) error {
	fmt.Fprintln(s.out, formatHeader("Movie marathon planner")+" - type 'help' for commands.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		err := s.dispatch(ctx, fields[0], fields[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, formatError("error: "+err.Error()))
		}
	}
}

func (s *session) dispatch(ctx context.Context, name string, args []string) error {
	switch strings.ToLower(name) {
	case "add":
		return s.add(ctx)
	case "list", "ls":
		movies, err := s.catalog.List(ctx)
		if err != nil {
			return fmt.Errorf("listing movies: %w", err)
		}
		printMovies(s.out, movies)
		return nil
	case "mandatory":
		return s.toggleMandatory(ctx, strings.Join(args, " "))
	case "load":
		return s.load(ctx, strings.Join(args, " "))
	case "plan":
		return s.plan(ctx, args)
	case "copy":
		if len(s.last) == 0 {
			return errors.New("nothing to copy yet, run plan first")
		}
		return s.app.maybeCopy(s.out, true, s.last)
	case "help", "?":
		fmt.Fprintln(s.out, sessionHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type 'help' for commands", name)
	}
}

// prompt prints label and reads one line.
func (s *session) prompt(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	return s.readLine()
}

func (s *session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) add(ctx context.Context) error {
	var in catalog.Input
	var err error

	if in.Title, err = s.prompt("Title"); err != nil {
		return err
	}
	if in.Duration, err = s.prompt("Duration (e.g. 1hr 30min, 90min or 90)"); err != nil {
		return err
	}

	if s.catalog.Format() == movie.FormatList {
		if in.Showtimes, err = s.prompt("Showtimes (comma-separated HH:MM)"); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(s.out, "Showtimes (paste any text with times like 14:30 or 2:30pm, empty line to finish):")
		var lines []string
		for {
			line, err := s.readLine()
			if errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			if err != nil {
				return err
			}
			if line == "" {
				break
			}
			lines = append(lines, line)
		}
		in.Showtimes = strings.Join(lines, "\n")
	}

	answer, err := s.prompt("Mandatory? [y/N]")
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	in.Mandatory = isYes(answer)

	m, err := s.catalog.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added %s\n", movieLine(m))
	return nil
}

func (s *session) toggleMandatory(ctx context.Context, ref string) error {
	if ref == "" {
		return errors.New("usage: mandatory <id|title>")
	}

	movies, err := s.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("listing movies: %w", err)
	}
	m, err := planner.FindMovie(movies, ref)
	if err != nil {
		return err
	}

	on, err := s.catalog.ToggleMandatory(ctx, m.ID)
	if err != nil {
		return err
	}
	if on {
		fmt.Fprintf(s.out, "%s is now mandatory.\n", m.Title)
	} else {
		fmt.Fprintf(s.out, "%s is no longer mandatory.\n", m.Title)
	}
	return nil
}

func (s *session) load(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("usage: load <file>")
	}
	n, err := s.catalog.LoadFile(ctx, path)
	if n > 0 {
		fmt.Fprintf(s.out, "Loaded %d %s from %s.\n", n, plural(n, "movie"), path)
	}
	return err
}

func (s *session) plan(ctx context.Context, args []string) error {
	cfg := s.app.config
	timeout, _ := cfg.Timeout()
	params := planner.Params{
		Count:         cfg.Schedule.Count,
		BreakMinutes:  cfg.Schedule.BreakMinutes,
		EarliestStart: cfg.Schedule.EarliestStart,
		Limit:         cfg.Search.Limit,
		Timeout:       timeout,
	}

	if len(args) > 3 {
		return errors.New("usage: plan [count] [break] [earliest]")
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("please enter a valid number of movies for the marathon, got %q", args[0])
		}
		params.Count = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("please enter a valid break time (0 or more minutes), got %q", args[1])
		}
		params.BreakMinutes = n
	}
	if len(args) > 2 {
		params.EarliestStart = args[2]
		if params.EarliestStart == "-" {
			params.EarliestStart = ""
		}
	}

	result, err := s.planner.Plan(ctx, params)
	if err != nil {
		return err
	}

	s.last = RenderResult(result, cfg.Schedule.Top)
	printLines(s.out, s.last)
	fmt.Fprintln(s.out, separator())
	fmt.Fprintf(s.out, "%d %s found in %s\n", result.Total(), plural(result.Total(), "schedule"), elapsed(result.Elapsed))
	return nil
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "y" || s == "yes"
}
