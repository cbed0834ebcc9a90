// Package planner validates marathon requests and runs the schedule search.
// Both the CLI and the TUI use this package.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/marathon/internal/movie"
	"github.com/javiermolinar/marathon/internal/scheduler"
)

// Snapshotter supplies a detached copy of the catalog.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]*movie.Movie, error)
}

// Params are the user's scheduling preferences.
type Params struct {
	Count         int
	BreakMinutes  int
	EarliestStart string   // "HH:MM", empty for none
	Mandatory     []string // ids or titles to require for this run only
	Limit         int      // stop after this many schedules, 0 for no limit
	Timeout       time.Duration
}

// Result is the ranked outcome of a planning run.
type Result struct {
	RunID     string
	Params    Params
	Ranked    []scheduler.Ranked
	Mandatory []*movie.Movie // movies every schedule includes
	Truncated bool           // search stopped early on Limit or Timeout
	TimedOut  bool
	Elapsed   time.Duration
}

// Total returns the number of schedules found.
func (r *Result) Total() int {
	return len(r.Ranked)
}

// Empty reports whether no schedule satisfies the request.
func (r *Result) Empty() bool {
	return len(r.Ranked) == 0
}

// MandatoryActive reports whether mandatory movies constrained the search.
func (r *Result) MandatoryActive() bool {
	return len(r.Mandatory) > 0
}

// Planner orchestrates validation and search over a catalog.
type Planner struct {
	catalog Snapshotter
	logger  zerolog.Logger
}

// New creates a Planner reading from catalog.
func New(catalog Snapshotter, logger zerolog.Logger) *Planner {
	return &Planner{catalog: catalog, logger: logger}
}

// Plan validates params and returns every matching schedule ranked by total
// break time. Validation problems are returned as *ValidationError; an empty
// Result is not an error.
func (p *Planner) Plan(ctx context.Context, params Params) (*Result, error) {
	movies, err := p.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return p.PlanMovies(ctx, movies, params)
}

// PlanMovies is Plan over an explicit snapshot.
func (p *Planner) PlanMovies(ctx context.Context, movies []*movie.Movie, params Params) (*Result, error) {
	prepared, err := Prepare(movies, params)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := p.logger.With().Str("run_id", runID).Logger()
	log.Debug().
		Int("movies", len(prepared.Movies)).
		Int("count", params.Count).
		Int("break_minutes", params.BreakMinutes).
		Str("earliest_start", params.EarliestStart).
		Int("mandatory", len(prepared.Mandatory)).
		Msg("searching schedules")

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	started := time.Now()
	found, err := scheduler.SearchContext(ctx, prepared.Movies, prepared.Request,
		scheduler.Options{Limit: params.Limit})

	result := &Result{
		RunID:     runID,
		Params:    params,
		Mandatory: prepared.Mandatory,
		Elapsed:   time.Since(started),
	}

	switch {
	case err == nil:
	case errors.Is(err, scheduler.ErrLimitReached):
		result.Truncated = true
	case errors.Is(err, context.DeadlineExceeded):
		result.Truncated = true
		result.TimedOut = true
	default:
		return nil, fmt.Errorf("searching schedules: %w", err)
	}

	result.Ranked = scheduler.Rank(found)

	log.Debug().
		Int("schedules", result.Total()).
		Bool("truncated", result.Truncated).
		Dur("elapsed", result.Elapsed).
		Msg("search finished")

	return result, nil
}

// SweepResult is the outcome for one marathon length.
type SweepResult = scheduler.SweepResult

// Sweep validates params once per count and searches all counts concurrently.
// params.Count is ignored. An empty counts list or the first invalid count
// aborts the sweep with a *ValidationError.
func (p *Planner) Sweep(ctx context.Context, params Params, counts []int) ([]SweepResult, error) {
	if len(counts) == 0 {
		return nil, invalid("count", ErrInvalidCount,
			"please choose at least one marathon length to search")
	}

	movies, err := p.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	var prepared *Prepared
	for _, count := range counts {
		params.Count = count
		if prepared, err = Prepare(movies, params); err != nil {
			return nil, err
		}
	}

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	p.logger.Debug().Ints("counts", counts).Msg("sweeping marathon lengths")
	results, err := scheduler.Sweep(ctx, prepared.Movies, prepared.Request, counts,
		scheduler.Options{Limit: params.Limit})
	if err != nil {
		return nil, fmt.Errorf("sweeping schedules: %w", err)
	}
	return results, nil
}
