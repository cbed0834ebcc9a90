package scheduler

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/marathon/internal/movie"
)

// Ranked is a schedule annotated with its total break time.
type Ranked struct {
	Schedule
	TotalBreak int // minutes spent between movies
}

// TotalBreak sums the gaps between consecutive slots.
func TotalBreak(s Schedule) int {
	total := 0
	for i := 0; i+1 < len(s.Slots); i++ {
		total += s.Slots[i+1].StartMinutes - s.Slots[i].End()
	}
	return total
}

// Breaks returns the gap after each slot but the last.
func (s Schedule) Breaks() []int {
	if len(s.Slots) < 2 {
		return nil
	}
	gaps := make([]int, len(s.Slots)-1)
	for i := range gaps {
		gaps[i] = s.Slots[i+1].StartMinutes - s.Slots[i].End()
	}
	return gaps
}

// Rank annotates schedules with total break time and sorts them ascending.
// Ties keep discovery order.
func Rank(schedules []Schedule) []Ranked {
	ranked := make([]Ranked, len(schedules))
	for i, s := range schedules {
		ranked[i] = Ranked{Schedule: s, TotalBreak: TotalBreak(s)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalBreak < ranked[j].TotalBreak
	})
	return ranked
}

// SweepResult is the ranked outcome for one marathon length.
type SweepResult struct {
	Count     int
	Ranked    []Ranked
	Truncated bool // the search stopped at Options.Limit
}

// Sweep searches several marathon lengths concurrently. req.Count is
// ignored; each entry of counts gets its own search. Results are returned in
// the order of counts. Cancellation of ctx aborts all searches.
func Sweep(ctx context.Context, movies []movie.Normalized, req Request, counts []int, opts Options) ([]SweepResult, error) {
	// Each goroutine writes only its own index.
	results := make([]SweepResult, len(counts))

	g, gctx := errgroup.WithContext(ctx)
	for i, count := range counts {
		g.Go(func() error {
			r := req
			r.Count = count
			found, err := SearchContext(gctx, movies, r, opts)
			truncated := errors.Is(err, ErrLimitReached)
			if err != nil && !truncated {
				return err
			}

			results[i] = SweepResult{Count: count, Ranked: Rank(found), Truncated: truncated}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
