// Package scheduler finds and ranks movie marathon schedules.
//
// The search is exhaustive: every ordered selection of distinct movies whose
// showtimes respect the break and earliest-start constraints is returned.
// Inputs are never mutated, so independent searches may run concurrently.
package scheduler

import (
	"context"
	"errors"

	"github.com/javiermolinar/marathon/internal/movie"
)

// ErrLimitReached is returned by SearchContext when Options.Limit candidates
// were found before the search space was exhausted.
var ErrLimitReached = errors.New("schedule limit reached")

// ctxCheckInterval is how many search nodes are visited between context checks.
const ctxCheckInterval = 1024

// Slot is one movie placed at one showtime.
type Slot struct {
	MovieID         int64
	Title           string
	DurationMinutes int
	StartMinutes    int
}

// End returns the minute the movie finishes.
func (s Slot) End() int {
	return s.StartMinutes + s.DurationMinutes
}

// Schedule is a candidate marathon: slots in viewing order.
type Schedule struct {
	Slots []Slot
}

// MovieIDs returns the ids of the scheduled movies in order.
func (s Schedule) MovieIDs() []int64 {
	ids := make([]int64, len(s.Slots))
	for i, slot := range s.Slots {
		ids[i] = slot.MovieID
	}
	return ids
}

// Request holds the search constraints.
type Request struct {
	Count         int            // number of movies in the marathon, at least 1
	BreakMinutes  int            // minimum gap between one movie's end and the next start
	EarliestStart *int           // lower bound for the first showtime, nil for none
	Mandatory     map[int64]bool // movie ids every schedule must include
}

// Options bounds a search.
type Options struct {
	Limit int // stop after this many candidates, 0 for no limit
}

// Search returns every schedule satisfying req, in discovery order.
// Movies are explored in the given order and showtimes ascending.
func Search(movies []movie.Normalized, req Request) []Schedule {
	schedules, _ := SearchContext(context.Background(), movies, req, Options{})
	return schedules
}

// SearchContext is Search with cancellation and an optional candidate cap.
// On cancellation or when the cap is hit it returns the candidates found so
// far along with ctx.Err() or ErrLimitReached.
func SearchContext(ctx context.Context, movies []movie.Normalized, req Request, opts Options) ([]Schedule, error) {
	if req.Count < 1 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &search{
		ctx:    ctx,
		movies: movies,
		req:    req,
		limit:  opts.Limit,
	}
	s.next(nil, 0)
	return s.found, s.err
}

type search struct {
	ctx    context.Context
	movies []movie.Normalized
	req    Request
	limit  int

	visited int
	found   []Schedule
	err     error
}

// next extends placed by one slot. lastEnd is the end of the last placed
// slot and is ignored while placed is empty.
func (s *search) next(placed []Slot, lastEnd int) {
	if s.stopped() {
		return
	}

	if len(placed) == s.req.Count {
		if s.missingMandatory(placed) > 0 {
			return
		}
		s.accept(placed)
		return
	}

	if s.req.Count-len(placed) < s.missingMandatory(placed) {
		return
	}

	for _, m := range s.movies {
		if isPlaced(placed, m.ID) {
			continue
		}
		for _, start := range m.Showtimes {
			if !s.eligible(len(placed), start, lastEnd) {
				continue
			}
			slot := Slot{
				MovieID:         m.ID,
				Title:           m.Title,
				DurationMinutes: m.DurationMinutes,
				StartMinutes:    start,
			}
			// Full slice expression so siblings never share a backing array.
			s.next(append(placed[:len(placed):len(placed)], slot), slot.End())
			if s.err != nil {
				return
			}
		}
	}
}

func (s *search) eligible(position, start, lastEnd int) bool {
	if position == 0 {
		return s.req.EarliestStart == nil || start >= *s.req.EarliestStart
	}
	return start >= lastEnd+s.req.BreakMinutes
}

func (s *search) accept(placed []Slot) {
	slots := make([]Slot, len(placed))
	copy(slots, placed)
	s.found = append(s.found, Schedule{Slots: slots})
	if s.limit > 0 && len(s.found) >= s.limit {
		s.err = ErrLimitReached
	}
}

func (s *search) stopped() bool {
	if s.err != nil {
		return true
	}
	s.visited++
	if s.visited%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return true
		}
	}
	return false
}

// missingMandatory counts mandatory ids not yet in placed.
func (s *search) missingMandatory(placed []Slot) int {
	missing := 0
	for id, required := range s.req.Mandatory {
		if required && !isPlaced(placed, id) {
			missing++
		}
	}
	return missing
}

func isPlaced(placed []Slot, id int64) bool {
	for _, slot := range placed {
		if slot.MovieID == id {
			return true
		}
	}
	return false
}
