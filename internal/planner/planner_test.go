package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/marathon/internal/movie"
)

type staticCatalog []*movie.Movie

func (c staticCatalog) Snapshot(context.Context) ([]*movie.Movie, error) {
	out := make([]*movie.Movie, len(c))
	for i, m := range c {
		out[i] = m.Clone()
	}
	return out, nil
}

type failingCatalog struct{}

func (failingCatalog) Snapshot(context.Context) ([]*movie.Movie, error) {
	return nil, errors.New("store closed")
}

func sampleMovies() staticCatalog {
	return staticCatalog{
		{ID: 1, Title: "A", DurationMinutes: 90, Showtimes: []string{"14:00", "10:00"}},
		{ID: 2, Title: "B", DurationMinutes: 60, Showtimes: []string{"12:00", "16:00"}},
	}
}

func TestPlan(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())

	result, err := p.Plan(context.Background(), Params{Count: 2, BreakMinutes: 15})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if result.Total() != 2 {
		t.Fatalf("expected 2 schedules, got %d", result.Total())
	}
	if result.Ranked[0].TotalBreak != 30 || result.Ranked[1].TotalBreak != 270 {
		t.Errorf("breaks = %d, %d, want 30, 270", result.Ranked[0].TotalBreak, result.Ranked[1].TotalBreak)
	}
	if result.RunID == "" {
		t.Error("expected run id")
	}
	if result.MandatoryActive() || result.Truncated {
		t.Errorf("unexpected flags: %+v", result)
	}
}

func TestPlan_MandatoryFromParams(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())

	result, err := p.Plan(context.Background(), Params{Count: 1, Mandatory: []string{"b"}})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !result.MandatoryActive() {
		t.Error("expected mandatory constraint to be active")
	}
	for _, r := range result.Ranked {
		if r.Slots[0].MovieID != 2 {
			t.Errorf("schedule without B: %+v", r)
		}
	}
}

func TestPlan_MandatoryFromCatalog(t *testing.T) {
	movies := sampleMovies()
	movies[0].Mandatory = true
	p := New(movies, zerolog.Nop())

	result, err := p.Plan(context.Background(), Params{Count: 1})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if result.Total() != 2 || result.Mandatory[0].ID != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestPlan_EmptyResultIsNotAnError(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())

	result, err := p.Plan(context.Background(), Params{Count: 2, BreakMinutes: 600})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !result.Empty() {
		t.Errorf("expected no schedules, got %d", result.Total())
	}
}

func TestPlan_Limit(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())

	result, err := p.Plan(context.Background(), Params{Count: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !result.Truncated || result.TimedOut || result.Total() != 2 {
		t.Errorf("unexpected result: truncated=%v timedOut=%v total=%d", result.Truncated, result.TimedOut, result.Total())
	}
}

func TestPlan_Timeout(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())

	// A deadline in the past expires before the search starts.
	result, err := p.Plan(context.Background(), Params{Count: 1, Timeout: time.Nanosecond})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !result.TimedOut {
		// The tiny deadline may not fire before a four-node search finishes.
		if result.Total() != 4 {
			t.Errorf("expected complete result when not timed out, got %d", result.Total())
		}
	}
}

func TestPlan_Cancelled(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Plan(ctx, Params{Count: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPlan_CatalogError(t *testing.T) {
	p := New(failingCatalog{}, zerolog.Nop())

	_, err := p.Plan(context.Background(), Params{Count: 1})
	if err == nil || errors.Is(err, ErrValidation) {
		t.Errorf("expected a non-validation error, got %v", err)
	}
}

func TestPlan_DoesNotMutateCatalog(t *testing.T) {
	movies := sampleMovies()
	p := New(movies, zerolog.Nop())

	if _, err := p.Plan(context.Background(), Params{Count: 1, Mandatory: []string{"A"}}); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if movies[0].Mandatory {
		t.Error("run-only mandatory reference changed the catalog")
	}
	if movies[0].Showtimes[0] != "14:00" {
		t.Errorf("showtimes reordered: %v", movies[0].Showtimes)
	}
}

func TestSweep(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())

	results, err := p.Sweep(context.Background(), Params{BreakMinutes: 15}, []int{1, 2})
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(results) != 2 || len(results[0].Ranked) != 4 || len(results[1].Ranked) != 2 {
		t.Errorf("unexpected sweep: %+v", results)
	}
}

func TestSweep_InvalidCount(t *testing.T) {
	p := New(sampleMovies(), zerolog.Nop())

	tests := []struct {
		name   string
		counts []int
		want   error
	}{
		{name: "no counts", counts: nil, want: ErrInvalidCount},
		{name: "zero", counts: []int{0}, want: ErrInvalidCount},
		{name: "negative", counts: []int{-2}, want: ErrInvalidCount},
		{name: "too many", counts: []int{1, 3}, want: ErrNotEnoughMovies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := p.Sweep(context.Background(), Params{}, tt.counts)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected a validation error, got %v", err)
			}
			if results != nil {
				t.Errorf("expected no results, got %+v", results)
			}
		})
	}
}
