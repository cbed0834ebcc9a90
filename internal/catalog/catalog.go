// Package catalog owns the session movie catalog.
//
// The catalog is the only writer of movies. Scheduling runs read a Snapshot,
// never the live store, so a long search cannot observe later edits.
package catalog

import (
	"context"
	"fmt"

	"github.com/javiermolinar/marathon/internal/movie"
)

// Input is a movie as entered by the user.
type Input struct {
	Title     string
	Duration  string
	Showtimes string
	Mandatory bool
}

// Catalog manages the movies available for scheduling.
type Catalog struct {
	repo   movie.Repository
	format movie.ShowtimeFormat
}

// New creates a catalog over repo. format selects how showtime input is read.
func New(repo movie.Repository, format movie.ShowtimeFormat) *Catalog {
	if format == "" {
		format = movie.FormatFreeText
	}
	return &Catalog{repo: repo, format: format}
}

// Format returns the showtime input format.
func (c *Catalog) Format() movie.ShowtimeFormat {
	return c.format
}

// Add validates in and stores it as a new movie.
func (c *Catalog) Add(ctx context.Context, in Input) (*movie.Movie, error) {
	m, err := movie.New(in.Title, in.Duration, in.Showtimes, c.format)
	if err != nil {
		return nil, err
	}
	m.Mandatory = in.Mandatory

	if err := c.repo.CreateMovie(ctx, m); err != nil {
		return nil, fmt.Errorf("creating movie: %w", err)
	}
	return m, nil
}

// Get returns a movie by id.
func (c *Catalog) Get(ctx context.Context, id int64) (*movie.Movie, error) {
	return c.repo.GetMovie(ctx, id)
}

// List returns all movies in the order they were added.
func (c *Catalog) List(ctx context.Context) ([]*movie.Movie, error) {
	movies, err := c.repo.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing movies: %w", err)
	}
	return movies, nil
}

// SetMandatory marks or unmarks a movie as required in every schedule.
func (c *Catalog) SetMandatory(ctx context.Context, id int64, mandatory bool) error {
	return c.repo.SetMandatory(ctx, id, mandatory)
}

// ToggleMandatory flips the mandatory flag and returns the new value.
func (c *Catalog) ToggleMandatory(ctx context.Context, id int64) (bool, error) {
	m, err := c.repo.GetMovie(ctx, id)
	if err != nil {
		return false, err
	}
	if err := c.repo.SetMandatory(ctx, id, !m.Mandatory); err != nil {
		return false, err
	}
	return !m.Mandatory, nil
}

// Snapshot returns deep copies of all movies, safe to hand to a search.
func (c *Catalog) Snapshot(ctx context.Context) ([]*movie.Movie, error) {
	movies, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make([]*movie.Movie, len(movies))
	for i, m := range movies {
		snapshot[i] = m.Clone()
	}
	return snapshot, nil
}

// Close releases the underlying store.
func (c *Catalog) Close() error {
	return c.repo.Close()
}
