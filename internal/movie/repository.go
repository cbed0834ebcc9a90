package movie

import "context"

// Repository defines the storage interface for the session catalog.
type Repository interface {
	// CreateMovie adds a movie and assigns its ID.
	CreateMovie(ctx context.Context, m *Movie) error

	// GetMovie retrieves a movie by ID.
	// Returns ErrMovieNotFound if it does not exist.
	GetMovie(ctx context.Context, id int64) (*Movie, error)

	// ListMovies returns all movies in insertion order.
	ListMovies(ctx context.Context) ([]*Movie, error)

	// SetMandatory sets the mandatory flag of a movie.
	SetMandatory(ctx context.Context, id int64, mandatory bool) error

	// Close releases any resources held by the repository.
	Close() error
}
