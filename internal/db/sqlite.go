// Package db provides the SQLite-backed session catalog.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/marathon/internal/movie"
)

// MemoryPath opens a private in-memory database. Catalogs live for one
// session only.
const MemoryPath = ":memory:"

// SQLite implements movie.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every new connection to :memory: is a fresh, empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// NewMemory creates an in-memory repository.
func NewMemory() (*SQLite, error) {
	return New(MemoryPath)
}

// CreateMovie adds a movie and its showtimes, assigning m.ID.
func (s *SQLite) CreateMovie(ctx context.Context, m *movie.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO movies (title, duration_minutes, mandatory, created_at) VALUES (?, ?, ?, ?)`,
		m.Title,
		m.DurationMinutes,
		m.Mandatory,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO showtimes (movie_id, position, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, st := range m.Showtimes {
		if _, err := stmt.ExecContext(ctx, id, i, st); err != nil {
			return fmt.Errorf("inserting showtime %q: %w", st, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	m.ID = id
	return nil
}

// GetMovie retrieves a movie by ID.
func (s *SQLite) GetMovie(ctx context.Context, id int64) (*movie.Movie, error) {
	query := `
		SELECT id, title, duration_minutes, mandatory, created_at
		FROM movies
		WHERE id = ?
	`

	m, err := scanMovie(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", movie.ErrMovieNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying movie: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM showtimes WHERE movie_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying showtimes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scanning showtime: %w", err)
		}
		m.Showtimes = append(m.Showtimes, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating showtimes: %w", err)
	}

	return m, nil
}

// ListMovies returns all movies in insertion order.
func (s *SQLite) ListMovies(ctx context.Context) ([]*movie.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, duration_minutes, mandatory, created_at
		FROM movies
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying movies: %w", err)
	}

	var movies []*movie.Movie
	byID := make(map[int64]*movie.Movie)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning movie: %w", err)
		}
		movies = append(movies, m)
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterating movies: %w", err)
	}
	_ = rows.Close()

	// The single connection must be released before the next query.
	strows, err := s.db.QueryContext(ctx,
		`SELECT movie_id, value FROM showtimes ORDER BY movie_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying showtimes: %w", err)
	}
	defer func() { _ = strows.Close() }()

	for strows.Next() {
		var (
			movieID int64
			value   string
		)
		if err := strows.Scan(&movieID, &value); err != nil {
			return nil, fmt.Errorf("scanning showtime: %w", err)
		}
		if m, ok := byID[movieID]; ok {
			m.Showtimes = append(m.Showtimes, value)
		}
	}
	if err := strows.Err(); err != nil {
		return nil, fmt.Errorf("iterating showtimes: %w", err)
	}

	return movies, nil
}

// SetMandatory sets the mandatory flag of a movie.
func (s *SQLite) SetMandatory(ctx context.Context, id int64, mandatory bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE movies SET mandatory = ? WHERE id = ?`, mandatory, id)
	if err != nil {
		return fmt.Errorf("updating movie: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %d", movie.ErrMovieNotFound, id)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner) (*movie.Movie, error) {
	var (
		m         movie.Movie
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.Title, &m.DurationMinutes, &m.Mandatory, &createdAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	m.CreatedAt = t
	return &m, nil
}
