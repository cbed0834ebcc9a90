package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/javiermolinar/marathon/internal/movie"
	"github.com/javiermolinar/marathon/internal/scheduler"
	"github.com/javiermolinar/marathon/internal/timeutil"
)

// ErrValidation matches every ValidationError.
var ErrValidation = errors.New("invalid scheduling request")

// Request validation errors, checked in this order.
var (
	ErrInvalidEarliestStart      = errors.New("invalid earliest start time")
	ErrInvalidCount              = errors.New("invalid number of movies")
	ErrInvalidBreak              = errors.New("invalid break time")
	ErrNoMovies                  = errors.New("no movies added")
	ErrNotEnoughMovies           = errors.New("not enough movies added")
	ErrUnknownMovie              = errors.New("unknown movie")
	ErrAmbiguousMovie            = errors.New("ambiguous movie title")
	ErrTooManyMandatory          = errors.New("too many mandatory movies")
	ErrMandatoryWithoutShowtimes = errors.New("mandatory movie has no valid showtimes")
	ErrNotEnoughShowtimes        = errors.New("not enough movies with valid showtimes")
)

// ValidationError is a user-correctable problem with a scheduling request.
// It matches both ErrValidation and its specific cause with errors.Is.
type ValidationError struct {
	Field   string // "earliest_start", "count", "break", "catalog", "mandatory"
	Err     error
	Message string // user-facing explanation
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes ErrValidation and the specific cause.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

func invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Err: err, Message: fmt.Sprintf(format, args...)}
}

// Prepared is a validated request ready for the search engine.
type Prepared struct {
	Movies    []movie.Normalized
	Request   scheduler.Request
	Mandatory []*movie.Movie // in catalog order
}

// Prepare validates params against a catalog snapshot and builds the engine
// input. It never touches the catalog.
func Prepare(movies []*movie.Movie, params Params) (*Prepared, error) {
	var earliest *int
	if s := strings.TrimSpace(params.EarliestStart); s != "" {
		m, err := timeutil.TimeToMinutes(s)
		if err != nil {
			return nil, invalid("earliest_start", ErrInvalidEarliestStart,
				"invalid earliest start time %q, please use HH:MM or leave blank", params.EarliestStart)
		}
		earliest = &m
	}

	if params.Count <= 0 {
		return nil, invalid("count", ErrInvalidCount,
			"please enter a valid number of movies for the marathon, got %d", params.Count)
	}
	if params.BreakMinutes < 0 {
		return nil, invalid("break", ErrInvalidBreak,
			"please enter a valid break time (0 or more minutes), got %d", params.BreakMinutes)
	}

	if len(movies) == 0 {
		return nil, invalid("catalog", ErrNoMovies,
			"please add some movies before generating a schedule")
	}
	if params.Count > len(movies) {
		return nil, invalid("count", ErrNotEnoughMovies,
			"you want to schedule %d movies, but have only added %d, please add more movies or reduce the number to schedule",
			params.Count, len(movies))
	}

	mandatory, err := resolveMandatory(movies, params.Mandatory)
	if err != nil {
		return nil, err
	}
	if len(mandatory) > params.Count {
		return nil, invalid("mandatory", ErrTooManyMandatory,
			"%d movies are marked mandatory, but the marathon only has %d slots",
			len(mandatory), params.Count)
	}

	mandatoryIDs := make(map[int64]bool, len(mandatory))
	for _, m := range mandatory {
		if len(m.Normalize().Showtimes) == 0 {
			return nil, invalid("mandatory", ErrMandatoryWithoutShowtimes,
				"mandatory movie %q has no valid showtimes", m.Title)
		}
		mandatoryIDs[m.ID] = true
	}

	normalized := movie.Normalize(movies)
	if len(normalized) < params.Count {
		return nil, invalid("catalog", ErrNotEnoughShowtimes,
			"only %d movies have valid showtimes, which is less than the %d movies you want to schedule, please check showtime formats",
			len(normalized), params.Count)
	}

	return &Prepared{
		Movies: normalized,
		Request: scheduler.Request{
			Count:         params.Count,
			BreakMinutes:  params.BreakMinutes,
			EarliestStart: earliest,
			Mandatory:     mandatoryIDs,
		},
		Mandatory: mandatory,
	}, nil
}

// resolveMandatory returns the movies flagged mandatory in the catalog plus
// those named by refs, in catalog order without duplicates.
func resolveMandatory(movies []*movie.Movie, refs []string) ([]*movie.Movie, error) {
	selected := make(map[int64]bool)
	for _, m := range movies {
		if m.Mandatory {
			selected[m.ID] = true
		}
	}

	for _, ref := range refs {
		m, err := FindMovie(movies, ref)
		if err != nil {
			return nil, err
		}
		selected[m.ID] = true
	}

	var result []*movie.Movie
	for _, m := range movies {
		if selected[m.ID] {
			result = append(result, m)
		}
	}
	return result, nil
}

// FindMovie looks a movie up by numeric id or, failing that, by
// case-insensitive title.
func FindMovie(movies []*movie.Movie, ref string) (*movie.Movie, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, m := range movies {
			if m.ID == id {
				return m, nil
			}
		}
	}

	var match *movie.Movie
	for _, m := range movies {
		if !strings.EqualFold(m.Title, ref) {
			continue
		}
		if match != nil {
			return nil, invalid("mandatory", ErrAmbiguousMovie,
				"more than one movie is titled %q, refer to it by id", ref)
		}
		match = m
	}
	if match == nil {
		return nil, invalid("mandatory", ErrUnknownMovie, "no movie matches %q", ref)
	}
	return match, nil
}
