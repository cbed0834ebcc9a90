// Package movie defines the catalog domain types for marathon.
package movie

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/javiermolinar/marathon/internal/timeutil"
)

// Validation errors.
var (
	ErrEmptyTitle         = errors.New("please enter a movie title")
	ErrInvalidDuration    = errors.New("please enter a valid movie duration (e.g., 1hr 30min, 90min, or 90)")
	ErrNoShowtimes        = errors.New("please enter at least one showtime")
	ErrNoValidShowtimes   = errors.New("no valid showtimes found, use HH:MM or H:MM am/pm")
	ErrInvalidShowtimeFmt = errors.New("showtime format must be 'freetext' or 'list'")
)

// ErrMovieNotFound is returned when a movie id is not in the catalog.
var ErrMovieNotFound = errors.New("movie not found")

// ShowtimeFormat selects how showtime input is interpreted.
type ShowtimeFormat string

const (
	// FormatFreeText scans free text for clock times, with optional am/pm.
	FormatFreeText ShowtimeFormat = "freetext"
	// FormatList splits a comma-separated list of HH:MM times.
	FormatList ShowtimeFormat = "list"
)

// ParseShowtimeFormat validates a showtime format name. Empty means free text.
func ParseShowtimeFormat(s string) (ShowtimeFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatFreeText):
		return FormatFreeText, nil
	case string(FormatList):
		return FormatList, nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrInvalidShowtimeFmt, s)
	}
}

// Movie is a catalog entry.
type Movie struct {
	ID              int64
	Title           string
	DurationMinutes int
	Showtimes       []string // as entered, "HH:MM" once extracted
	Mandatory       bool
	CreatedAt       time.Time
}

// New creates a new Movie with validation.
// duration is free text parsed by timeutil.ParseDuration; zero is allowed.
// showtimes is interpreted according to format.
func New(title, duration, showtimes string, format ShowtimeFormat) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	minutes, err := timeutil.ParseDuration(duration)
	if err != nil || minutes < 0 {
		return nil, ErrInvalidDuration
	}

	times, err := parseShowtimes(showtimes, format)
	if err != nil {
		return nil, err
	}

	return &Movie{
		Title:           title,
		DurationMinutes: minutes,
		Showtimes:       times,
		CreatedAt:       time.Now(),
	}, nil
}

func parseShowtimes(raw string, format ShowtimeFormat) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoShowtimes
	}

	var times []string
	switch format {
	case FormatList:
		times = timeutil.SplitTimeList(raw)
	case FormatFreeText, "":
		times = timeutil.ExtractTimes(raw)
	default:
		return nil, fmt.Errorf("%w, got %q", ErrInvalidShowtimeFmt, format)
	}

	if !anyValid(times) {
		return nil, ErrNoValidShowtimes
	}
	return times, nil
}

func anyValid(times []string) bool {
	for _, s := range times {
		if _, err := timeutil.TimeToMinutes(s); err == nil {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the movie.
func (m *Movie) Clone() *Movie {
	c := *m
	c.Showtimes = append([]string(nil), m.Showtimes...)
	return &c
}

// Normalized is the scheduling view of a movie: showtimes parsed to minutes
// since midnight and sorted ascending.
type Normalized struct {
	ID              int64
	Title           string
	DurationMinutes int
	Showtimes       []int
}

// Normalize parses a movie's showtimes, dropping invalid ones.
func (m *Movie) Normalize() Normalized {
	n := Normalized{
		ID:              m.ID,
		Title:           m.Title,
		DurationMinutes: m.DurationMinutes,
		Showtimes:       make([]int, 0, len(m.Showtimes)),
	}
	for _, s := range m.Showtimes {
		minutes, err := timeutil.TimeToMinutes(s)
		if err != nil {
			continue
		}
		n.Showtimes = append(n.Showtimes, minutes)
	}
	sort.Ints(n.Showtimes)
	return n
}

// Normalize projects movies into scheduling input, preserving catalog order.
// Movies without any valid showtime are left out.
func Normalize(movies []*Movie) []Normalized {
	result := make([]Normalized, 0, len(movies))
	for _, m := range movies {
		n := m.Normalize()
		if len(n.Showtimes) == 0 {
			continue
		}
		result = append(result, n)
	}
	return result
}

// String renders a catalog line such as "Alien (1 hr 57 min) - Showtimes: 10:00, 14:30".
func (m *Movie) String() string {
	return fmt.Sprintf("%s (%s) - Showtimes: %s",
		m.Title,
		timeutil.FormatDuration(m.DurationMinutes),
		strings.Join(m.Showtimes, ", "),
	)
}
