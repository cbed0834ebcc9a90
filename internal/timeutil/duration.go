package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hourRe    = regexp.MustCompile(`(\d+)\s*(?:hr|h)`)
	minuteRe  = regexp.MustCompile(`(\d+)\s*(?:min|m)`)
	bareRe    = regexp.MustCompile(`^\d+$`)
	decimalRe = regexp.MustCompile(`\d*\.\d+`)
)

// ParseDuration converts free-form duration text to minutes.
// Accepted forms: "1hr 30min", "1h30m", "2 hr", "45 min", "90".
// Hour and minute parts are optional and independent; a bare integer is minutes.
// Zero is valid when written explicitly ("0", "0min").
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, ErrInvalidDuration
	}
	if decimalRe.MatchString(s) {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, s)
	}

	hourMatch := hourRe.FindStringSubmatch(s)
	minMatch := minuteRe.FindStringSubmatch(s)

	if hourMatch == nil && minMatch == nil {
		if !bareRe.MatchString(s) {
			return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, s)
		}
		return atoi(s)
	}

	total := 0
	if hourMatch != nil {
		h, err := atoi(hourMatch[1])
		if err != nil {
			return 0, err
		}
		if h > math.MaxInt/60 {
			return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, s)
		}
		total += h * 60
	}
	if minMatch != nil {
		m, err := atoi(minMatch[1])
		if err != nil {
			return 0, err
		}
		if m > math.MaxInt-total {
			return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, s)
		}
		total += m
	}
	return total, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		// Only reachable on overflow; the patterns guarantee digits.
		return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, s)
	}
	return n, nil
}

// FormatDuration formats minutes as "1 hr 30 min", "2 hr" or "45 min".
// Zero and negative values format as "0 min".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0 min"
	}

	hours := minutes / 60
	mins := minutes % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hr", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%d min", mins))
	}
	return strings.Join(parts, " ")
}
