// Package timeutil provides clock time and duration parsing and formatting.
//
// Times of day are represented as minutes since midnight. Nothing in this
// package wraps or clamps values used for ordering; only MinutesToTime wraps
// hours for display.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Validation errors.
var (
	ErrInvalidTime     = errors.New("time must be in HH:MM format")
	ErrInvalidDuration = errors.New("duration must look like 1hr 30min, 90min or 90")
)

// MinutesPerDay is the number of minutes in a day.
const MinutesPerDay = 24 * 60

var (
	strictTimeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	freeTimeRe   = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`)
)

// TimeToMinutes converts "H:MM" or "HH:MM" (24-hour) to minutes since midnight.
// Returns ErrInvalidTime for anything else.
func TimeToMinutes(s string) (int, error) {
	m := strictTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTime, s)
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTime, s)
	}
	return hours*60 + mins, nil
}

// MinutesToTime converts minutes since midnight to "HH:MM".
// Negative values render as "00:00" and hours wrap past midnight.
func MinutesToTime(m int) string {
	if m < 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", (m/60)%24, m%60)
}

// ExtractTimes scans free text line by line for clock times such as
// "14:30", "9:05" or "2:30 PM" and returns them as sorted, de-duplicated
// "HH:MM" strings. Malformed matches are skipped.
func ExtractTimes(text string) []string {
	seen := make(map[string]bool)
	var times []string

	for _, line := range strings.Split(text, "\n") {
		for _, m := range freeTimeRe.FindAllStringSubmatch(line, -1) {
			hours, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			mins, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}

			if marker := strings.ToLower(m[3]); marker != "" {
				if hours < 1 || hours > 12 {
					continue
				}
				switch {
				case marker == "am" && hours == 12:
					hours = 0
				case marker == "pm" && hours < 12:
					hours += 12
				}
			}

			if hours > 23 || mins > 59 {
				continue
			}

			formatted := fmt.Sprintf("%02d:%02d", hours, mins)
			key := strings.ToLower(formatted)
			if seen[key] {
				continue
			}
			seen[key] = true
			times = append(times, formatted)
		}
	}

	sort.Strings(times)
	return times
}

// SplitTimeList splits a comma-separated list of times, trimming each entry
// and dropping blanks. Entries are returned as written; invalid ones are
// filtered when the movie is normalized.
func SplitTimeList(s string) []string {
	var times []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			times = append(times, part)
		}
	}
	return times
}
