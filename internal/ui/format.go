package ui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/marathon/internal/planner"
	"github.com/javiermolinar/marathon/internal/scheduler"
	"github.com/javiermolinar/marathon/internal/timeutil"
)

// DefaultTop is the number of schedules shown when no limit is configured.
const DefaultTop = 5

// Empty-result messages.
const (
	MsgNoSchedules          = "No valid marathon schedules found with the given criteria. Try adjusting preferences or adding more movie showtimes."
	MsgNoMandatorySchedules = "No valid marathon schedules include all mandatory movies. Try adjusting preferences, unmarking mandatory movies, or adding more showtimes."
)

// LineKind classifies a rendered line for styling.
type LineKind int

const (
	LineText LineKind = iota
	LineNote
	LineHeader
	LineLabel
	LineSlot
	LineBreak
)

// Line is one line of presenter output.
type Line struct {
	Kind LineKind
	Text string
}

func (l Line) String() string {
	return l.Text
}

// PlainText joins lines into uncoloured text ending in a newline.
func PlainText(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// OptionLabel returns the heading of the i-th (1-based) option.
func OptionLabel(i int, r scheduler.Ranked) string {
	return fmt.Sprintf("Marathon Option %d (Total Break Time: %s)", i, timeutil.FormatDuration(r.TotalBreak))
}

// SlotLine renders a slot as "Title (duration): HH:MM - HH:MM".
func SlotLine(s scheduler.Slot) string {
	return fmt.Sprintf("%s (%s): %s - %s",
		s.Title,
		timeutil.FormatDuration(s.DurationMinutes),
		timeutil.MinutesToTime(s.StartMinutes),
		timeutil.MinutesToTime(s.End()),
	)
}

// BreakLine renders the gap between two consecutive slots.
func BreakLine(minutes int) string {
	return fmt.Sprintf("--- Break: %s ---", timeutil.FormatDuration(minutes))
}

// RenderOption renders one ranked schedule: its label followed by slot lines
// interleaved with the breaks between them.
func RenderOption(i int, r scheduler.Ranked) []Line {
	lines := []Line{{Kind: LineLabel, Text: OptionLabel(i, r)}}
	breaks := r.Breaks()
	for j, slot := range r.Slots {
		lines = append(lines, Line{Kind: LineSlot, Text: "  " + SlotLine(slot)})
		if j < len(breaks) {
			lines = append(lines, Line{Kind: LineBreak, Text: "  " + BreakLine(breaks[j])})
		}
	}
	return lines
}

// RenderResult renders at most top schedules of a planning result.
// A non-positive top means DefaultTop.
func RenderResult(r *planner.Result, top int) []Line {
	if top <= 0 {
		top = DefaultTop
	}

	var lines []Line
	switch {
	case r.TimedOut:
		lines = append(lines, Line{Kind: LineNote,
			Text: "Search stopped at the time limit, results may be incomplete."})
	case r.Truncated:
		lines = append(lines, Line{Kind: LineNote,
			Text: fmt.Sprintf("Search stopped after %d %s, results may be incomplete.", r.Total(), plural(r.Total(), "schedule"))})
	}

	if r.Empty() {
		msg := MsgNoSchedules
		if r.MandatoryActive() {
			msg = MsgNoMandatorySchedules
		}
		return append(lines, Line{Kind: LineText, Text: msg})
	}

	return append(lines, renderRanked(r.Ranked, top)...)
}

func renderRanked(ranked []scheduler.Ranked, top int) []Line {
	var lines []Line
	shown := ranked
	if len(ranked) > top {
		shown = ranked[:top]
		lines = append(lines, Line{Kind: LineNote,
			Text: fmt.Sprintf("Showing top %d schedules out of %d found.", top, len(ranked))})
	}

	for i, r := range shown {
		if i > 0 || len(lines) > 0 {
			lines = append(lines, Line{Kind: LineText})
		}
		lines = append(lines, RenderOption(i+1, r)...)
	}
	return lines
}

// RenderSweep renders the results of a count sweep, one section per count.
func RenderSweep(results []planner.SweepResult, top int, mandatory bool) []Line {
	if top <= 0 {
		top = DefaultTop
	}

	var lines []Line
	for i, res := range results {
		if i > 0 {
			lines = append(lines, Line{Kind: LineText})
		}
		n := len(res.Ranked)
		header := fmt.Sprintf("== %d %s: %d %s found ==", res.Count, plural(res.Count, "movie"), n, plural(n, "schedule"))
		if res.Truncated {
			header += " (search limit reached)"
		}
		lines = append(lines, Line{Kind: LineHeader, Text: header})

		if len(res.Ranked) == 0 {
			msg := MsgNoSchedules
			if mandatory {
				msg = MsgNoMandatorySchedules
			}
			lines = append(lines, Line{Kind: LineText, Text: msg})
			continue
		}
		lines = append(lines, renderRanked(res.Ranked, top)...)
	}
	return lines
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
