package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/marathon/internal/scheduler"
	"github.com/javiermolinar/marathon/internal/timeutil"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		msg := "No schedules to browse."
		if q := m.filter.Value(); q != "" {
			msg = fmt.Sprintf("No schedule includes a movie matching %q.", q)
		}
		b.WriteString(m.styles.HelpStyle.Render(msg))
	} else {
		list := m.styles.ListStyle.Render(m.renderList())
		detail := m.styles.DetailStyle.Render(m.renderDetail())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	total := m.result.Total()
	header := m.styles.TitleStyle.Render("Marathon schedules") +
		m.styles.SubtitleStyle.Render(fmt.Sprintf("  %d found", total))
	if len(m.visible) != total {
		header += m.styles.SubtitleStyle.Render(fmt.Sprintf(", %d shown", len(m.visible)))
	}
	switch {
	case m.result.TimedOut:
		header += "  " + m.styles.WarningStyle.Render("search timed out, results may be incomplete")
	case m.result.Truncated:
		header += "  " + m.styles.WarningStyle.Render("search limit reached")
	}
	return ansi.Truncate(header, m.width, "…")
}

func (m Model) renderList() string {
	rows := m.listRows()
	end := min(m.offset+rows, len(m.visible))

	lines := make([]string, 0, end-m.offset)
	for row := m.offset; row < end; row++ {
		i := m.visible[row]
		r := m.result.Ranked[i]
		text := fmt.Sprintf("%3d. %d %s, %s break",
			i+1, len(r.Slots), plural(len(r.Slots), "movie"), timeutil.FormatDuration(r.TotalBreak))
		text = ansi.Truncate(text, listWidth-2, "…")
		if row == m.cursor {
			lines = append(lines, m.styles.SelectedItemStyle.Width(listWidth-1).Render(text))
		} else {
			lines = append(lines, m.styles.ItemStyle.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetail() string {
	r, rank, ok := m.Selected()
	if !ok {
		return ""
	}

	width := max(m.width-listWidth-4, 10)
	mandatory := make(map[int64]bool, len(m.result.Mandatory))
	for _, mv := range m.result.Mandatory {
		mandatory[mv.ID] = true
	}

	lines := []string{m.styles.LabelStyle.Render(optionLabel(rank, r)), ""}
	breaks := r.Breaks()
	for j, s := range r.Slots {
		line := m.styles.TimeStyle.Render(timeutil.MinutesToTime(s.StartMinutes)+" - "+timeutil.MinutesToTime(s.End())) +
			"  " + m.styles.MovieStyle.Render(s.Title) +
			m.styles.SubtitleStyle.Render(" ("+timeutil.FormatDuration(s.DurationMinutes)+")")
		if mandatory[s.MovieID] {
			line += " " + m.styles.MandatoryStyle.Render("★")
		}
		lines = append(lines, ansi.Truncate(line, width, "…"))
		if j < len(breaks) {
			lines = append(lines, m.styles.BreakStyle.Render(breakLine(breaks[j])))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.mode == ModeFilter:
		status = m.filter.View()
	case m.statusMsg != "":
		status = m.styles.StatusStyle.Render(m.statusMsg)
	case m.filter.Value() != "":
		status = m.styles.HelpStyle.Render(fmt.Sprintf("filter: %s (esc to clear)", m.filter.Value()))
	default:
		status = " "
	}
	return ansi.Truncate(status, m.width, "…") + "\n" + m.help.View(m.keys)
}

// optionLabel matches the plain-text presenter's option heading.
func optionLabel(rank int, r scheduler.Ranked) string {
	return fmt.Sprintf("Marathon Option %d (Total Break Time: %s)", rank, timeutil.FormatDuration(r.TotalBreak))
}

func breakLine(minutes int) string {
	return fmt.Sprintf("--- Break: %s ---", timeutil.FormatDuration(minutes))
}

// optionText renders a schedule as plain text for the clipboard.
func optionText(rank int, r scheduler.Ranked) string {
	var b strings.Builder
	b.WriteString(optionLabel(rank, r))
	b.WriteByte('\n')
	breaks := r.Breaks()
	for j, s := range r.Slots {
		fmt.Fprintf(&b, "  %s (%s): %s - %s\n",
			s.Title,
			timeutil.FormatDuration(s.DurationMinutes),
			timeutil.MinutesToTime(s.StartMinutes),
			timeutil.MinutesToTime(s.End()),
		)
		if j < len(breaks) {
			fmt.Fprintf(&b, "  %s\n", breakLine(breaks[j]))
		}
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
