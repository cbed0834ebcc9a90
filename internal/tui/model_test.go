package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/marathon/internal/movie"
	"github.com/javiermolinar/marathon/internal/planner"
	"github.com/javiermolinar/marathon/internal/scheduler"
)

func testResult() *planner.Result {
	alien := scheduler.Slot{MovieID: 1, Title: "Alien", DurationMinutes: 117, StartMinutes: 600}
	heat := scheduler.Slot{MovieID: 2, Title: "Heat", DurationMinutes: 170, StartMinutes: 750}
	zodiac := scheduler.Slot{MovieID: 3, Title: "Zodiac", DurationMinutes: 157, StartMinutes: 960}

	schedules := []scheduler.Schedule{
		{Slots: []scheduler.Slot{alien, heat}},
		{Slots: []scheduler.Slot{alien, zodiac}},
		{Slots: []scheduler.Slot{heat, zodiac}},
	}
	return &planner.Result{
		Ranked:    scheduler.Rank(schedules),
		Mandatory: []*movie.Movie{{ID: 1, Title: "Alien"}},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNavigation(t *testing.T) {
	m := New(testResult(), Options{})

	tests := []struct {
		name string
		msg  tea.Msg
		want int
	}{
		{name: "down", msg: keyRunes("j"), want: 1},
		{name: "arrow down", msg: tea.KeyMsg{Type: tea.KeyDown}, want: 2},
		{name: "down stops at last", msg: keyRunes("j"), want: 2},
		{name: "up", msg: keyRunes("k"), want: 1},
		{name: "first", msg: keyRunes("g"), want: 0},
		{name: "up stops at first", msg: tea.KeyMsg{Type: tea.KeyUp}, want: 0},
		{name: "last", msg: keyRunes("G"), want: 2},
	}

	for _, tt := range tests {
		m = update(t, m, tt.msg)
		if m.cursor != tt.want {
			t.Fatalf("%s: cursor = %d, want %d", tt.name, m.cursor, tt.want)
		}
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := New(testResult(), Options{})
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestCopy(t *testing.T) {
	var copied string
	m := New(testResult(), Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}})

	m = update(t, m, keyRunes("j"), keyRunes("y"))

	want := "Marathon Option 2 (Total Break Time: 40 min)\n" +
		"  Heat (2 hr 50 min): 12:30 - 15:20\n" +
		"  --- Break: 40 min ---\n" +
		"  Zodiac (2 hr 37 min): 16:00 - 18:37\n"
	r, _, _ := m.Selected()
	if r.TotalBreak != 40 {
		t.Fatalf("selected break = %d, want 40", r.TotalBreak)
	}
	if copied != want {
		t.Errorf("copied:\n%s\nwant:\n%s", copied, want)
	}
	if m.statusMsg != "Copied option 2" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestCopy_Error(t *testing.T) {
	m := New(testResult(), Options{Clipboard: func(string) error {
		return errors.New("no clipboard")
	}})

	m = update(t, m, keyRunes("y"))
	if !strings.Contains(m.statusMsg, "no clipboard") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestFilter(t *testing.T) {
	m := New(testResult(), Options{})

	m = update(t, m, keyRunes("/"))
	if m.mode != ModeFilter {
		t.Fatal("expected filter mode")
	}

	m = update(t, m, keyRunes("z"), keyRunes("o"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal {
		t.Error("enter should leave filter mode")
	}
	if len(m.visible) != 2 {
		t.Fatalf("visible = %v, want two options with Zodiac", m.visible)
	}
	for _, i := range m.visible {
		if !hasTitle(m.result.Ranked[i], "zodiac") {
			t.Errorf("option %d does not include Zodiac", i+1)
		}
	}

	// The first esc clears the filter instead of quitting.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if cmd != nil {
		t.Error("esc with an active filter should not quit")
	}
	if len(m.visible) != 3 {
		t.Errorf("visible = %v after clearing filter", m.visible)
	}
}

func TestFilter_NoMatch(t *testing.T) {
	m := New(testResult(), Options{})
	m = update(t, m, keyRunes("/"), keyRunes("x"), keyRunes("x"))

	if _, _, ok := m.Selected(); ok {
		t.Error("expected no selection")
	}
	if !strings.Contains(ansi.Strip(m.View()), `No schedule includes a movie matching "xx".`) {
		t.Errorf("missing no-match message:\n%s", ansi.Strip(m.View()))
	}
}

func TestScrolling(t *testing.T) {
	m := New(testResult(), Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 7})

	if m.listRows() != 2 {
		t.Fatalf("listRows = %d, want 2", m.listRows())
	}
	m = update(t, m, keyRunes("G"))
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
	m = update(t, m, keyRunes("g"))
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0", m.offset)
	}
}

func TestView(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	m := New(testResult(), Options{Theme: "latte"})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})

	out := m.View()
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected styled output")
	}

	plain := ansi.Strip(out)
	for _, want := range []string{
		"Marathon schedules",
		"3 found",
		"1. 2 movies, 33 min break",
		"Marathon Option 1 (Total Break Time: 33 min)",
		"10:00 - 11:57  Alien (1 hr 57 min) ★",
		"--- Break: 33 min ---",
		"12:30 - 15:20  Heat (2 hr 50 min)",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
}

func TestView_Empty(t *testing.T) {
	m := New(&planner.Result{}, Options{})
	plain := ansi.Strip(m.View())

	if !strings.Contains(plain, "No schedules to browse.") {
		t.Errorf("unexpected view:\n%s", plain)
	}
	m = update(t, m, keyRunes("y"))
	if m.statusMsg != "Nothing to copy" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestView_TruncatedNote(t *testing.T) {
	r := testResult()
	r.Truncated = true
	r.TimedOut = true
	m := New(r, Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})

	if !strings.Contains(ansi.Strip(m.View()), "search timed out") {
		t.Error("expected timeout note in header")
	}
}
