// Package tui provides the terminal browser for marathon schedules.
package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/marathon/internal/planner"
	"github.com/javiermolinar/marathon/internal/scheduler"
	"github.com/javiermolinar/marathon/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter      // Typing a title filter
)

// Options configures the browser.
type Options struct {
	Theme string
	// Clipboard receives copied text. Defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the schedule browser model.
type Model struct {
	result  *planner.Result
	visible []int // indices into result.Ranked matching the filter
	cursor  int   // index into visible
	offset  int   // first row of visible shown in the list

	mode   Mode
	filter textinput.Model
	keys   keyMap
	help   help.Model
	styles *Styles

	width  int
	height int

	statusMsg string
	copy      func(string) error
}

// New creates a browser over result.
func New(result *planner.Result, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "movie title"
	ti.CharLimit = 64

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		result: result,
		filter: ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: NewStyles(theme.Load(opts.Theme)),
		width:  80,
		height: 24,
		copy:   copyFn,
	}
	m.applyFilter("")
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// Selected returns the highlighted schedule and its 1-based rank.
func (m Model) Selected() (scheduler.Ranked, int, bool) {
	if len(m.visible) == 0 {
		return scheduler.Ranked{}, 0, false
	}
	i := m.visible[m.cursor]
	return m.result.Ranked[i], i + 1, true
}

// applyFilter keeps the options containing a movie whose title contains q.
func (m *Model) applyFilter(q string) {
	q = strings.ToLower(strings.TrimSpace(q))
	visible := make([]int, 0, len(m.result.Ranked))
	for i, r := range m.result.Ranked {
		if q == "" || hasTitle(r, q) {
			visible = append(visible, i)
		}
	}
	m.visible = visible
	m.cursor = 0
	m.offset = 0
}

func hasTitle(r scheduler.Ranked, q string) bool {
	for _, s := range r.Slots {
		if strings.Contains(strings.ToLower(s.Title), q) {
			return true
		}
	}
	return false
}

// listRows is the number of option rows that fit on screen.
func (m Model) listRows() int {
	// Header, blank line, footer and help.
	return max(m.height-5, 1)
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.clampOffset()
}

func (m *Model) clampOffset() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(m.offset, 0)
}

// Run starts the browser and blocks until the user quits.
func Run(result *planner.Result, opts Options) error {
	p := tea.NewProgram(New(result, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
