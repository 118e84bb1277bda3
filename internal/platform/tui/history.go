package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crowdsnake/internal/storage"
)

// History layout constants
const (
	maxHistoryRows = 100
	historyChrome  = 8 // Title, tabs, borders and help
)

// HistorySource reads the sessions journal. Implemented by storage.Store.
type HistorySource interface {
	LongestSessions(limit int) ([]storage.SessionEntry, error)
	RecentSessions(limit int) ([]storage.SessionEntry, error)
}

// HistoryView selects which ordering the table shows.
type HistoryView int

const (
	HistoryLongest HistoryView = iota
	HistoryRecent
)

func (v HistoryView) String() string {
	if v == HistoryRecent {
		return "Recent"
	}
	return "Longest"
}

// HistoryKeyMap defines the key bindings for the history table.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "longest"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the sessions table.
type HistoryModel struct {
	source    HistorySource
	view      HistoryView
	entries   []storage.SessionEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history model and loads the first view.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source: source,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Reload()
	return m
}

// createTable creates a new table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Length", Width: 7},
		{Title: "Fruit", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Lasted", Width: 9},
		{Title: "Ended", Width: 13},
		{Title: "Reason", Width: 10},
	}

	height := m.height - historyChrome
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Reload queries the journal for the current view.
func (m *HistoryModel) Reload() {
	m.entries, m.loadErr = nil, nil
	if m.source != nil {
		switch m.view {
		case HistoryRecent:
			m.entries, m.loadErr = m.source.RecentSessions(maxHistoryRows)
		default:
			m.entries, m.loadErr = m.source.LongestSessions(maxHistoryRows)
		}
	}
	m.table.SetRows(HistoryRows(m.entries))
	m.table.GotoTop()
}

// HistoryRows formats journal entries as table rows.
func HistoryRows(entries []storage.SessionEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", e.Length),
			fmt.Sprintf("%d", e.FruitEaten),
			fmt.Sprintf("%d", e.Ticks),
			e.Duration().Round(time.Second).String(),
			e.EndedAt.Format("Jan 02 15:04"),
			e.EndReason,
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history table.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if m.view != HistoryLongest {
				m.view = HistoryLongest
				m.Reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if m.view != HistoryRecent {
				m.view = HistoryRecent
				m.Reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(HistoryRows(m.entries))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history table.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("SESSIONS"))
	b.WriteString("\n\n")

	tab := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	active := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	var tabs []string
	for _, v := range []HistoryView{HistoryLongest, HistoryRecent} {
		if v == m.view {
			tabs = append(tabs, active.Render(v.String()))
		} else {
			tabs = append(tabs, tab.Render(v.String()))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(box.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return empty.Render("Cannot read sessions:\n" + m.loadErr.Error())
	case m.source == nil:
		return empty.Render("No sessions database.")
	case len(m.entries) == 0:
		return empty.Render("No sessions recorded yet.\nKeep the snake alive!")
	}
	return m.table.View()
}

// Entries returns the rows currently loaded.
func (m HistoryModel) Entries() []storage.SessionEntry {
	return m.entries
}

// IsGoingBack returns true if user pressed back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the standalone history screen.
func RunHistory(source HistorySource, width, height int, opts ...tea.ProgramOption) error {
	model := NewHistoryModel(source, width, height)
	// Back leaves the standalone screen
	model.keys.Quit.SetKeys("q", "ctrl+c", "esc", "b")
	model.keys.Back.SetEnabled(false)

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}
