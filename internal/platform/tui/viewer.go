package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crowdsnake/internal/core"
	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
)

// Voter accepts direction votes. Implemented by driver.Driver.
type Voter interface {
	Submit(d core.Direction) error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ViewerModel shows the shared snake and turns key presses into votes.
// One instance runs per SSH session or local terminal.
type ViewerModel struct {
	voter   Voter
	events  <-chan multiplayer.Event
	done    <-chan struct{} // Closed when the subscription is cancelled
	history *HistoryModel // Nil when no journal is available
	keys    KeyMap
	help    help.Model
	user    string

	frame      string
	sessionID  multiplayer.SessionID
	tick       uint64
	length     int
	fruitEaten int
	direction  string
	banner     string

	status    string
	statusSeq int
	votes     int

	showHistory bool
	width       int
	height      int
	quitting    bool
	stopped     error
}

// NewViewerModel creates a viewer fed by events until done closes.
// done and history may be nil.
func NewViewerModel(voter Voter, events <-chan multiplayer.Event, done <-chan struct{}, history *HistoryModel, user string) ViewerModel {
	h := help.New()
	h.ShowAll = false

	return ViewerModel{
		voter:   voter,
		events:  events,
		done:    done,
		history: history,
		keys:    DefaultKeyMap(),
		help:    h,
		user:    user,
	}
}

// Init starts listening for driver events.
func (m ViewerModel) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent returns a command that waits for the next driver event.
// It returns a ShutdownEvent once the subscription is gone.
func (m ViewerModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		if m.events == nil {
			return nil
		}
		select {
		case evt, ok := <-m.events:
			if !ok {
				return multiplayer.ShutdownEvent{}
			}
			return evt
		case <-m.done:
			return multiplayer.ShutdownEvent{}
		}
	}
}

// Update handles messages.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.history != nil {
			h, _ := m.history.Update(msg)
			hm := h.(HistoryModel)
			m.history = &hm
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case multiplayer.FrameEvent:
		m.frame = msg.Frame
		m.sessionID = msg.SessionID
		m.tick = msg.Tick
		m.length = msg.Length
		m.fruitEaten = msg.FruitEaten
		m.direction = msg.Direction
		return m, m.waitForEvent()

	case multiplayer.SessionStartedEvent:
		m.sessionID = msg.SessionID
		return m, m.waitForEvent()

	case multiplayer.SessionEndedEvent:
		if msg.Reason == multiplayer.EndReasonGameOver {
			m.banner = fmt.Sprintf("Snake down at length %d after %d ticks. A new one hatches.", msg.Length, msg.Ticks)
			if m.history != nil {
				m.history.Reload()
			}
		}
		return m, m.waitForEvent()

	case multiplayer.ShutdownEvent:
		m.stopped = msg.Err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHistory {
		if action == core.ActionHistory {
			m.showHistory = false
			return m, nil
		}
		h, cmd := m.history.Update(msg)
		hm := h.(HistoryModel)
		if hm.IsGoingBack() {
			hm.goingBack = false
			m.showHistory = false
		}
		m.history = &hm
		return m, cmd
	}

	switch action {
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionHistory:
		if m.history != nil {
			m.history.Reload()
			m.showHistory = true
		}
		return m, nil
	}

	dir, ok := action.Direction()
	if !ok || m.voter == nil {
		return m, nil
	}
	if err := m.voter.Submit(dir); err != nil {
		return m.setStatus("vote rejected: " + err.Error())
	}
	m.votes++
	return m.setStatus("voted " + dir.String())
}

func (m ViewerModel) setStatus(s string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = s
	return m, clearStatusCmd(m.statusSeq)
}

// View renders the frame, the session line and the help bar.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory && m.history != nil {
		return m.history.View()
	}

	var b strings.Builder

	title := "CROWDSNAKE"
	if m.user != "" {
		title += " - " + m.user
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.frame == "" {
		b.WriteString(infoStyle.Render("waiting for the first frame..."))
	} else {
		b.WriteString(RenderFrame(m.frame))
	}
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("session %s  tick %d  length %d  fruit %d  heading %s  your votes %d",
		shortID(m.sessionID), m.tick, m.length, m.fruitEaten, m.direction, m.votes)))
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	keys := m.keys
	if m.history == nil {
		keys.History.SetEnabled(false)
	}
	b.WriteString(helpStyle.Render(m.help.View(keys)))

	return b.String()
}

// Stopped returns the driver error that ended the viewer, if any.
func (m ViewerModel) Stopped() error {
	return m.stopped
}

// IsQuitting returns true once the viewer is closing.
func (m ViewerModel) IsQuitting() bool {
	return m.quitting
}

func shortID(id multiplayer.SessionID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	if s == "" {
		return "-"
	}
	return s
}
