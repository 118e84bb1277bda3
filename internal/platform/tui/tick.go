// Package tui provides the Bubble Tea viewer for crowdsnake, served over SSH
// via Wish or run locally, plus the sessions history table.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a vote confirmation stays on screen.
const statusTimeout = 1500 * time.Millisecond

// clearStatusMsg expires the status line set at seq.
type clearStatusMsg struct {
	seq int
}

// clearStatusCmd returns a Bubble Tea command that clears the status line
// after statusTimeout unless a newer status replaced it.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
