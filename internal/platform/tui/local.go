package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
)

// RunLocal runs a viewer in the current terminal until the user quits or the
// driver shuts down. It returns the driver error that stopped the viewer, if
// any. history may be nil.
func RunLocal(voter Voter, hub *multiplayer.Hub, history HistorySource, width, height int, opts ...tea.ProgramOption) error {
	viewer, cancel := hub.Subscribe(8)
	defer cancel()

	var hm *HistoryModel
	if history != nil {
		h := NewHistoryModel(history, width, height)
		hm = &h
	}

	model := NewViewerModel(voter, viewer.Events(), viewer.Done(), hm, "")
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ViewerModel); ok {
		return m.Stopped()
	}
	return nil
}
