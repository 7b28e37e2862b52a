package scenes

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// HelpModel lists every key binding
type HelpModel struct {
	keys  KeyMap
	help  help.Model
	width int
}

// NewHelpModel creates a new help scene model
func NewHelpModel(keys KeyMap) *HelpModel {
	h := help.New()
	h.ShowAll = true
	return &HelpModel{keys: keys, help: h}
}

// SetSize updates the model dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.help.Width = width
}

// Update is a no-op
func (m *HelpModel) Update(msg tea.Msg) (*HelpModel, tea.Cmd) {
	return m, nil
}

// View renders the help scene
func (m *HelpModel) View() string {
	intro := `firego projects savings year by year until the real balance covers
retirement spending through life expectancy.

Screens: 1 Dashboard • 2 Parameters • 3 Chart • 4 Trajectory • 5 Levers`

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.HeaderStyle.Render("Help"),
		tuistyles.BorderStyle.Render(intro+"\n\n"+m.help.View(m.keys)),
	)
}
