package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneDashboard:
		content = m.dashboardModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneChart:
		content = m.chartModel.View()
	case SceneTrajectory:
		content = m.trajectoryModel.View()
	case SceneLevers:
		content = m.leversModel.View()
	case SceneHelp:
		content = m.helpModel.View()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("FIREGO - FIRE Projection")

	tabs := make([]string, 0, len(sceneOrder))
	for i, s := range sceneOrder {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			tabs = append(tabs, tuistyles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, tuistyles.InactiveTabStyle.Render(label))
		}
	}

	breadcrumb := m.currentScene.String()
	if m.plan != nil {
		breadcrumb = fmt.Sprintf("%s / %s", m.plan.Name, breadcrumb)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, " ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...)),
		SubtitleStyle.Render(breadcrumb),
		"",
	)
}

func (m Model) renderStatusBar() string {
	bindings := m.keys.ShortHelp()
	shortcuts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		shortcuts = append(shortcuts, StatusKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	status := strings.Join(shortcuts, " • ")

	if m.pending {
		status += "   " + m.spinner.Render()
	}

	return StatusBarStyle.Render(status)
}
