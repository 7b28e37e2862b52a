package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/firego/internal/tui/tuimsg"
)

// sceneOrder is the tab order and the 1-5 shortcuts
var sceneOrder = []Scene{SceneDashboard, SceneParameters, SceneChart, SceneTrajectory, SceneLevers}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.PlanLoadedMsg:
		m.basePlan = msg.Plan
		m.plan = msg.Plan.DeepCopy()
		m.baseReport = nil
		m.parametersModel.SetPlan(m.plan)
		return m, m.recalculateNow()

	case tuimsg.ParameterChangedMsg:
		plan, err := applyParameter(m.plan, msg.Key, msg.Value)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.plan = plan
		m.seq++
		m.leversModel.MarkStale()
		tick := m.spinnerIfIdle()
		m.pending = true
		return m, tea.Batch(debounceCmd(m.seq, m.debounce), tick)

	case tuimsg.ResetParametersMsg:
		if m.basePlan == nil {
			return m, nil
		}
		m.plan = m.basePlan.DeepCopy()
		m.parametersModel.SetPlan(m.plan)
		m.leversModel.MarkStale()
		return m, m.recalculateNow()

	case tuimsg.RecalculateMsg:
		if msg.Seq != m.seq || m.plan == nil {
			return m, nil
		}
		return m, calculateCmd(m.engine, m.seq, m.plan.DeepCopy())

	case tuimsg.ReportReadyMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.pending = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.report = msg.Report
		if m.baseReport == nil {
			m.baseReport = msg.Report
		}
		m.dashboardModel.SetReport(m.report, m.baseReport)
		m.chartModel.SetReport(m.report)
		m.trajectoryModel.SetReport(m.report)
		return m, nil

	case tuimsg.SolveRequestedMsg:
		if m.plan == nil {
			m.leversModel.SetResult(nil, nil, false)
			return m, nil
		}
		tick := m.spinnerIfIdle()
		m.leversModel.SetSolving()
		return m, tea.Batch(solveCmd(m.solver, m.seq, m.plan.DeepCopy()), tick)

	case tuimsg.SolveCompleteMsg:
		m.leversModel.SetResult(msg.Result, msg.Err, msg.Seq != m.seq)
		return m, nil

	case spinnerTickMsg:
		if !m.pending && !m.leversModel.Solving() {
			return m, nil
		}
		m.spinner.Next()
		m.leversModel.Tick()
		return m, spinnerTickCmd()
	}

	return m.updateCurrentScene(msg)
}

// spinnerIfIdle starts the spinner loop unless a recalculation or solve
// already keeps it running. Call it before marking new work.
func (m *Model) spinnerIfIdle() tea.Cmd {
	if m.pending || m.leversModel.Solving() {
		return nil
	}
	return spinnerTickCmd()
}

// recalculateNow bumps the sequence and calculates without waiting for the
// debounce, used for loads and resets
func (m *Model) recalculateNow() tea.Cmd {
	m.seq++
	m.pending = true
	return calculateCmd(m.engine, m.seq, m.plan.DeepCopy())
}

func (m *Model) navigate(s Scene) {
	if s == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = s
}

func (m *Model) resize() {
	contentHeight := m.height - 4
	m.dashboardModel.SetSize(m.width, contentHeight)
	m.parametersModel.SetSize(m.width, contentHeight)
	m.chartModel.SetSize(m.width, contentHeight)
	m.trajectoryModel.SetSize(m.width, contentHeight)
	m.leversModel.SetSize(m.width, contentHeight)
	m.helpModel.SetSize(m.width, contentHeight)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		// any key dismisses the error
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.navigate(SceneHelp)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneDashboard {
			prev := m.previousScene
			if prev == m.currentScene {
				prev = SceneDashboard
			}
			m.navigate(prev)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextScene):
		m.navigate(m.cycleScene(1))
		return m, nil

	case key.Matches(msg, m.keys.PrevScene):
		m.navigate(m.cycleScene(-1))
		return m, nil

	case key.Matches(msg, m.keys.Jump) && len(msg.Runes) == 1:
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(sceneOrder) {
			m.navigate(sceneOrder[idx])
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) cycleScene(delta int) Scene {
	idx := 0
	for i, s := range sceneOrder {
		if s == m.currentScene {
			idx = i
		}
	}
	n := len(sceneOrder)
	return sceneOrder[((idx+delta)%n+n)%n]
}

// updateCurrentScene hands the message to the visible scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneChart:
		m.chartModel, cmd = m.chartModel.Update(msg)
	case SceneTrajectory:
		m.trajectoryModel, cmd = m.trajectoryModel.Update(msg)
	case SceneLevers:
		m.leversModel, cmd = m.leversModel.Update(msg)
	case SceneHelp:
		m.helpModel, cmd = m.helpModel.Update(msg)
	}
	return m, cmd
}
