package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/firego/internal/breakeven"
	"github.com/rgehrsitz/firego/internal/tui/components"
	"github.com/rgehrsitz/firego/internal/tui/tuimsg"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// LeversModel shows the break-even value of each input for the edited plan
type LeversModel struct {
	keys      KeyMap
	formatter *breakeven.TableFormatter
	spinner   *components.Spinner
	solving   bool
	stale     bool
	result    *breakeven.MultiDimensionalResult
	err       error
	width     int
	height    int
}

// NewLeversModel creates a new levers scene model
func NewLeversModel(keys KeyMap) *LeversModel {
	return &LeversModel{
		keys:      keys,
		formatter: &breakeven.TableFormatter{},
		spinner:   components.NewSpinner().WithMessage("Solving break-even levers..."),
	}
}

// SetSolving marks a solve in flight
func (m *LeversModel) SetSolving() {
	m.solving = true
	m.err = nil
}

// Solving reports whether a solve is in flight
func (m *LeversModel) Solving() bool {
	return m.solving
}

// SetResult stores a finished solve. stale means the plan changed meanwhile.
func (m *LeversModel) SetResult(result *breakeven.MultiDimensionalResult, err error, stale bool) {
	m.solving = false
	m.result = result
	m.err = err
	m.stale = stale
}

// MarkStale flags the shown levers as computed for an older plan
func (m *LeversModel) MarkStale() {
	if m.result != nil {
		m.stale = true
	}
}

// Tick advances the spinner
func (m *LeversModel) Tick() {
	m.spinner.Next()
}

// SetSize updates the model dimensions
func (m *LeversModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update asks for a solve on enter. The root model owns the solver and
// calls SetSolving once it starts.
func (m *LeversModel) Update(msg tea.Msg) (*LeversModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Solve) && !m.solving {
		return m, func() tea.Msg { return tuimsg.SolveRequestedMsg{} }
	}
	return m, nil
}

// View renders the levers scene
func (m *LeversModel) View() string {
	header := tuistyles.HeaderStyle.Render("Break-even Levers")

	var body string
	switch {
	case m.solving:
		body = m.spinner.Render()
	case m.err != nil:
		body = tuistyles.ErrorStyle.Render("Solve failed: " + m.err.Error())
	case m.result != nil:
		body = m.formatter.FormatMultiDimensional(m.result)
	default:
		body = "Find the contribution, retirement age, return and spending\nthat each reach the FIRE number on their own."
	}

	sections := []string{header, tuistyles.BorderStyle.Render(body)}
	if m.stale && !m.solving {
		sections = append(sections, tuistyles.WarningStyle.Render("Parameters changed since this solve; press enter to refresh"))
	}
	sections = append(sections, tuistyles.SubtitleStyle.Render("enter solve • each lever is solved independently against the current parameters"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
