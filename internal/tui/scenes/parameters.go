package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
	"github.com/rgehrsitz/firego/internal/tui/components"
	"github.com/rgehrsitz/firego/internal/tui/tuimsg"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// Slider keys carried by ParameterChangedMsg
const (
	ParamReturn       = "return"
	ParamInflation    = "inflation"
	ParamPreservation = "preservation"
	ParamContribution = "contribution"
	ParamExpenses     = "expenses"
	ParamTargetAge    = "target_age"
)

const moneyStep = 100_000

// ParametersModel edits the plan inputs that drive the projection
type ParametersModel struct {
	keys     KeyMap
	currency output.Currency
	sliders  []*components.ParameterSlider
	focused  int
	modified bool
	width    int
	height   int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel(keys KeyMap, currency output.Currency) *ParametersModel {
	return &ParametersModel{keys: keys, currency: currency}
}

// SetPlan rebuilds the sliders from plan and clears the modified flag
func (m *ParametersModel) SetPlan(plan *domain.Plan) {
	m.sliders = buildSliders(plan, m.currency)
	m.modified = false
	if m.focused >= len(m.sliders) {
		m.focused = 0
	}
	for i, s := range m.sliders {
		s.SetFocused(i == m.focused)
	}
}

func buildSliders(plan *domain.Plan, cur output.Currency) []*components.ParameterSlider {
	if plan == nil {
		return nil
	}
	percent := func(digits int) func(float64) string {
		return func(v float64) string { return fmt.Sprintf("%.*f%%", digits, v*100) }
	}
	money := func(v float64) string { return cur.Money(v) }
	age := func(v float64) string { return fmt.Sprintf("%.1f세", v) }

	cf, a, p := plan.CashFlows, plan.Assumptions, plan.Profile
	moneyMax := func(v float64) float64 {
		return math.Max(10_000_000, math.Ceil(v*2/moneyStep)*moneyStep)
	}

	return []*components.ParameterSlider{
		components.NewParameterSlider(ParamReturn, "Nominal Return",
			a.NominalReturn, math.Min(-0.05, a.NominalReturn), math.Max(0.15, a.NominalReturn), 0.005).
			WithDisplay(percent(1)).WithWidth(40).
			WithDescription("Expected annual return before inflation"),
		components.NewParameterSlider(ParamInflation, "Inflation",
			a.Inflation, math.Min(0, a.Inflation), math.Max(0.08, a.Inflation), 0.001).
			WithDisplay(percent(1)).WithWidth(40),
		components.NewParameterSlider(ParamPreservation, "Preservation Ratio",
			a.PreservationRatio, 0, 1, 0.05).
			WithDisplay(percent(0)).WithWidth(40).
			WithDescription(strategyHint(a.PreservationRatio)),
		components.NewParameterSlider(ParamContribution, "Monthly Contribution",
			cf.MonthlyContribution, 0, moneyMax(cf.MonthlyContribution), moneyStep).
			WithDisplay(money).WithWidth(40),
		components.NewParameterSlider(ParamExpenses, "Monthly Expenses",
			cf.MonthlyExpenses, 0, moneyMax(cf.MonthlyExpenses), moneyStep).
			WithDisplay(money).WithWidth(40).
			WithDescription("Retirement spending in today's money"),
		components.NewParameterSlider(ParamTargetAge, "Target Retirement Age",
			p.TargetAge, p.CurrentAge, p.LifeExpectancy, 1).
			WithDisplay(age).WithWidth(40),
	}
}

func strategyHint(ratio float64) string {
	switch {
	case ratio >= 1:
		return "Keep the full principal for life"
	case ratio <= 0:
		return "Spend the principal down to zero"
	default:
		return fmt.Sprintf("Keep %.0f%% of the principal", ratio*100)
	}
}

// Sliders exposes the current sliders
func (m *ParametersModel) Sliders() []*components.ParameterSlider {
	return m.sliders
}

// Focused returns the index of the focused slider
func (m *ParametersModel) Focused() int {
	return m.focused
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(keyMsg, m.keys.Decrease):
		return m, m.change(m.sliders[m.focused].Decrement())
	case key.Matches(keyMsg, m.keys.Increase):
		return m, m.change(m.sliders[m.focused].Increment())
	case key.Matches(keyMsg, m.keys.Reset):
		return m, func() tea.Msg { return tuimsg.ResetParametersMsg{} }
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

func (m *ParametersModel) change(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	m.modified = true
	s := m.sliders[m.focused]
	if s.Key == ParamPreservation {
		s.WithDescription(strategyHint(s.Value))
	}
	msg := tuimsg.ParameterChangedMsg{Key: s.Key, Value: s.Value}
	return func() tea.Msg { return msg }
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if len(m.sliders) == 0 {
		return tuistyles.BorderStyle.Render("No plan loaded.")
	}

	rendered := make([]string, 0, len(m.sliders))
	for _, s := range m.sliders {
		rendered = append(rendered, s.Render())
	}

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Render(strings.Join(rendered, "\n\n"))

	status := ""
	if m.modified {
		status = tuistyles.WarningStyle.Render("⚠ Modified - results update as you adjust, r resets to the plan file")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.HeaderStyle.Render("Edit Parameters"),
		body,
		status,
		tuistyles.SubtitleStyle.Render("↑/↓ navigate • ←/→ adjust • r reset • tab next screen"),
	)
}
