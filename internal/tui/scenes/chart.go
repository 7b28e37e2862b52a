package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
	"github.com/rgehrsitz/firego/internal/tui/components"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// ChartModel plots the balance trajectory against the FIRE number
type ChartModel struct {
	keys        KeyMap
	currency    output.Currency
	report      *domain.Report
	showNominal bool
	width       int
	height      int
}

// NewChartModel creates a new chart scene model
func NewChartModel(keys KeyMap, currency output.Currency) *ChartModel {
	return &ChartModel{keys: keys, currency: currency}
}

// SetReport replaces the plotted report
func (m *ChartModel) SetReport(report *domain.Report) {
	m.report = report
}

// ShowNominal reports whether the nominal series is drawn
func (m *ChartModel) ShowNominal() bool {
	return m.showNominal
}

// SetSize updates the model dimensions
func (m *ChartModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update toggles the nominal series
func (m *ChartModel) Update(msg tea.Msg) (*ChartModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Nominal) {
		m.showNominal = !m.showNominal
	}
	return m, nil
}

// View renders the chart scene
func (m *ChartModel) View() string {
	if m.report == nil || len(m.report.Result.Trajectory) == 0 {
		return tuistyles.BorderStyle.Render("No trajectory to plot")
	}
	tr := m.report.Result.Trajectory

	ages := tr.Ages()
	labels := make([]string, len(ages))
	for i, age := range ages {
		labels[i] = fmt.Sprintf("%.0f", age)
	}

	width, height := 80, 16
	if m.width > 20 {
		width = m.width - 4
	}
	if m.height > 20 {
		height = m.height - 14
	}

	chart := components.NewASCIIChart("Balance by Age").
		WithSize(width, height).
		WithLabels(labels).
		WithYFormat(m.currency.Compact).
		AddSeries("Real balance", tr.RealBalances(), tuistyles.ColorChartReal)
	if m.showNominal {
		chart.AddSeries("Nominal balance", tr.NominalBalances(), tuistyles.ColorChartNominal)
	}
	if m.report.Result.FireNumber > 0 {
		chart.AddReferenceLine("FIRE number", m.report.Result.FireNumber, len(tr), tuistyles.ColorChartTarget)
	}
	chart.XAxisLabel = "Age"

	hint := "n show nominal balance"
	if m.showNominal {
		hint = "n hide nominal balance"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		chart.Render(),
		"",
		tuistyles.SubtitleStyle.Render(hint),
	)
}
