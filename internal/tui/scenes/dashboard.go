package scenes

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
	"github.com/rgehrsitz/firego/internal/tui/components"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// DashboardModel shows the headline numbers, diagnosis and suggestions
type DashboardModel struct {
	currency output.Currency
	report   *domain.Report
	baseline *domain.Report
	width    int
	height   int
}

// NewDashboardModel creates a new dashboard scene model
func NewDashboardModel(currency output.Currency) *DashboardModel {
	return &DashboardModel{currency: currency}
}

// SetReport shows report, with trends measured against baseline
func (m *DashboardModel) SetReport(report, baseline *domain.Report) {
	m.report = report
	m.baseline = baseline
}

// SetSize updates the model dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update is a no-op; the dashboard is read-only
func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.report == nil {
		return tuistyles.BorderStyle.Render("Calculating...")
	}
	res := m.report.Result
	ind := output.ResultIndicators(m.report)

	fireCard := components.NewMetricCard("FIRE Number", m.currency.Money(math.Max(0, res.FireNumber)))
	if m.baseline != nil && m.baseline != m.report {
		delta := res.FireNumber - m.baseline.Result.FireNumber
		if delta != 0 {
			fireCard.WithTrend(delta < 0, signed(m.currency.Compact(math.Abs(delta)), delta))
		}
	}

	ageCard := components.NewMetricCard("FIRE Age", ind.YearsToFire).
		WithDescription(ind.AgeAtFire).
		WithHighlight(res.Status != domain.StatusShortfall)
	if m.baseline != nil && m.baseline != m.report {
		if trend, ok := ageTrend(m.baseline.Result.AchievedAge, res.AchievedAge); ok {
			ageCard.WithTrend(trend.IsPositive, trend.Change)
		}
	}

	cards := []*components.MetricCard{
		fireCard,
		ageCard,
		components.NewMetricCard("Savings Rate", fmt.Sprintf("%.1f%%", res.SavingsRate)).
			WithDescription("월 " + m.currency.Money(m.report.Plan.CashFlows.MonthlyContribution) + " 저축"),
		components.NewMetricCard("Real Return", output.FormatPercent(res.RealReturn)).
			WithDescription("명목 " + output.FormatPercent(m.report.Plan.Assumptions.NominalReturn)),
	}

	columns := 4
	if m.width > 0 && m.width < 120 {
		columns = 2
	}

	progress := components.NewProgressBar(res.Progress).
		WithLabel("Progress toward FIRE number").
		WithWidth(40)

	message := lipgloss.NewStyle().Bold(true).Foreground(statusColor(res.Status)).Render(ind.Message)

	diagnosis := components.NewAdviceCard("Diagnosis").WithWidth(cardWidth(m.width))
	for _, line := range output.Diagnosis(m.report, m.currency) {
		diagnosis.AddLine(line)
	}

	sections := []string{
		tuistyles.HeaderStyle.Render("FIRE Projection: " + m.report.Plan.Name),
		components.MetricGrid(cards, columns),
		"",
		progress.Render(),
		"",
		message,
		tuistyles.SubtitleStyle.Render(ind.YearsToGo),
		"",
		diagnosis.Render(),
	}

	if advices := output.Advices(m.report, m.currency); len(advices) > 0 {
		card := components.NewAdviceCard("Suggestions").WithWidth(cardWidth(m.width))
		for _, a := range advices {
			card.AddLine(a.Label + ": " + a.Text)
			if a.Emphasis {
				card.WithEmphasis(true)
			}
		}
		sections = append(sections, card.Render())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func ageTrend(before, after *float64) (components.Trend, bool) {
	switch {
	case before == nil && after == nil:
		return components.Trend{}, false
	case before == nil:
		return components.Trend{IsPositive: true, Change: "now reachable"}, true
	case after == nil:
		return components.Trend{IsPositive: false, Change: "no longer reachable"}, true
	}
	delta := *after - *before
	if delta == 0 {
		return components.Trend{}, false
	}
	return components.Trend{IsPositive: delta < 0, Change: fmt.Sprintf("%+.0f years", delta)}, true
}

func signed(s string, v float64) string {
	if v < 0 {
		return "-" + s
	}
	return "+" + s
}

func statusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusOnTrack, domain.StatusAlreadySecured:
		return tuistyles.ColorSuccess
	default:
		return tuistyles.ColorWarning
	}
}

func cardWidth(width int) int {
	if width <= 0 || width > 100 {
		return 96
	}
	return width - 4
}
