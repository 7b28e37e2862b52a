package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// TrajectoryModel lists the yearly balances in a scrollable table
type TrajectoryModel struct {
	currency output.Currency
	table    table.Model
	report   *domain.Report
	width    int
	height   int
}

// NewTrajectoryModel creates a new trajectory scene model
func NewTrajectoryModel(currency output.Currency) *TrajectoryModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Age", Width: 6},
			{Title: "Real Balance", Width: 18},
			{Title: "Nominal Balance", Width: 18},
			{Title: "Funded", Width: 8},
			{Title: "", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorForeground).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(styles)

	return &TrajectoryModel{currency: currency, table: t}
}

// SetReport refills the table
func (m *TrajectoryModel) SetReport(report *domain.Report) {
	m.report = report
	m.table.SetRows(TrajectoryRows(report, m.currency))
}

// TrajectoryRows turns a report's trajectory into table rows. The first year
// at or above the FIRE number is marked.
func TrajectoryRows(report *domain.Report, cur output.Currency) []table.Row {
	if report == nil {
		return nil
	}
	res := report.Result
	rows := make([]table.Row, 0, len(res.Trajectory))
	for _, p := range res.Trajectory {
		funded := "-"
		if res.FireNumber > 0 {
			funded = fmt.Sprintf("%.0f%%", p.RealBalance/res.FireNumber*100)
		}
		mark := ""
		if res.AchievedAge != nil && p.Age == *res.AchievedAge {
			mark = "← FIRE"
		} else if p.Age == report.Plan.Profile.TargetAge {
			mark = "target"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%.0f", p.Age),
			cur.Money(p.RealBalance),
			cur.Money(p.NominalBalance),
			funded,
			mark,
		})
	}
	return rows
}

// Cursor returns the selected row index
func (m *TrajectoryModel) Cursor() int {
	return m.table.Cursor()
}

// SetSize updates the model dimensions
func (m *TrajectoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 10 {
		m.table.SetHeight(height - 8)
	}
}

// Update scrolls the table
func (m *TrajectoryModel) Update(msg tea.Msg) (*TrajectoryModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the trajectory scene
func (m *TrajectoryModel) View() string {
	if m.report == nil {
		return tuistyles.BorderStyle.Render("No trajectory yet")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.HeaderStyle.Render("Yearly Trajectory"),
		tuistyles.BorderStyle.Padding(0, 1).Render(m.table.View()),
		tuistyles.SubtitleStyle.Render("↑/↓ scroll • balances in today's money and nominal terms"),
	)
}
