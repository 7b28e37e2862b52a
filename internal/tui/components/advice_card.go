package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// AdviceCard is a titled box of bullet lines, used for diagnosis and
// suggestion panels
type AdviceCard struct {
	Title    string
	Lines    []string
	Emphasis bool
	Width    int
}

// NewAdviceCard creates an empty card
func NewAdviceCard(title string) *AdviceCard {
	return &AdviceCard{Title: title, Width: 60}
}

// AddLine appends one bullet
func (a *AdviceCard) AddLine(line string) *AdviceCard {
	a.Lines = append(a.Lines, line)
	return a
}

// WithEmphasis draws the border in the warning colour
func (a *AdviceCard) WithEmphasis(on bool) *AdviceCard {
	a.Emphasis = on
	return a
}

// WithWidth sets the card width
func (a *AdviceCard) WithWidth(width int) *AdviceCard {
	a.Width = width
	return a
}

// Render returns the bordered card
func (a *AdviceCard) Render() string {
	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(a.Title))
	content.WriteString("\n")

	if len(a.Lines) == 0 {
		content.WriteString(tuistyles.SubtitleStyle.Render("Nothing to report"))
	}
	lineStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
	for _, l := range a.Lines {
		content.WriteString(lineStyle.Render("• " + l))
		content.WriteString("\n")
	}

	border := tuistyles.ColorBorder
	if a.Emphasis {
		border = tuistyles.ColorWarning
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(a.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}
