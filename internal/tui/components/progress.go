package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// ProgressBar shows how far current savings are toward the FIRE number
type ProgressBar struct {
	Percent float64 // 0 to 100, values outside are clamped for drawing
	Width   int
	Label   string
}

// NewProgressBar creates a progress bar
func NewProgressBar(percent float64) *ProgressBar {
	return &ProgressBar{Percent: percent, Width: 40}
}

// WithLabel sets the label drawn above the bar
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Filled returns the number of filled cells
func (p *ProgressBar) Filled() int {
	pct := p.Percent
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return int(float64(p.Width) * pct / 100)
}

// IsComplete reports whether the target is met
func (p *ProgressBar) IsComplete() bool {
	return p.Percent >= 100
}

// Render returns the styled bar with its percentage
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Bold(true).Render(p.Label))
		content.WriteString("\n")
	}

	filled := p.Filled()
	barColor := tuistyles.ColorWarning
	if p.IsComplete() {
		barColor = tuistyles.ColorSuccess
	}

	content.WriteString("[")
	content.WriteString(lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled)))
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", p.Width-filled)))
	content.WriteString("] ")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(fmt.Sprintf("%.1f%%", p.Percent)))

	return content.String()
}

// Spinner marks a pending recalculation
type Spinner struct {
	Frame   int
	Message string
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// WithMessage sets the spinner message
func (s *Spinner) WithMessage(message string) *Spinner {
	s.Message = message
	return s
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.Frame++
}

// Render returns the current spinner frame
func (s *Spinner) Render() string {
	rendered := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).
		Render(spinnerFrames[s.Frame%len(spinnerFrames)])
	if s.Message != "" {
		rendered += " " + lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(s.Message)
	}
	return rendered
}
