package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// ParameterSlider displays one adjustable plan input as a bar
type ParameterSlider struct {
	Key         string
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Width       int
	IsFocused   bool
	Description string

	// Display formats values for the label and the range line. Defaults to %.2f.
	Display func(float64) string
}

// NewParameterSlider creates a slider. The value is clamped into range.
func NewParameterSlider(key, label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Key:   key,
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
	p.SetValue(value)
	return p
}

// WithDisplay sets the value formatter
func (p *ParameterSlider) WithDisplay(display func(float64) string) *ParameterSlider {
	p.Display = display
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a help line under the range
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves one step up, stopping at Max. Reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(trimFloat(p.Value + p.Step))
}

// Decrement moves one step down, stopping at Min. Reports whether the value changed.
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(trimFloat(p.Value - p.Step))
}

// SetValue clamps value into range. Reports whether the value changed.
func (p *ParameterSlider) SetValue(value float64) bool {
	v := math.Max(p.Min, math.Min(p.Max, value))
	changed := v != p.Value
	p.Value = v
	return changed
}

// trimFloat drops the binary noise that repeated 0.001 steps accumulate
func trimFloat(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// Fraction returns the value's position in the range, 0 to 1
func (p *ParameterSlider) Fraction() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

func (p *ParameterSlider) format(v float64) string {
	if p.Display != nil {
		return p.Display(v)
	}
	return fmt.Sprintf("%.2f", v)
}

// Render returns the full multi-line slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.format(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderBar(p.Width))

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.format(p.Min), p.format(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(p.Description))
	}

	if p.IsFocused {
		content.WriteString("\n")
		content.WriteString(tuistyles.HintStyle.Render("← → to adjust • ↑↓ to navigate"))
	}

	return content.String()
}

// RenderCompact returns a single line with a short bar
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	return fmt.Sprintf("%s %s %s",
		labelStyle.Render(p.Label+":"),
		valueStyle.Render(p.format(p.Value)),
		p.renderBar(10))
}

func (p *ParameterSlider) renderBar(width int) string {
	if width < 1 {
		width = 1
	}
	thumb := int(math.Round(float64(width-1) * p.Fraction()))

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if thumb > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", thumb)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := width - thumb - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
