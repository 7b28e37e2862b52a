package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/firego/internal/tui/tuistyles"
)

// DataSeries is one line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
	Char   rune
}

// ASCIIChart draws line series on a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string

	// YFormat formats the axis values. Defaults to %.0f.
	YFormat func(float64) string
}

const yAxisWidth = 10

var seriesChars = []rune{'●', '■', '─', '♦'}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     15,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
		Char:   seriesChars[len(c.Series)%len(seriesChars)],
	})
	return c
}

// AddReferenceLine adds a horizontal line at value across n points
func (c *ASCIIChart) AddReferenceLine(name string, value float64, n int, color lipgloss.Color) *ASCIIChart {
	points := make([]float64, n)
	for i := range points {
		points[i] = value
	}
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color, Char: '┄'})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithYFormat sets the axis value formatter
func (c *ASCIIChart) WithYFormat(format func(float64) string) *ASCIIChart {
	c.YFormat = format
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	content.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds returns the value range with 10% headroom. Balances never go below
// zero so the floor is kept at zero when every point is non-negative.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	if lo >= 0 {
		return 0, hi + pad
	}
	return lo - pad, hi + pad
}

type cell struct {
	r      rune
	series int
}

func (c *ASCIIChart) plotWidth() int {
	w := c.Width - yAxisWidth - 3
	if w < 2 {
		w = 2
	}
	return w
}

func (c *ASCIIChart) position(i, n int, v, lo, hi float64) (int, int) {
	width := c.plotWidth()
	x := 0
	if n > 1 {
		x = int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
	}
	y := c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
	return x, y
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := c.plotWidth()

	grid := make([][]cell, c.Height)
	for i := range grid {
		grid[i] = make([]cell, width)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' ', series: -1}
		}
	}

	// later series are drawn first so the first series stays on top
	for idx := len(c.Series) - 1; idx >= 0; idx-- {
		s := c.Series[idx]
		n := len(s.Points)
		for i, v := range s.Points {
			x, y := c.position(i, n, v, lo, hi)
			if i > 0 {
				px, py := c.position(i-1, n, s.Points[i-1], lo, hi)
				drawLine(grid, px, py, x, y, cell{r: s.Char, series: idx})
			} else {
				set(grid, x, y, cell{r: s.Char, series: idx})
			}
		}
	}

	format := c.YFormat
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}
	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)

	var out strings.Builder
	for i, row := range grid {
		label := ""
		if i == 0 || i == c.Height-1 || i == c.Height/2 {
			label = format(hi - float64(i)/float64(c.Height-1)*(hi-lo))
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │ ")
		for _, cl := range row {
			if cl.series < 0 {
				out.WriteRune(' ')
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[cl.series].Color).Render(string(cl.r)))
		}
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", width))

	if len(c.Labels) > 0 {
		out.WriteString("\n")
		out.WriteString(c.renderXAxisLabels(width))
	}

	return out.String()
}

func set(grid [][]cell, x, y int, v cell) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
		grid[y][x] = v
	}
}

// drawLine joins two points with Bresenham's algorithm
func drawLine(grid [][]cell, x0, y0, x1, y1 int, v cell) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		set(grid, x0, y0, v)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// renderXAxisLabels places up to five labels under their points
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	const maxLabels = 5
	line := []rune(strings.Repeat(" ", width+2))

	n := len(c.Labels)
	step := 1
	if n > maxLabels {
		step = (n - 1) / (maxLabels - 1)
	}
	for i := 0; i < n; i += step {
		x := 0
		if n > 1 {
			x = int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
		}
		x += 2
		for j, r := range []rune(c.Labels[i]) {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
	}

	return strings.Repeat(" ", yAxisWidth) + lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(string(line))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Char))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return tuistyles.MetricLabelStyle.Render("Legend: ") + strings.Join(items, " • ")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
