package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

const yAxisWidth = 10

// Series is one plotted line
type Series struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// LineChart draws monthly amounts against an x axis of evenly spaced samples
type LineChart struct {
	Title      string
	Series     []Series
	Labels     []string
	Width      int
	Height     int
	XAxisLabel string
}

// NewLineChart creates a chart with a default size
func NewLineChart(title string) *LineChart {
	return &LineChart{
		Title:  title,
		Width:  64,
		Height: 12,
	}
}

// AddSeries adds a line; money values are converted for plotting only
func (c *LineChart) AddSeries(name string, points []decimal.Decimal, color lipgloss.Color) *LineChart {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.InexactFloat64()
	}
	c.Series = append(c.Series, Series{Name: name, Points: values, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *LineChart) WithLabels(labels []string) *LineChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *LineChart) WithSize(width, height int) *LineChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the caption under the x axis
func (c *LineChart) WithXAxisLabel(label string) *LineChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart
func (c *LineChart) Render() string {
	if len(c.Series) == 0 || c.Height < 2 || c.Width <= yAxisWidth+2 {
		return tuistyles.InfoStyle.Render("Sem dados para exibir")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TitleStyle.Render(c.Title))
		sb.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	sb.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
		sb.WriteString("\n")
	}
	if len(c.Series) > 1 {
		sb.WriteString("\n")
		sb.WriteString(c.renderLegend())
	}
	return sb.String()
}

func (c *LineChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

func (c *LineChart) position(i, n int, v, lo, hi float64, plotWidth int) (int, int) {
	x := 0
	if n > 1 {
		x = int(float64(i) / float64(n-1) * float64(plotWidth-1))
	}
	y := c.Height - 1 - int((v-lo)/(hi-lo)*float64(c.Height-1))
	return x, y
}

func (c *LineChart) renderGrid(lo, hi float64) string {
	plotWidth := c.Width - yAxisWidth - 3

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	for idx, s := range c.Series {
		mark := seriesMark(idx)
		for i, v := range s.Points {
			x, y := c.position(i, len(s.Points), v, lo, hi, plotWidth)
			if i > 0 {
				px, py := c.position(i-1, len(s.Points), s.Points[i-1], lo, hi, plotWidth)
				drawLine(grid, px, py, x, y, '·')
			}
			set(grid, x, y, mark)
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)

	var sb strings.Builder
	for i, row := range grid {
		v := hi - float64(i)/float64(c.Height-1)*(hi-lo)
		sb.WriteString(axis.Render(formatAxisValue(v)))
		sb.WriteString(" │ ")
		sb.WriteString(string(row))
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(" ", yAxisWidth))
	sb.WriteString(" └")
	sb.WriteString(strings.Repeat("─", plotWidth+1))
	sb.WriteString("\n")

	if len(c.Labels) > 0 {
		sb.WriteString(strings.Repeat(" ", yAxisWidth+3))
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(c.Labels[0]))
		if len(c.Labels) > 1 {
			last := c.Labels[len(c.Labels)-1]
			gap := plotWidth - len([]rune(c.Labels[0])) - len([]rune(last))
			sb.WriteString(strings.Repeat(" ", max(1, gap)))
			sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(last))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (c *LineChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesMark(i)))
		items = append(items, symbol+" "+s.Name)
	}
	return tuistyles.HelpDescStyle.Render(strings.Join(items, "   "))
}

func seriesMark(i int) rune {
	marks := []rune{'●', '■', '▲', '♦'}
	return marks[i%len(marks)]
}

func set(grid [][]rune, x, y int, r rune) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
		grid[y][x] = r
	}
}

// drawLine fills blank cells between two points (Bresenham)
func drawLine(grid [][]rune, x0, y0, x1, y1 int, r rune) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = r
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func formatAxisValue(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("R$%.1fM", v/1e6)
	case math.Abs(v) >= 1e3:
		return fmt.Sprintf("R$%.1fK", v/1e3)
	}
	return fmt.Sprintf("R$%.0f", v)
}

// SweepChart plots the Simples total and the cheapest regime against the payroll of a sweep
func SweepChart(points []calculation.SweepPoint, width, height int) string {
	simples := make([]decimal.Decimal, len(points))
	best := make([]decimal.Decimal, len(points))
	for i, p := range points {
		simples[i] = p.SimplesTax
		best[i] = p.BestTax
	}

	var labels []string
	if len(points) > 0 {
		labels = []string{
			tuistyles.FormatCurrency(points[0].Payroll),
			tuistyles.FormatCurrency(points[len(points)-1].Payroll),
		}
	}

	return NewLineChart("Imposto mensal × folha de pagamento").
		AddSeries("Simples Nacional", simples, tuistyles.ColorChartLine1).
		AddSeries("Melhor regime", best, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(width, height).
		WithXAxisLabel("Folha mensal (pró-labore + salários)").
		Render()
}
