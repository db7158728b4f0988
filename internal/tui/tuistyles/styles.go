package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rtgo/internal/output"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E7D32")
	ColorSecondary = lipgloss.Color("#F9A825")
	ColorAccent    = lipgloss.Color("#1565C0")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#039BE5")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#90A4AE")
	ColorBorder     = lipgloss.Color("#546E7A")

	ColorChartLine1 = lipgloss.Color("#F9A825")
	ColorChartLine2 = lipgloss.Color("#43A047")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	HelpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#000000")).
				Background(ColorSecondary)

	IneligibleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Strikethrough(true)
)

// MetricTrendStyle colors a change. Lower tax is good, so callers pass "improves".
func MetricTrendStyle(improves bool) lipgloss.Style {
	if improves {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns the arrow for a change
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}

// Currency and percent use the same Brazilian notation as the HTML report
var (
	FormatCurrency = output.FormatCurrency
	FormatPercent  = output.FormatPercent
)
