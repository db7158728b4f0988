package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rtgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays a single figure of a scenario with an optional delta against a reference
type MetricCard struct {
	Label       string
	Value       string
	Delta       *Delta
	Description string
	Width       int
}

// Delta is a change against the reference scenario
type Delta struct {
	Up       bool
	Improves bool
	Change   string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithTaxDelta adds the difference in tax against the reference; paying less is an improvement
func (m *MetricCard) WithTaxDelta(diff decimal.Decimal) *MetricCard {
	if diff.IsZero() {
		return m
	}
	m.Delta = &Delta{
		Up:       diff.IsPositive(),
		Improves: diff.IsNegative(),
		Change:   tuistyles.FormatCurrency(diff.Abs()),
	}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Delta != nil {
		content += "\n" + m.renderDelta()
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Delta != nil {
		out += " " + m.renderDelta()
	}
	return out
}

func (m *MetricCard) renderDelta() string {
	style := tuistyles.MetricTrendStyle(m.Delta.Improves)
	return style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Delta.Up), m.Delta.Change))
}

// MetricGrid renders cards in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns <= 0 {
		return ""
	}

	var rows []string
	var row []string
	for i, card := range cards {
		row = append(row, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
