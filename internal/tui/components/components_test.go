package components

import (
	"testing"

	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"840.04", "R$ 840,04"},
		{"2800", "R$ 2.800,00"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-759.14", "-R$ 759,14"},
		{"-0.001", "R$ 0,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tuistyles.FormatCurrency(decimal.RequireFromString(tt.in)), tt.in)
	}
	assert.Equal(t, "8,40%", tuistyles.FormatPercent(decimal.RequireFromString("8.4")))
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Imposto mensal", "R$ 1.950,45").
		WithTaxDelta(decimal.RequireFromString("1110.41")).
		WithDescription("vs. Simples")

	out := card.Render()
	assert.Contains(t, out, "Imposto mensal")
	assert.Contains(t, out, "▲ R$ 1.110,41")
	assert.Contains(t, out, "vs. Simples")

	assert.Nil(t, NewMetricCard("x", "y").WithTaxDelta(decimal.Zero).Delta)
	assert.Contains(t, NewMetricCard("Alíquota", "8,40%").RenderCompact(), "Alíquota:")
	assert.Empty(t, MetricGrid(nil, 3))
}

func TestLineChart(t *testing.T) {
	assert.Contains(t, NewLineChart("vazio").Render(), "Sem dados")

	points := []calculation.SweepPoint{
		{Payroll: decimal.Zero, SimplesTax: decimal.NewFromInt(1550), BestTax: decimal.NewFromInt(1550)},
		{Payroll: decimal.NewFromInt(2000), SimplesTax: decimal.NewFromInt(1550), BestTax: decimal.NewFromInt(1550)},
		{Payroll: decimal.NewFromInt(4000), SimplesTax: decimal.NewFromInt(840), BestTax: decimal.NewFromInt(840)},
	}
	out := SweepChart(points, 60, 8)
	assert.Contains(t, out, "Imposto mensal × folha de pagamento")
	assert.Contains(t, out, "R$ 4.000,00")
	assert.Contains(t, out, "Melhor regime")
	assert.Contains(t, out, "●")

	// a single point and a flat series must not divide by zero
	flat := SweepChart(points[:1], 40, 5)
	assert.Contains(t, flat, "R$ 0,00")
}
