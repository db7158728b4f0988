package output

import (
	"context"
	"testing"

	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/compare"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/legal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"840.04", "R$ 840,04"},
		{"1000", "R$ 1.000,00"},
		{"12345.678", "R$ 12.345,68"},
		{"1234567.8", "R$ 1.234.567,80"},
		{"-1110.41", "-R$ 1.110,41"},
		{"-0.001", "R$ 0,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "8,40%", FormatPercent(decimal.RequireFromString("8.4")))
	assert.Equal(t, "28,00%", FormatRatio(decimal.RequireFromString("0.28")))
}

func runConsultancy(t *testing.T) (*domain.ScenarioReport, *calculation.CalculationEngine) {
	t.Helper()
	lc, err := legal.Default().Get(2025)
	require.NoError(t, err)
	engine := calculation.NewCalculationEngine(lc)

	revenue := decimal.NewFromInt(10000)
	report, err := engine.Run(context.Background(), &domain.ScenarioRequest{MonthlyRevenue: &revenue})
	require.NoError(t, err)
	return report, engine
}

func TestHTMLFormatter(t *testing.T) {
	report, engine := runConsultancy(t)
	compSet, err := compare.NewCompareEngine(engine).FromReport(report, compare.CompareOptions{})
	require.NoError(t, err)

	h := HTMLFormatter{}
	assert.Equal(t, "html", h.Name())

	data, err := h.Format(report, compSet)
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "<title>Cenários tributários 2025</title>")
	assert.Contains(t, page, "Faturamento mensal: R$ 10.000,00")
	assert.Contains(t, page, `class="best"`)
	assert.Contains(t, page, "Simples Nacional (Anexo III)")
	assert.Contains(t, page, "R$ 840,04")
	assert.Contains(t, page, "INSS sobre pró-labore")
	assert.Contains(t, page, "<h2>Recomendações</h2>")

	data, err = h.Format(report, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Recomendações")
}
