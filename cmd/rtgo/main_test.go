package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/rtgo/internal/breakeven"
	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	barAndCourtFile = "../../internal/config/testdata/bar_quadra.yaml"
	typoFile        = "../../internal/config/testdata/typo.yaml"
	issTableFile    = "../../internal/config/testdata/iss_fixo.yaml"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func consultancyFile(t *testing.T) string {
	return writeFile(t, "consultoria.yaml", "clientType: pj\nmonthlyRevenue: 10000\n")
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "rtgo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	cmd := newRootCmd()
	registered := map[string]bool{}
	for _, c := range cmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range []string{"calculate", "validate", "sweep", "breakeven", "constants", "serve", "version"} {
		assert.True(t, registered[name], "missing command %s", name)
	}
}

func TestCalculateCommand(t *testing.T) {
	input := consultancyFile(t)

	t.Run("Table", func(t *testing.T) {
		out, err := execute(t, "calculate", input)
		require.NoError(t, err)
		assert.Contains(t, out, "COMPARATIVO DE REGIMES TRIBUTÁRIOS")
		assert.Contains(t, out, "Cenário base: Simples Nacional (Anexo III)")
		assert.Contains(t, out, "RECOMENDAÇÕES")
	})

	t.Run("Report", func(t *testing.T) {
		out, err := execute(t, "calculate", input, "--format", "report")
		require.NoError(t, err)
		assert.Contains(t, out, "1. Simples Nacional (Anexo III) [MELHOR]")
		assert.Contains(t, out, "INSS sobre pró-labore")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := execute(t, "calculate", input, "-f", "json", "--parallel")
		require.NoError(t, err)

		var report domain.ScenarioReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, 2025, report.FiscalYear)
		require.Len(t, report.Scenarios, 6)
		assert.Equal(t, "840.04", report.Scenarios[0].TotalTax.StringFixed(2))
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := execute(t, "calculate", input, "-f", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "fiscal_year: 2025")
		assert.Contains(t, out, "tax_line_items:")
	})

	t.Run("CSV", func(t *testing.T) {
		out, err := execute(t, "calculate", input, "-f", "csv")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Len(t, lines, 7)
		assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,Regime"))
	})

	t.Run("CompareJSON", func(t *testing.T) {
		out, err := execute(t, "calculate", input, "-f", "compare-json", "--base", "clt")
		require.NoError(t, err)
		assert.Contains(t, out, `"baseScenarioName": "CLT (baseline)"`)
	})

	t.Run("HTML", func(t *testing.T) {
		out, err := execute(t, "calculate", input, "-f", "html")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
		assert.Contains(t, out, "R$ 840,04")
	})

	t.Run("FiscalYear", func(t *testing.T) {
		out, err := execute(t, "calculate", input, "-f", "json", "--year", "2024")
		require.NoError(t, err)
		var report domain.ScenarioReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, 2024, report.FiscalYear)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := execute(t, "calculate", input, "-f", "html")
		assert.Error(t, err)

		_, err = execute(t, "calculate", input, "--base", "lucro_arbitrado")
		assert.Error(t, err)

		_, err = execute(t, "calculate", input, "--year", "1999")
		assert.ErrorIs(t, err, domain.ErrUnknownFiscalYear)

		_, err = execute(t, "calculate", typoFile)
		assert.Error(t, err)

		_, err = execute(t, "calculate")
		assert.Error(t, err)
	})
}

func TestCalculateWithISSTable(t *testing.T) {
	input := writeFile(t, "sociedade.yaml", `monthlyRevenue: 20000
numberOfPartners: 2
isUniprofessionalSociety: true
municipality: Campinas
`)

	out, err := execute(t, "calculate", input, "-f", "json", "--iss-table", issTableFile)
	require.NoError(t, err)

	var report domain.ScenarioReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "85.50", report.Input.FixedISSPerPartner.StringFixed(2))
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", barAndCourtFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 2 activit(ies), monthly revenue R$ 10000.00")

	_, err = execute(t, "validate", typoFile)
	assert.Error(t, err)

	_, err = execute(t, "validate", "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestSweepCommand(t *testing.T) {
	input := consultancyFile(t)

	out, err := execute(t, "sweep", input, "--from", "0", "--to", "4000", "--step", "1000")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "Fator R")
	assert.Contains(t, lines[2], "15.18%")
	assert.Contains(t, lines[6], "40.00%")
	assert.Contains(t, lines[6], "III")

	out, err = execute(t, "sweep", input, "-f", "json")
	require.NoError(t, err)
	var points []calculation.SweepPoint
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	assert.Len(t, points, 21)

	_, err = execute(t, "sweep", input, "--step", "-1", "--to", "100")
	assert.Error(t, err)

	_, err = execute(t, "sweep", input, "--from", "abc")
	assert.Error(t, err)
}

func TestBreakevenCommand(t *testing.T) {
	input := consultancyFile(t)

	out, err := execute(t, "breakeven", input, "--against", "mei", "--min", "1000", "--max", "50000", "-f", "json")
	require.NoError(t, err)
	var result breakeven.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Found)
	assert.Equal(t, domain.RegimeMEI, result.CheaperBelow)

	out, err = execute(t, "breakeven", input)
	require.NoError(t, err)
	assert.Contains(t, out, "PONTOS DE EQUILÍBRIO: simples_single (faturamento mensal)")
	assert.Contains(t, out, "mei")

	_, err = execute(t, "breakeven", input, "--dimension", "rbt12")
	assert.Error(t, err)

	_, err = execute(t, "breakeven", input, "--against", "simples_mixed")
	assert.Error(t, err)
}

func TestConstantsCommand(t *testing.T) {
	out, err := execute(t, "constants", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "2025")

	out, err = execute(t, "constants")
	require.NoError(t, err)
	assert.Contains(t, out, "fiscal_year: 2025")
	assert.Contains(t, out, "simples_nacional:")

	out, err = execute(t, "constants", "-f", "json", "--year", "2024")
	require.NoError(t, err)
	var lc domain.LegalConstants
	require.NoError(t, json.Unmarshal([]byte(out), &lc))
	assert.True(t, lc.MinimumWage.Equal(decimal.NewFromInt(1412)))

	_, err = execute(t, "constants", "--year", "1999")
	assert.Error(t, err)
}

func TestConstantsRoundTrip(t *testing.T) {
	dump, err := execute(t, "constants")
	require.NoError(t, err)

	next := strings.Replace(dump, "fiscal_year: 2025", "fiscal_year: 2026", 1)
	constantsFile := writeFile(t, "2026.yaml", next)

	out, err := execute(t, "calculate", consultancyFile(t), "-f", "json", "--constants", constantsFile)
	require.NoError(t, err)

	var report domain.ScenarioReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2026, report.FiscalYear)
	assert.Equal(t, "840.04", report.Scenarios[0].TotalTax.StringFixed(2))

	broken := writeFile(t, "broken.yaml", "metadata:\n  fiscal_year: 2026\n")
	_, err = execute(t, "calculate", consultancyFile(t), "--constants", broken)
	assert.Error(t, err)
}

func TestExampleScenarios(t *testing.T) {
	files, err := filepath.Glob("../../examples/*.yaml")
	require.NoError(t, err)

	ran := 0
	for _, file := range files {
		if filepath.Base(file) == "iss_fixo.yaml" {
			continue
		}
		t.Run(filepath.Base(file), func(t *testing.T) {
			out, err := execute(t, "calculate", file, "-f", "json", "--iss-table", "../../examples/iss_fixo.yaml")
			require.NoError(t, err)

			var report domain.ScenarioReport
			require.NoError(t, json.Unmarshal([]byte(out), &report))
			assert.Len(t, report.Scenarios, 6)
			_, ok := report.Best()
			assert.True(t, ok)
		})
		ran++
	}
	assert.Equal(t, 4, ran)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rtgo dev")
}
