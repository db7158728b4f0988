package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Regime",
		"Rank",
		"Eligible",
		"Monthly Tax",
		"Annual Tax",
		"Effective Rate %",
		"Net Profit",
		"Monthly Tax Diff from Base",
		"Annual Tax Diff from Base",
		"Net Profit Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	// Write alternative scenarios
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.Kind),
		formatInt(result.Rank),
		fmt.Sprintf("%t", result.IsEligible),
		result.MonthlyTax.StringFixed(2),
		result.AnnualTax.StringFixed(2),
		result.EffectiveRatePercent.StringFixed(2),
		result.NetProfit.StringFixed(2),
		result.MonthlyTaxDiffFromBase.StringFixed(2),
		result.AnnualTaxDiffFromBase.StringFixed(2),
		result.NetProfitDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
