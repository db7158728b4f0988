package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("COMPARATIVO DE REGIMES TRIBUTÁRIOS\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Ano-calendário: %d\n", compSet.FiscalYear))
	sb.WriteString(fmt.Sprintf("Faturamento mensal: R$ %s\n", compSet.MonthlyRevenue.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Cenário base: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Arquivo: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 36
	numWidth := 13

	// Table header
	sb.WriteString(fmt.Sprintf("%-4s %-*s %*s %*s %*s %*s\n",
		"#",
		nameWidth, "Regime",
		numWidth, "Imposto/mês",
		numWidth, "Alíquota",
		numWidth, "Lucro líq.",
		numWidth, "Dif./ano"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	rows := compSet.all()
	sortByRank(rows)
	for i := range rows {
		sb.WriteString(tf.formatRow(&rows[i], compSet.BaseResult, nameWidth, numWidth))
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single regime row
func (tf *TableFormatter) formatRow(result *ComparisonResult, base *ComparisonResult, nameWidth, numWidth int) string {
	name := result.ScenarioName
	if !result.IsEligible {
		name += " *"
	}

	diff := "base"
	if base == nil || result.Kind != base.Kind {
		diff = tf.deltaSymbol(result.AnnualTaxDiffFromBase) + tf.formatDecimal(result.AnnualTaxDiffFromBase.Abs())
	}

	return fmt.Sprintf("%-4d %-*s %*s %*s %*s %*s\n",
		result.Rank,
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "R$ "+result.MonthlyTax.StringFixed(2),
		numWidth, result.EffectiveRatePercent.StringFixed(2)+"%",
		numWidth, "R$ "+result.NetProfit.StringFixed(2),
		numWidth, diff)
}

// FormatReport prints every scenario of a report with its tax lines
func (tf *TableFormatter) FormatReport(report *domain.ScenarioReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("CENÁRIOS TRIBUTÁRIOS %d\n", report.FiscalYear))
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Faturamento mensal: R$ %s | RBT12: R$ %s | Fator R: %s%%\n",
		report.Input.MonthlyRevenue.StringFixed(2),
		report.Input.RBT12.StringFixed(2),
		report.FatorR.Ratio.Mul(decimal.NewFromInt(100)).StringFixed(2)))

	for _, s := range report.Scenarios {
		marker := ""
		switch {
		case s.IsBest:
			marker = " [MELHOR]"
		case s.IsWorst:
			marker = " [PIOR]"
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%d. %s%s\n", s.Rank, s.Name, marker))
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, line := range s.TaxLineItems {
			rate := ""
			if !line.RatePercent.IsZero() {
				rate = line.RatePercent.StringFixed(2) + "%"
			}
			sb.WriteString(fmt.Sprintf("   %-50s %10s %15s\n", tf.truncate(line.Label, 50), rate, "R$ "+line.Amount.StringFixed(2)))
		}
		sb.WriteString(fmt.Sprintf("   %-50s %10s %15s\n", "Total", s.EffectiveRatePercent.StringFixed(2)+"%", "R$ "+s.TotalTax.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("   Lucro líquido distribuível: R$ %s\n", s.NetDistributableProfit.StringFixed(2)))
		if s.EligibilityNote != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", s.EligibilityNote))
		}
		if s.Notes != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", s.Notes))
		}
	}

	return sb.String()
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		// Format in millions
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		// Format in thousands
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns + for a higher tax than the base and - for a lower one
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each regime
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.MonthlyTaxDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+R$%s", tf.formatDecimal(alt.MonthlyTaxDiffFromBase))
		} else if alt.MonthlyTaxDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-R$%s", tf.formatDecimal(alt.MonthlyTaxDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

func sortByRank(rows []ComparisonResult) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
}
