package compare

import (
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// ComparisonResult represents a single regime with its deltas against the base
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Kind         domain.RegimeKind `json:"regimeKind"`
	Category     domain.Category   `json:"category"`
	Rank         int               `json:"rank"`
	IsEligible   bool              `json:"isEligible"`
	Note         string            `json:"note,omitempty"`

	// Key Metrics
	MonthlyTax           decimal.Decimal `json:"monthlyTax"`
	AnnualTax            decimal.Decimal `json:"annualTax"`
	EffectiveRatePercent decimal.Decimal `json:"effectiveRatePercent"`
	NetProfit            decimal.Decimal `json:"netProfit"`

	// Comparison to Base
	MonthlyTaxDiffFromBase decimal.Decimal `json:"monthlyTaxDiffFromBase"`
	AnnualTaxDiffFromBase  decimal.Decimal `json:"annualTaxDiffFromBase"`
	NetProfitDiffFromBase  decimal.Decimal `json:"netProfitDiffFromBase"`
}

// ComparisonSet represents the regimes of one report compared against a base regime
type ComparisonSet struct {
	FiscalYear         int                 `json:"fiscalYear"`
	MonthlyRevenue     decimal.Decimal     `json:"monthlyRevenue"`
	FatorR             domain.FatorRResult `json:"fatorR"`
	BaseScenarioName   string              `json:"baseScenarioName"`
	BaseResult         *ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult  `json:"alternativeResults"`
	Recommendations    []string            `json:"recommendations"`
	ConfigPath         string              `json:"configPath"`
}

// MetricsCalculator extracts comparison metrics from ranked scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics of one scenario
func (mc *MetricsCalculator) CalculateMetrics(s domain.RankedScenario) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:         s.Name,
		Kind:                 s.Kind,
		Category:             s.Category,
		Rank:                 s.Rank,
		IsEligible:           s.IsEligible,
		MonthlyTax:           s.TotalTax,
		AnnualTax:            s.TotalTax.Mul(monthsPerYear),
		EffectiveRatePercent: s.EffectiveRatePercent,
		NetProfit:            s.NetDistributableProfit,
	}
	if !s.IsEligible {
		result.Note = s.EligibilityNote
	}
	return result
}

// CalculateComparison computes the deltas of a scenario against the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.MonthlyTaxDiffFromBase = scenario.MonthlyTax.Sub(base.MonthlyTax)
	scenario.AnnualTaxDiffFromBase = scenario.AnnualTax.Sub(base.AnnualTax)
	scenario.NetProfitDiffFromBase = scenario.NetProfit.Sub(base.NetProfit)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	all := compSet.all()
	if len(all) == 0 {
		return recommendations
	}

	var best, worst *ComparisonResult
	for i := range all {
		r := &all[i]
		if !r.IsEligible || r.Category != domain.CategoryCorporate {
			continue
		}
		if best == nil || r.MonthlyTax.LessThan(best.MonthlyTax) {
			best = r
		}
		if worst == nil || r.MonthlyTax.GreaterThan(worst.MonthlyTax) {
			worst = r
		}
	}

	if best != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Menor carga: %s com R$ %s/mês (%s%% efetivo)",
				best.ScenarioName, best.MonthlyTax.StringFixed(2), best.EffectiveRatePercent.StringFixed(2)))
	}
	if best != nil && worst != nil && best != worst {
		recommendations = append(recommendations,
			fmt.Sprintf("Economia anual de R$ %s em relação a %s",
				worst.AnnualTax.Sub(best.AnnualTax).StringFixed(2), worst.ScenarioName))
	}

	for _, r := range all {
		if !r.IsEligible && best != nil && r.MonthlyTax.LessThan(best.MonthlyTax) {
			recommendations = append(recommendations,
				fmt.Sprintf("%s seria mais barato, mas não é possível: %s", r.ScenarioName, r.Note))
		}
	}

	fr := compSet.FatorR
	if !fr.QualifiesForAnnexIII && fr.Shortfall.IsPositive() && compSet.MonthlyRevenue.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Fator R: uma folha de R$ %s/mês (mais R$ %s) enquadra atividades do Anexo V no Anexo III",
				fr.TargetPayroll.StringFixed(2), fr.Shortfall.StringFixed(2)))
	}

	return recommendations
}

func (cs *ComparisonSet) all() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}
