package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/domain"
)

// CompareEngine runs the calculation engine and turns its report into a comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseKind   domain.RegimeKind // Regime to compare against; empty means the top-ranked scenario
	ConfigPath string            // Source file, shown in the output
}

// Compare evaluates the request and compares every regime against the base
func (ce *CompareEngine) Compare(ctx context.Context, req *domain.ScenarioRequest, options CompareOptions) (*ComparisonSet, error) {
	report, err := ce.CalcEngine.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate scenarios: %w", err)
	}
	return ce.FromReport(report, options)
}

// FromReport builds a comparison from an existing report
func (ce *CompareEngine) FromReport(report *domain.ScenarioReport, options CompareOptions) (*ComparisonSet, error) {
	if len(report.Scenarios) == 0 {
		return nil, fmt.Errorf("report has no scenarios")
	}

	base := report.Scenarios[0]
	if options.BaseKind != "" {
		if !options.BaseKind.IsValid() {
			return nil, fmt.Errorf("unknown regime %q", options.BaseKind)
		}
		found, ok := report.Find(options.BaseKind)
		if !ok {
			return nil, fmt.Errorf("base regime %s not found in report", options.BaseKind)
		}
		base = found
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(base)

	alternatives := []ComparisonResult{}
	for _, s := range report.Scenarios {
		if s.Kind == base.Kind {
			continue
		}
		alt := ce.MetricsCalculator.CalculateMetrics(s)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		FiscalYear:         report.FiscalYear,
		MonthlyRevenue:     report.Input.MonthlyRevenue,
		FatorR:             report.FatorR,
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
